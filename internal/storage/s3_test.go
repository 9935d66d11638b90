package storage

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/RMahshie/bhloop/internal/capture"
	"github.com/google/uuid"
	miniogo "github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestValidateContentType(t *testing.T) {
	assert.NoError(t, validateContentType("text/csv"))
	assert.NoError(t, validateContentType("text/plain"))
	assert.Error(t, validateContentType("application/pdf"))
	assert.Error(t, validateContentType(""))
}

func TestCaptureKey(t *testing.T) {
	assert.Equal(t, "captures/abc.csv", CaptureKey("abc"))
}

func TestNewS3Service_RequiresBucket(t *testing.T) {
	_, err := NewS3Service(S3Config{})
	assert.Error(t, err)
}

// startMinio runs a MinIO container with an empty bucket and returns a service bound to it
func startMinio(t *testing.T) (S3Service, *miniogo.Client, string) {
	t.Helper()
	ctx := context.Background()

	container, err := minio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		minio.WithUsername("minioadmin"),
		minio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	})

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  miniocreds.NewStaticV4(container.Username, container.Password, ""),
		Secure: false,
	})
	require.NoError(t, err)

	bucket := "bhloop-test-" + uuid.New().String()[:8]
	require.NoError(t, client.MakeBucket(ctx, bucket, miniogo.MakeBucketOptions{}))

	svc, err := NewS3Service(S3Config{
		Bucket:    bucket,
		Endpoint:  endpoint,
		AccessKey: container.Username,
		SecretKey: container.Password,
	})
	require.NoError(t, err)

	return svc, client, bucket
}

func TestS3Service_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	svc, client, bucket := startMinio(t)

	t.Run("download seeded capture", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, capture.EncodeCSV(&buf, &capture.Capture{
			CH0: []float64{0, 0.5, 1},
			CH1: []float64{1, 0.5, 0},
		}))

		key := CaptureKey(uuid.New().String())
		_, err := client.PutObject(ctx, bucket, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()),
			miniogo.PutObjectOptions{ContentType: "text/csv"})
		require.NoError(t, err)

		data, err := svc.DownloadFile(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, buf.Bytes(), data)
	})

	t.Run("upload through pre-signed URL", func(t *testing.T) {
		key := CaptureKey(uuid.New().String())
		url, err := svc.GenerateUploadURL(ctx, key, "text/csv")
		require.NoError(t, err)

		body := []byte("ch0,ch1\n1,2\n")
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "text/csv")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data, err := svc.DownloadFile(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, body, data)
	})

	t.Run("missing capture", func(t *testing.T) {
		_, err := svc.DownloadFile(ctx, CaptureKey("does-not-exist"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
