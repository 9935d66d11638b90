package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/RMahshie/bhloop/internal/hysteresis"
	"github.com/RMahshie/bhloop/pkg/models"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Acquisition models.AcquisitionConfig
	Physical    models.PhysicalParameters
	AWS         AWSConfig
	MQTT        MQTTConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// AWSConfig holds AWS/S3 configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

// MQTTConfig holds result publishing configuration
type MQTTConfig struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      int
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "dev")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")

	viper.SetDefault("SAMPLE_RATE_HZ", models.DefaultSampleRateHz)
	viper.SetDefault("BUFFER_SIZE", 0) // 0 derives the buffer from ACQUISITION_TIME
	viper.SetDefault("ACQUISITION_TIME", models.DefaultAcquisitionTime)
	viper.SetDefault("INPUT_RANGE_V", models.DefaultInputRangeV)
	viper.SetDefault("TARGET_PLOT_POINTS", models.DefaultTargetPlotPoints)
	viper.SetDefault("LOOP_BINS", models.DefaultLoopBins)

	phys := models.DefaultPhysicalParameters()
	viper.SetDefault("TURNS_EXC", phys.TurnsExc)
	viper.SetDefault("PATH_LENGTH", phys.PathLen)
	viper.SetDefault("SHUNT_RESISTANCE", phys.Shunt)
	viper.SetDefault("TURNS_B", phys.TurnsB)
	viper.SetDefault("CORE_AREA", phys.Area)

	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_ACCESS_KEY_ID", "")
	viper.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_BUCKET", "bhloop-captures")
	viper.SetDefault("S3_ENDPOINT", "")

	viper.SetDefault("MQTT_BROKER", "")
	viper.SetDefault("MQTT_CLIENT_ID", "bhloop-server")
	viper.SetDefault("MQTT_TOPIC", "bhloop/analyses")
	viper.SetDefault("MQTT_QOS", 1)

	// Read from .env files based on environment
	env := viper.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	viper.SetConfigName(".env." + env)
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Read .env file (ignore error if file doesn't exist)
	_ = viper.ReadInConfig()

	// Environment variables override .env file values
	viper.AutomaticEnv()

	var config Config
	config.Server.Port = viper.GetString("PORT")
	config.Server.Env = viper.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = splitList(viper.GetString("ALLOWED_ORIGINS"))

	config.Acquisition = models.AcquisitionConfig{
		SampleRateHz:     viper.GetInt("SAMPLE_RATE_HZ"),
		BufferSize:       viper.GetInt("BUFFER_SIZE"),
		AcquisitionTime:  viper.GetFloat64("ACQUISITION_TIME"),
		InputRangeV:      viper.GetFloat64("INPUT_RANGE_V"),
		TargetPlotPoints: viper.GetInt("TARGET_PLOT_POINTS"),
		Bins:             viper.GetInt("LOOP_BINS"),
	}
	// Buffer size and acquisition time describe the same capture; an explicit buffer wins
	if config.Acquisition.BufferSize == 0 {
		config.Acquisition.BufferSize = config.Acquisition.BufferFromTime()
	} else {
		config.Acquisition.AcquisitionTime = config.Acquisition.TimeFromBuffer()
	}
	config.Physical = models.PhysicalParameters{
		TurnsExc: viper.GetFloat64("TURNS_EXC"),
		PathLen:  viper.GetFloat64("PATH_LENGTH"),
		Shunt:    viper.GetFloat64("SHUNT_RESISTANCE"),
		TurnsB:   viper.GetFloat64("TURNS_B"),
		Area:     viper.GetFloat64("CORE_AREA"),
	}

	config.AWS.Region = viper.GetString("AWS_REGION")
	config.AWS.AccessKeyID = viper.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = viper.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = viper.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = viper.GetString("S3_ENDPOINT")

	config.MQTT.Broker = viper.GetString("MQTT_BROKER")
	config.MQTT.ClientID = viper.GetString("MQTT_CLIENT_ID")
	config.MQTT.Topic = viper.GetString("MQTT_TOPIC")
	config.MQTT.QoS = viper.GetInt("MQTT_QOS")

	if err := hysteresis.ValidateAcquisition(config.Acquisition); err != nil {
		return nil, fmt.Errorf("invalid acquisition config: %w", err)
	}
	if err := hysteresis.ValidateParameters(config.Physical); err != nil {
		return nil, fmt.Errorf("invalid physical parameters: %w", err)
	}
	if config.MQTT.QoS < 0 || config.MQTT.QoS > 2 {
		return nil, fmt.Errorf("MQTT_QOS must be 0, 1 or 2, got %d", config.MQTT.QoS)
	}

	log.Info().
		Str("env", config.Server.Env).
		Int("sample_rate_hz", config.Acquisition.SampleRateHz).
		Int("buffer_size", config.Acquisition.BufferSize).
		Int("bins", config.Acquisition.Bins).
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Msg("Configuration loaded")

	return &config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
