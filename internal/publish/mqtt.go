package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/bhloop/pkg/models"
)

// Publisher hands finished analyses to the presentation side
type Publisher interface {
	Publish(ctx context.Context, analysis *models.Analysis) error
	Close()
}

// MQTTConfig holds broker settings. An empty Broker disables publishing.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Timeout  time.Duration
}

// tokenPublisher is the part of mqtt.Client the publisher needs
type tokenPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type mqttPublisher struct {
	client  tokenPublisher
	close   func()
	topic   string
	qos     byte
	timeout time.Duration
}

// NewPublisher connects to the configured broker, or returns a no-op publisher
// when no broker is set.
func NewPublisher(cfg MQTTConfig) (Publisher, error) {
	if cfg.Broker == "" {
		log.Info().Msg("MQTT broker not configured, analyses will not be published")
		return noopPublisher{}, nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", cfg.Broker, token.Error())
	}
	log.Info().Str("broker", cfg.Broker).Str("topic", cfg.Topic).Msg("Connected to MQTT broker")

	p := newMQTTPublisher(client, cfg)
	p.close = func() { client.Disconnect(250) }
	return p, nil
}

func newMQTTPublisher(client tokenPublisher, cfg MQTTConfig) *mqttPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &mqttPublisher{
		client:  client,
		close:   func() {},
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		timeout: timeout,
	}
}

// Publish sends the analysis as JSON to <topic>/<analysis id> and to <topic>/latest (retained)
func (p *mqttPublisher) Publish(ctx context.Context, analysis *models.Analysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	for _, msg := range []struct {
		topic    string
		retained bool
	}{
		{topic: p.topic + "/" + analysis.ID, retained: false},
		{topic: p.topic + "/latest", retained: true},
	} {
		if err := ctx.Err(); err != nil {
			return err
		}
		token := p.client.Publish(msg.topic, p.qos, msg.retained, payload)
		if !token.WaitTimeout(p.timeout) {
			return fmt.Errorf("timed out publishing to %s", msg.topic)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", msg.topic, err)
		}
	}

	log.Debug().Str("analysisID", analysis.ID).Str("topic", p.topic).Int("bytes", len(payload)).Msg("Analysis published")
	return nil
}

func (p *mqttPublisher) Close() {
	p.close()
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, *models.Analysis) error { return nil }
func (noopPublisher) Close()                                          {}
