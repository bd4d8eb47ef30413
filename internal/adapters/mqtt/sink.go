package mqtt

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/adapters/telemetry"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

const (
	connectTimeout = 5 * time.Second
	publishTimeout = 5 * time.Second
	quiesceMillis  = 250
)

// publisher is the part of paho.Client the sink uses
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// Sink publishes each snapshot to an MQTT topic at QoS 0
// This implements the ports.Sink interface
type Sink struct {
	client   publisher
	topic    string
	deviceID string
}

// Dial connects to broker and returns a sink; the client keeps retrying in the background
// if the broker is not reachable yet
func Dial(broker, topic, deviceID string, tlsCfg *tls.Config) (*Sink, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("env-service-" + deviceID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(time.Second)
	if tlsCfg != nil {
		opts.SetTLSConfig(tlsCfg)
	}

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		log.Warn().Str("broker", broker).Msg("MQTT broker not reachable yet, retrying in background")
	} else if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to MQTT broker %s: %w", broker, err)
	}

	return newSink(client, topic, deviceID), nil
}

func newSink(client publisher, topic, deviceID string) *Sink {
	return &Sink{
		client:   client,
		topic:    topic,
		deviceID: deviceID,
	}
}

// Publish sends the snapshot as a JSON telemetry payload
func (s *Sink) Publish(ctx context.Context, snapshot domain.Snapshot) error {
	payload, err := telemetry.Encode(s.deviceID, snapshot)
	if err != nil {
		return err
	}

	token := s.client.Publish(s.topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s: timed out after %s", s.topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", s.topic, err)
	}
	return nil
}

// Close disconnects from the broker
func (s *Sink) Close() error {
	s.client.Disconnect(quiesceMillis)
	return nil
}
