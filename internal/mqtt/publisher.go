// internal/mqtt/publisher.go

// Package mqtt mirrors telemetry onto an MQTT broker. Topics are
// "<prefix>/<drive>/telemetry" per poll cycle and "<prefix>/<drive>/alarm"
// once per alarm episode.
package mqtt

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/tamzrod/servo-telemetry/internal/drive"
	"github.com/tamzrod/servo-telemetry/internal/poller"
)

// Config for the broker connection.
type Config struct {
	Broker         string
	ClientID       string // empty means generate one
	Username       string
	Password       string
	TopicPrefix    string
	QoS            byte
	KeepAlive      time.Duration
	ConnectTimeout time.Duration
}

// Publisher forwards poll updates and alarm reports to the broker. It
// implements poller.Reporter.
type Publisher struct {
	cli    paho.Client
	prefix string
	qos    byte
	log    zerolog.Logger
}

// Connect dials the broker and fails fast; a configured but unreachable
// broker is a startup error for the caller to act on.
func Connect(cfg Config, logger zerolog.Logger) (*Publisher, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt: broker required")
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = generateClientID("servotel")
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetKeepAlive(cfg.KeepAlive).
		SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetOnConnectHandler(func(paho.Client) {
		logger.Info().Str("broker", cfg.Broker).Str("client_id", clientID).Msg("mqtt connected")
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Warn().Err(err).Msg("mqtt connection lost")
	})

	cli := paho.NewClient(opts)
	token := cli.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		return nil, fmt.Errorf("mqtt: connect %s: timeout after %s", cfg.Broker, cfg.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect %s: %w", cfg.Broker, err)
	}

	return &Publisher{cli: cli, prefix: cfg.TopicPrefix, qos: cfg.QoS, log: logger}, nil
}

// telemetryMessage is the per-cycle payload.
type telemetryMessage struct {
	Drive           string    `json:"drive"`
	At              time.Time `json:"at"`
	CommandedSpeed  float64   `json:"commanded_speed"`
	FeedbackSpeed   float64   `json:"feedback_speed"`
	DeviationSpeed  float64   `json:"deviation_speed"`
	CommandedTorque float64   `json:"commanded_torque"`
	FeedbackTorque  float64   `json:"feedback_torque"`
	DeviationTorque float64   `json:"deviation_torque"`
	DCBusVolt       float64   `json:"dc_bus_volt"`
	TorqueLoad      float64   `json:"torque_load"`
	ResBraking      float64   `json:"res_braking"`
	TorqueOverload  float64   `json:"torque_overload"`
	DigitalIn       []bool    `json:"digital_in"`
	DigitalOut      []bool    `json:"digital_out"`
	ErrorCode       uint16    `json:"error_code"`
	Failures        uint32    `json:"failures"`
}

// PublishUpdate mirrors one poll update.
func (p *Publisher) PublishUpdate(u poller.Update) error {
	tel := u.Telemetry
	msg := telemetryMessage{
		Drive:           u.Drive,
		At:              u.At,
		CommandedSpeed:  tel.CommandedSpeed,
		FeedbackSpeed:   tel.FeedbackSpeed,
		DeviationSpeed:  tel.DeviationSpeed,
		CommandedTorque: tel.CommandedTorque,
		FeedbackTorque:  tel.FeedbackTorque,
		DeviationTorque: tel.DeviationTorque,
		DCBusVolt:       tel.DCBusVolt,
		TorqueLoad:      tel.TorqueLoad,
		ResBraking:      tel.ResBraking,
		TorqueOverload:  tel.TorqueOverload,
		DigitalIn:       tel.DigitalIn[:],
		DigitalOut:      tel.DigitalOut[:],
		ErrorCode:       uint16(tel.ErrorCode),
		Failures:        u.Failures,
	}
	return p.publish(fmt.Sprintf("%s/%s/telemetry", p.prefix, u.Drive), msg)
}

// alarmMessage is published once per alarm episode.
type alarmMessage struct {
	Drive   string    `json:"drive"`
	Code    uint16    `json:"code"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// AlarmRaised implements poller.Reporter.
func (p *Publisher) AlarmRaised(driveName string, code drive.ErrorCode) {
	msg := alarmMessage{
		Drive:   driveName,
		Code:    uint16(code),
		Message: code.Message(),
		At:      time.Now(),
	}
	if err := p.publish(fmt.Sprintf("%s/%s/alarm", p.prefix, driveName), msg); err != nil {
		p.log.Error().Err(err).Str("drive", driveName).Msg("alarm publish failed")
	}
}

func (p *Publisher) publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("mqtt: encode %s: %w", topic, err)
	}
	token := p.cli.Publish(topic, p.qos, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: publish %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker, letting in-flight work drain.
func (p *Publisher) Close() {
	p.cli.Disconnect(250)
}

func generateClientID(prefix string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(b))
}
