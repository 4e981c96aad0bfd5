// internal/config/config.go

// Package config loads, validates and normalizes the service
// configuration. Callers run Load (or build a Config from flags),
// ApplyEnv, Validate, Normalize, in that order.
package config

import "time"

type Config struct {
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type TelemetryConfig struct {
	Serial SerialConfig  `yaml:"serial"`
	Poll   PollConfig    `yaml:"poll"`
	Drives []DriveConfig `yaml:"drives"`

	// Optional surfaces, enabled by presence.
	MQTT *MQTTConfig `yaml:"mqtt"`
	HTTP *HTTPConfig `yaml:"http"`
}

// ---- SERIAL ----

// SerialConfig is the shared bus. Framing is fixed by the drives (8 data
// bits, even parity, 1 stop bit) and is deliberately absent here.
type SerialConfig struct {
	Device    string `yaml:"device"`
	BaudRate  int    `yaml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms"`
	Verbose   bool   `yaml:"verbose"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// Interval returns the poll interval as a duration.
func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

// Interval bounds. Normalize clamps values into this range.
const (
	MinIntervalMs = 1
	MaxIntervalMs = 2000
)

// ---- DRIVES ----

// DriveConfig is one drive on the bus.
type DriveConfig struct {
	Name     string `yaml:"name"`
	Station  int    `yaml:"station"`
	Disabled bool   `yaml:"disabled"`
}

// Station address bounds on the bus.
const (
	MinStation = 1
	MaxStation = 31
)

// ---- MQTT ----

// MQTTConfig enables the telemetry mirror when present.
type MQTTConfig struct {
	Broker       string `yaml:"broker"`
	ClientID     string `yaml:"client_id"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	TopicPrefix  string `yaml:"topic_prefix"`
	QoS          int    `yaml:"qos"`
	KeepAliveSec int    `yaml:"keep_alive_sec"`
}

// ---- HTTP ----

// HTTPConfig enables the status API when present.
type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

// ---- DEFAULTS ----

const (
	DefaultDevice     = "/dev/ttyUSB0"
	DefaultBaudRate   = 19200
	DefaultTimeoutMs  = 500
	DefaultIntervalMs = 1000
)

// Default returns a configuration with no drives and every tunable at its
// default. The YAML file and the flags fill in the rest.
func Default() Config {
	return Config{
		Telemetry: TelemetryConfig{
			Serial: SerialConfig{
				Device:    DefaultDevice,
				BaudRate:  DefaultBaudRate,
				TimeoutMs: DefaultTimeoutMs,
			},
			Poll: PollConfig{IntervalMs: DefaultIntervalMs},
		},
	}
}

// BaudRates lists the rates the drive accepts.
var BaudRates = [...]int{2400, 4800, 9600, 19200, 38400, 57600, 115200}

// ValidBaudRate reports whether rate is one the drive supports.
func ValidBaudRate(rate int) bool {
	for _, r := range BaudRates {
		if r == rate {
			return true
		}
	}
	return false
}
