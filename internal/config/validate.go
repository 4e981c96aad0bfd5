// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	t := cfg.Telemetry

	// ------------------------------------------------------------
	// SERIAL BUS VALIDATION
	// ------------------------------------------------------------

	if t.Serial.Device == "" {
		return fmt.Errorf("serial: device required")
	}
	if !ValidBaudRate(t.Serial.BaudRate) {
		return fmt.Errorf("serial: unsupported baud rate %d (supported: %v)", t.Serial.BaudRate, BaudRates)
	}
	if t.Serial.TimeoutMs < 0 {
		return fmt.Errorf("serial: timeout must not be negative")
	}

	// ------------------------------------------------------------
	// DRIVE VALIDATION
	// ------------------------------------------------------------

	if len(t.Drives) == 0 {
		return fmt.Errorf("drives: at least one drive required")
	}

	names := make(map[string]bool, len(t.Drives))
	stations := make(map[int]string, len(t.Drives))
	enabled := 0

	for i, d := range t.Drives {
		if d.Name == "" {
			return fmt.Errorf("drive %d: name required", i)
		}
		if names[d.Name] {
			return fmt.Errorf("drive %q: duplicate name", d.Name)
		}
		names[d.Name] = true

		if d.Station < MinStation || d.Station > MaxStation {
			return fmt.Errorf("drive %q: station %d out of range %d-%d", d.Name, d.Station, MinStation, MaxStation)
		}
		if prev, used := stations[d.Station]; used {
			return fmt.Errorf("drive %q: station %d already used by %q", d.Name, d.Station, prev)
		}
		stations[d.Station] = d.Name

		if !d.Disabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("drives: every drive is disabled")
	}

	// ------------------------------------------------------------
	// OPTIONAL SURFACES (OPT-IN)
	// ------------------------------------------------------------

	if t.MQTT != nil {
		if t.MQTT.Broker == "" {
			return fmt.Errorf("mqtt: broker required")
		}
		if t.MQTT.QoS < 0 || t.MQTT.QoS > 2 {
			return fmt.Errorf("mqtt: qos %d out of range 0-2", t.MQTT.QoS)
		}
	}
	if t.HTTP != nil && t.HTTP.Listen == "" {
		return fmt.Errorf("http: listen address required")
	}

	return nil
}
