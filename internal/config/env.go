// internal/config/env.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// envOverrides keep secrets and host specifics out of config files. They
// apply after the file and before flags.
type envOverrides struct {
	Device       string `env:"SERVOTEL_SERIAL_DEVICE"`
	MQTTUsername string `env:"SERVOTEL_MQTT_USERNAME"`
	MQTTPassword string `env:"SERVOTEL_MQTT_PASSWORD"`
}

// ApplyEnv overlays recognized environment variables onto cfg. MQTT
// credentials are ignored unless the mirror is configured.
func ApplyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	if o.Device != "" {
		cfg.Telemetry.Serial.Device = o.Device
	}
	if cfg.Telemetry.MQTT != nil {
		if o.MQTTUsername != "" {
			cfg.Telemetry.MQTT.Username = o.MQTTUsername
		}
		if o.MQTTPassword != "" {
			cfg.Telemetry.MQTT.Password = o.MQTTPassword
		}
	}
	return nil
}
