// internal/config/env_test.go
package config

import "testing"

func TestApplyEnv_DeviceOverride(t *testing.T) {
	t.Setenv("SERVOTEL_SERIAL_DEVICE", "/dev/ttyS7")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telemetry.Serial.Device != "/dev/ttyS7" {
		t.Fatalf("device = %q, want /dev/ttyS7", cfg.Telemetry.Serial.Device)
	}
}

func TestApplyEnv_MQTTCredentials(t *testing.T) {
	t.Setenv("SERVOTEL_MQTT_USERNAME", "svc")
	t.Setenv("SERVOTEL_MQTT_PASSWORD", "secret")

	cfg := Default()
	cfg.Telemetry.MQTT = &MQTTConfig{Broker: "tcp://broker:1883"}
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telemetry.MQTT.Username != "svc" || cfg.Telemetry.MQTT.Password != "secret" {
		t.Fatalf("credentials not applied: %+v", cfg.Telemetry.MQTT)
	}
}

func TestApplyEnv_CredentialsIgnoredWithoutMQTT(t *testing.T) {
	t.Setenv("SERVOTEL_MQTT_USERNAME", "svc")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telemetry.MQTT != nil {
		t.Fatalf("mqtt enabled by env alone")
	}
}

func TestApplyEnv_NoVariablesIsNoop(t *testing.T) {
	t.Setenv("SERVOTEL_SERIAL_DEVICE", "")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telemetry.Serial.Device != DefaultDevice {
		t.Fatalf("device changed without env: %q", cfg.Telemetry.Serial.Device)
	}
}
