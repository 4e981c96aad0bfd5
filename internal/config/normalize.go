// internal/config/normalize.go
package config

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	t := &cfg.Telemetry

	// ------------------------------------------------------------
	// SERIAL DEFAULTS
	// ------------------------------------------------------------

	if t.Serial.TimeoutMs == 0 {
		t.Serial.TimeoutMs = DefaultTimeoutMs
	}

	// ------------------------------------------------------------
	// POLL INTERVAL CLAMP
	// ------------------------------------------------------------

	// Zero means unset. Other values are clamped, not rejected, so a
	// too-eager interval degrades to the fastest supported cycle.
	if t.Poll.IntervalMs <= 0 {
		t.Poll.IntervalMs = DefaultIntervalMs
	}
	if t.Poll.IntervalMs < MinIntervalMs {
		t.Poll.IntervalMs = MinIntervalMs
	}
	if t.Poll.IntervalMs > MaxIntervalMs {
		t.Poll.IntervalMs = MaxIntervalMs
	}

	// ------------------------------------------------------------
	// MQTT DEFAULTS (OPT-IN)
	// ------------------------------------------------------------

	if t.MQTT != nil {
		if t.MQTT.TopicPrefix == "" {
			t.MQTT.TopicPrefix = "servo"
		}
		if t.MQTT.KeepAliveSec <= 0 {
			t.MQTT.KeepAliveSec = 60
		}
		// ClientID stays empty here; the publisher generates a random
		// one so two instances never collide on the broker.
	}
}
