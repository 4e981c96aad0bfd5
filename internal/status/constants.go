// internal/status/constants.go
package status

// ---- HEALTH STATES ----

// Health is the derived state of one polled drive.
type Health uint8

// HealthUnknown represents a drive no poll cycle has reached yet.
const HealthUnknown Health = 0

// HealthOK represents a polled drive with no active alarm.
const HealthOK Health = 1

// HealthAlarm represents a drive whose alarm output is set.
const HealthAlarm Health = 2

// HealthStale represents a drive whose updates stopped arriving.
const HealthStale Health = 3

// HealthDisabled represents a drive that is configured but not polled.
const HealthDisabled Health = 4

var healthNames = map[Health]string{
	HealthUnknown:  "unknown",
	HealthOK:       "ok",
	HealthAlarm:    "alarm",
	HealthStale:    "stale",
	HealthDisabled: "disabled",
}

func (h Health) String() string {
	if name, ok := healthNames[h]; ok {
		return name
	}
	return "invalid"
}

// MarshalText makes Health render as its name in JSON.
func (h Health) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}
