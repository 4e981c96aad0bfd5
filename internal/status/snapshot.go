// internal/status/snapshot.go
package status

import "time"

// Snapshot represents exactly what the status surface is allowed to show.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Drive          string    `json:"drive"`
	Health         Health    `json:"health"`
	ErrorCode      uint16    `json:"error_code"`
	Message        string    `json:"message,omitempty"`
	Failures       uint32    `json:"failures"`
	LastUpdate     time.Time `json:"last_update"`
	SecondsInAlarm int64     `json:"seconds_in_alarm,omitempty"`
}
