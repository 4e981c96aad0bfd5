// internal/poller/reporter.go
package poller

import (
	"github.com/rs/zerolog"

	"github.com/tamzrod/servo-telemetry/internal/drive"
)

// Reporter receives one notification per alarm episode.
type Reporter interface {
	AlarmRaised(driveName string, code drive.ErrorCode)
}

// NopReporter discards alarm notifications.
type NopReporter struct{}

func (NopReporter) AlarmRaised(string, drive.ErrorCode) {}

// LogReporter writes alarm reports to the service log.
type LogReporter struct {
	Log zerolog.Logger
}

func (r LogReporter) AlarmRaised(driveName string, code drive.ErrorCode) {
	r.Log.Error().
		Str("drive", driveName).
		Uint16("code", uint16(code)).
		Msg(code.Message())
}

// Reporters fans one notification out to every member.
type Reporters []Reporter

func (rs Reporters) AlarmRaised(driveName string, code drive.ErrorCode) {
	for _, r := range rs {
		r.AlarmRaised(driveName, code)
	}
}
