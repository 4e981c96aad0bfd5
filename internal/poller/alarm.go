// internal/poller/alarm.go
package poller

import "github.com/tamzrod/servo-telemetry/internal/drive"

// updateAlarm is the alarm step of a cycle. The drive latches its current
// alarm code in a dedicated register, but the register is only meaningful
// while the alarm output is set, so it is read on demand.
//
// One alarm episode produces at most one report. The episode ends when the
// alarm output drops; the same code raised again afterwards is a new
// episode and reports again.
func (p *Poller) updateAlarm() {
	if !p.tel.AlarmActive() {
		p.lastReported = drive.NoError
		return
	}
	ok := p.readGroup(drive.ErrorGroup, func(regs []uint16) {
		p.tel.ApplyErrorCode(regs)
		p.sig.ErrorCode.Set(int32(p.tel.ErrorCode))
	})
	if !ok {
		// Could not learn the code this cycle. No guessing, no report;
		// try again next cycle.
		return
	}
	code := p.tel.ErrorCode
	if code == p.lastReported {
		return
	}
	p.lastReported = code
	if code.Message() == "" {
		return
	}
	p.reporter.AlarmRaised(p.name, code)
}
