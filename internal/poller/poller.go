// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tamzrod/servo-telemetry/internal/drive"
)

// readAttempts is the ceiling of read attempts for one register group
// within one cycle. After the last failure the group is skipped until the
// next cycle and its snapshot fields keep their previous values.
const readAttempts = 5

// Poller runs the acquisition cycle of one drive. It owns the drive's
// telemetry snapshot and its alarm episode state. Not safe for concurrent
// use; the runner calls it from a single goroutine.
type Poller struct {
	name     string
	reader   RegisterReader
	sig      Signals
	reporter Reporter
	log      zerolog.Logger

	tel          drive.Telemetry
	lastReported drive.ErrorCode
}

// New creates a poller with immutable wiring.
func New(name string, reader RegisterReader, sig Signals, reporter Reporter, logger zerolog.Logger) (*Poller, error) {
	if name == "" {
		return nil, errors.New("poller: drive name required")
	}
	if reader == nil {
		return nil, errors.New("poller: register reader required")
	}
	if sig.ModbusErrors == nil {
		return nil, errors.New("poller: signals not registered")
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Poller{
		name:     name,
		reader:   reader,
		sig:      sig,
		reporter: reporter,
		log:      logger.With().Str("drive", name).Logger(),
	}, nil
}

// Name returns the drive name.
func (p *Poller) Name() string { return p.name }

// Telemetry returns a copy of the current snapshot.
func (p *Poller) Telemetry() drive.Telemetry { return p.tel }

// Failures returns the failure counter value.
func (p *Poller) Failures() uint32 { return p.sig.ModbusErrors.Get() }

// PollOnce performs exactly one acquisition cycle: every telemetry group in
// order, then the alarm step. A group that exhausts its attempts is left
// stale; the cycle always runs to the end.
func (p *Poller) PollOnce() {
	p.readGroup(drive.SpeedGroup, func(regs []uint16) {
		p.tel.ApplySpeed(regs)
		p.publishSpeed()
	})
	p.readGroup(drive.TorqueGroup, func(regs []uint16) {
		p.tel.ApplyTorque(regs)
		p.publishTorque()
	})
	p.readGroup(drive.PowerGroup, func(regs []uint16) {
		p.tel.ApplyPower(regs)
		p.publishPower()
	})
	p.readGroup(drive.DigitalGroup, func(regs []uint16) {
		p.tel.ApplyDigitalIO(regs)
		p.publishDigitalIO()
	})
	p.updateAlarm()
}

// readGroup fetches g with bounded retry. Every failed attempt bumps the
// failure counter. Reports whether apply ran.
func (p *Poller) readGroup(g drive.Group, apply func([]uint16)) bool {
	for attempt := 1; attempt <= readAttempts; attempt++ {
		regs, err := p.reader.ReadRegisters(g.Start, g.Count)
		if err == nil && len(regs) == int(g.Count) {
			apply(regs)
			return true
		}
		p.sig.ModbusErrors.Add(1)
		if err == nil {
			err = fmt.Errorf("short read: %d of %d registers", len(regs), g.Count)
		}
		p.log.Debug().Str("group", g.Name).Int("attempt", attempt).Err(err).Msg("read failed")
	}
	p.log.Warn().Str("group", g.Name).Msg("group skipped, keeping previous values")
	return false
}

func (p *Poller) publishSpeed() {
	p.sig.CommandedSpeed.Set(p.tel.CommandedSpeed)
	p.sig.FeedbackSpeed.Set(p.tel.FeedbackSpeed)
	p.sig.DeviationSpeed.Set(p.tel.DeviationSpeed)
}

func (p *Poller) publishTorque() {
	p.sig.CommandedTorque.Set(p.tel.CommandedTorque)
	p.sig.FeedbackTorque.Set(p.tel.FeedbackTorque)
	p.sig.DeviationTorque.Set(p.tel.DeviationTorque)
}

func (p *Poller) publishPower() {
	p.sig.DCBusVolt.Set(p.tel.DCBusVolt)
	p.sig.TorqueLoad.Set(p.tel.TorqueLoad)
	p.sig.ResBraking.Set(p.tel.ResBraking)
	p.sig.TorqueOverload.Set(p.tel.TorqueOverload)
}

func (p *Poller) publishDigitalIO() {
	for i, s := range p.sig.DigitalIn {
		s.Set(p.tel.DigitalIn[i])
	}
	for i, s := range p.sig.DigitalOut {
		s.Set(p.tel.DigitalOut[i])
	}
}
