// internal/status/board.go

// Package status tracks per-drive health for the read-only status surface.
// The poll loop reports updates; readers get derived snapshots.
package status

import (
	"sync"
	"time"

	"github.com/tamzrod/servo-telemetry/internal/drive"
)

// Board aggregates drive states. Safe for concurrent use.
type Board struct {
	mu         sync.RWMutex
	drives     map[string]*state
	order      []string
	staleAfter time.Duration
	now        func() time.Time
}

type state struct {
	disabled   bool
	polled     bool
	alarm      bool
	code       drive.ErrorCode
	failures   uint32
	lastUpdate time.Time
	alarmSince time.Time
}

// NewBoard creates a Board. Drives with no update for staleAfter are
// reported stale; zero disables stale detection.
func NewBoard(staleAfter time.Duration) *Board {
	return &Board{
		drives:     make(map[string]*state),
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Register adds a drive in the unknown state. Registration order is the
// order snapshots come back in.
func (b *Board) Register(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.drives[name]; exists {
		return
	}
	b.drives[name] = &state{}
	b.order = append(b.order, name)
}

// RegisterDisabled adds a drive that is configured but never polled.
func (b *Board) RegisterDisabled(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.drives[name]; exists {
		return
	}
	b.drives[name] = &state{disabled: true}
	b.order = append(b.order, name)
}

// Update records the outcome of one poll cycle. Unknown and disabled
// drives are ignored.
func (b *Board) Update(name string, alarm bool, code drive.ErrorCode, failures uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	st, ok := b.drives[name]
	if !ok || st.disabled {
		return
	}
	now := b.now()
	if alarm && !st.alarm {
		st.alarmSince = now
	}
	st.polled = true
	st.alarm = alarm
	st.code = code
	st.failures = failures
	st.lastUpdate = now
}

// Snapshot returns one drive's derived state.
func (b *Board) Snapshot(name string) (Snapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	st, ok := b.drives[name]
	if !ok {
		return Snapshot{}, false
	}
	return b.derive(name, st), true
}

// All returns every drive in registration order.
func (b *Board) All() []Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Snapshot, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.derive(name, b.drives[name]))
	}
	return out
}

// derive runs with the lock held.
func (b *Board) derive(name string, st *state) Snapshot {
	s := Snapshot{
		Drive:      name,
		ErrorCode:  uint16(st.code),
		Failures:   st.failures,
		LastUpdate: st.lastUpdate,
	}
	now := b.now()
	switch {
	case st.disabled:
		s.Health = HealthDisabled
	case !st.polled:
		s.Health = HealthUnknown
	case b.staleAfter > 0 && now.Sub(st.lastUpdate) > b.staleAfter:
		s.Health = HealthStale
	case st.alarm:
		s.Health = HealthAlarm
		s.Message = st.code.Message()
		s.SecondsInAlarm = int64(now.Sub(st.alarmSince).Seconds())
	default:
		s.Health = HealthOK
	}
	return s
}
