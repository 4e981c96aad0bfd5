// internal/registry/registry.go

// Package registry is the process-wide table of named telemetry signals.
// Slots are registered once at startup and written by the poll loop;
// readers on other goroutines always see a complete value.
package registry

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
)

// Float is a float64 output slot.
type Float struct{ bits atomic.Uint64 }

func (f *Float) Set(v float64) { f.bits.Store(math.Float64bits(v)) }
func (f *Float) Get() float64  { return math.Float64frombits(f.bits.Load()) }

// Bit is a boolean output slot.
type Bit struct{ v atomic.Bool }

func (b *Bit) Set(v bool) { b.v.Store(v) }
func (b *Bit) Get() bool  { return b.v.Load() }

// Int is a signed 32-bit output slot.
type Int struct{ v atomic.Int32 }

func (i *Int) Set(v int32) { i.v.Store(v) }
func (i *Int) Get() int32  { return i.v.Load() }

// Uint is an unsigned 32-bit output slot. Add makes it usable as a
// monotonic counter.
type Uint struct{ v atomic.Uint32 }

func (u *Uint) Set(v uint32)        { u.v.Store(v) }
func (u *Uint) Add(n uint32) uint32 { return u.v.Add(n) }
func (u *Uint) Get() uint32         { return u.v.Load() }

type slot interface{ value() any }

func (f *Float) value() any { return f.Get() }
func (b *Bit) value() any   { return b.Get() }
func (i *Int) value() any   { return i.Get() }
func (u *Uint) value() any  { return u.Get() }

// Table maps fully qualified signal names ("<device>.<signal>") to slots.
// Registration happens during startup; the poll loop and the HTTP surface
// only read the map afterwards.
type Table struct {
	mu    sync.RWMutex
	slots map[string]slot
}

// New creates an empty table.
func New() *Table {
	return &Table{slots: make(map[string]slot)}
}

func (t *Table) register(name string, s slot) error {
	if name == "" {
		return errors.New("registry: signal name required")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dup := t.slots[name]; dup {
		return fmt.Errorf("registry: duplicate signal %q", name)
	}
	t.slots[name] = s
	return nil
}

// Float registers a float slot under name.
func (t *Table) Float(name string) (*Float, error) {
	s := &Float{}
	if err := t.register(name, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Bit registers a boolean slot under name.
func (t *Table) Bit(name string) (*Bit, error) {
	s := &Bit{}
	if err := t.register(name, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Int registers a signed slot under name.
func (t *Table) Int(name string) (*Int, error) {
	s := &Int{}
	if err := t.register(name, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Uint registers an unsigned slot under name.
func (t *Table) Uint(name string) (*Uint, error) {
	s := &Uint{}
	if err := t.register(name, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current value of every slot keyed by full name.
func (t *Table) Snapshot() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]any, len(t.slots))
	for name, s := range t.slots {
		out[name] = s.value()
	}
	return out
}

// Prefixed returns the values of the slots under "<prefix>." keyed by the
// bare signal name.
func (t *Table) Prefixed(prefix string) map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p := prefix + "."
	out := make(map[string]any)
	for name, s := range t.slots {
		if strings.HasPrefix(name, p) {
			out[strings.TrimPrefix(name, p)] = s.value()
		}
	}
	return out
}
