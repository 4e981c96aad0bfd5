// internal/poller/modbus/session.go

// Package modbus adapts the goburrow RTU client to the engine's reader
// contract. One session per drive. Sessions sharing a serial device must
// be used from a single goroutine.
package modbus

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/goburrow/modbus"
)

// Serial framing fixed by the drive: 8 data bits, even parity, 1 stop bit.
const (
	dataBits = 8
	parity   = "E"
	stopBits = 1
)

// MaxReadRegisters is the protocol ceiling for one block read.
const MaxReadRegisters = 125

// Config is one drive's serial binding.
type Config struct {
	Device  string // serial device path, e.g. /dev/ttyUSB0
	Baud    int
	Station byte          // station address on the bus
	Timeout time.Duration // per-request response timeout
	Trace   *log.Logger   // optional wire trace
}

// Session is an open RTU connection bound to one station address.
type Session struct {
	handler *modbus.RTUClientHandler
	client  modbus.Client
}

// Open configures and connects the serial port. The session must be closed.
func Open(cfg Config) (*Session, error) {
	if cfg.Device == "" {
		return nil, errors.New("modbus: serial device required")
	}

	h := modbus.NewRTUClientHandler(cfg.Device)
	h.BaudRate = cfg.Baud
	h.DataBits = dataBits
	h.Parity = parity
	h.StopBits = stopBits
	h.SlaveId = cfg.Station
	h.Timeout = cfg.Timeout
	if cfg.Trace != nil {
		h.Logger = cfg.Trace
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus: connect %s: %w", cfg.Device, err)
	}
	return &Session{handler: h, client: modbus.NewClient(h)}, nil
}

// ReadRegisters reads count holding registers starting at start.
func (s *Session) ReadRegisters(start, count uint16) ([]uint16, error) {
	if count < 1 || count > MaxReadRegisters {
		return nil, fmt.Errorf("modbus: read of %d registers out of range", count)
	}
	raw, err := s.client.ReadHoldingRegisters(start, count)
	if err != nil {
		return nil, err
	}
	if len(raw) != int(count)*2 {
		return nil, fmt.Errorf("modbus: short response: %d bytes for %d registers", len(raw), count)
	}
	return unpackRegisters(raw), nil
}

// WriteRegister writes one holding register. The telemetry path never
// calls this; it exists for commissioning tools built on the same session.
func (s *Session) WriteRegister(addr, value uint16) error {
	if _, err := s.client.WriteSingleRegister(addr, value); err != nil {
		return fmt.Errorf("modbus: write register %d: %w", addr, err)
	}
	return nil
}

// Close releases the serial port.
func (s *Session) Close() error {
	return s.handler.Close()
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
