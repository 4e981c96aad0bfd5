// internal/poller/builder.go
package poller

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"

	cfg "github.com/tamzrod/servo-telemetry/internal/config"
	pmodbus "github.com/tamzrod/servo-telemetry/internal/poller/modbus"
	"github.com/tamzrod/servo-telemetry/internal/registry"
)

// Build opens the drive's transport session, registers its signals and
// wires the engine. Fail fast at startup: any error here means the drive
// cannot be polled at all. The returned closer releases the serial port.
func Build(d cfg.DriveConfig, serial cfg.SerialConfig, tbl *registry.Table, rep Reporter, logger zerolog.Logger) (*Poller, func() error, error) {
	// wire trace: ONE stdlib logger per session, the transport requires it
	var trace *log.Logger
	if serial.Verbose {
		trace = log.New(os.Stderr, fmt.Sprintf("modbus %s: ", d.Name), log.LstdFlags)
	}

	sess, err := pmodbus.Open(pmodbus.Config{
		Device:  serial.Device,
		Baud:    serial.BaudRate,
		Station: byte(d.Station),
		Timeout: time.Duration(serial.TimeoutMs) * time.Millisecond,
		Trace:   trace,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("poller: session for %s: %w", d.Name, err)
	}

	sig, err := RegisterSignals(tbl, d.Name)
	if err != nil {
		sess.Close()
		return nil, nil, err
	}

	p, err := New(d.Name, sess, sig, rep, logger)
	if err != nil {
		sess.Close()
		return nil, nil, err
	}
	return p, sess.Close, nil
}
