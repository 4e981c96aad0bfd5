// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/servo-telemetry/internal/drive"
)

// RegisterReader is the transport dependency of the engine. One value is
// bound to one drive's station address. Geometry in, words out.
type RegisterReader interface {
	ReadRegisters(start, count uint16) ([]uint16, error)
}

// Update is emitted after a drive's poll cycle. Telemetry is a copy;
// receivers own it.
type Update struct {
	Drive     string
	At        time.Time
	Telemetry drive.Telemetry
	Failures  uint32
}
