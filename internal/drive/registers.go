// internal/drive/registers.go

// Package drive holds the register layout and decoding rules of the
// Lichuan A4 servo drive. Addresses and scaling define the device
// protocol and MUST NOT be configurable.
package drive

// ---- BLOCK GEOMETRY ----

// The telemetry area is read as small groups so one lost block does not
// poison the rest of the cycle.

const (
	speedStart uint16 = 448 // commanded, feedback, deviation speed
	speedCount uint16 = 3

	torqueStart uint16 = 451 // commanded, feedback, deviation torque
	torqueCount uint16 = 3

	powerStart uint16 = 457 // DC bus volt, torque load, res braking, torque overload
	powerCount uint16 = 4

	errorStart uint16 = 461 // current alarm code
	errorCount uint16 = 1

	ioStart uint16 = 466 // word 0 input lines, word 1 output lines
	ioCount uint16 = 2
)

// Group is one block of holding registers fetched in a single request.
type Group struct {
	Name  string
	Start uint16
	Count uint16
}

var (
	SpeedGroup   = Group{Name: "speed", Start: speedStart, Count: speedCount}
	TorqueGroup  = Group{Name: "torque", Start: torqueStart, Count: torqueCount}
	PowerGroup   = Group{Name: "power", Start: powerStart, Count: powerCount}
	ErrorGroup   = Group{Name: "error-code", Start: errorStart, Count: errorCount}
	DigitalGroup = Group{Name: "digital-io", Start: ioStart, Count: ioCount}
)

// ---- DIGITAL LINES ----

// Digital input lines, factory default assignment.
const (
	InServoEnabling = iota
	InClearAlarm
	InClockwiseStrokeLimit
	InAnticlockwiseStrokeLimit
	InClearDeviationCounter
	InPulseProhibition
	InTorqueLimitSwitchover
	InHoming

	NumDigitalIn = 8
)

// Digital output lines, factory default assignment.
const (
	OutServoReady = iota
	OutActiveAlarm
	OutLocationArrival
	OutBrake
	OutZeroSpeed
	OutTorqueLimiting

	NumDigitalOut = 6
)
