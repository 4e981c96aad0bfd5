// internal/poller/signals.go
package poller

import (
	"fmt"

	"github.com/tamzrod/servo-telemetry/internal/drive"
	"github.com/tamzrod/servo-telemetry/internal/registry"
)

// Signal names follow the drive's factory default IO assignment. Each is
// registered as "<drive>.<name>".
var (
	digitalInNames = [drive.NumDigitalIn]string{
		"servo-enabling",
		"clear-alarm",
		"clockwise-stroke-limit",
		"anticlockwise-stroke-limit",
		"clear-deviation-counter",
		"pulse-prohibition",
		"torque-limit-switchover",
		"homing",
	}
	digitalOutNames = [drive.NumDigitalOut]string{
		"servo-ready",
		"active-alarm",
		"location-arrival",
		"brake",
		"zero-speed",
		"torque-limiting",
	}
)

// Signals holds the registry handles one poller writes through. The engine
// never sees the table once the handles exist.
type Signals struct {
	CommandedSpeed *registry.Float
	FeedbackSpeed  *registry.Float
	DeviationSpeed *registry.Float

	CommandedTorque *registry.Float
	FeedbackTorque  *registry.Float
	DeviationTorque *registry.Float

	DCBusVolt      *registry.Float
	TorqueLoad     *registry.Float
	ResBraking     *registry.Float
	TorqueOverload *registry.Float

	DigitalIn  [drive.NumDigitalIn]*registry.Bit
	DigitalOut [drive.NumDigitalOut]*registry.Bit

	ErrorCode    *registry.Int
	ModbusErrors *registry.Uint
}

// RegisterSignals allocates every slot of one drive in tbl.
func RegisterSignals(tbl *registry.Table, driveName string) (Signals, error) {
	var (
		sig Signals
		err error
	)
	float := func(name string) *registry.Float {
		if err != nil {
			return nil
		}
		var s *registry.Float
		s, err = tbl.Float(driveName + "." + name)
		return s
	}
	bit := func(name string) *registry.Bit {
		if err != nil {
			return nil
		}
		var s *registry.Bit
		s, err = tbl.Bit(driveName + "." + name)
		return s
	}

	sig.CommandedSpeed = float("commanded-speed")
	sig.FeedbackSpeed = float("feedback-speed")
	sig.DeviationSpeed = float("deviation-speed")
	sig.CommandedTorque = float("commanded-torque")
	sig.FeedbackTorque = float("feedback-torque")
	sig.DeviationTorque = float("deviation-torque")
	sig.DCBusVolt = float("dc-bus-volt")
	sig.TorqueLoad = float("torque-load")
	sig.ResBraking = float("res-braking")
	sig.TorqueOverload = float("torque-overload")
	for i, name := range digitalInNames {
		sig.DigitalIn[i] = bit(name)
	}
	for i, name := range digitalOutNames {
		sig.DigitalOut[i] = bit(name)
	}
	if err == nil {
		sig.ErrorCode, err = tbl.Int(driveName + ".error-code")
	}
	if err == nil {
		sig.ModbusErrors, err = tbl.Uint(driveName + ".modbus-errors")
	}
	if err != nil {
		return Signals{}, fmt.Errorf("poller: signals for %s: %w", driveName, err)
	}
	return sig, nil
}
