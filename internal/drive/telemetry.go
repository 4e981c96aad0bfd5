// internal/drive/telemetry.go
package drive

// Telemetry is the decoded state of one drive. Each Apply method overwrites
// the fields of its own group only; a failed read leaves the previous
// values in place.
type Telemetry struct {
	CommandedSpeed float64 // RPM
	FeedbackSpeed  float64 // RPM
	DeviationSpeed float64 // RPM

	CommandedTorque float64 // percent of rated torque
	FeedbackTorque  float64 // percent of rated torque
	DeviationTorque float64 // percent of rated torque

	DCBusVolt      float64 // V
	TorqueLoad     float64 // percent
	ResBraking     float64 // percent
	TorqueOverload float64 // percent

	DigitalIn  [NumDigitalIn]bool
	DigitalOut [NumDigitalOut]bool

	ErrorCode ErrorCode
}

// ApplySpeed decodes the speed group. Words are signed 16-bit RPM.
func (t *Telemetry) ApplySpeed(regs []uint16) {
	t.CommandedSpeed = float64(int16(regs[0]))
	t.FeedbackSpeed = float64(int16(regs[1]))
	t.DeviationSpeed = float64(int16(regs[2]))
}

// ApplyTorque decodes the torque group. Words are unsigned tenths of a
// percent.
func (t *Telemetry) ApplyTorque(regs []uint16) {
	t.CommandedTorque = float64(regs[0]) / 10.0
	t.FeedbackTorque = float64(regs[1]) / 10.0
	t.DeviationTorque = float64(regs[2]) / 10.0
}

// ApplyPower decodes the power group: DC bus voltage and the load ratios,
// unsigned, no scaling.
func (t *Telemetry) ApplyPower(regs []uint16) {
	t.DCBusVolt = float64(regs[0])
	t.TorqueLoad = float64(regs[1])
	t.ResBraking = float64(regs[2])
	t.TorqueOverload = float64(regs[3])
}

// ApplyDigitalIO decodes the IO group. Bit 0 of each word is line 0.
func (t *Telemetry) ApplyDigitalIO(regs []uint16) {
	for i := 0; i < NumDigitalIn; i++ {
		t.DigitalIn[i] = regs[0]&(1<<i) != 0
	}
	for i := 0; i < NumDigitalOut; i++ {
		t.DigitalOut[i] = regs[1]&(1<<i) != 0
	}
}

// ApplyErrorCode records the alarm code register.
func (t *Telemetry) ApplyErrorCode(regs []uint16) {
	t.ErrorCode = ErrorCode(regs[0])
}

// AlarmActive reports whether the drive's alarm output line is set.
func (t *Telemetry) AlarmActive() bool {
	return t.DigitalOut[OutActiveAlarm]
}
