// internal/drive/telemetry_test.go
package drive

import "testing"

func TestApplySpeedIsSigned(t *testing.T) {
	var tel Telemetry

	tel.ApplySpeed([]uint16{100, 98, 2})
	if tel.CommandedSpeed != 100 || tel.FeedbackSpeed != 98 || tel.DeviationSpeed != 2 {
		t.Fatalf("speed = %v/%v/%v, want 100/98/2",
			tel.CommandedSpeed, tel.FeedbackSpeed, tel.DeviationSpeed)
	}

	// 0xFFFF is -1 RPM, not 65535.
	tel.ApplySpeed([]uint16{0xFFFF, 0xFF9C, 0})
	if tel.CommandedSpeed != -1 {
		t.Fatalf("commanded speed = %v, want -1", tel.CommandedSpeed)
	}
	if tel.FeedbackSpeed != -100 {
		t.Fatalf("feedback speed = %v, want -100", tel.FeedbackSpeed)
	}
	if tel.DeviationSpeed != 0 {
		t.Fatalf("deviation speed = %v, want 0", tel.DeviationSpeed)
	}
}

func TestApplyTorqueScalesTenths(t *testing.T) {
	var tel Telemetry

	tel.ApplyTorque([]uint16{55, 50, 5})
	if tel.CommandedTorque != 5.5 || tel.FeedbackTorque != 5.0 || tel.DeviationTorque != 0.5 {
		t.Fatalf("torque = %v/%v/%v, want 5.5/5/0.5",
			tel.CommandedTorque, tel.FeedbackTorque, tel.DeviationTorque)
	}
}

func TestApplyPowerIsUnscaled(t *testing.T) {
	var tel Telemetry

	tel.ApplyPower([]uint16{310, 42, 7, 20})
	if tel.DCBusVolt != 310 {
		t.Fatalf("dc bus volt = %v, want 310", tel.DCBusVolt)
	}
	if tel.TorqueLoad != 42 || tel.ResBraking != 7 || tel.TorqueOverload != 20 {
		t.Fatalf("load = %v/%v/%v, want 42/7/20",
			tel.TorqueLoad, tel.ResBraking, tel.TorqueOverload)
	}
}

func TestApplyDigitalIOBitOrder(t *testing.T) {
	var tel Telemetry

	// Bit 0 is line 0.
	tel.ApplyDigitalIO([]uint16{0b00000101, 0b000010})

	wantIn := [NumDigitalIn]bool{InServoEnabling: true, InClockwiseStrokeLimit: true}
	if tel.DigitalIn != wantIn {
		t.Fatalf("digital in = %v, want %v", tel.DigitalIn, wantIn)
	}
	wantOut := [NumDigitalOut]bool{OutActiveAlarm: true}
	if tel.DigitalOut != wantOut {
		t.Fatalf("digital out = %v, want %v", tel.DigitalOut, wantOut)
	}
	if !tel.AlarmActive() {
		t.Fatal("alarm output set but AlarmActive() = false")
	}

	tel.ApplyDigitalIO([]uint16{0, 0})
	if tel.AlarmActive() {
		t.Fatal("alarm output clear but AlarmActive() = true")
	}
}

func TestApplyDigitalIOIgnoresHighBits(t *testing.T) {
	var tel Telemetry

	tel.ApplyDigitalIO([]uint16{0xFF00, 0xFFC0})
	if tel.DigitalIn != [NumDigitalIn]bool{} {
		t.Fatalf("digital in = %v, want all clear", tel.DigitalIn)
	}
	if tel.DigitalOut != [NumDigitalOut]bool{} {
		t.Fatalf("digital out = %v, want all clear", tel.DigitalOut)
	}
}

func TestApplyErrorCode(t *testing.T) {
	var tel Telemetry

	tel.ApplyErrorCode([]uint16{11})
	if tel.ErrorCode != Overvoltage {
		t.Fatalf("error code = %d, want %d", tel.ErrorCode, Overvoltage)
	}
}
