// internal/drive/errorcode.go
package drive

// ErrorCode is an alarm code as read from the error register. The code
// space is sparse; gaps between listed values are reserved by the drive
// firmware.
type ErrorCode uint16

const (
	NoError                    ErrorCode = 0
	SystemError                ErrorCode = 1
	DIConfigurationError       ErrorCode = 2
	CommunicationError         ErrorCode = 3
	ControlPowerOff            ErrorCode = 4
	FPGAInternalError          ErrorCode = 5
	ZeroingTimeout             ErrorCode = 6
	Overvoltage                ErrorCode = 11
	Undervoltage               ErrorCode = 12
	OvercurrentAndGrounding    ErrorCode = 13
	Overheating                ErrorCode = 14
	ExcessiveLoad              ErrorCode = 15
	RegenerativeOverload       ErrorCode = 16
	EncoderError               ErrorCode = 20
	ExcessivePositionDeviation ErrorCode = 24
	Overspeed                  ErrorCode = 26
	CommandPulseDivision       ErrorCode = 27
	DeviationCounterOverflow   ErrorCode = 29
	EEPROMParameterError       ErrorCode = 36
	StrokeLimitInput           ErrorCode = 38
	AnalogCommandOvervoltage   ErrorCode = 39
)

var errorMessages = map[ErrorCode]string{
	NoError:                    "",
	SystemError:                "system error",
	DIConfigurationError:       "DI configuration error",
	CommunicationError:         "communication error",
	ControlPowerOff:            "control power is off",
	FPGAInternalError:          "FPGA internal error",
	ZeroingTimeout:             "zeroing timeout",
	Overvoltage:                "overvoltage",
	Undervoltage:               "undervoltage",
	OvercurrentAndGrounding:    "overcurrent and grounding errors",
	Overheating:                "over heating",
	ExcessiveLoad:              "excessive load",
	RegenerativeOverload:       "regenerative discharge resistance overload",
	EncoderError:               "encoder error",
	ExcessivePositionDeviation: "excessive position deviation",
	Overspeed:                  "overspeed",
	CommandPulseDivision:       "command pulse division frequency",
	DeviationCounterOverflow:   "deviation counter overflow",
	EEPROMParameterError:       "EEPROM parameter error",
	StrokeLimitInput:           "stroke limit input signal",
	AnalogCommandOvervoltage:   "analog command overvoltage",
}

// Message returns the alarm text for the code. NoError maps to the empty
// string; codes missing from the table report as unknown.
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "unknown error code"
}
