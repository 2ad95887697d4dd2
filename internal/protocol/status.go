// internal/protocol/status.go
package protocol

// Status bit masks as reported by $STA.
const (
	MaskConfiguration          uint16 = 0x8000
	MaskState                  uint16 = 0x0E00
	MaskSolenoid               uint16 = 0x0100
	MaskPressureAlarm          uint16 = 0x0080
	MaskOilLevelAlarm          uint16 = 0x0040
	MaskWaterFlowAlarm         uint16 = 0x0020
	MaskWaterTemperatureAlarm  uint16 = 0x0010
	MaskHeliumTemperatureAlarm uint16 = 0x0008
	MaskPhaseSequenceAlarm     uint16 = 0x0004
	MaskMotorTemperatureAlarm  uint16 = 0x0002
	MaskSystem                 uint16 = 0x0001

	stateShift = 9
)

// State is the 3-bit operating state code held in bits 9-11.
type State uint8

const (
	StateLocalOff State = iota
	StateLocalOn
	StateRemoteOff
	StateRemoteOn
	StateColdHeadRun
	StateColdHeadPause
	StateFaultOff
	StateOilFaultOff
)

var stateNames = [...]string{
	"local off",
	"local on",
	"remote off",
	"remote on",
	"cold head run",
	"cold head pause",
	"fault off",
	"oil fault off",
}

func (s State) String() string {
	return stateNames[s&0x07]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatusBits is the decoded form of the $STA bitmap.
type StatusBits struct {
	Raw uint16 `json:"raw"`

	// Configuration is 1 or 2.
	Configuration int `json:"configuration"`

	Solenoid               bool `json:"solenoid"`
	PressureAlarm          bool `json:"pressure_alarm"`
	OilLevelAlarm          bool `json:"oil_level_alarm"`
	WaterFlowAlarm         bool `json:"water_flow_alarm"`
	WaterTemperatureAlarm  bool `json:"water_temperature_alarm"`
	HeliumTemperatureAlarm bool `json:"helium_temperature_alarm"`
	PhaseSequenceAlarm     bool `json:"phase_sequence_alarm"`
	MotorTemperatureAlarm  bool `json:"motor_temperature_alarm"`
	System                 bool `json:"system"`

	StateNumber uint8 `json:"state_number"`
	State       State `json:"state"`
}

// DecodeStatus splits a raw status word into its named flags.
func DecodeStatus(bits uint16) StatusBits {
	configuration := 1
	if bits&MaskConfiguration != 0 {
		configuration = 2
	}

	stateNumber := uint8((bits & MaskState) >> stateShift)

	return StatusBits{
		Raw:                    bits,
		Configuration:          configuration,
		Solenoid:               bits&MaskSolenoid != 0,
		PressureAlarm:          bits&MaskPressureAlarm != 0,
		OilLevelAlarm:          bits&MaskOilLevelAlarm != 0,
		WaterFlowAlarm:         bits&MaskWaterFlowAlarm != 0,
		WaterTemperatureAlarm:  bits&MaskWaterTemperatureAlarm != 0,
		HeliumTemperatureAlarm: bits&MaskHeliumTemperatureAlarm != 0,
		PhaseSequenceAlarm:     bits&MaskPhaseSequenceAlarm != 0,
		MotorTemperatureAlarm:  bits&MaskMotorTemperatureAlarm != 0,
		System:                 bits&MaskSystem != 0,
		StateNumber:            stateNumber,
		State:                  State(stateNumber),
	}
}

// Alarms returns the names of the active alarm flags, highest bit first.
func (s StatusBits) Alarms() []string {
	var out []string
	for _, a := range s.alarmFlags() {
		if a.on {
			out = append(out, a.name)
		}
	}
	return out
}

// HasAlarm reports whether any alarm flag is set.
func (s StatusBits) HasAlarm() bool {
	return len(s.Alarms()) > 0
}

// AlarmNames lists every alarm flag name in the order Alarms reports them.
func AlarmNames() []string {
	flags := StatusBits{}.alarmFlags()
	out := make([]string, len(flags))
	for i, a := range flags {
		out[i] = a.name
	}
	return out
}

type alarmFlag struct {
	name string
	on   bool
}

func (s StatusBits) alarmFlags() []alarmFlag {
	return []alarmFlag{
		{"pressure_alarm", s.PressureAlarm},
		{"oil_level_alarm", s.OilLevelAlarm},
		{"water_flow_alarm", s.WaterFlowAlarm},
		{"water_temperature_alarm", s.WaterTemperatureAlarm},
		{"helium_temperature_alarm", s.HeliumTemperatureAlarm},
		{"phase_sequence_alarm", s.PhaseSequenceAlarm},
		{"motor_temperature_alarm", s.MotorTemperatureAlarm},
	}
}
