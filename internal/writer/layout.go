// internal/writer/layout.go
package writer

import (
	"math"

	"github.com/tamzrod/f70-replicator/internal/poller"
	"github.com/tamzrod/f70-replicator/internal/protocol"
)

// Holding register offsets from TargetEndpoint.Address.
// Layout is protocol-locked.
const (
	RegTemperatures   = 0 // T1..T4, int16
	RegPressures      = 4 // P1..P2, int16
	RegStatusBits     = 6
	RegStateNumber    = 7
	RegConfiguration  = 8
	RegOperatingHours = 9 // hours x10, uint32, high word first

	DataRegisters = 11
)

// Coil offsets from TargetEndpoint.CoilAddress, in status mask order.
const (
	CoilSystem = iota
	CoilMotorTemperatureAlarm
	CoilPhaseSequenceAlarm
	CoilHeliumTemperatureAlarm
	CoilWaterTemperatureAlarm
	CoilWaterFlowAlarm
	CoilOilLevelAlarm
	CoilPressureAlarm
	CoilSolenoid
	CoilAnyAlarm

	AlarmCoils
)

// segment is one contiguous register run inside the data block.
type segment struct {
	offset uint16
	regs   []uint16
}

// encodeRegisters lays out the populated parts of res.
// Reads that were not performed leave their registers untouched.
func encodeRegisters(res poller.PollResult) []segment {
	var out []segment

	if t := res.Temperatures; t != nil {
		regs := make([]uint16, len(t))
		for i, v := range t {
			regs[i] = int16Reg(v)
		}
		out = append(out, segment{offset: RegTemperatures, regs: regs})
	}

	if p := res.Pressures; p != nil {
		regs := make([]uint16, len(p))
		for i, v := range p {
			regs[i] = int16Reg(v)
		}
		out = append(out, segment{offset: RegPressures, regs: regs})
	}

	if s := res.Status; s != nil {
		out = append(out, segment{offset: RegStatusBits, regs: []uint16{
			s.Raw,
			uint16(s.StateNumber),
			uint16(s.Configuration),
		}})
	}

	if id := res.ID; id != nil {
		tenths := hoursTenths(id.OperatingHours)
		out = append(out, segment{offset: RegOperatingHours, regs: []uint16{
			uint16(tenths >> 16),
			uint16(tenths),
		}})
	}

	return out
}

// encodeCoils expands the status word into the alarm coil block.
func encodeCoils(s protocol.StatusBits) []bool {
	coils := make([]bool, AlarmCoils)
	coils[CoilSystem] = s.System
	coils[CoilMotorTemperatureAlarm] = s.MotorTemperatureAlarm
	coils[CoilPhaseSequenceAlarm] = s.PhaseSequenceAlarm
	coils[CoilHeliumTemperatureAlarm] = s.HeliumTemperatureAlarm
	coils[CoilWaterTemperatureAlarm] = s.WaterTemperatureAlarm
	coils[CoilWaterFlowAlarm] = s.WaterFlowAlarm
	coils[CoilOilLevelAlarm] = s.OilLevelAlarm
	coils[CoilPressureAlarm] = s.PressureAlarm
	coils[CoilSolenoid] = s.Solenoid
	coils[CoilAnyAlarm] = s.HasAlarm()
	return coils
}

// int16Reg stores v as two's complement, saturating at the int16 range.
func int16Reg(v int) uint16 {
	switch {
	case v > math.MaxInt16:
		v = math.MaxInt16
	case v < math.MinInt16:
		v = math.MinInt16
	}
	return uint16(int16(v))
}

func hoursTenths(h float64) uint32 {
	t := math.Round(h * 10)
	switch {
	case t <= 0 || math.IsNaN(t):
		return 0
	case t >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(t)
}
