// internal/writer/types.go
package writer

import "github.com/tamzrod/f70-replicator/internal/poller"

// TargetEndpoint is one Modbus TCP memory receiving replicated readings.
type TargetEndpoint struct {
	Endpoint    string
	UnitID      uint8
	Address     uint16  // holding register base of the data block
	CoilAddress *uint16 // alarm coil base; nil = coils not replicated
}

// StatusPlan locates the device status block.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
}

// Plan is the fully-built write plan for the compressor.
type Plan struct {
	UnitID  string
	Targets []TargetEndpoint
	Status  *StatusPlan // nil = status block disabled
}

// Writer writes poll snapshots into targets.
type Writer interface {
	Write(res poller.PollResult) error
}
