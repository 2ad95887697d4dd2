// internal/poller/types.go
package poller

import (
	"fmt"
	"strings"
	"time"

	"github.com/tamzrod/f70-replicator/internal/protocol"
)

// ReadKind names one compressor query performed per cycle.
type ReadKind string

const (
	ReadTemperatures ReadKind = "temperatures" // $TEA
	ReadPressures    ReadKind = "pressures"    // $PRA
	ReadStatus       ReadKind = "status"       // $STA
	ReadID           ReadKind = "id"           // $ID1
)

// ParseReadKind accepts the config spelling of a read.
func ParseReadKind(s string) (ReadKind, error) {
	k := ReadKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case ReadTemperatures, ReadPressures, ReadStatus, ReadID:
		return k, nil
	}
	return "", fmt.Errorf("poller: unknown read %q", s)
}

// PollResult is a snapshot produced by one poll cycle.
// Only the reads configured for the poller are populated.
type PollResult struct {
	UnitID string    `json:"unit_id"`
	At     time.Time `json:"at"`

	Temperatures *[protocol.TemperatureChannels]int `json:"temperatures,omitempty"`
	Pressures    *[protocol.PressureChannels]int    `json:"pressures,omitempty"`
	Status       *protocol.StatusBits               `json:"status,omitempty"`
	ID           *protocol.Identification           `json:"id,omitempty"`

	Err error `json:"-"` // non-nil means the poll cycle failed
}

// OK reports whether the cycle succeeded.
func (r PollResult) OK() bool {
	return r.Err == nil
}
