// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/f70-replicator/internal/poller"
)

// endpointClient is the exact contract the writer uses.
// IMPORTANT: There must be NO other version of this interface anywhere.
type endpointClient interface {
	WriteCoils(unitID uint8, addr uint16, bits []bool) error
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

type modbusWriter struct {
	plan    Plan
	clients map[string]endpointClient
}

func New(plan Plan, clients map[string]endpointClient) Writer {
	return &modbusWriter{
		plan:    plan,
		clients: clients,
	}
}

// Write delivers one successful poll to every target.
// Failed polls are not written: targets keep the last good values and the
// status block carries the failure.
func (w *modbusWriter) Write(res poller.PollResult) error {
	if res.Err != nil {
		return nil
	}

	segments := encodeRegisters(res)

	var coils []bool
	if res.Status != nil {
		coils = encodeCoils(*res.Status)
	}

	var errs []string

	for _, tgt := range w.plan.Targets {
		cli := w.clients[tgt.Endpoint]
		if cli == nil {
			errs = append(errs, fmt.Sprintf(
				"writer: missing client for endpoint %s",
				tgt.Endpoint,
			))
			continue
		}

		for _, seg := range segments {
			dstAddr := tgt.Address + seg.offset
			if err := cli.WriteRegisters(tgt.UnitID, dstAddr, seg.regs); err != nil {
				errs = append(errs, fmt.Sprintf(
					"writer: ep=%s unit=%d regs addr=%d err=%v",
					tgt.Endpoint, tgt.UnitID, dstAddr, err,
				))
			}
		}

		if coils != nil && tgt.CoilAddress != nil {
			if err := cli.WriteCoils(tgt.UnitID, *tgt.CoilAddress, coils); err != nil {
				errs = append(errs, fmt.Sprintf(
					"writer: ep=%s unit=%d coils addr=%d err=%v",
					tgt.Endpoint, tgt.UnitID, *tgt.CoilAddress, err,
				))
			}
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}

	return nil
}
