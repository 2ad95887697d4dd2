// internal/compressor/commands.go
package compressor

import (
	"context"
	"fmt"
	"strings"

	"github.com/tamzrod/f70-replicator/internal/protocol"
)

// SetOn starts the compressor.
func (d *Driver) SetOn(ctx context.Context) error {
	return d.SendCommand(ctx, protocol.CmdOn)
}

// SetOff stops the compressor.
func (d *Driver) SetOff(ctx context.Context) error {
	return d.SendCommand(ctx, protocol.CmdOff)
}

// Reset clears latched alarms.
func (d *Driver) Reset(ctx context.Context) error {
	return d.SendCommand(ctx, protocol.CmdReset)
}

// SetColdHeadRun runs the cold head only. The compressor must be off;
// the device stops the cold head after 30 minutes without another command.
func (d *Driver) SetColdHeadRun(ctx context.Context) error {
	return d.SendCommand(ctx, protocol.CmdColdHeadRun)
}

// SetColdHeadPause pauses the cold head while the compressor keeps running.
func (d *Driver) SetColdHeadPause(ctx context.Context) error {
	return d.SendCommand(ctx, protocol.CmdColdHeadPause)
}

// SetColdHeadUnpause resumes a paused cold head.
func (d *Driver) SetColdHeadUnpause(ctx context.Context) error {
	return d.SendCommand(ctx, protocol.CmdColdHeadUnpause)
}

// Action names accepted by Do.
const (
	ActionOn              = "on"
	ActionOff             = "off"
	ActionReset           = "reset"
	ActionColdHeadRun     = "cold-head-run"
	ActionColdHeadPause   = "cold-head-pause"
	ActionColdHeadUnpause = "cold-head-unpause"
)

// Actions lists every name Do accepts, in display order.
func Actions() []string {
	return []string{
		ActionOn,
		ActionOff,
		ActionReset,
		ActionColdHeadRun,
		ActionColdHeadPause,
		ActionColdHeadUnpause,
	}
}

// Do runs a write-only command by name.
func (d *Driver) Do(ctx context.Context, action string) error {
	switch strings.ToLower(action) {
	case ActionOn:
		return d.SetOn(ctx)
	case ActionOff:
		return d.SetOff(ctx)
	case ActionReset:
		return d.Reset(ctx)
	case ActionColdHeadRun:
		return d.SetColdHeadRun(ctx)
	case ActionColdHeadPause:
		return d.SetColdHeadPause(ctx)
	case ActionColdHeadUnpause:
		return d.SetColdHeadUnpause(ctx)
	default:
		return fmt.Errorf("compressor: unknown action %q", action)
	}
}
