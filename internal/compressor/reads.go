// internal/compressor/reads.go
package compressor

import (
	"context"
	"fmt"

	"github.com/tamzrod/f70-replicator/internal/protocol"
)

// ReadAllTemperatures returns T1..T4 in degrees C.
func (d *Driver) ReadAllTemperatures(ctx context.Context) ([protocol.TemperatureChannels]int, error) {
	payload, err := d.SendQuery(ctx, protocol.CmdReadAllTemperatures)
	if err != nil {
		return [protocol.TemperatureChannels]int{}, err
	}
	return protocol.ParseAllTemperatures(payload)
}

// ReadTemperature returns one channel (1-4) in degrees C.
func (d *Driver) ReadTemperature(ctx context.Context, channel int) (float64, error) {
	if channel < 1 || channel > protocol.TemperatureChannels {
		return 0, fmt.Errorf("%w: temperature channel %d (want 1-%d)", ErrInvalidChannel, channel, protocol.TemperatureChannels)
	}
	mnemonic := protocol.CmdReadTemperature(channel)
	payload, err := d.SendQuery(ctx, mnemonic)
	if err != nil {
		return 0, err
	}
	return protocol.ParseTemperature(mnemonic, payload)
}

// ReadAllPressures returns P1..P2 in psig.
func (d *Driver) ReadAllPressures(ctx context.Context) ([protocol.PressureChannels]int, error) {
	payload, err := d.SendQuery(ctx, protocol.CmdReadAllPressures)
	if err != nil {
		return [protocol.PressureChannels]int{}, err
	}
	return protocol.ParseAllPressures(payload)
}

// ReadPressure returns one channel (1-2) in psig.
func (d *Driver) ReadPressure(ctx context.Context, channel int) (int, error) {
	if channel < 1 || channel > protocol.PressureChannels {
		return 0, fmt.Errorf("%w: pressure channel %d (want 1-%d)", ErrInvalidChannel, channel, protocol.PressureChannels)
	}
	mnemonic := protocol.CmdReadPressure(channel)
	payload, err := d.SendQuery(ctx, mnemonic)
	if err != nil {
		return 0, err
	}
	return protocol.ParsePressure(mnemonic, payload)
}

// ReadStatusBits queries $STA and decodes the status word.
func (d *Driver) ReadStatusBits(ctx context.Context) (protocol.StatusBits, error) {
	payload, err := d.SendQuery(ctx, protocol.CmdReadStatus)
	if err != nil {
		return protocol.StatusBits{}, err
	}
	return protocol.ParseStatus(payload)
}

// ReadID returns the firmware version and elapsed operating hours.
func (d *Driver) ReadID(ctx context.Context) (protocol.Identification, error) {
	payload, err := d.SendQuery(ctx, protocol.CmdReadID)
	if err != nil {
		return protocol.Identification{}, err
	}
	return protocol.ParseID(payload)
}
