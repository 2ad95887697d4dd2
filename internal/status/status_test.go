// internal/status/status_test.go
package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tamzrod/f70-replicator/internal/compressor"
	"github.com/tamzrod/f70-replicator/internal/protocol"
	"github.com/tamzrod/f70-replicator/internal/transport"
)

func TestEncode(t *testing.T) {
	regs := Encode(Snapshot{
		Health:         HealthError,
		LastErrorCode:  ErrorTimeout,
		SecondsInError: 12,
		StatusBits:     0x0301,
		StateNumber:    1,
	})

	assert.Len(t, regs, SlotsPerDevice)
	assert.Equal(t, []uint16{HealthError, ErrorTimeout, 12, 0x0301, 1}, regs[:5])
	for i := SlotReservedStart; i < SlotsPerDevice; i++ {
		assert.Zero(t, regs[i], "slot %d", i)
	}
}

func TestEncodeDeviceName(t *testing.T) {
	regs := EncodeDeviceName("F70-A")

	assert.Len(t, regs, SlotDeviceNameSlots)
	assert.Equal(t, uint16('F')<<8|uint16('7'), regs[0])
	assert.Equal(t, uint16('0')<<8|uint16('-'), regs[1])
	assert.Equal(t, uint16('A')<<8, regs[2])
	assert.Zero(t, regs[3])
}

func TestEncodeDeviceName_TruncatesAndSanitizes(t *testing.T) {
	regs := EncodeDeviceName("A\tBCDEFGHIJKLMNOPQRSTU")

	assert.Equal(t, uint16('A')<<8|uint16('?'), regs[0])
	assert.Equal(t, uint16('N')<<8|uint16('O'), regs[7])
}

type codedErr struct{}

func (codedErr) Error() string { return "coded" }
func (codedErr) Code() uint16  { return 77 }

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want uint16
	}{
		{nil, ErrorNone},
		{errors.New("x"), ErrorGeneric},
		{fmt.Errorf("%w: $TEA: %w", compressor.ErrTimeout, errors.New("deadline")), ErrorTimeout},
		{&compressor.TransportError{Op: "read", Err: errors.New("eio")}, ErrorTransport},
		{compressor.ErrClosed, ErrorTransport},
		{&protocol.MalformedResponseError{Payload: "$TEA,"}, ErrorMalformed},
		{fmt.Errorf("compressor: %w", &transport.DeviceNotFoundError{Port: "COM9"}), ErrorDeviceNotFound},
		{fmt.Errorf("wrapped: %w", codedErr{}), 77},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorCode(tt.err), "%v", tt.err)
	}
}

func TestHealthName(t *testing.T) {
	assert.Equal(t, "ok", HealthName(HealthOK))
	assert.Equal(t, "error", HealthName(HealthError))
	assert.Equal(t, "invalid", HealthName(99))
}
