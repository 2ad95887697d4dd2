// internal/compressor/errors.go
package compressor

import (
	"errors"
	"fmt"

	"github.com/tamzrod/f70-replicator/internal/protocol"
	"github.com/tamzrod/f70-replicator/internal/transport"
)

// Sentinel errors for common failure modes.
var (
	// ErrNoConnection is returned by New when neither a port nor a transport is supplied.
	ErrNoConnection = errors.New("compressor: either a port or a transport must be supplied")

	// ErrTimeout is returned when a response does not terminate before the deadline.
	ErrTimeout = errors.New("compressor: timed out waiting for response")

	ErrInvalidChannel = errors.New("compressor: invalid channel")
	ErrClosed         = errors.New("compressor: driver closed")
)

// TransportError wraps a failure reported by the transport. The transport's
// error is kept as-is and reachable through Unwrap.
type TransportError struct {
	Op       string // write | poll | read
	Mnemonic string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("compressor: transport %s during %s: %v", e.Op, e.Mnemonic, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTimeout returns true if the error is a response timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsDeviceNotFound returns true if construction failed because the port was not enumerated.
func IsDeviceNotFound(err error) bool {
	var nf *transport.DeviceNotFoundError
	return errors.As(err, &nf)
}

// resultLabel classifies err for metrics.
func resultLabel(err error) string {
	var te *TransportError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.As(err, &te):
		return "transport"
	case errors.Is(err, protocol.ErrMalformedResponse):
		return "malformed"
	default:
		return "error"
	}
}
