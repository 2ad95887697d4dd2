// internal/transport/transport.go
package transport

import (
	"errors"
	"fmt"
	"strings"
)

// Transport is the byte-stream contract the compressor driver consumes.
// Reads are non-blocking: callers poll BytesAvailable and only Read what is
// reported as waiting.
type Transport interface {
	Write(p []byte) (int, error)

	// BytesAvailable reports how many received bytes can be read without blocking.
	BytesAvailable() (int, error)

	// Read returns up to n already-received bytes.
	Read(n int) ([]byte, error)

	ResetInputBuffer() error
	ResetOutputBuffer() error

	IsOpen() bool
	Close() error
}

// PortLister enumerates the serial port identifiers present on the host.
type PortLister func() ([]string, error)

// ErrClosed is returned by operations on a closed transport.
var ErrClosed = errors.New("transport: closed")

// DeviceNotFoundError reports a requested port that enumeration did not list.
type DeviceNotFoundError struct {
	Port      string
	Available []string
}

func (e *DeviceNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no device matching %s found (no ports available)", e.Port)
	}
	return fmt.Sprintf("no device matching %s found (available: %s)", e.Port, strings.Join(e.Available, ", "))
}
