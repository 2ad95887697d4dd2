// internal/status/errors.go
package status

import (
	"errors"

	"github.com/tamzrod/f70-replicator/internal/compressor"
	"github.com/tamzrod/f70-replicator/internal/protocol"
	"github.com/tamzrod/f70-replicator/internal/transport"
)

// Error codes written to SlotLastErrorCode.
const (
	ErrorNone           uint16 = 0
	ErrorGeneric        uint16 = 1
	ErrorTimeout        uint16 = 2
	ErrorTransport      uint16 = 3
	ErrorMalformed      uint16 = 4
	ErrorDeviceNotFound uint16 = 5
)

// ErrorCode maps an error to a status block code.
// Errors exposing Code() uint16 keep their own code.
func ErrorCode(err error) uint16 {
	if err == nil {
		return ErrorNone
	}

	var nf *transport.DeviceNotFoundError
	var te *compressor.TransportError

	switch {
	case errors.Is(err, compressor.ErrTimeout):
		return ErrorTimeout
	case errors.As(err, &nf):
		return ErrorDeviceNotFound
	case errors.As(err, &te), errors.Is(err, compressor.ErrClosed):
		return ErrorTransport
	case errors.Is(err, protocol.ErrMalformedResponse):
		return ErrorMalformed
	}

	type coder interface{ Code() uint16 }
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}

	return ErrorGeneric
}
