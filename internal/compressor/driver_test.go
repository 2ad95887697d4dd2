// internal/compressor/driver_test.go
package compressor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tamzrod/f70-replicator/internal/protocol"
	"github.com/tamzrod/f70-replicator/internal/transport"
)

func newMockDriver(t *testing.T, opts ...Option) (*Driver, *transport.MockTransport) {
	t.Helper()
	mock := transport.NewMockTransport()
	opts = append([]Option{WithTransport(mock), WithPollInterval(time.Millisecond)}, opts...)
	d, err := New("", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d, mock
}

func TestNew_NoPortNoTransport(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrNoConnection)
}

func TestNew_DeviceNotFound(t *testing.T) {
	_, err := New("/dev/ttyUSB7", WithPortLister(func() ([]string, error) {
		return []string{"/dev/ttyS0"}, nil
	}))

	require.Error(t, err)
	assert.True(t, IsDeviceNotFound(err))

	var nf *transport.DeviceNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "/dev/ttyUSB7", nf.Port)
	assert.Contains(t, err.Error(), "/dev/ttyUSB7")
}

func TestNew_TransportWinsOverPort(t *testing.T) {
	mock := transport.NewMockTransport()
	listed := false
	d, err := New("/dev/not-there",
		WithTransport(mock),
		WithPortLister(func() ([]string, error) {
			listed = true
			return nil, nil
		}),
	)
	require.NoError(t, err)
	assert.False(t, listed)
	assert.Equal(t, "/dev/not-there", d.Port())

	// injected transports are used as-is
	assert.Zero(t, mock.ResetInputCalls)
	assert.Zero(t, mock.ResetOutputCalls)
}

func TestClose_Idempotent(t *testing.T) {
	d, mock := newMockDriver(t)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.Equal(t, 1, mock.CloseCalls)

	err := d.SetOn(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestClose_ErrorSurfaces(t *testing.T) {
	d, mock := newMockDriver(t)
	mock.CloseErr = errors.New("busy")

	assert.EqualError(t, d.Close(), "busy")
}

func TestDriver_LogsFrames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d, mock := newMockDriver(t, WithLogger(zap.New(core)))
	mock.Reply("$STA", "$STA,0301,2ED1\r")

	_, err := d.ReadStatusBits(context.Background())
	require.NoError(t, err)

	sent := logs.FilterMessage("frame sent").All()
	require.Len(t, sent, 1)
	assert.Equal(t, "$STA3504\r", sent[0].ContextMap()["frame"])

	got := logs.FilterMessage("response received").All()
	require.Len(t, got, 1)
	assert.Equal(t, "$STA,0301,", got[0].ContextMap()["payload"])
}

func TestDo(t *testing.T) {
	d, mock := newMockDriver(t)
	ctx := context.Background()

	for _, a := range Actions() {
		require.NoError(t, d.Do(ctx, a), a)
	}
	assert.Equal(t, []string{
		"$ON177CF\r",
		"$OFF9188\r",
		"$RS12156\r",
		"$CHRFD4C\r",
		"$CHP3CCD\r",
		"$POF07BF\r",
	}, mock.Writes())

	assert.Error(t, d.Do(ctx, "explode"))
	assert.Len(t, mock.Writes(), 6)
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "ok", resultLabel(nil))
	assert.Equal(t, "timeout", resultLabel(ErrTimeout))
	assert.Equal(t, "transport", resultLabel(&TransportError{Op: "read", Err: errors.New("x")}))
	assert.Equal(t, "malformed", resultLabel(&protocol.MalformedResponseError{}))
	assert.Equal(t, "error", resultLabel(ErrClosed))
}
