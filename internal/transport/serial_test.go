// internal/transport/serial_test.go
package transport

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

type fakePort struct {
	rx         bytes.Buffer
	tx         bytes.Buffer
	timeout    time.Duration
	resetIn    int
	resetOut   int
	closed     bool
	readErr    error
	maxPerRead int
	resetOrder []string
}

func (f *fakePort) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if f.rx.Len() == 0 {
		return 0, nil // timeout
	}
	if f.maxPerRead > 0 && len(p) > f.maxPerRead {
		p = p[:f.maxPerRead]
	}
	return f.rx.Read(p)
}

func (f *fakePort) Write(p []byte) (int, error) { return f.tx.Write(p) }

func (f *fakePort) SetReadTimeout(t time.Duration) error {
	f.timeout = t
	return nil
}

func (f *fakePort) ResetInputBuffer() error {
	f.resetIn++
	f.resetOrder = append(f.resetOrder, "input")
	return nil
}

func (f *fakePort) ResetOutputBuffer() error {
	f.resetOut++
	f.resetOrder = append(f.resetOrder, "output")
	return nil
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

func listing(ports ...string) PortLister {
	return func() ([]string, error) { return ports, nil }
}

func openFake(t *testing.T, fp *fakePort, cfg Config) (*SerialTransport, *serial.Mode) {
	t.Helper()
	var gotMode *serial.Mode
	tr, err := Open(cfg,
		WithPortLister(listing("/dev/ttyS0", cfg.Port)),
		withOpener(func(name string, mode *serial.Mode) (serialPort, error) {
			gotMode = mode
			return fp, nil
		}),
	)
	require.NoError(t, err)
	return tr, gotMode
}

func TestOpen_DeviceNotFound(t *testing.T) {
	opened := false
	_, err := Open(Config{Port: "/dev/ttyUSB9"},
		WithPortLister(listing("/dev/ttyS0", "/dev/ttyUSB0")),
		withOpener(func(string, *serial.Mode) (serialPort, error) {
			opened = true
			return nil, nil
		}),
	)

	var nf *DeviceNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "/dev/ttyUSB9", nf.Port)
	assert.Equal(t, []string{"/dev/ttyS0", "/dev/ttyUSB0"}, nf.Available)
	assert.False(t, opened)
}

func TestOpen_ListError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Open(Config{Port: "COM3"}, WithPortLister(func() ([]string, error) { return nil, boom }))
	assert.ErrorIs(t, err, boom)
}

func TestOpen_PortRequired(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestOpen_DefaultsAndBufferReset(t *testing.T) {
	fp := &fakePort{}
	tr, mode := openFake(t, fp, Config{Port: "/dev/ttyUSB0"})

	assert.Equal(t, DefaultBaudRate, mode.BaudRate)
	assert.Equal(t, DefaultDataBits, mode.DataBits)
	assert.Equal(t, serial.NoParity, mode.Parity)
	assert.Equal(t, serial.OneStopBit, mode.StopBits)

	assert.Equal(t, []string{"output", "input"}, fp.resetOrder)
	assert.Equal(t, probeTimeout, fp.timeout)
	assert.True(t, tr.IsOpen())
	assert.Equal(t, "/dev/ttyUSB0", tr.PortName())
}

func TestOpen_ModeFromConfig(t *testing.T) {
	fp := &fakePort{}
	_, mode := openFake(t, fp, Config{Port: "COM4", BaudRate: 19200, DataBits: 7, Parity: "even", StopBits: 2})

	assert.Equal(t, 19200, mode.BaudRate)
	assert.Equal(t, 7, mode.DataBits)
	assert.Equal(t, serial.EvenParity, mode.Parity)
	assert.Equal(t, serial.TwoStopBits, mode.StopBits)
}

func TestOpen_BadMode(t *testing.T) {
	for _, cfg := range []Config{
		{Port: "COM1", Parity: "sideways"},
		{Port: "COM1", StopBits: 3},
	} {
		_, err := Open(cfg,
			WithPortLister(listing("COM1")),
			withOpener(func(string, *serial.Mode) (serialPort, error) { return &fakePort{}, nil }),
		)
		assert.Error(t, err)
	}
}

func TestSerialTransport_AvailableThenRead(t *testing.T) {
	fp := &fakePort{maxPerRead: 4}
	tr, _ := openFake(t, fp, Config{Port: "COM1"})

	n, err := tr.BytesAvailable()
	require.NoError(t, err)
	assert.Zero(t, n)

	fp.rx.WriteString("$STA,0301,2ED1\r")

	n, err = tr.BytesAvailable()
	require.NoError(t, err)
	assert.Equal(t, 4, n, "a short read ends the fill")

	got, err := tr.Read(n)
	require.NoError(t, err)
	assert.Equal(t, "$STA", string(got))

	var rest []byte
	for {
		n, err := tr.BytesAvailable()
		require.NoError(t, err)
		if n == 0 {
			break
		}
		b, err := tr.Read(n)
		require.NoError(t, err)
		rest = append(rest, b...)
	}
	assert.Equal(t, ",0301,2ED1\r", string(rest))
}

func TestSerialTransport_ResetInputDropsPending(t *testing.T) {
	fp := &fakePort{}
	tr, _ := openFake(t, fp, Config{Port: "COM1"})

	fp.rx.WriteString("stale")
	_, err := tr.BytesAvailable()
	require.NoError(t, err)

	require.NoError(t, tr.ResetInputBuffer())
	n, err := tr.BytesAvailable()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSerialTransport_WriteAndClose(t *testing.T) {
	fp := &fakePort{}
	tr, _ := openFake(t, fp, Config{Port: "COM1"})

	_, err := tr.Write([]byte("$ON177CF\r"))
	require.NoError(t, err)
	assert.Equal(t, "$ON177CF\r", fp.tx.String())

	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())
	assert.True(t, fp.closed)
	assert.False(t, tr.IsOpen())

	_, err = tr.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = tr.BytesAvailable()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSerialTransport_ReadErrorSurfaces(t *testing.T) {
	boom := errors.New("device unplugged")
	fp := &fakePort{}
	tr, _ := openFake(t, fp, Config{Port: "COM1"})

	fp.readErr = boom
	_, err := tr.BytesAvailable()
	assert.ErrorIs(t, err, boom)
}
