// internal/transport/serial.go
package transport

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

// F70 serial defaults: 9600 baud, 8 data bits, no parity, 1 stop bit.
const (
	DefaultBaudRate = 9600
	DefaultDataBits = 8

	// probeTimeout bounds the read used to check for waiting bytes.
	probeTimeout = time.Millisecond

	readChunk = 256
)

// Config is the minimal serial line config.
type Config struct {
	Port     string
	BaudRate int
	DataBits int
	Parity   string // none | odd | even | mark | space
	StopBits int    // 1 | 2
}

// serialPort is the subset of go.bug.st/serial.Port used here.
type serialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
	ResetOutputBuffer() error
	Close() error
}

type opener func(name string, mode *serial.Mode) (serialPort, error)

func openBugst(name string, mode *serial.Mode) (serialPort, error) {
	return serial.Open(name, mode)
}

type openOptions struct {
	lister PortLister
	open   opener
}

// OpenOption customises Open.
type OpenOption func(*openOptions)

// WithPortLister replaces serial.GetPortsList for port lookup.
func WithPortLister(l PortLister) OpenOption {
	return func(o *openOptions) {
		if l != nil {
			o.lister = l
		}
	}
}

func withOpener(fn opener) OpenOption {
	return func(o *openOptions) {
		o.open = fn
	}
}

// SerialTransport implements Transport over a go.bug.st/serial port.
// Bytes seen by BytesAvailable are held in pending until Read takes them.
type SerialTransport struct {
	mu      sync.Mutex
	port    serialPort
	name    string
	open    bool
	pending []byte
	buf     []byte
}

// Open resolves cfg.Port against the enumerated ports, opens it, and
// clears both buffers before first use.
func Open(cfg Config, opts ...OpenOption) (*SerialTransport, error) {
	if cfg.Port == "" {
		return nil, errors.New("serial transport: port required")
	}

	o := openOptions{lister: serial.GetPortsList, open: openBugst}
	for _, opt := range opts {
		opt(&o)
	}

	ports, err := o.lister()
	if err != nil {
		return nil, fmt.Errorf("serial transport: list ports: %w", err)
	}
	if !slices.Contains(ports, cfg.Port) {
		return nil, &DeviceNotFoundError{Port: cfg.Port, Available: ports}
	}

	mode, err := cfg.mode()
	if err != nil {
		return nil, err
	}

	p, err := o.open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("serial transport: open %s: %w", cfg.Port, err)
	}

	if err := p.SetReadTimeout(probeTimeout); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("serial transport: set read timeout: %w", err)
	}

	t := &SerialTransport{
		port: p,
		name: cfg.Port,
		open: true,
		buf:  make([]byte, readChunk),
	}

	if err := t.ResetOutputBuffer(); err != nil {
		_ = p.Close()
		return nil, err
	}
	if err := t.ResetInputBuffer(); err != nil {
		_ = p.Close()
		return nil, err
	}

	return t, nil
}

func (c Config) mode() (*serial.Mode, error) {
	m := &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	if m.BaudRate == 0 {
		m.BaudRate = DefaultBaudRate
	}
	if m.DataBits == 0 {
		m.DataBits = DefaultDataBits
	}

	switch strings.ToLower(c.Parity) {
	case "", "none", "n":
	case "odd", "o":
		m.Parity = serial.OddParity
	case "even", "e":
		m.Parity = serial.EvenParity
	case "mark", "m":
		m.Parity = serial.MarkParity
	case "space", "s":
		m.Parity = serial.SpaceParity
	default:
		return nil, fmt.Errorf("serial transport: unknown parity %q", c.Parity)
	}

	switch c.StopBits {
	case 0, 1:
	case 2:
		m.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("serial transport: unsupported stop bits %d", c.StopBits)
	}

	return m, nil
}

// PortName returns the serial port identifier.
func (t *SerialTransport) PortName() string {
	return t.name
}

func (t *SerialTransport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open {
		return 0, ErrClosed
	}
	return t.port.Write(p)
}

func (t *SerialTransport) BytesAvailable() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open {
		return 0, ErrClosed
	}
	if err := t.fill(); err != nil {
		return 0, err
	}
	return len(t.pending), nil
}

func (t *SerialTransport) Read(n int) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open {
		return nil, ErrClosed
	}
	if len(t.pending) == 0 {
		if err := t.fill(); err != nil {
			return nil, err
		}
	}

	n = min(n, len(t.pending))
	out := make([]byte, n)
	copy(out, t.pending)
	t.pending = t.pending[n:]
	return out, nil
}

// fill moves whatever the driver has buffered into pending.
// A read timeout surfaces as n == 0 with no error.
func (t *SerialTransport) fill() error {
	for {
		n, err := t.port.Read(t.buf)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		t.pending = append(t.pending, t.buf[:n]...)
		if n < len(t.buf) {
			return nil
		}
	}
}

func (t *SerialTransport) ResetInputBuffer() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending = nil
	if err := t.port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("serial transport: reset input: %w", err)
	}
	return nil
}

func (t *SerialTransport) ResetOutputBuffer() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.port.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("serial transport: reset output: %w", err)
	}
	return nil
}

func (t *SerialTransport) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *SerialTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open {
		return nil
	}
	t.open = false
	t.pending = nil
	return t.port.Close()
}
