// internal/writer/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"go.uber.org/zap"
)

// EndpointClient is a single TCP connection to one Modbus memory endpoint.
// It serializes requests because it mutates SlaveId per write.
type EndpointClient struct {
	mu       sync.Mutex
	endpoint string
	handler  *modbus.TCPClientHandler
	client   modbus.Client
}

type Config struct {
	Endpoint    string
	Timeout     time.Duration // 0 = library default
	IdleTimeout time.Duration // 0 = library default
	Logger      *zap.Logger   // frame-level logging at debug
}

func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	if cfg.IdleTimeout > 0 {
		h.IdleTimeout = cfg.IdleTimeout
	}
	if cfg.Logger != nil && cfg.Logger.Core().Enabled(zap.DebugLevel) {
		h.Logger = zap.NewStdLog(cfg.Logger.Named("modbus").With(zap.String("endpoint", cfg.Endpoint)))
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("writer modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return &EndpointClient{
		endpoint: cfg.Endpoint,
		handler:  h,
		client:   modbus.NewClient(h),
	}, nil
}

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// WriteCoils writes bits with FC15.
func (c *EndpointClient) WriteCoils(unitID uint8, addr uint16, bits []bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = unitID

	qty := uint16(len(bits))
	if _, err := c.client.WriteMultipleCoils(addr, qty, packBits(bits)); err != nil {
		return fmt.Errorf("writer modbus: %s unit=%d coils addr=%d qty=%d: %w", c.endpoint, unitID, addr, qty, err)
	}
	return nil
}

// WriteRegisters writes regs with FC16.
func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = unitID

	qty := uint16(len(regs))
	if _, err := c.client.WriteMultipleRegisters(addr, qty, packRegisters(regs)); err != nil {
		return fmt.Errorf("writer modbus: %s unit=%d regs addr=%d qty=%d: %w", c.endpoint, unitID, addr, qty, err)
	}
	return nil
}

// packBits packs LSB-first, as FC15 expects.
func packBits(bits []bool) []byte {
	n := (len(bits) + 7) / 8
	out := make([]byte, n)
	for i, v := range bits {
		if v {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
