// internal/compressor/driver.go
package compressor

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tamzrod/f70-replicator/internal/transport"
)

// Driver talks to one F70 compressor over a Transport.
//
// Operations are serialized: only one frame exchange is in flight at a time,
// so a Driver may be shared between goroutines.
type Driver struct {
	mu sync.Mutex

	tr      transport.Transport
	port    string
	cfg     Config
	limiter *rate.Limiter
	log     *zap.Logger
}

// New opens a driver.
//
// If WithTransport is supplied it is used as-is and port is ignored.
// Otherwise port must name an enumerated serial port; it is opened at
// 9600 8N1 (unless WithSerialConfig overrides) and both buffers are cleared.
func New(port string, opts ...Option) (*Driver, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	tr := cfg.Transport
	if tr == nil {
		if port == "" {
			return nil, ErrNoConnection
		}

		sc := cfg.Serial
		sc.Port = port
		st, err := transport.Open(sc, transport.WithPortLister(cfg.PortLister))
		if err != nil {
			cfg.Logger.Warn("open serial port failed", zap.String("port", port), zap.Error(err))
			return nil, fmt.Errorf("compressor: %w", err)
		}
		tr = st
		cfg.Logger.Info("serial port opened",
			zap.String("port", port),
			zap.Int("baud_rate", orDefault(sc.BaudRate, transport.DefaultBaudRate)),
		)
	}

	d := &Driver{
		tr:   tr,
		port: port,
		cfg:  cfg,
		log:  cfg.Logger,
	}
	if cfg.CommandGap > 0 {
		d.limiter = rate.NewLimiter(rate.Every(cfg.CommandGap), 1)
	}
	return d, nil
}

// Port returns the port name passed to New (empty for injected transports).
func (d *Driver) Port() string {
	return d.port
}

// Close releases the transport. Calling Close more than once is harmless.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tr == nil || !d.tr.IsOpen() {
		return nil
	}
	err := d.tr.Close()
	if err != nil {
		d.log.Warn("close transport failed", zap.Error(err))
		return err
	}
	d.log.Info("compressor connection closed", zap.String("port", d.port))
	return nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
