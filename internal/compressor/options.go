// internal/compressor/options.go
package compressor

import (
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/f70-replicator/internal/metrics"
	"github.com/tamzrod/f70-replicator/internal/transport"
)

// DefaultPollInterval is the pause between receive-buffer checks.
const DefaultPollInterval = 10 * time.Millisecond

// Config holds the driver configuration.
type Config struct {
	// Transport, when set, is used instead of opening the port.
	Transport transport.Transport

	// Serial line settings used when the driver opens the port itself.
	Serial transport.Config

	// PortLister replaces serial port enumeration (optional).
	PortLister transport.PortLister

	// PollInterval is the sleep between BytesAvailable checks.
	PollInterval time.Duration

	// Timeout bounds each query. Zero waits for the terminator indefinitely
	// unless the caller's context carries a deadline.
	Timeout time.Duration

	// CommandGap is the minimum spacing between frames on the wire. Zero disables pacing.
	CommandGap time.Duration

	Logger  *zap.Logger
	Metrics *metrics.DriverMetrics
}

func defaultConfig() Config {
	return Config{
		PollInterval: DefaultPollInterval,
		Logger:       zap.NewNop(),
	}
}

// Option is a functional option for configuring the Driver.
type Option func(*Config)

// WithTransport supplies a pre-established transport. It takes precedence
// over the port argument of New.
func WithTransport(t transport.Transport) Option {
	return func(c *Config) {
		c.Transport = t
	}
}

// WithSerialConfig sets baud rate and framing for a driver-opened port.
// The Port field is ignored; New's port argument wins.
func WithSerialConfig(sc transport.Config) Option {
	return func(c *Config) {
		c.Serial = sc
	}
}

// WithPortLister replaces serial port enumeration.
func WithPortLister(l transport.PortLister) Option {
	return func(c *Config) {
		c.PortLister = l
	}
}

// WithPollInterval sets the pause between receive-buffer checks.
//
// Example:
//
//	drv, err := compressor.New("/dev/ttyUSB0", compressor.WithPollInterval(5*time.Millisecond))
func WithPollInterval(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.PollInterval = d
		}
	}
}

// WithTimeout bounds every query.
//
// Example:
//
//	drv, err := compressor.New("COM3", compressor.WithTimeout(2*time.Second))
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.Timeout = d
		}
	}
}

// WithCommandGap enforces a minimum spacing between frames.
func WithCommandGap(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.CommandGap = d
		}
	}
}

// WithLogger sets a logger for driver operations.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithMetrics records exchanges into m.
func WithMetrics(m *metrics.DriverMetrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}
