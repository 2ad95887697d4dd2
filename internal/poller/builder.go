// internal/poller/builder.go
package poller

import (
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/f70-replicator/internal/compressor"
	cfg "github.com/tamzrod/f70-replicator/internal/config"
	"github.com/tamzrod/f70-replicator/internal/metrics"
	"github.com/tamzrod/f70-replicator/internal/transport"
)

// DriverOptions translates the compressor section into driver options.
func DriverOptions(c cfg.CompressorConfig) []compressor.Option {
	return []compressor.Option{
		compressor.WithSerialConfig(transport.Config{
			BaudRate: c.BaudRate,
			DataBits: c.DataBits,
			Parity:   c.Parity,
			StopBits: c.StopBits,
		}),
		compressor.WithTimeout(time.Duration(c.TimeoutMs) * time.Millisecond),
		compressor.WithPollInterval(time.Duration(c.PollIntervalMs) * time.Millisecond),
		compressor.WithCommandGap(time.Duration(c.CommandGapMs) * time.Millisecond),
	}
}

// OpenDriver opens the compressor named by c. extra options are applied last.
func OpenDriver(c cfg.CompressorConfig, extra ...compressor.Option) (*compressor.Driver, error) {
	return compressor.New(c.Port, append(DriverOptions(c), extra...)...)
}

// Build constructs a Poller over a freshly opened driver.
// The returned driver is shared with control callers; the closer releases it.
// No retries: failure to open is fatal at startup.
func Build(c *cfg.Config, log *zap.Logger, m *metrics.DriverMetrics) (*Poller, *compressor.Driver, func() error, error) {
	if log == nil {
		log = zap.NewNop()
	}

	reads := make([]ReadKind, 0, len(c.Reads))
	for _, r := range c.Reads {
		k, err := ParseReadKind(r)
		if err != nil {
			return nil, nil, nil, err
		}
		reads = append(reads, k)
	}

	drv, err := OpenDriver(c.Compressor,
		compressor.WithLogger(log.With(zap.String("unit", c.Compressor.ID))),
		compressor.WithMetrics(m),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	p, err := New(
		Config{
			UnitID:   c.Compressor.ID,
			Interval: time.Duration(c.Poll.IntervalMs) * time.Millisecond,
			Reads:    reads,
		},
		drv,
	)
	if err != nil {
		_ = drv.Close()
		return nil, nil, nil, err
	}

	return p, drv, drv.Close, nil
}
