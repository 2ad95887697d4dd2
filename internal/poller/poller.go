// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/f70-replicator/internal/protocol"
)

// Client abstracts the compressor queries needed by the poller.
// *compressor.Driver satisfies it.
type Client interface {
	ReadAllTemperatures(ctx context.Context) ([protocol.TemperatureChannels]int, error)
	ReadAllPressures(ctx context.Context) ([protocol.PressureChannels]int, error)
	ReadStatusBits(ctx context.Context) (protocol.StatusBits, error)
	ReadID(ctx context.Context) (protocol.Identification, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	UnitID   string
	Interval time.Duration
	Reads    []ReadKind
}

// Poller is a dumb, clock-driven reader.
type Poller struct {
	cfg    Config
	client Client
}

// New creates a poller with immutable config.
func New(cfg Config, client Client) (*Poller, error) {
	if cfg.UnitID == "" {
		return nil, errors.New("poller: unit id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if len(cfg.Reads) == 0 {
		return nil, errors.New("poller: at least one read required")
	}
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	return &Poller{cfg: cfg, client: client}, nil
}

// Interval returns the configured cycle period.
func (p *Poller) Interval() time.Duration {
	return p.cfg.Interval
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle and no readings are returned.
func (p *Poller) PollOnce(ctx context.Context) PollResult {
	res := PollResult{
		UnitID: p.cfg.UnitID,
		At:     time.Now(),
	}

	var next PollResult

	for _, kind := range p.cfg.Reads {
		switch kind {
		case ReadTemperatures:
			t, err := p.client.ReadAllTemperatures(ctx)
			if err != nil {
				res.Err = fmt.Errorf("poller: %s: %w", kind, err)
				return res
			}
			next.Temperatures = &t

		case ReadPressures:
			pr, err := p.client.ReadAllPressures(ctx)
			if err != nil {
				res.Err = fmt.Errorf("poller: %s: %w", kind, err)
				return res
			}
			next.Pressures = &pr

		case ReadStatus:
			s, err := p.client.ReadStatusBits(ctx)
			if err != nil {
				res.Err = fmt.Errorf("poller: %s: %w", kind, err)
				return res
			}
			next.Status = &s

		case ReadID:
			id, err := p.client.ReadID(ctx)
			if err != nil {
				res.Err = fmt.Errorf("poller: %s: %w", kind, err)
				return res
			}
			next.ID = &id

		default:
			res.Err = fmt.Errorf("poller: unsupported read %q", kind)
			return res
		}
	}

	// Commit only if all reads succeeded
	res.Temperatures = next.Temperatures
	res.Pressures = next.Pressures
	res.Status = next.Status
	res.ID = next.ID
	return res
}
