// internal/compressor/exchange.go
package compressor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/f70-replicator/internal/protocol"
)

// SendCommand frames mnemonic and writes it. Nothing is read back.
func (d *Driver) SendCommand(ctx context.Context, mnemonic string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.send(ctx, mnemonic, false)
	d.cfg.Metrics.ObserveCommand(mnemonic, resultLabel(err))
	return err
}

// SendQuery discards unread input, frames mnemonic, writes it, and waits
// for a CR-terminated response. The returned payload has the checksum and terminator removed
// and surrounding whitespace trimmed.
//
// Without a configured timeout and without a ctx deadline the wait is
// unbounded.
func (d *Driver) SendQuery(ctx context.Context, mnemonic string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	payload, err := d.query(ctx, mnemonic)
	d.cfg.Metrics.ObserveQuery(mnemonic, resultLabel(err), time.Since(start))
	return payload, err
}

func (d *Driver) query(ctx context.Context, mnemonic string) (string, error) {
	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	if err := d.send(ctx, mnemonic, true); err != nil {
		return "", err
	}

	raw, err := d.receive(ctx, mnemonic)
	if err != nil {
		return "", err
	}

	payload, err := protocol.Payload(raw)
	if err != nil {
		var me *protocol.MalformedResponseError
		if errors.As(err, &me) {
			me.Mnemonic = mnemonic
		}
		return "", err
	}

	d.log.Debug("response received",
		zap.String("mnemonic", mnemonic),
		zap.String("payload", payload),
	)
	return payload, nil
}

// send waits for the command gap and writes the frame. With flush set,
// unread input is discarded first so a reply that outlived an earlier
// timeout cannot be taken as the answer to this frame.
func (d *Driver) send(ctx context.Context, mnemonic string, flush bool) error {
	if d.tr == nil || !d.tr.IsOpen() {
		return ErrClosed
	}

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return waitErr(ctx, mnemonic, err)
		}
	}

	if flush {
		if err := d.tr.ResetInputBuffer(); err != nil {
			return &TransportError{Op: "reset", Mnemonic: mnemonic, Err: err}
		}
	}

	frame := protocol.Frame(mnemonic)
	if _, err := d.tr.Write(frame); err != nil {
		return &TransportError{Op: "write", Mnemonic: mnemonic, Err: err}
	}

	d.log.Debug("frame sent", zap.ByteString("frame", frame))
	return nil
}

// receive polls the transport until the accumulated bytes end in CR.
func (d *Driver) receive(ctx context.Context, mnemonic string) (string, error) {
	var buf []byte

	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	for {
		n, err := d.tr.BytesAvailable()
		if err != nil {
			return "", &TransportError{Op: "poll", Mnemonic: mnemonic, Err: err}
		}

		if n > 0 {
			chunk, err := d.tr.Read(n)
			if err != nil {
				return "", &TransportError{Op: "read", Mnemonic: mnemonic, Err: err}
			}
			buf = append(buf, chunk...)

			if protocol.Complete(string(buf)) {
				return string(buf), nil
			}
		}

		select {
		case <-ctx.Done():
			d.log.Warn("no terminated response",
				zap.String("mnemonic", mnemonic),
				zap.Int("partial_bytes", len(buf)),
			)
			return "", waitErr(ctx, mnemonic, ctx.Err())
		case <-ticker.C:
		}
	}
}

// waitErr maps a ctx or limiter failure. Cancellation is passed through;
// anything deadline-related becomes ErrTimeout.
func waitErr(ctx context.Context, mnemonic string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("compressor: %s: %w", mnemonic, ctx.Err())
	}
	return fmt.Errorf("%w: %s: %w", ErrTimeout, mnemonic, err)
}
