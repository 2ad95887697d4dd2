// internal/runner/runner.go
package runner

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/f70-replicator/internal/metrics"
	"github.com/tamzrod/f70-replicator/internal/poller"
	"github.com/tamzrod/f70-replicator/internal/status"
	"github.com/tamzrod/f70-replicator/internal/writer"
)

// Runner owns the device health state. It consumes poll results, delivers
// them to the data writer, and keeps the status block and metrics current.
type Runner struct {
	unitID  string
	data    writer.Writer
	status  writer.StatusWriter // nil = status block disabled
	metrics *metrics.PollMetrics
	log     *zap.Logger

	mu      sync.RWMutex
	snap    status.Snapshot
	last    poller.PollResult
	hasLast bool
}

type Options struct {
	UnitID  string
	Data    writer.Writer
	Status  writer.StatusWriter
	Metrics *metrics.PollMetrics
	Logger  *zap.Logger
}

func New(o Options) *Runner {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		unitID:  o.UnitID,
		data:    o.Data,
		status:  o.Status,
		metrics: o.Metrics,
		log:     log.With(zap.String("unit", o.UnitID)),
		snap:    status.Snapshot{Health: status.HealthUnknown},
	}
}

// Run consumes in until ctx is done, ticking seconds-in-error at 1 Hz.
func (r *Runner) Run(ctx context.Context, in <-chan poller.PollResult) {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	// Full block write on start (identity re-assert) if enabled.
	r.writeStatus("start")

	for {
		select {
		case <-ctx.Done():
			return

		case res := <-in:
			r.Handle(res)

		case <-secTicker.C:
			r.Tick()
		}
	}
}

// Handle applies one poll result.
func (r *Runner) Handle(res poller.PollResult) {
	// --- data delivery ---
	if r.data != nil {
		if err := r.data.Write(res); err != nil {
			r.log.Warn("writer error", zap.Error(err))
		}
	}

	r.observe(res)

	r.mu.Lock()
	prev := r.snap
	r.last = res
	r.hasLast = true

	if res.Err == nil {
		// Recovery / OK
		r.snap.Health = status.HealthOK
		r.snap.LastErrorCode = status.ErrorNone
		r.snap.SecondsInError = 0
		if res.Status != nil {
			r.snap.StatusBits = res.Status.Raw
			r.snap.StateNumber = uint16(res.Status.StateNumber)
		}
	} else {
		// Error: seconds_in_error increments on the 1 Hz ticker only.
		r.snap.Health = status.HealthError
		r.snap.LastErrorCode = status.ErrorCode(res.Err)
	}
	snap := r.snap
	r.mu.Unlock()

	switch {
	case res.Err != nil && prev.Health != status.HealthError:
		r.log.Error("compressor poll failed", zap.Error(res.Err), zap.Uint16("code", snap.LastErrorCode))
	case res.Err != nil:
		r.log.Debug("compressor poll failed", zap.Error(res.Err))
	case prev.Health == status.HealthError:
		r.log.Info("compressor recovered", zap.Uint16("seconds_in_error", prev.SecondsInError))
	}

	if res.Status != nil && res.Status.HasAlarm() {
		r.log.Warn("compressor alarm",
			zap.Strings("alarms", res.Status.Alarms()),
			zap.Stringer("state", res.Status.State),
		)
	}

	if snap != prev {
		r.writeStatus("poll")
	}
}

// Tick advances seconds-in-error while the device is not OK.
func (r *Runner) Tick() {
	r.mu.Lock()
	if r.snap.Health == status.HealthOK || r.snap.SecondsInError >= status.SecondsInErrorMax {
		r.mu.Unlock()
		return
	}
	r.snap.SecondsInError++
	r.mu.Unlock()

	r.writeStatus("tick")
}

// Snapshot returns the current health snapshot.
func (r *Runner) Snapshot() status.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// LastResult returns the most recent poll result, if any.
func (r *Runner) LastResult() (poller.PollResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last, r.hasLast
}

// Ready reports whether the last poll succeeded.
func (r *Runner) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasLast && r.last.Err == nil
}

func (r *Runner) writeStatus(reason string) {
	snap := r.Snapshot()
	r.metrics.SetHealth(snap.Health)

	if r.status == nil {
		return
	}
	if err := r.status.WriteStatus(snap); err != nil {
		r.log.Warn("status write failed", zap.String("reason", reason), zap.Error(err))
	}
}

func (r *Runner) observe(res poller.PollResult) {
	if res.Err != nil {
		r.metrics.PollDone(resultLabel(res.Err))
		return
	}
	r.metrics.PollDone("ok")
	if res.Temperatures != nil {
		r.metrics.SetTemperatures(*res.Temperatures)
	}
	if res.Pressures != nil {
		r.metrics.SetPressures(*res.Pressures)
	}
	if res.Status != nil {
		r.metrics.SetStatus(*res.Status)
	}
	if res.ID != nil {
		r.metrics.SetOperatingHours(res.ID.OperatingHours)
	}
}

func resultLabel(err error) string {
	switch status.ErrorCode(err) {
	case status.ErrorTimeout:
		return "timeout"
	case status.ErrorTransport:
		return "transport"
	case status.ErrorMalformed:
		return "malformed"
	default:
		return "error"
	}
}
