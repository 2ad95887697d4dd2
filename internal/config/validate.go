// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// Read names accepted in reads[].
const (
	ReadTemperatures = "temperatures"
	ReadPressures    = "pressures"
	ReadStatus       = "status"
	ReadID           = "id"
)

// Replicated memory geometry per target. Kept in step with the writer layout.
const (
	DataRegisterCount = 11
	AlarmCoilCount    = 10

	statusSlotsPerDevice = 20
)

func knownRead(name string) bool {
	switch name {
	case ReadTemperatures, ReadPressures, ReadStatus, ReadID:
		return true
	}
	return false
}

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	c := cfg.Compressor

	// ------------------------------------------------------------
	// SOURCE
	// ------------------------------------------------------------

	if c.Port == "" {
		return fmt.Errorf("compressor.port is required")
	}
	if c.BaudRate < 0 {
		return fmt.Errorf("compressor.baud_rate must be >= 0")
	}
	if c.TimeoutMs < 0 || c.PollIntervalMs < 0 || c.CommandGapMs < 0 {
		return fmt.Errorf("compressor timing values must be >= 0")
	}

	// device_name sanity (ASCII only)
	for i := 0; i < len(c.DeviceName); i++ {
		if c.DeviceName[i] > 0x7F {
			return fmt.Errorf("compressor.device_name must contain ASCII characters only")
		}
	}

	// ------------------------------------------------------------
	// READS + POLL
	// ------------------------------------------------------------

	if len(cfg.Reads) == 0 {
		return fmt.Errorf("reads: at least one read is required")
	}
	seen := make(map[string]bool)
	for _, r := range cfg.Reads {
		name := strings.ToLower(strings.TrimSpace(r))
		if !knownRead(name) {
			return fmt.Errorf("reads: unknown read %q", r)
		}
		if seen[name] {
			return fmt.Errorf("reads: %q listed twice", name)
		}
		seen[name] = true
	}

	if cfg.Poll.IntervalMs <= 0 {
		return fmt.Errorf("poll.interval_ms must be > 0")
	}

	// ------------------------------------------------------------
	// DEVICE STATUS BLOCK (OPT-IN)
	// ------------------------------------------------------------

	if c.StatusSlot != nil && cfg.StatusMemory.Endpoint == "" {
		return fmt.Errorf("compressor.status_slot is set but status_memory.endpoint is empty")
	}

	// ------------------------------------------------------------
	// DESTINATION MEMORY GEOMETRY
	// ------------------------------------------------------------

	type span struct {
		start uint32
		end   uint32
		owner string
	}

	// key = endpoint | unit_id | area
	spans := make(map[string][]span)

	claim := func(endpoint string, unitID uint8, area string, start uint32, qty uint32, owner string) error {
		end := start + qty - 1
		if end > 0xFFFF {
			return fmt.Errorf("%s: range %d-%d exceeds the 16-bit address space", owner, start, end)
		}

		key := fmt.Sprintf("%s|%d|%s", endpoint, unitID, area)
		for _, s := range spans[key] {
			// overlap check (inclusive)
			if !(end < s.start || start > s.end) {
				return fmt.Errorf(
					"memory overlap: endpoint=%s unit_id=%d %s range=%d-%d overlaps with %s range=%d-%d",
					endpoint, unitID, area, start, end, s.owner, s.start, s.end,
				)
			}
		}
		spans[key] = append(spans[key], span{start: start, end: end, owner: owner})
		return nil
	}

	if c.StatusSlot != nil {
		sm := cfg.StatusMemory
		base := uint32(*c.StatusSlot) * statusSlotsPerDevice
		if err := claim(sm.Endpoint, sm.UnitID, "registers", base, statusSlotsPerDevice, "status block"); err != nil {
			return err
		}
	}

	for i, t := range cfg.Targets {
		owner := fmt.Sprintf("targets[%d]", i)
		if t.Endpoint == "" {
			return fmt.Errorf("%s: endpoint is required", owner)
		}
		if err := claim(t.Endpoint, t.UnitID, "registers", uint32(t.Address), DataRegisterCount, owner); err != nil {
			return err
		}
		if t.CoilAddress != nil {
			if err := claim(t.Endpoint, t.UnitID, "coils", uint32(*t.CoilAddress), AlarmCoilCount, owner); err != nil {
				return err
			}
		}
	}

	// ------------------------------------------------------------
	// AMBIENT
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format %q is not json or console", cfg.Logging.Format)
	}
	if p := cfg.HTTP.MetricsPath; p != "" && !strings.HasPrefix(p, "/") {
		return fmt.Errorf("http.metrics_path must start with /")
	}

	return nil
}
