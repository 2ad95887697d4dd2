// internal/poller/builder_test.go
package poller

import (
	"testing"

	cfg "github.com/tamzrod/f70-replicator/internal/config"
)

func TestBuild_UnknownReadFailsBeforeOpen(t *testing.T) {
	c := &cfg.Config{
		Compressor: cfg.CompressorConfig{ID: "f70", Port: "/dev/f70-never-present"},
		Reads:      []string{"status", "humidity"},
		Poll:       cfg.PollConfig{IntervalMs: 1000},
	}

	if _, _, _, err := Build(c, nil, nil); err == nil {
		t.Fatalf("expected unknown read error")
	}
}

func TestBuild_MissingPortFails(t *testing.T) {
	c := &cfg.Config{
		Compressor: cfg.CompressorConfig{ID: "f70", Port: "/dev/f70-never-present"},
		Reads:      []string{"status"},
		Poll:       cfg.PollConfig{IntervalMs: 1000},
	}

	if _, _, _, err := Build(c, nil, nil); err == nil {
		t.Fatalf("expected open error for absent port")
	}
}

func TestDriverOptions(t *testing.T) {
	opts := DriverOptions(cfg.CompressorConfig{TimeoutMs: 100, PollIntervalMs: 5, CommandGapMs: 20})
	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %d", len(opts))
	}
}
