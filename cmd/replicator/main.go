// cmd/replicator/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tamzrod/f70-replicator/internal/compressor"
	"github.com/tamzrod/f70-replicator/internal/config"
	"github.com/tamzrod/f70-replicator/internal/httpserver"
	"github.com/tamzrod/f70-replicator/internal/logging"
	"github.com/tamzrod/f70-replicator/internal/metrics"
	"github.com/tamzrod/f70-replicator/internal/poller"
	"github.com/tamzrod/f70-replicator/internal/protocol"
	"github.com/tamzrod/f70-replicator/internal/runner"
	"github.com/tamzrod/f70-replicator/internal/writer"
)

const commandStatus = "status"

func usage() string {
	cmds := append(compressor.Actions(), commandStatus)
	return "usage: replicator <config.yaml> [" + strings.Join(cmds, "|") + "]"
}

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		log.Fatal(usage())
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	instanceID := uuid.NewString()
	logger = logger.With(zap.String("instance", instanceID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) == 3 {
		if err := runCommand(ctx, cfg, logger, os.Args[2]); err != nil {
			logger.Error("command failed", zap.String("command", os.Args[2]), zap.Error(err))
			_ = logger.Sync()
			os.Exit(1)
		}
		return
	}

	if err := runDaemon(ctx, cfg, logger, instanceID); err != nil {
		logger.Error("replicator stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// knownCommand reports whether cmd is an action or the status report.
func knownCommand(cmd string) bool {
	return cmd == commandStatus || slices.Contains(compressor.Actions(), cmd)
}

// runCommand opens the compressor, performs one action, and closes it.
// Unknown commands are rejected before the port is touched.
func runCommand(ctx context.Context, cfg *config.Config, logger *zap.Logger, cmd string) error {
	if !knownCommand(cmd) {
		return fmt.Errorf("unknown command %q (%s)", cmd, usage())
	}

	drv, err := poller.OpenDriver(cfg.Compressor, compressor.WithLogger(logger))
	if err != nil {
		return err
	}
	defer drv.Close()

	if cmd != commandStatus {
		if err := drv.Do(ctx, cmd); err != nil {
			return fmt.Errorf("%w (%s)", err, usage())
		}
		logger.Info("command sent", zap.String("command", cmd), zap.String("port", drv.Port()))
		return nil
	}

	var report struct {
		Temperatures [protocol.TemperatureChannels]int `json:"temperatures"`
		Pressures    [protocol.PressureChannels]int    `json:"pressures"`
		Status       protocol.StatusBits                `json:"status"`
		Alarms       []string                           `json:"alarms"`
		ID           protocol.Identification            `json:"id"`
	}

	if report.Status, err = drv.ReadStatusBits(ctx); err != nil {
		return err
	}
	if report.Temperatures, err = drv.ReadAllTemperatures(ctx); err != nil {
		return err
	}
	if report.Pressures, err = drv.ReadAllPressures(ctx); err != nil {
		return err
	}
	if report.ID, err = drv.ReadID(ctx); err != nil {
		return err
	}
	report.Alarms = report.Status.Alarms()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// runDaemon wires poller → runner → writers and serves HTTP until ctx ends.
func runDaemon(ctx context.Context, cfg *config.Config, logger *zap.Logger, instanceID string) error {
	reg := metrics.NewRegistry()
	driverMetrics := metrics.NewDriverMetrics(reg)
	pollMetrics := metrics.NewPollMetrics(reg)

	// ---- poller ----
	p, _, closePoller, err := poller.Build(cfg, logger, driverMetrics)
	if err != nil {
		return fmt.Errorf("poller build failed: %w", err)
	}
	defer closePoller()

	// ---- writer plan ----
	plan, err := writer.BuildPlan(cfg)
	if err != nil {
		return fmt.Errorf("writer plan failed: %w", err)
	}

	// ---- writer clients (DATA + STATUS) ----
	clients, closeWriters, err := writer.BuildEndpointClients(
		plan,
		time.Duration(cfg.Compressor.TimeoutMs)*time.Millisecond,
		logger,
	)
	if err != nil {
		return fmt.Errorf("writer clients failed: %w", err)
	}
	defer closeWriters()

	// Status writer (optional)
	var statusWriter writer.StatusWriter
	if sw, enabled := writer.NewDeviceStatusWriter(plan, clients); enabled {
		statusWriter = sw
	}

	r := runner.New(runner.Options{
		UnitID:  cfg.Compressor.ID,
		Data:    writer.New(plan, clients),
		Status:  statusWriter,
		Metrics: pollMetrics,
		Logger:  logger,
	})

	// ---- channel between poller and runner ----
	out := make(chan poller.PollResult)

	go r.Run(ctx, out)
	go p.Run(ctx, out)

	// ---- http ----
	var srv *httpserver.Server
	if cfg.HTTP.Addr != "" {
		srv = httpserver.New(cfg.HTTP, r, metrics.Handler(reg), instanceID, logger)
		go func() {
			if err := srv.Start(); err != nil {
				logger.Error("http server failed", zap.Error(err))
			}
		}()
	}

	logger.Info("replicator started",
		zap.String("unit", cfg.Compressor.ID),
		zap.String("port", cfg.Compressor.Port),
		zap.Duration("interval", p.Interval()),
		zap.Int("targets", len(plan.Targets)),
		zap.Bool("status_block", statusWriter != nil),
	)

	<-ctx.Done()
	logger.Info("shutting down")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}
	}

	return nil
}
