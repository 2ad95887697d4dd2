// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	"go.uber.org/zap"

	cfg "github.com/tamzrod/f70-replicator/internal/config"
	wmodbus "github.com/tamzrod/f70-replicator/internal/writer/modbus"
)

// BuildPlan converts the config into a Writer Plan.
// Assumes config has already passed validation.
func BuildPlan(c *cfg.Config) (Plan, error) {
	if c.Compressor.ID == "" {
		return Plan{}, errors.New("writer: compressor.id required")
	}

	plan := Plan{UnitID: c.Compressor.ID}

	for _, t := range c.Targets {
		plan.Targets = append(plan.Targets, TargetEndpoint{
			Endpoint:    t.Endpoint,
			UnitID:      t.UnitID,
			Address:     t.Address,
			CoilAddress: t.CoilAddress,
		})
	}

	if c.Compressor.StatusSlot != nil {
		plan.Status = &StatusPlan{
			Endpoint:   c.StatusMemory.Endpoint,
			UnitID:     c.StatusMemory.UnitID,
			BaseSlot:   *c.Compressor.StatusSlot,
			DeviceName: c.Compressor.DeviceName,
		}
	}

	return plan, nil
}

// BuildEndpointClients creates one TCP client per unique endpoint
// (data targets and status memory).
func BuildEndpointClients(plan Plan, timeout time.Duration, log *zap.Logger) (map[string]endpointClient, func() error, error) {
	unique := map[string]struct{}{}
	for _, t := range plan.Targets {
		unique[t.Endpoint] = struct{}{}
	}
	if plan.Status != nil {
		unique[plan.Status.Endpoint] = struct{}{}
	}

	clients := make(map[string]endpointClient)
	var closers []func() error

	for endpoint := range unique {
		c, err := wmodbus.NewEndpointClient(wmodbus.Config{
			Endpoint: endpoint,
			Timeout:  timeout,
			Logger:   log,
		})
		if err != nil {
			for _, fn := range closers {
				_ = fn()
			}
			return nil, nil, err
		}
		clients[endpoint] = c
		closers = append(closers, c.Close)
	}

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	return clients, closeAll, nil
}
