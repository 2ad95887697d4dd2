// internal/config/normalize.go
package config

import "strings"

const (
	DefaultCompressorID   = "f70"
	DefaultMetricsPath    = "/metrics"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
	DefaultPollIntervalMs = 10

	deviceNameMaxChars = 16
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	c := &cfg.Compressor
	if c.ID == "" {
		c.ID = DefaultCompressorID
	}
	if c.PollIntervalMs == 0 {
		c.PollIntervalMs = DefaultPollIntervalMs
	}

	// device_name: ASCII already validated, truncate to the 8-register field
	if len(c.DeviceName) > deviceNameMaxChars {
		c.DeviceName = c.DeviceName[:deviceNameMaxChars]
	}
	if c.StatusSlot != nil && c.DeviceName == "" {
		c.DeviceName = c.ID
		if len(c.DeviceName) > deviceNameMaxChars {
			c.DeviceName = c.DeviceName[:deviceNameMaxChars]
		}
	}

	for i, r := range cfg.Reads {
		cfg.Reads[i] = strings.ToLower(strings.TrimSpace(r))
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.HTTP.MetricsPath == "" {
		cfg.HTTP.MetricsPath = DefaultMetricsPath
	}
}
