// internal/config/config.go
package config

type Config struct {
	Compressor   CompressorConfig   `yaml:"compressor"`
	Reads        []string           `yaml:"reads"`
	Poll         PollConfig         `yaml:"poll"`
	Targets      []TargetConfig     `yaml:"targets"`
	StatusMemory StatusMemoryConfig `yaml:"status_memory"`
	Logging      LoggingConfig      `yaml:"logging"`
	HTTP         HTTPConfig         `yaml:"http"`
}

// ---- SOURCE ----

type CompressorConfig struct {
	ID   string `yaml:"id"`
	Port string `yaml:"port"`

	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"`
	StopBits int    `yaml:"stop_bits"`

	TimeoutMs      int `yaml:"timeout_ms"`       // 0 = wait for terminator indefinitely
	PollIntervalMs int `yaml:"poll_interval_ms"` // receive-buffer check interval
	CommandGapMs   int `yaml:"command_gap_ms"`   // 0 = no pacing

	// Device status block (optional, opt-in)
	StatusSlot *uint16 `yaml:"status_slot"`
	DeviceName string  `yaml:"device_name"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- TARGET ----

// TargetConfig is one Modbus TCP memory receiving the replicated readings.
type TargetConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	UnitID      uint8   `yaml:"unit_id"`
	Address     uint16  `yaml:"address"`      // holding register base
	CoilAddress *uint16 `yaml:"coil_address"` // alarm coils (optional)
}

type StatusMemoryConfig struct {
	Endpoint string `yaml:"endpoint"`
	UnitID   uint8  `yaml:"unit_id"`
}

// ---- AMBIENT ----

type LoggingConfig struct {
	Level  string     `yaml:"level"`  // debug | info | warn | error
	Format string     `yaml:"format"` // json | console
	File   FileConfig `yaml:"file"`
}

type FileConfig struct {
	Filename   string `yaml:"filename"` // empty = stdout only
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type HTTPConfig struct {
	Addr        string `yaml:"addr"` // empty = disabled
	MetricsPath string `yaml:"metrics_path"`
}
