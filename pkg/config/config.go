// Package config holds the device and poll settings for fr202-adc.
package config

import (
	"time"

	"github.com/yunginnanet/fr202-adc/pkg/fr202"
)

const (
	BackendSPIDev = "spidev"
	BackendFT232H = "ft232h"
)

type Config struct {
	Device DeviceConfig `yaml:"device"`
	Poll   PollConfig   `yaml:"poll"`
	Log    LogConfig    `yaml:"log"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Backend    string       `yaml:"backend"`
	Bus        int          `yaml:"bus"`
	ChipSelect int          `yaml:"chip_select"`
	ClockHz    int64        `yaml:"clock_hz"`
	FT232H     FT232HConfig `yaml:"ft232h"`
}

// FT232HConfig selects the bridge by serial when set, else by any of
// VID/PID/Desc when set, else by index.
type FT232HConfig struct {
	Index  int    `yaml:"index"`
	Serial string `yaml:"serial"`
	VID    string `yaml:"vid"`
	PID    string `yaml:"pid"`
	Desc   string `yaml:"desc"`
	CSPin  uint   `yaml:"cs_pin"`
}

// MatchesDevice reports whether the bridge is picked by its USB descriptor.
func (f FT232HConfig) MatchesDevice() bool {
	return f.VID != "" || f.PID != "" || f.Desc != ""
}

// ---- POLL ----

type PollConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	TimeoutMs   int `yaml:"timeout_ms"`
}

// ADC converts the poll settings for fr202.WithConfig.
func (p PollConfig) ADC() fr202.Config {
	return fr202.Config{
		MaxAttempts: p.MaxAttempts,
		Timeout:     time.Duration(p.TimeoutMs) * time.Millisecond,
	}
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default matches the FR202 carrier board: spidev bus 4, chip select 0, 4 MHz.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Backend:    BackendSPIDev,
			Bus:        fr202.DefaultBus,
			ChipSelect: fr202.DefaultChipSelect,
			ClockHz:    fr202.DefaultClockHz,
		},
		Poll: PollConfig{
			MaxAttempts: fr202.DefaultMaxAttempts,
			TimeoutMs:   int(fr202.DefaultTimeout / time.Millisecond),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
