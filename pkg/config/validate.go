package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	d := cfg.Device

	switch d.Backend {
	case BackendSPIDev:
		if d.Bus < 0 {
			return fmt.Errorf("device: bus must not be negative: %d", d.Bus)
		}
		if d.ChipSelect < 0 {
			return fmt.Errorf("device: chip_select must not be negative: %d", d.ChipSelect)
		}
	case BackendFT232H:
		if d.FT232H.Index < 0 && d.FT232H.Serial == "" && !d.FT232H.MatchesDevice() {
			return fmt.Errorf("device: ft232h needs an index, a serial or a vid/pid/desc match")
		}
	default:
		return fmt.Errorf("device: unknown backend %q (want %q or %q)", d.Backend, BackendSPIDev, BackendFT232H)
	}

	if d.ClockHz <= 0 {
		return fmt.Errorf("device: clock_hz must be positive: %d", d.ClockHz)
	}

	if cfg.Poll.TimeoutMs < 0 {
		return fmt.Errorf("poll: timeout_ms must not be negative: %d", cfg.Poll.TimeoutMs)
	}
	if err := cfg.Poll.ADC().Validate(); err != nil {
		return fmt.Errorf("poll: %w", err)
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}
