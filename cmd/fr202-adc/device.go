package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/yunginnanet/fr202-adc/pkg/config"
	"github.com/yunginnanet/fr202-adc/pkg/fr202"
	"github.com/yunginnanet/fr202-adc/pkg/ft232h"
	"github.com/yunginnanet/fr202-adc/pkg/spidev"
)

// openInterface is swapped out in tests.
var openInterface = openDevice

func ft232hDescriptor(cfg config.FT232HConfig) ft232h.Descriptor {
	switch {
	case cfg.Serial != "":
		return ft232h.BySerial(cfg.Serial)
	case cfg.MatchesDevice():
		return ft232h.ByDevice(cfg.VID, cfg.PID, cfg.Desc)
	default:
		return ft232h.ByIndex(cfg.Index)
	}
}

func openDevice(cfg config.DeviceConfig, log zerolog.Logger) (fr202.SerialInterface, error) {
	switch cfg.Backend {
	case config.BackendSPIDev:
		p, err := spidev.Open(cfg.Bus, cfg.ChipSelect, cfg.ClockHz)
		if err != nil {
			return nil, err
		}
		log.Debug().Stringer("port", p).Msg("opened spidev port")
		return p, nil

	case config.BackendFT232H:
		desc := ft232hDescriptor(cfg.FT232H)
		ft, err := ft232h.ConnectFT232h(desc)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to FT232H (%s): %w", desc, err)
		}
		log.Debug().Stringer("info", ft.Info()).Msgf("connected to FT232H: %s", ft)

		if err = ft.ConfigureSPI(cfg.ClockHz, cfg.FT232H.CSPin); err != nil {
			return nil, multierr.Append(err, ft.Close())
		}
		return ft, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
