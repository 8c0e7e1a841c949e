// Package ft232h drives the FR202 ADC through an FTDI FT232H USB-to-SPI bridge
// instead of the on-board spidev controller.
package ft232h

import (
	"fmt"

	"github.com/yunginnanet/ft232h"
)

// DeviceInfo is what the USB descriptor says about a connected bridge.
type DeviceInfo struct {
	Index       int
	Serial      string
	Description string
	ProductID   string
	VendorID    string
	IsOpen      bool
	IsHighSpeed bool
}

func (ft DeviceInfo) String() string {
	return fmt.Sprintf(
		"DeviceInfo{Index:%d, Serial:%s, Description:%s, ProductID:%s, VendorID:%s, IsOpen:%t, IsHighSpeed:%t}",
		ft.Index, ft.Serial, ft.Description, ft.ProductID, ft.VendorID, ft.IsOpen, ft.IsHighSpeed,
	)
}

// FT232H represents an FT232H device wired to the ADC's SPI lines.
type FT232H struct {
	*ft232h.FT232H
	info  DeviceInfo
	csPin ft232h.CPin
}

// Info reads the USB descriptor fields from the open device.
func (ft *FT232H) Info() DeviceInfo {
	vid, pid := ft.vidPid()
	return DeviceInfo{
		Index:       ft.Index(),
		Serial:      ft.Serial(),
		Description: ft.Desc(),
		ProductID:   pid,
		VendorID:    vid,
		IsOpen:      ft.IsOpen(),
		IsHighSpeed: ft.IsHiSpeed(),
	}
}

func (ft *FT232H) String() string {
	return fmt.Sprintf("FT232H[%s:%s]: %s", ft.info.VendorID, ft.info.ProductID, ft.Desc())
}

// ConnectFT232h opens the first FT232H found, or the one matching choice.
func ConnectFT232h(choice ...Descriptor) (ft *FT232H, err error) {
	ft = &FT232H{}

	switch len(choice) {
	case 0:
		ft.FT232H, err = ft232h.New()
	case 1:
		desc := choice[0]
		if err = desc.Validate(); err != nil {
			return nil, ErrBadDescriptor
		}
		ft.FT232H, err = ft232h.OpenMask(desc.Mask())
	default:
		return nil, fmt.Errorf("invalid number of arguments")
	}

	if err != nil {
		return nil, err
	}

	ft.info = ft.Info()
	return ft, nil
}

// ConfigureSPI sets up the MPSSE SPI engine for the ADC: mode 0, active-low
// chip select on ACBUS pin cs, clock no faster than hz.
func (ft *FT232H) ConfigureSPI(hz int64, cs uint) error {
	if hz <= 0 {
		return fmt.Errorf("invalid clock speed: %d Hz", hz)
	}

	ft.csPin = ft232h.C(cs)

	spiCfg := ft.SPI.GetConfig()
	spiCfg.Clock = uint32(hz)
	spiCfg.CS = ft.csPin
	spiCfg.Mode = 0
	spiCfg.ActiveLow = true

	if err := ft.SPI.Config(spiCfg); err != nil {
		return fmt.Errorf("failed to configure SPI on %s: %w", ft, err)
	}
	return nil
}

// CSPin returns the chip select pin set by ConfigureSPI.
func (ft *FT232H) CSPin() ft232h.CPin {
	return ft.csPin
}
