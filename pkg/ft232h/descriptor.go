package ft232h

import (
	"fmt"
	"strconv"

	"github.com/yunginnanet/ft232h"
)

var ErrBadDescriptor = fmt.Errorf("invalid FT232H descriptor provided")

// Descriptor picks one bridge out of the FTDI devices on the USB bus.
type Descriptor struct {
	Index  int
	Serial string
	mask   *ft232h.Mask
}

// Validate fails when the descriptor would match nothing in particular.
func (ftd Descriptor) Validate() error {
	if ftd.Index < 0 && ftd.Serial == "" && emptyMask(ftd.mask) {
		return ErrBadDescriptor
	}
	return nil
}

// Mask merges Index and Serial into the match mask handed to the driver.
func (ftd Descriptor) Mask() *ft232h.Mask {
	if ftd.mask == nil {
		ftd.mask = new(ft232h.Mask)
	}
	if ftd.Serial != "" {
		ftd.mask.Serial = ftd.Serial
	}
	if ftd.Index >= 0 {
		ftd.mask.Index = strconv.Itoa(ftd.Index)
	}
	return ftd.mask
}

func (ftd Descriptor) String() string {
	return fmt.Sprintf("Descriptor{Index:%d, Serial:%s, mask:%v}", ftd.Index, ftd.Serial, ftd.mask)
}

func ByIndex(index int) Descriptor {
	return Descriptor{Index: index}
}

func BySerial(serial string) Descriptor {
	return Descriptor{Serial: serial, Index: -1}
}

func ByMask(mask *ft232h.Mask) Descriptor {
	return Descriptor{mask: mask, Index: -1}
}

// ByDevice matches on USB vendor ID, product ID and product description.
// Empty fields match anything.
func ByDevice(vid, pid, desc string) Descriptor {
	return ByMask(&ft232h.Mask{VID: vid, PID: pid, Desc: desc})
}
