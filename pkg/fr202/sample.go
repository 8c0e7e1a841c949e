package fr202

import (
	"fmt"
	"strconv"
)

// Sample is one decoded response frame.
type Sample struct {
	// EndOfConversion is set while the device is still converting; Raw and
	// Normalized are stale when it is.
	EndOfConversion bool
	Sign            bool
	// Raw is the 28-bit data word after sign-dependent inversion.
	Raw        uint32
	Normalized float64
}

// Rounded returns Normalized rounded to two decimal places. The exact binary
// value is rounded, ties to even, the same way Python's round(x, 2) does.
func (s Sample) Rounded() float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(s.Normalized, 'f', 2, 64), 64)
	if err != nil {
		return s.Normalized
	}
	return r
}

func (s Sample) String() string {
	return fmt.Sprintf(
		"Sample{EOC:%t, Sign:%t, Raw:0x%07X, Normalized:%.4f}",
		s.EndOfConversion, s.Sign, s.Raw, s.Normalized,
	)
}

// Convert28 assembles the 28-bit data word, MSB first: the low nibble of
// data[0] followed by data[1..3].
func Convert28(data []byte) uint32 {
	var u32 uint32
	u32 |= uint32(data[0]&RespMSNMask) << 24
	u32 |= uint32(data[1]) << 16
	u32 |= uint32(data[2]) << 8
	u32 |= uint32(data[3])
	return u32
}

// Normalize scales a 28-bit magnitude to a percentage of full scale times RefScale.
func Normalize(raw uint32) float64 {
	return (float64(raw) / float64(FullScale)) * RefScale * 100
}

// DecodeResponse interprets a response frame.
func DecodeResponse(frame []byte) (Sample, error) {
	if len(frame) != FrameSize {
		return Sample{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrFraming, FrameSize, len(frame))
	}

	s := Sample{
		EndOfConversion: frame[0]&RespEOCbit != 0,
		Sign:            frame[0]&RespSIGNbit != 0,
		Raw:             Convert28(frame),
	}

	// sign clear => one's complement within 28 bits recovers the magnitude
	if !s.Sign {
		s.Raw ^= FullScale
	}

	s.Normalized = Normalize(s.Raw)
	return s, nil
}
