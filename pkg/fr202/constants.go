package fr202

// Constants from the FR202 analog input reference

// Command byte 0 bits
const (
	// CmdStart begins a conversion.
	CmdStart = 0x80
	// CmdSingleEnded selects single-ended input mode.
	CmdSingleEnded = 0x20
	// CmdAddrMask holds the channel address. Bits 4 and 3 are always 0 for
	// channels 0-7.
	CmdAddrMask = 0x0F
)

// Response byte 0 bits
const (
	RespEOCbit  = 0x80 // (bit7, 1 while converting)
	RespSIGNbit = 0x20 // (bit5, 1 for positive readings)
	RespMSNMask = 0x0F // most significant nibble of the data word
)

const (
	// FrameSize is the length of both the command and the response frame.
	FrameSize = 4

	// FullScale is the largest 28-bit magnitude.
	FullScale uint32 = 0x0FFFFFFF

	// RefScale is the reference voltage / gain factor applied to the ratio.
	RefScale = 1.15

	// NumChannels is the number of multiplexed inputs.
	NumChannels = 8
)

// Bus defaults for the FR202 carrier board.
const (
	DefaultBus        = 4
	DefaultChipSelect = 0
	DefaultClockHz    = 4000000
)
