package fr202

import "errors"

var (
	// ErrInvalidChannel is returned for channel addresses the multiplexer can't select.
	ErrInvalidChannel = errors.New("invalid channel address")
	// ErrDevice wraps failures of the underlying SPI transfer.
	ErrDevice = errors.New("device communication error")
	// ErrFraming is returned when a response frame isn't exactly FrameSize bytes.
	ErrFraming = errors.New("framing error")
	// ErrConversionTimeout is returned when EOC never clears within the poll budget.
	ErrConversionTimeout = errors.New("conversion timeout")
)

// Kind classifies an error returned by this package.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidChannel
	KindDevice
	KindFraming
	KindTimeout
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidChannel:
		return "invalid-channel"
	case KindDevice:
		return "device"
	case KindFraming:
		return "framing"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// KindOf returns the Kind of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidChannel):
		return KindInvalidChannel
	case errors.Is(err, ErrFraming):
		return KindFraming
	case errors.Is(err, ErrConversionTimeout):
		return KindTimeout
	case errors.Is(err, ErrDevice):
		return KindDevice
	default:
		return KindUnknown
	}
}
