package fr202

import "fmt"

type Channel int

//goland:noinspection GoSnakeCaseUsage
const (
	CH_AIN0 Channel = iota
	CH_AIN1
	CH_AIN2
	CH_AIN3
	CH_AIN4
	CH_AIN5
	CH_AIN6
	CH_AIN7
)

func (c Channel) Byte() byte {
	return byte(c)
}

// Validate reports whether c addresses one of the multiplexed inputs.
func (c Channel) Validate() error {
	if c < CH_AIN0 || c > CH_AIN7 {
		return fmt.Errorf("%w: %d (want 0-%d)", ErrInvalidChannel, int(c), NumChannels-1)
	}
	return nil
}

func (c Channel) String() string {
	switch c {
	case CH_AIN0:
		return "CH_AIN0"
	case CH_AIN1:
		return "CH_AIN1"
	case CH_AIN2:
		return "CH_AIN2"
	case CH_AIN3:
		return "CH_AIN3"
	case CH_AIN4:
		return "CH_AIN4"
	case CH_AIN5:
		return "CH_AIN5"
	case CH_AIN6:
		return "CH_AIN6"
	case CH_AIN7:
		return "CH_AIN7"
	default:
		return "(invalid channel)"
	}
}
