package fr202

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// State of an end-of-conversion poll.
type State int

const (
	StatePolling State = iota
	StateConverged
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateConverged:
		return "converged"
	case StateTimedOut:
		return "timed-out"
	default:
		return "(invalid state)"
	}
}

type poll struct {
	ch       Channel
	cmd      [FrameSize]byte
	limit    int
	attempts int
	state    State
	sample   Sample
	start    time.Time
	logger   zerolog.Logger
}

func (p *poll) result() Result {
	return Result{
		Channel:  p.ch,
		Sample:   p.sample,
		Attempts: p.attempts,
		Elapsed:  time.Since(p.start),
	}
}

func (p *poll) timeout(cause error) error {
	p.state = StateTimedOut
	p.logger.Warn().Int("attempts", p.attempts).Dur("elapsed", time.Since(p.start)).
		Msg("end of conversion never cleared")
	return fmt.Errorf("%w: %s after %d attempts: %w", ErrConversionTimeout, p.ch, p.attempts, cause)
}

var errAttemptsExhausted = errors.New("attempt limit reached")

// step performs one transfer and advances the state machine.
func (p *poll) step(ctx context.Context, spi SerialInterface) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return p.timeout(err)
		}
		return fmt.Errorf("poll %s: %w", p.ch, err)
	}
	if p.limit > 0 && p.attempts >= p.limit {
		return p.timeout(errAttemptsExhausted)
	}

	// the device clocks into tx on some backends; never hand out p.cmd itself
	tx := p.cmd
	rx, err := spi.Transfer(tx[:])
	p.attempts++
	if err != nil {
		return fmt.Errorf("%w: transfer %d on %s: %w", ErrDevice, p.attempts, p.ch, err)
	}

	s, err := DecodeResponse(rx)
	if err != nil {
		return err
	}

	p.logger.Trace().Int("attempt", p.attempts).Hex("rx", rx).Bool("eoc", s.EndOfConversion).Send()

	p.sample = s
	if !s.EndOfConversion {
		p.state = StateConverged
	}
	return nil
}
