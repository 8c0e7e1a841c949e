package fr202

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SerialInterface allows for different SPI implementations.
type SerialInterface interface {
	// Transfer clocks tx out while clocking in the same number of bytes.
	Transfer(tx []byte) ([]byte, error)

	// Close closes the interface.
	Close() error
}

const (
	DefaultMaxAttempts = 100000
	DefaultTimeout     = 2 * time.Second
)

// Config bounds the end-of-conversion poll. A zero value disables that bound,
// but at least one of them must be set.
type Config struct {
	MaxAttempts int
	Timeout     time.Duration
}

// DefaultConfig provides default config. You can adjust as needed
func DefaultConfig() Config {
	return Config{
		MaxAttempts: DefaultMaxAttempts,
		Timeout:     DefaultTimeout,
	}
}

func (c Config) Validate() error {
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max attempts must not be negative: %d", c.MaxAttempts)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if c.MaxAttempts == 0 && c.Timeout == 0 {
		return fmt.Errorf("either max attempts or timeout must be set")
	}
	return nil
}

// ADC reads the FR202 analog inputs over a SerialInterface.
type ADC struct {
	mu  sync.Mutex
	spi SerialInterface
	cfg Config
	log zerolog.Logger
}

type Option func(*ADC)

func WithLogger(log zerolog.Logger) Option {
	return func(adc *ADC) {
		adc.log = log
	}
}

func WithConfig(cfg Config) Option {
	return func(adc *ADC) {
		adc.cfg = cfg
	}
}

// NewADC constructs an ADC using spi for transfers. The ADC owns spi and
// closes it in Close.
func NewADC(spi SerialInterface, opts ...Option) (*ADC, error) {
	adc := &ADC{
		spi: spi,
		cfg: DefaultConfig(),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(adc)
	}
	if err := adc.cfg.Validate(); err != nil {
		return nil, err
	}
	return adc, nil
}

// Result is the outcome of a converged poll.
type Result struct {
	Channel  Channel
	Sample   Sample
	Attempts int
	Elapsed  time.Duration
}

// Read starts a conversion on ch and polls until the device reports it
// complete. Every attempt sends the same command frame, back to back.
func (adc *ADC) Read(ctx context.Context, ch Channel) (Result, error) {
	cmd, err := EncodeCommand(ch)
	if err != nil {
		return Result{Channel: ch}, err
	}

	if adc.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, adc.cfg.Timeout)
		defer cancel()
	}

	adc.mu.Lock()
	defer adc.mu.Unlock()

	if adc.spi == nil {
		return Result{Channel: ch}, fmt.Errorf("%w: interface is closed", ErrDevice)
	}

	p := &poll{
		ch:     ch,
		cmd:    cmd,
		limit:  adc.cfg.MaxAttempts,
		state:  StatePolling,
		start:  time.Now(),
		logger: adc.log.With().Stringer("channel", ch).Logger(),
	}

	for p.state == StatePolling {
		if err = p.step(ctx, adc.spi); err != nil {
			return p.result(), err
		}
	}

	res := p.result()
	adc.log.Debug().Stringer("channel", ch).Int("attempts", res.Attempts).
		Dur("elapsed", res.Elapsed).Float64("normalized", res.Sample.Normalized).
		Msg("conversion complete")

	return res, nil
}

// Close releases the underlying SerialInterface.
func (adc *ADC) Close() error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	if adc.spi == nil {
		return nil
	}
	err := adc.spi.Close()
	adc.spi = nil
	if err != nil {
		return fmt.Errorf("%w: close: %w", ErrDevice, err)
	}
	return nil
}
