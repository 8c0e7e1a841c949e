package fr202

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var converting = []byte{0x80, 0x00, 0x00, 0x00}

type fakeSPI struct {
	responses [][]byte
	err       error
	sent      [][]byte
	delay     time.Duration
	closed    bool
	closeErr  error
}

// Transfer replays responses in order, then repeats the last one.
func (f *fakeSPI) Transfer(tx []byte) ([]byte, error) {
	f.sent = append(f.sent, append([]byte(nil), tx...))
	time.Sleep(f.delay)
	if f.err != nil {
		return nil, f.err
	}
	i := len(f.sent) - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return append([]byte(nil), f.responses[i]...), nil
}

func (f *fakeSPI) Close() error {
	f.closed = true
	return f.closeErr
}

func newTestADC(t *testing.T, spi SerialInterface, cfg Config) *ADC {
	t.Helper()
	adc, err := NewADC(spi, WithConfig(cfg), WithLogger(zerolog.New(zerolog.NewTestWriter(t))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return adc
}

func TestADCRead(t *testing.T) {
	t.Run("Immediate", func(t *testing.T) {
		spi := &fakeSPI{responses: [][]byte{{0x2F, 0xFF, 0xFF, 0xFF}}}
		adc := newTestADC(t, spi, DefaultConfig())
		res, err := adc.Read(context.Background(), CH_AIN2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Attempts != 1 || len(spi.sent) != 1 {
			t.Errorf("expected 1 transfer, got %d (%d sent)", res.Attempts, len(spi.sent))
		}
		if res.Channel != CH_AIN2 {
			t.Errorf("unexpected channel: %s", res.Channel)
		}
		if res.Sample.Rounded() != 115.0 {
			t.Errorf("expected 115.0, got %f", res.Sample.Rounded())
		}
	})

	t.Run("PositiveLowWord", func(t *testing.T) {
		spi := &fakeSPI{responses: [][]byte{{0x20, 0xFF, 0xFF, 0xFF}}}
		adc := newTestADC(t, spi, DefaultConfig())
		res, err := adc.Read(context.Background(), CH_AIN0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Sample.Raw != 0x00FFFFFF || res.Sample.Rounded() != 7.19 {
			t.Errorf("expected 0x0FFFFFF / 7.19, got %s", res.Sample)
		}
	})

	t.Run("PollsUntilConverted", func(t *testing.T) {
		spi := &fakeSPI{responses: [][]byte{converting, converting, {0x8F, 0xFF, 0xFF, 0xFF}, {0x00, 0x00, 0x00, 0x00}}}
		adc := newTestADC(t, spi, DefaultConfig())
		res, err := adc.Read(context.Background(), CH_AIN6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Attempts != 4 {
			t.Errorf("expected 4 attempts, got %d", res.Attempts)
		}
		if res.Sample.EndOfConversion {
			t.Errorf("returned a sample with EOC set: %s", res.Sample)
		}
		if res.Sample.Raw != FullScale {
			t.Errorf("expected 0x%07X, got 0x%07X", FullScale, res.Sample.Raw)
		}
		want := []byte{0xA6, 0x00, 0x00, 0x00}
		for i, tx := range spi.sent {
			if !bytes.Equal(tx, want) {
				t.Errorf("transfer %d: expected % X, got % X", i, want, tx)
			}
		}
	})

	t.Run("AttemptLimit", func(t *testing.T) {
		spi := &fakeSPI{responses: [][]byte{converting}}
		adc := newTestADC(t, spi, Config{MaxAttempts: 5})
		res, err := adc.Read(context.Background(), CH_AIN0)
		if !errors.Is(err, ErrConversionTimeout) {
			t.Fatalf("expected ErrConversionTimeout, got %v", err)
		}
		if KindOf(err) != KindTimeout {
			t.Errorf("expected timeout kind, got %s", KindOf(err))
		}
		if res.Attempts != 5 || len(spi.sent) != 5 {
			t.Errorf("expected 5 transfers, got %d (%d sent)", res.Attempts, len(spi.sent))
		}
	})

	t.Run("Deadline", func(t *testing.T) {
		spi := &fakeSPI{responses: [][]byte{converting}, delay: time.Millisecond}
		adc := newTestADC(t, spi, Config{Timeout: 20 * time.Millisecond})
		_, err := adc.Read(context.Background(), CH_AIN1)
		if !errors.Is(err, ErrConversionTimeout) {
			t.Fatalf("expected ErrConversionTimeout, got %v", err)
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected the deadline as cause, got %v", err)
		}
	})

	t.Run("Canceled", func(t *testing.T) {
		spi := &fakeSPI{responses: [][]byte{converting}}
		adc := newTestADC(t, spi, DefaultConfig())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := adc.Read(ctx, CH_AIN1)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if errors.Is(err, ErrConversionTimeout) {
			t.Errorf("cancellation must not be reported as a timeout: %v", err)
		}
		if len(spi.sent) != 0 {
			t.Errorf("expected no transfers, got %d", len(spi.sent))
		}
	})

	t.Run("DeviceError", func(t *testing.T) {
		cause := errors.New("bus fault")
		spi := &fakeSPI{err: cause}
		adc := newTestADC(t, spi, DefaultConfig())
		_, err := adc.Read(context.Background(), CH_AIN0)
		if !errors.Is(err, ErrDevice) || !errors.Is(err, cause) {
			t.Fatalf("expected ErrDevice wrapping cause, got %v", err)
		}
		if KindOf(err) != KindDevice {
			t.Errorf("expected device kind, got %s", KindOf(err))
		}
		if len(spi.sent) != 1 {
			t.Errorf("device errors must not be retried, got %d transfers", len(spi.sent))
		}
	})

	t.Run("ShortResponse", func(t *testing.T) {
		spi := &fakeSPI{responses: [][]byte{{0x20, 0xFF}}}
		adc := newTestADC(t, spi, DefaultConfig())
		_, err := adc.Read(context.Background(), CH_AIN0)
		if KindOf(err) != KindFraming {
			t.Fatalf("expected framing error, got %v", err)
		}
	})

	t.Run("InvalidChannel", func(t *testing.T) {
		spi := &fakeSPI{responses: [][]byte{{0x20, 0xFF, 0xFF, 0xFF}}}
		adc := newTestADC(t, spi, DefaultConfig())
		_, err := adc.Read(context.Background(), Channel(12))
		if KindOf(err) != KindInvalidChannel {
			t.Fatalf("expected invalid channel, got %v", err)
		}
		if len(spi.sent) != 0 {
			t.Errorf("expected no transfers, got %d", len(spi.sent))
		}
	})
}

func TestADCClose(t *testing.T) {
	t.Run("ReleasesInterface", func(t *testing.T) {
		spi := &fakeSPI{responses: [][]byte{converting}}
		adc := newTestADC(t, spi, DefaultConfig())
		if err := adc.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !spi.closed {
			t.Error("expected interface to be closed")
		}
		if err := adc.Close(); err != nil {
			t.Errorf("second close: unexpected error: %v", err)
		}
		if _, err := adc.Read(context.Background(), CH_AIN0); KindOf(err) != KindDevice {
			t.Errorf("read after close: expected device error, got %v", err)
		}
	})

	t.Run("CloseError", func(t *testing.T) {
		spi := &fakeSPI{closeErr: errors.New("busy")}
		adc := newTestADC(t, spi, DefaultConfig())
		if err := adc.Close(); KindOf(err) != KindDevice {
			t.Errorf("expected device error, got %v", err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, cfg := range []Config{{}, {MaxAttempts: -1, Timeout: time.Second}, {MaxAttempts: 1, Timeout: -time.Second}} {
		if err := cfg.Validate(); err == nil {
			t.Errorf("%+v: expected error", cfg)
		}
	}
	if _, err := NewADC(&fakeSPI{}, WithConfig(Config{})); err == nil {
		t.Error("expected NewADC to reject an unbounded poll")
	}
}

func TestKindString(t *testing.T) {
	if KindOf(nil) != KindNone {
		t.Error("expected none for nil error")
	}
	if KindOf(errors.New("other")) != KindUnknown {
		t.Error("expected unknown for foreign error")
	}
	if KindTimeout.String() != "timeout" {
		t.Errorf("unexpected name: %s", KindTimeout)
	}
	if StateTimedOut.String() != "timed-out" {
		t.Errorf("unexpected name: %s", StateTimedOut)
	}
}
