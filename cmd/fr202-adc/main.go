package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/yunginnanet/fr202-adc/pkg/config"
	"github.com/yunginnanet/fr202-adc/pkg/fr202"
)

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "fr202-adc",
		Usage:     "read one FR202 analog input and print it as JSON",
		ArgsUsage: "<channel 0-7>",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config `FILE`", EnvVars: []string{"FR202_ADC_CONFIG"}},
			&cli.StringFlag{Name: "backend", Usage: "SPI backend: spidev or ft232h", EnvVars: []string{"FR202_ADC_BACKEND"}},
			&cli.IntFlag{Name: "bus", Usage: "spidev bus number", EnvVars: []string{"FR202_ADC_BUS"}},
			&cli.IntFlag{Name: "cs", Usage: "spidev chip select", EnvVars: []string{"FR202_ADC_CS"}},
			&cli.Int64Flag{Name: "speed", Usage: "maximum SPI clock in Hz", EnvVars: []string{"FR202_ADC_SPEED"}},
			&cli.DurationFlag{Name: "timeout", Usage: "give up if conversion doesn't complete in time", EnvVars: []string{"FR202_ADC_TIMEOUT"}},
			&cli.IntFlag{Name: "max-attempts", Usage: "give up after this many transfers", EnvVars: []string{"FR202_ADC_MAX_ATTEMPTS"}},
			&cli.IntFlag{Name: "ft232h-index", Usage: "FT232H device index", EnvVars: []string{"FR202_ADC_FT232H_INDEX"}},
			&cli.StringFlag{Name: "ft232h-serial", Usage: "FT232H serial number, overrides the index", EnvVars: []string{"FR202_ADC_FT232H_SERIAL"}},
			&cli.StringFlag{Name: "ft232h-vid", Usage: "FT232H USB vendor ID match", EnvVars: []string{"FR202_ADC_FT232H_VID"}},
			&cli.StringFlag{Name: "ft232h-pid", Usage: "FT232H USB product ID match", EnvVars: []string{"FR202_ADC_FT232H_PID"}},
			&cli.StringFlag{Name: "ft232h-desc", Usage: "FT232H USB product description match", EnvVars: []string{"FR202_ADC_FT232H_DESC"}},
			&cli.UintFlag{Name: "ft232h-cs", Usage: "FT232H chip select pin", EnvVars: []string{"FR202_ADC_FT232H_CS"}},
			&cli.StringFlag{Name: "log-level", Usage: "zerolog level for diagnostics on stderr", EnvVars: []string{"FR202_ADC_LOG_LEVEL"}},
		},
		Action: func(c *cli.Context) error {
			return read(c, stdout, stderr)
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return usageError{err}
		},
		HideHelpCommand: true,
		ExitErrHandler:  func(*cli.Context, error) {},
	}
}

func parseChannel(c *cli.Context) (fr202.Channel, error) {
	if c.NArg() != 1 {
		return 0, usageError{fmt.Errorf("expected exactly one channel argument, got %d", c.NArg())}
	}
	n, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return 0, usageError{fmt.Errorf("bad channel %q: %w", c.Args().First(), err)}
	}
	ch := fr202.Channel(n)
	if err = ch.Validate(); err != nil {
		return 0, usageError{err}
	}
	return ch, nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, usageError{err}
		}
	}

	if c.IsSet("backend") {
		cfg.Device.Backend = c.String("backend")
	}
	if c.IsSet("bus") {
		cfg.Device.Bus = c.Int("bus")
	}
	if c.IsSet("cs") {
		cfg.Device.ChipSelect = c.Int("cs")
	}
	if c.IsSet("speed") {
		cfg.Device.ClockHz = c.Int64("speed")
	}
	if c.IsSet("ft232h-index") {
		cfg.Device.FT232H.Index = c.Int("ft232h-index")
	}
	if c.IsSet("ft232h-serial") {
		cfg.Device.FT232H.Serial = c.String("ft232h-serial")
	}
	if c.IsSet("ft232h-vid") {
		cfg.Device.FT232H.VID = c.String("ft232h-vid")
	}
	if c.IsSet("ft232h-pid") {
		cfg.Device.FT232H.PID = c.String("ft232h-pid")
	}
	if c.IsSet("ft232h-desc") {
		cfg.Device.FT232H.Desc = c.String("ft232h-desc")
	}
	if c.IsSet("ft232h-cs") {
		cfg.Device.FT232H.CSPin = c.Uint("ft232h-cs")
	}
	if c.IsSet("timeout") {
		cfg.Poll.TimeoutMs = int(c.Duration("timeout") / time.Millisecond)
	}
	if c.IsSet("max-attempts") {
		cfg.Poll.MaxAttempts = c.Int("max-attempts")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if err := config.Validate(cfg); err != nil {
		return nil, usageError{err}
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	cw := zerolog.ConsoleWriter{Out: w}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
}

func read(c *cli.Context, stdout, stderr io.Writer) error {
	ch, err := parseChannel(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(stderr, cfg.Log.Level)

	res, err := measure(c.Context, cfg, ch, log)
	if err != nil {
		return err
	}

	return writeReading(stdout, res.Sample.Rounded())
}

// measure owns the device for a single read; the interface is released on every path.
func measure(ctx context.Context, cfg *config.Config, ch fr202.Channel, log zerolog.Logger) (res fr202.Result, err error) {
	si, err := openInterface(cfg.Device, log)
	if err != nil {
		return res, fmt.Errorf("%w: %w", fr202.ErrDevice, err)
	}

	adc, err := fr202.NewADC(si, fr202.WithConfig(cfg.Poll.ADC()), fr202.WithLogger(log))
	if err != nil {
		return res, multierr.Append(err, si.Close())
	}
	defer func() {
		err = multierr.Append(err, adc.Close())
	}()

	return adc.Read(ctx, ch)
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newApp(stdout, stderr).RunContext(ctx, args)
	if err != nil {
		code := exitCode(err)
		_, _ = fmt.Fprintf(stderr, "fr202-adc: %v\n", err)
		if code == exitUsage {
			_, _ = fmt.Fprintf(stderr, "usage: fr202-adc [flags] <channel 0-7>\n")
		}
		return code
	}
	return exitOK
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
