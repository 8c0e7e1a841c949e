// Package spidev exposes a Linux spidev character device as an fr202.SerialInterface.
package spidev

import (
	"fmt"

	"go.uber.org/multierr"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Port is an open SPI port with a configured connection.
type Port struct {
	name string
	hz   int64
	port spi.PortCloser
	conn spi.Conn
}

// Name returns the periph registry name of the port, e.g. "SPI4.0".
func Name(bus, cs int) string {
	return fmt.Sprintf("SPI%d.%d", bus, cs)
}

// Open initializes the host drivers, opens /dev/spidev<bus>.<cs> and connects
// in SPI mode 0 with 8 bit words at no more than hz.
func Open(bus, cs int, hz int64) (*Port, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}
	name := Name(bus, cs)
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	port, err := New(name, p, hz)
	if err != nil {
		return nil, multierr.Append(err, p.Close())
	}
	return port, nil
}

// New configures an already opened port. The returned Port owns p.
func New(name string, p spi.PortCloser, hz int64) (*Port, error) {
	if hz <= 0 {
		return nil, fmt.Errorf("invalid clock speed: %d Hz", hz)
	}
	f := physic.Frequency(hz) * physic.Hertz
	if err := p.LimitSpeed(f); err != nil {
		return nil, fmt.Errorf("failed to limit %s to %s: %w", name, f, err)
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", name, err)
	}
	return &Port{name: name, hz: hz, port: p, conn: c}, nil
}

// Transfer performs one full-duplex transaction with chip select held for
// the whole of tx.
func (p *Port) Transfer(tx []byte) ([]byte, error) {
	rx := make([]byte, len(tx))
	if err := p.conn.Tx(tx, rx); err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	return rx, nil
}

// Close closes the port.
func (p *Port) Close() error {
	return p.port.Close()
}

func (p *Port) String() string {
	return fmt.Sprintf("%s@%s", p.name, physic.Frequency(p.hz)*physic.Hertz)
}
