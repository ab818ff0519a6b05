//go:build !tinygo

package ulog

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// PeriphConfig describes the SPI link and optional ready-probe pin a
// PeriphSink drives. It follows the same zero-value-means-default
// convention as this package's Config.
type PeriphConfig struct {
	// SPIPort selects the port by name, e.g. "SPI0.0". Empty selects
	// spireg's default port.
	SPIPort string
	// Speed is the SPI clock. Zero selects 1MHz.
	Speed physic.Frequency
	// Mode is the SPI clock polarity/phase. Zero selects spi.Mode0.
	Mode spi.Mode
	// Bits is the word size in bits. Zero selects 8.
	Bits int
	// ReadyPin, if set, is read to answer Ready(): high means the
	// receiver can currently accept a frame. Left empty, the sink is
	// always Ready, suitable for a peer with no flow-control line.
	ReadyPin string
}

// PeriphSink sends frames over a real SPI link using periph.io, the
// same library used elsewhere in this package's hardware adapters for
// SPI/GPIO access — here driving a plain framed byte link rather than
// a packet-radio transceiver.
type PeriphSink struct {
	conn     spi.Conn
	port     spi.PortCloser
	readyPin gpio.PinIO
}

// NewPeriphSink opens the configured SPI port and, if requested, the
// ready-probe GPIO pin.
func NewPeriphSink(cfg PeriphConfig) (*PeriphSink, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("ulog: host init: %w", err)
	}
	if cfg.Speed == 0 {
		cfg.Speed = physic.MegaHertz
	}
	if cfg.Bits == 0 {
		cfg.Bits = 8
	}

	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("ulog: open spi port: %w", err)
	}
	conn, err := port.Connect(cfg.Speed, cfg.Mode, cfg.Bits)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("ulog: connect spi: %w", err)
	}

	s := &PeriphSink{conn: conn, port: port}

	if cfg.ReadyPin != "" {
		pin := gpioreg.ByName(cfg.ReadyPin)
		if pin == nil {
			port.Close()
			return nil, fmt.Errorf("ulog: ready pin %q not found", cfg.ReadyPin)
		}
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			port.Close()
			return nil, fmt.Errorf("ulog: configure ready pin: %w", err)
		}
		s.readyPin = pin
	}
	return s, nil
}

// Send transmits frame over SPI, discarding whatever the peer clocks
// back — the wire protocol this package implements is one-directional.
func (s *PeriphSink) Send(frame []byte) error {
	rx := make([]byte, len(frame))
	return s.conn.Tx(frame, rx)
}

// Ready reports the configured ready pin's level, or true if none was
// configured.
func (s *PeriphSink) Ready() bool {
	if s.readyPin == nil {
		return true
	}
	return s.readyPin.Read() == gpio.High
}

// Close releases the underlying SPI port.
func (s *PeriphSink) Close() error {
	return s.port.Close()
}

// PeriphEdgeNotifier implements Notifier by watching a GPIO pin for
// an edge — typically the same line a real receiver pulses when it
// wants a retry, or a free-running timer GPIO standing in for a
// scheduling tick. A dedicated goroutine blocks in WaitForEdge and
// coalesces edges into the shared ChanNotifier.
type PeriphEdgeNotifier struct {
	*ChanNotifier
	pin  gpio.PinIO
	stop chan struct{}
}

// NewPeriphEdgeNotifier configures pinName for edge-detection and
// starts watching it.
func NewPeriphEdgeNotifier(pinName string, edge gpio.Edge) (*PeriphEdgeNotifier, error) {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("ulog: irq pin %q not found", pinName)
	}
	if err := pin.In(gpio.PullUp, edge); err != nil {
		return nil, fmt.Errorf("ulog: configure irq pin: %w", err)
	}

	n := &PeriphEdgeNotifier{
		ChanNotifier: NewChanNotifier(),
		pin:          pin,
		stop:         make(chan struct{}),
	}
	go n.watch()
	return n, nil
}

func (n *PeriphEdgeNotifier) watch() {
	for {
		if n.pin.WaitForEdge(-1) {
			select {
			case <-n.stop:
				return
			default:
				n.Signal()
			}
		} else {
			select {
			case <-n.stop:
				return
			default:
			}
		}
	}
}

// Close stops the watcher goroutine.
func (n *PeriphEdgeNotifier) Close() error {
	close(n.stop)
	// Halt unblocks a pending WaitForEdge so watch sees stop now
	// rather than at the next edge.
	return n.pin.Halt()
}
