//go:build tinygo

package ulog

import "machine"

// TinyGoSink sends frames over a machine.SPI peripheral, chip-select
// toggled low around each transfer and high again once it completes.
type TinyGoSink struct {
	spi      *machine.SPI
	cs       machine.Pin
	readyPin machine.Pin
	hasReady bool
}

// NewTinyGoSPISink configures cs as an output and wraps spi as a
// Sink. If readyPin is machine.NoPin, Ready always reports true.
func NewTinyGoSPISink(spi *machine.SPI, cs, readyPin machine.Pin) *TinyGoSink {
	cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	cs.High()

	s := &TinyGoSink{spi: spi, cs: cs}
	if readyPin != machine.NoPin {
		readyPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		s.readyPin = readyPin
		s.hasReady = true
	}
	return s
}

func (s *TinyGoSink) Send(frame []byte) error {
	s.cs.Low()
	err := s.spi.Tx(frame, nil)
	s.cs.High()
	return err
}

func (s *TinyGoSink) Ready() bool {
	if !s.hasReady {
		return true
	}
	return s.readyPin.Get()
}

// TinyGoUARTSink sends frames over a machine.UART — the more common
// choice on a board with no attached SPI peer, and a direct analogue
// of the original's raw serial byte-send port.
type TinyGoUARTSink struct {
	uart *machine.UART
}

// NewTinyGoUARTSink wraps uart as a Sink. The UART is assumed to be
// already configured.
func NewTinyGoUARTSink(uart *machine.UART) *TinyGoUARTSink {
	return &TinyGoUARTSink{uart: uart}
}

func (s *TinyGoUARTSink) Send(frame []byte) error {
	_, err := s.uart.Write(frame)
	return err
}

func (s *TinyGoUARTSink) Ready() bool { return true }

// TinyGoEdgeNotifier implements Notifier using a machine.Pin
// interrupt: the interrupt handler itself only signals a channel, all
// real work happens back on the transmit scheduler's own goroutine.
type TinyGoEdgeNotifier struct {
	*ChanNotifier
}

// NewTinyGoEdgeNotifier configures pin for change-detection on edge
// and starts signalling on every trigger.
func NewTinyGoEdgeNotifier(pin machine.Pin, edge machine.PinChange) (*TinyGoEdgeNotifier, error) {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	n := &TinyGoEdgeNotifier{ChanNotifier: NewChanNotifier()}
	if err := pin.SetInterrupt(edge, func(machine.Pin) {
		n.Signal()
	}); err != nil {
		return nil, err
	}
	return n, nil
}
