// SPDX-License-Identifier: MIT

// Package hc595 provides a bit bashed driver for 74HC595 8-bit shift
// registers using 3 GPIO lines.
//
// The driver clocks bytes serially onto the data line and strobes the
// register's latch clock to present them on the chip's parallel outputs.
// Several registers may be daisy chained; each Write pushes earlier bytes
// one register deeper in the chain.
package hc595

import (
	"errors"
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// BitOrder selects the order in which the bits of a byte are clocked onto
// the data line.
//
// The two orders produce bit reversed parallel outputs, so pattern tables
// are only valid for the order they were authored for.
type BitOrder int

const (
	// MSBFirst shifts bit 7 first, so bit n of a byte lands on output Qn.
	//
	// This is the order the kit's pattern tables are authored for.
	MSBFirst BitOrder = iota

	// LSBFirst shifts bit 0 first, so bit n of a byte lands on output Q(7-n).
	LSBFirst
)

// Pin represents a single requested GPIO output line.
//
// It is satisfied by *gpiocdev.Line.
type Pin interface {
	SetValue(int) error
	Close() error
}

// HC595 represents a chain of one or more 74HC595 shift registers connected
// to three GPIO lines.
//
// An HC595 is not safe to call concurrently; the owner is responsible for
// serializing calls on a single instance.
type HC595 struct {
	// time the shift and latch clocks are held high (i.e. the strobe width)
	Tclk time.Duration

	order  BitOrder
	sdi    Pin
	rclk   Pin
	srclk  Pin
	closed bool
}

// ErrClosed indicates the driver has been closed.
var ErrClosed = errors.New("closed")

// ErrLineUnavailable indicates a required GPIO line could not be requested.
var ErrLineUnavailable = errors.New("GPIO line unavailable")

// New creates an HC595 by requesting the data (SDI), latch clock (RCLK) and
// shift clock (SRCLK) offsets from the chip as outputs driven low.
//
// Lines requested before a failure are released before returning.
func New(c *gpiocdev.Chip, sdi, rclk, srclk int, options ...Option) (*HC595, error) {
	ll := []*gpiocdev.Line(nil)
	for _, o := range []int{sdi, rclk, srclk} {
		l, err := c.RequestLine(o, gpiocdev.AsOutput(0))
		if err != nil {
			for _, r := range ll {
				r.Close()
			}
			return nil, fmt.Errorf("%w: offset %d: %v", ErrLineUnavailable, o, err)
		}
		ll = append(ll, l)
	}
	return NewPins(ll[0], ll[1], ll[2], options...)
}

// NewPins creates an HC595 from already requested lines.
//
// The driver takes ownership of the pins and drives them low; they are
// released by Close.
func NewPins(sdi, rclk, srclk Pin, options ...Option) (*HC595, error) {
	h := HC595{sdi: sdi, rclk: rclk, srclk: srclk}
	for _, option := range options {
		option(&h)
	}
	if h.Tclk == 0 {
		// comfortably above the 74HC595 minimum pulse width
		h.Tclk = time.Microsecond
	}
	for _, p := range []Pin{sdi, rclk, srclk} {
		if err := p.SetValue(0); err != nil {
			return nil, err
		}
	}
	return &h, nil
}

// Write clocks the 8 bits of data into the shift register, in the
// configured bit order.
//
// The parallel outputs are unchanged until Latch is called. Writing several
// bytes before a Latch stacks them down a chain of registers, earliest byte
// deepest.
func (h *HC595) Write(data byte) error {
	if h.closed {
		return ErrClosed
	}
	return h.shiftByte(data)
}

// Latch strobes the latch clock, copying the shift register contents to the
// parallel outputs.
func (h *HC595) Latch() error {
	if h.closed {
		return ErrClosed
	}
	return h.strobe(h.rclk)
}

// Set shifts the given bytes and latches them to the parallel outputs.
//
// For chained registers list the byte for the register furthest from the
// data line first.
func (h *HC595) Set(data ...byte) error {
	for _, d := range data {
		if err := h.Write(d); err != nil {
			return err
		}
	}
	return h.Latch()
}

// Close zeroes the register outputs and releases the lines.
//
// The all-zero shift and latch is best effort so the outputs are not left
// energized when the driver is torn down on an error path. All steps are
// attempted and the first error is returned.
func (h *HC595) Close() error {
	if h.closed {
		return ErrClosed
	}
	h.closed = true
	err := h.shiftByte(0)
	if lerr := h.strobe(h.rclk); err == nil {
		err = lerr
	}
	for _, p := range []Pin{h.sdi, h.rclk, h.srclk} {
		if serr := p.SetValue(0); err == nil {
			err = serr
		}
	}
	for _, p := range []Pin{h.sdi, h.rclk, h.srclk} {
		if cerr := p.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (h *HC595) shiftByte(data byte) error {
	for i := 0; i < 8; i++ {
		mask := byte(0x80) >> uint(i)
		if h.order == LSBFirst {
			mask = 0x01 << uint(i)
		}
		v := 0
		if data&mask != 0 {
			v = 1
		}
		if err := h.sdi.SetValue(v); err != nil {
			return err
		}
		if err := h.strobe(h.srclk); err != nil {
			return err
		}
	}
	return nil
}

// strobe pulses clk high then low.
//
// A strobe always completes once started; aborting with the clock high
// would corrupt the register state.
func (h *HC595) strobe(clk Pin) error {
	if err := clk.SetValue(1); err != nil {
		return err
	}
	time.Sleep(h.Tclk)
	return clk.SetValue(0)
}

// Option specifies a construction option for the HC595.
type Option func(*HC595)

// WithTclk sets the clock strobe width.
func WithTclk(tclk time.Duration) Option {
	return func(h *HC595) {
		h.Tclk = tclk
	}
}

// WithBitOrder sets the order in which bits are shifted onto the data line.
func WithBitOrder(order BitOrder) Option {
	return func(h *HC595) {
		h.order = order
	}
}
