// SPDX-License-Identifier: MIT

// Package rotary provides a decoder for 2-bit quadrature rotary encoders,
// such as the KY-040 modules in the kit, using polled GPIO lines.
//
// The decoder maintains a signed rotation count from the clock (channel A)
// and data (channel B) lines, and optionally zeroes the count on a falling
// edge of the encoder's push switch.
package rotary

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Pin represents a single requested GPIO input line.
//
// It is satisfied by *gpiocdev.Line.
type Pin interface {
	Value() (int, error)
	Close() error
}

// ErrLineUnavailable indicates a required GPIO line could not be requested.
var ErrLineUnavailable = errors.New("GPIO line unavailable")

// ErrEventRequest indicates edge event notification could not be set up on
// the switch line.
var ErrEventRequest = errors.New("edge event request failed")

// Encoder decodes quadrature rotation into a signed count.
//
// Poll is only to be called from a single goroutine, but the count itself
// is shared with the switch event handler, which the gpiocdev event
// goroutine runs, so all count access is atomic.
type Encoder struct {
	clk      Pin
	dt       Pin
	sw       Pin
	count    atomic.Int32
	lastClk  int
	debounce time.Duration
}

// New creates an Encoder from the clk (channel A), dt (channel B) and sw
// (push switch) offsets on the chip.
//
// clk and dt are requested as inputs; sw is requested with the internal
// pull-up and a falling edge handler that zeroes the count. Lines requested
// before a failure are released before returning.
func New(c *gpiocdev.Chip, clk, dt, sw int, options ...Option) (*Encoder, error) {
	e := Encoder{debounce: 10 * time.Millisecond}
	for _, option := range options {
		option(&e)
	}
	var err error
	defer func() {
		if err != nil {
			e.Close()
		}
	}()
	var l *gpiocdev.Line
	l, err = c.RequestLine(clk, gpiocdev.AsInput)
	if err != nil {
		err = fmt.Errorf("%w: offset %d: %v", ErrLineUnavailable, clk, err)
		return nil, err
	}
	e.clk = l
	l, err = c.RequestLine(dt, gpiocdev.AsInput)
	if err != nil {
		err = fmt.Errorf("%w: offset %d: %v", ErrLineUnavailable, dt, err)
		return nil, err
	}
	e.dt = l
	swOpts := []gpiocdev.LineReqOption{
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(e.handleSwitch),
	}
	if e.debounce != 0 {
		swOpts = append(swOpts, gpiocdev.WithDebounce(e.debounce))
	}
	l, err = c.RequestLine(sw, swOpts...)
	if err != nil {
		err = fmt.Errorf("%w: offset %d: %v", ErrEventRequest, sw, err)
		return nil, err
	}
	e.sw = l
	if err = e.seed(); err != nil {
		return nil, err
	}
	return &e, nil
}

// NewPins creates an Encoder from already requested clk and dt lines, with
// no switch line.
//
// The encoder takes ownership of the pins; they are released by Close.
func NewPins(clk, dt Pin, options ...Option) (*Encoder, error) {
	e := Encoder{clk: clk, dt: dt}
	for _, option := range options {
		option(&e)
	}
	if err := e.seed(); err != nil {
		return nil, err
	}
	return &e, nil
}

// seed initializes the transition detector from a real read, rather than an
// assumed idle level.
func (e *Encoder) seed() error {
	v, err := e.clk.Value()
	if err != nil {
		return err
	}
	e.lastClk = v
	return nil
}

// Close releases the encoder lines.
func (e *Encoder) Close() {
	if e.clk != nil {
		e.clk.Close()
		e.clk = nil
	}
	if e.dt != nil {
		e.dt.Close()
		e.dt = nil
	}
	if e.sw != nil {
		e.sw.Close()
		e.sw = nil
	}
}

// Poll samples the encoder lines once, adjusting the count if the clock
// line has transitioned since the previous sample.
//
// Poll is intended to be driven on a fixed cadence, short relative to the
// fastest expected rotation rate, else transitions are missed. It is not
// reentrant.
func (e *Encoder) Poll() error {
	clk, err := e.clk.Value()
	if err != nil {
		return err
	}
	dt, err := e.dt.Value()
	if err != nil {
		return err
	}
	if clk != e.lastClk {
		// Direction is given by the phase of dt relative to clk at the
		// instant clk transitions, not by dt's absolute level.
		if dt != clk {
			e.count.Add(1)
		} else {
			e.count.Add(-1)
		}
	}
	e.lastClk = clk
	return nil
}

// Count returns the current rotation count.
func (e *Encoder) Count() int {
	return int(e.count.Load())
}

// Reset zeroes the rotation count.
func (e *Encoder) Reset() {
	e.count.Store(0)
}

// handleSwitch zeroes the count on a falling edge of the switch line.
//
// Runs on the gpiocdev event goroutine, concurrently with Poll.
func (e *Encoder) handleSwitch(evt gpiocdev.LineEvent) {
	if evt.Type != gpiocdev.LineEventFallingEdge {
		return
	}
	e.Reset()
}

// Option specifies a construction option for the Encoder.
type Option func(*Encoder)

// WithDebounce sets the debounce period applied to the switch line.
//
// Defaults to 10ms; a zero period disables debouncing.
func WithDebounce(period time.Duration) Option {
	return func(e *Encoder) {
		e.debounce = period
	}
}
