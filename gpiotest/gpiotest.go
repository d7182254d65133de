// SPDX-License-Identifier: MIT

// Package gpiotest provides in-memory pins and simulated devices for
// testing GPIO drivers without hardware.
//
// Unlike the kernel gpio-mockup module, these simulations run hostless, so
// driver tests do not require a Linux target or elevated privileges.
package gpiotest

import (
	"sync"
)

// Pin is an in-memory stand-in for a requested GPIO line.
//
// It satisfies the Pin interfaces of the driver packages and records its
// level so tests can assert on line state after driver operations.
type Pin struct {
	mu     sync.Mutex
	value  int
	closed bool
	err    error
	// called with the old and new level after each set
	onSet func(old, new int)
}

// NewPin returns a Pin at logic low.
func NewPin() *Pin {
	return &Pin{}
}

// SetValue sets the pin level.
func (p *Pin) SetValue(v int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	old := p.value
	p.value = v
	if p.onSet != nil {
		p.onSet(old, v)
	}
	return nil
}

// Value returns the current pin level.
func (p *Pin) Value() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return 0, p.err
	}
	return p.value, nil
}

// Close marks the pin as released.
func (p *Pin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Closed reports whether the pin has been released.
func (p *Pin) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Level returns the current pin level without the error path, for test
// assertions.
func (p *Pin) Level() int {
	v, _ := p.Value()
	return v
}

// SetError forces subsequent SetValue and Value calls to fail with err.
// A nil err restores normal operation.
func (p *Pin) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// ShiftRegister models a chain of 74HC595 style 8-bit shift registers with
// an output latch, wired to data, latch clock and shift clock pins.
//
// Bits are shifted in on the rising edge of the shift clock and copied to
// the parallel outputs on the rising edge of the latch clock. Bits shifted
// past the end of the chain are discarded.
type ShiftRegister struct {
	mu    sync.Mutex
	reg   []byte
	out   []byte
	data  *Pin
	rclk  *Pin
	srclk *Pin
}

// NewShiftRegister returns a simulated chain of depth registers.
func NewShiftRegister(depth int) *ShiftRegister {
	s := ShiftRegister{
		reg: make([]byte, depth),
		out: make([]byte, depth),
	}
	s.data = NewPin()
	s.rclk = &Pin{onSet: s.latchEdge}
	s.srclk = &Pin{onSet: s.shiftEdge}
	return &s
}

// Pins returns the data, latch clock and shift clock pins of the chain.
func (s *ShiftRegister) Pins() (sdi, rclk, srclk *Pin) {
	return s.data, s.rclk, s.srclk
}

// Outputs returns the latched parallel outputs, element 0 being the
// register connected directly to the data pin (the last byte written).
func (s *ShiftRegister) Outputs() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.out))
	copy(out, s.out)
	return out
}

// Register returns the unlatched shift register contents, element 0 being
// the register connected directly to the data pin.
func (s *ShiftRegister) Register() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg := make([]byte, len(s.reg))
	copy(reg, s.reg)
	return reg
}

// shiftEdge shifts the data pin level into the chain on a rising edge.
func (s *ShiftRegister) shiftEdge(old, new int) {
	if old != 0 || new == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	carry := byte(s.data.Level())
	for i := range s.reg {
		msb := s.reg[i] >> 7
		s.reg[i] = s.reg[i]<<1 | carry
		carry = msb
	}
}

// latchEdge copies the registers to the outputs on a rising edge.
func (s *ShiftRegister) latchEdge(old, new int) {
	if old != 0 || new == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.out, s.reg)
}
