// SPDX-License-Identifier: MIT

package gpiotest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"superkit/gpiotest"
)

func TestPin(t *testing.T) {
	p := gpiotest.NewPin()
	assert.Equal(t, 0, p.Level())

	err := p.SetValue(1)
	assert.Nil(t, err)
	v, err := p.Value()
	assert.Nil(t, err)
	assert.Equal(t, 1, v)

	pinErr := errors.New("lost pin")
	p.SetError(pinErr)
	err = p.SetValue(0)
	assert.Equal(t, pinErr, err)
	_, err = p.Value()
	assert.Equal(t, pinErr, err)
	p.SetError(nil)

	assert.False(t, p.Closed())
	err = p.Close()
	assert.Nil(t, err)
	assert.True(t, p.Closed())
}

// clock strobes the pin high then low.
func clock(p *gpiotest.Pin) {
	p.SetValue(1)
	p.SetValue(0)
}

func TestShiftRegister(t *testing.T) {
	sr := gpiotest.NewShiftRegister(1)
	sdi, rclk, srclk := sr.Pins()

	// shift in 0b10 (MSB first)
	sdi.SetValue(1)
	clock(srclk)
	sdi.SetValue(0)
	clock(srclk)
	assert.Equal(t, []byte{0x02}, sr.Register())
	// not latched yet
	assert.Equal(t, []byte{0x00}, sr.Outputs())

	clock(rclk)
	assert.Equal(t, []byte{0x02}, sr.Outputs())

	// holding the clock high does not shift again
	sdi.SetValue(1)
	srclk.SetValue(1)
	srclk.SetValue(1)
	srclk.SetValue(0)
	assert.Equal(t, []byte{0x05}, sr.Register())
}

func TestShiftRegisterChained(t *testing.T) {
	sr := gpiotest.NewShiftRegister(2)
	sdi, rclk, srclk := sr.Pins()

	// 16 clocks push the first byte into the far register
	for i := 0; i < 8; i++ {
		sdi.SetValue(1)
		clock(srclk)
	}
	for i := 0; i < 8; i++ {
		sdi.SetValue(0)
		clock(srclk)
	}
	clock(rclk)
	assert.Equal(t, []byte{0x00, 0xff}, sr.Outputs())
}
