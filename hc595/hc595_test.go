// SPDX-License-Identifier: MIT

package hc595_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superkit/gpiotest"
	"superkit/hc595"
)

func newDriver(t *testing.T, depth int, options ...hc595.Option) (*hc595.HC595, *gpiotest.ShiftRegister) {
	t.Helper()
	sr := gpiotest.NewShiftRegister(depth)
	sdi, rclk, srclk := sr.Pins()
	options = append([]hc595.Option{hc595.WithTclk(time.Nanosecond)}, options...)
	h, err := hc595.NewPins(sdi, rclk, srclk, options...)
	require.Nil(t, err)
	require.NotNil(t, h)
	return h, sr
}

func TestSetMSBFirst(t *testing.T) {
	h, sr := newDriver(t, 1)
	defer h.Close()

	// 0x06 => Q7..Q0 = 0,0,0,0,0,1,1,0
	err := h.Set(0x06)
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x06}, sr.Outputs())

	for _, b := range []byte{0x00, 0x01, 0x80, 0xa5, 0xff} {
		err = h.Set(b)
		assert.Nil(t, err)
		assert.Equal(t, []byte{b}, sr.Outputs(), "byte 0x%02x", b)
	}
}

func TestSetLSBFirst(t *testing.T) {
	h, sr := newDriver(t, 1, hc595.WithBitOrder(hc595.LSBFirst))
	defer h.Close()

	// same byte as the MSBFirst test, bit reversed on the outputs
	err := h.Set(0x06)
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x60}, sr.Outputs())

	err = h.Set(0xa5)
	assert.Nil(t, err)
	assert.Equal(t, []byte{0xa5}, sr.Outputs(), "0xa5 is its own reversal")

	err = h.Set(0x01)
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x80}, sr.Outputs())
}

func TestWriteWithoutLatch(t *testing.T) {
	h, sr := newDriver(t, 1)
	defer h.Close()

	err := h.Set(0x55)
	require.Nil(t, err)
	err = h.Write(0xff)
	assert.Nil(t, err)
	// outputs hold the latched byte until the next Latch
	assert.Equal(t, []byte{0x55}, sr.Outputs())
	assert.Equal(t, []byte{0xff}, sr.Register())

	err = h.Latch()
	assert.Nil(t, err)
	assert.Equal(t, []byte{0xff}, sr.Outputs())
}

func TestSetChained(t *testing.T) {
	h, sr := newDriver(t, 2)
	defer h.Close()

	// earliest byte ends up in the furthest register
	err := h.Set(0x12, 0x34)
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x34, 0x12}, sr.Outputs())

	// overflow off the end of the chain is discarded
	err = h.Set(0xaa, 0xbb, 0xcc)
	assert.Nil(t, err)
	assert.Equal(t, []byte{0xcc, 0xbb}, sr.Outputs())
}

func TestClose(t *testing.T) {
	h, sr := newDriver(t, 1)
	sdi, rclk, srclk := sr.Pins()

	err := h.Set(0xff)
	require.Nil(t, err)
	require.Equal(t, []byte{0xff}, sr.Outputs())

	err = h.Close()
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x00}, sr.Outputs())
	assert.Equal(t, 0, sdi.Level())
	assert.Equal(t, 0, rclk.Level())
	assert.Equal(t, 0, srclk.Level())
	assert.True(t, sdi.Closed())
	assert.True(t, rclk.Closed())
	assert.True(t, srclk.Closed())

	// closed
	err = h.Close()
	assert.Equal(t, hc595.ErrClosed, err)
	err = h.Write(0x01)
	assert.Equal(t, hc595.ErrClosed, err)
	err = h.Latch()
	assert.Equal(t, hc595.ErrClosed, err)
}

func TestCloseAfterFailure(t *testing.T) {
	h, sr := newDriver(t, 1)
	sdi, rclk, srclk := sr.Pins()

	err := h.Set(0xff)
	require.Nil(t, err)

	// fail a write mid-sequence, then recover before teardown
	pinErr := errors.New("lost pin")
	sdi.SetError(pinErr)
	err = h.Write(0x0f)
	assert.Equal(t, pinErr, err)
	sdi.SetError(nil)

	err = h.Close()
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x00}, sr.Outputs())
	assert.Equal(t, 0, sdi.Level())
	assert.Equal(t, 0, rclk.Level())
	assert.Equal(t, 0, srclk.Level())
}

func TestCloseBestEffort(t *testing.T) {
	h, sr := newDriver(t, 1)
	sdi, rclk, srclk := sr.Pins()

	err := h.Set(0xff)
	require.Nil(t, err)

	// data line dead for the whole teardown; clocks must still end low and
	// all pins must still be released.
	pinErr := errors.New("lost pin")
	sdi.SetError(pinErr)
	err = h.Close()
	assert.Equal(t, pinErr, err)
	assert.Equal(t, 0, rclk.Level())
	assert.Equal(t, 0, srclk.Level())
	assert.True(t, sdi.Closed())
	assert.True(t, rclk.Closed())
	assert.True(t, srclk.Closed())
}
