// SPDX-License-Identifier: MIT

//go:build linux

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/go-gpiocdev"

	"superkit/hc595"
)

func init() {
	ledbarCmd.Flags().IntVar(&ledbarOpts.Sdi, "sdi", 17, "GPIO offset of the register data line")
	ledbarCmd.Flags().IntVar(&ledbarOpts.Rclk, "rclk", 18, "GPIO offset of the register latch clock")
	ledbarCmd.Flags().IntVar(&ledbarOpts.Srclk, "srclk", 27, "GPIO offset of the register shift clock")
	ledbarCmd.Flags().DurationVarP(&ledbarOpts.Delay, "delay", "t", 100*time.Millisecond, "time each pattern is shown")
	rootCmd.AddCommand(ledbarCmd)
}

var (
	ledbarCmd = &cobra.Command{
		Use:   "ledbar",
		Short: "Animate an 8 LED bar through a shift register (lesson 10)",
		RunE:  ledbar,
	}
	ledbarOpts = struct {
		Sdi   int
		Rclk  int
		Srclk int
		Delay time.Duration
	}{}
)

// modes holds the LED bar animation patterns, authored for MSBFirst order.
var modes = [4][8]byte{
	{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}, // single walking LED
	{0x01, 0x03, 0x07, 0x0f, 0x1f, 0x3f, 0x7f, 0xff}, // filling bar
	{0x01, 0x05, 0x15, 0x55, 0xb5, 0xf5, 0xfb, 0xff}, // alternate fill
	{0x02, 0x03, 0x0b, 0x0f, 0x2f, 0x3f, 0xbf, 0xff}, // paired fill
}

func ledbar(cmd *cobra.Command, args []string) error {
	c, err := gpiocdev.NewChip(chip, gpiocdev.WithConsumer("superkit-ledbar"))
	if err != nil {
		return err
	}
	defer c.Close()
	h, err := hc595.New(c, ledbarOpts.Sdi, ledbarOpts.Rclk, ledbarOpts.Srclk)
	if err != nil {
		return err
	}
	defer h.Close()
	sigdone, cancel := sigwait()
	defer cancel()
	for {
		for m, mode := range modes {
			fmt.Println("mode =", m)
			fmt.Println("forward ...")
			for _, data := range mode {
				if err = h.Set(data); err != nil {
					return err
				}
				if !sleep(sigdone, ledbarOpts.Delay) {
					fmt.Println("\nledbar stopped")
					return nil
				}
			}
			fmt.Println("... reverse")
			for i := len(mode) - 1; i >= 0; i-- {
				if err = h.Set(mode[i]); err != nil {
					return err
				}
				if !sleep(sigdone, ledbarOpts.Delay) {
					fmt.Println("\nledbar stopped")
					return nil
				}
			}
		}
	}
}
