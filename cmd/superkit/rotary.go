// SPDX-License-Identifier: MIT

//go:build linux

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/go-gpiocdev"

	"superkit/rotary"
)

func init() {
	rotaryCmd.Flags().IntVar(&rotaryOpts.Clk, "clk", 18, "GPIO offset of the encoder clock (channel A)")
	rotaryCmd.Flags().IntVar(&rotaryOpts.Dt, "dt", 17, "GPIO offset of the encoder data (channel B)")
	rotaryCmd.Flags().IntVar(&rotaryOpts.Sw, "sw", 27, "GPIO offset of the encoder switch")
	rotaryCmd.Flags().DurationVarP(&rotaryOpts.Interval, "interval", "i", 10*time.Millisecond, "poll interval")
	rootCmd.AddCommand(rotaryCmd)
}

var (
	rotaryCmd = &cobra.Command{
		Use:   "rotary",
		Short: "Count rotary encoder detents; press the knob to zero (lesson 08)",
		RunE:  rotaryRun,
	}
	rotaryOpts = struct {
		Clk      int
		Dt       int
		Sw       int
		Interval time.Duration
	}{}
)

func rotaryRun(cmd *cobra.Command, args []string) error {
	c, err := gpiocdev.NewChip(chip, gpiocdev.WithConsumer("superkit-rotary"))
	if err != nil {
		return err
	}
	defer c.Close()
	e, err := rotary.New(c, rotaryOpts.Clk, rotaryOpts.Dt, rotaryOpts.Sw)
	if err != nil {
		return err
	}
	defer e.Close()
	sigdone, cancel := sigwait()
	defer cancel()
	last := e.Count()
	fmt.Println("counter =", last)
	ticker := time.NewTicker(rotaryOpts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-sigdone:
			fmt.Println("\nrotary stopped")
			return nil
		case <-ticker.C:
			if err = e.Poll(); err != nil {
				return err
			}
			// the switch handler may also have changed the count
			if count := e.Count(); count != last {
				last = count
				fmt.Println("counter =", count)
			}
		}
	}
}
