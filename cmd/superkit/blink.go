// SPDX-License-Identifier: MIT

//go:build linux

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/go-gpiocdev"
)

func init() {
	blinkCmd.Flags().IntVarP(&blinkOpts.Led, "led", "p", 17, "GPIO offset of the LED")
	blinkCmd.Flags().DurationVarP(&blinkOpts.Period, "period", "t", 500*time.Millisecond, "time between toggles")
	rootCmd.AddCommand(blinkCmd)
}

var (
	blinkCmd = &cobra.Command{
		Use:   "blink",
		Short: "Blink a single LED (lesson 01)",
		RunE:  blink,
	}
	blinkOpts = struct {
		Led    int
		Period time.Duration
	}{}
)

func blink(cmd *cobra.Command, args []string) error {
	c, err := gpiocdev.NewChip(chip, gpiocdev.WithConsumer("superkit-blink"))
	if err != nil {
		return err
	}
	defer c.Close()
	// the LED is wired active low, so start with it off
	l, err := c.RequestLine(blinkOpts.Led, gpiocdev.AsOutput(1))
	if err != nil {
		return fmt.Errorf("error requesting GPIO line: %s", err)
	}
	defer l.Close()
	defer l.SetValue(1)
	sigdone, cancel := sigwait()
	defer cancel()
	v := 1
	for {
		if !sleep(sigdone, blinkOpts.Period) {
			fmt.Println("\nblink stopped")
			return nil
		}
		v ^= 1
		if err = l.SetValue(v); err != nil {
			return err
		}
	}
}
