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
	chaseCmd.Flags().IntSliceVarP(&chaseOpts.Leds, "leds", "p",
		[]int{17, 18, 27, 22, 23, 24, 25, 4}, "GPIO offsets of the LED bank")
	chaseCmd.Flags().DurationVarP(&chaseOpts.Delay, "delay", "t", 50*time.Millisecond, "time each LED is lit")
	rootCmd.AddCommand(chaseCmd)
}

var (
	chaseCmd = &cobra.Command{
		Use:   "chase",
		Short: "Chase a lit LED along a bank of 8 (lesson 03)",
		RunE:  chase,
	}
	chaseOpts = struct {
		Leds  []int
		Delay time.Duration
	}{}
)

func chase(cmd *cobra.Command, args []string) error {
	c, err := gpiocdev.NewChip(chip, gpiocdev.WithConsumer("superkit-chase"))
	if err != nil {
		return err
	}
	defer c.Close()
	// LEDs are wired active low; all high is all off
	off := make([]int, len(chaseOpts.Leds))
	for i := range off {
		off[i] = 1
	}
	ll, err := c.RequestLines(chaseOpts.Leds, gpiocdev.AsOutput(off...))
	if err != nil {
		return fmt.Errorf("error requesting GPIO lines: %s", err)
	}
	defer ll.Close()
	defer ll.SetValues(off)
	sigdone, cancel := sigwait()
	defer cancel()
	vv := make([]int, len(off))
	light := func(n int) error {
		copy(vv, off)
		vv[n] = 0
		return ll.SetValues(vv)
	}
	for {
		fmt.Println("forward ...")
		for i := 0; i < len(vv); i++ {
			if err = light(i); err != nil {
				return err
			}
			if !sleep(sigdone, chaseOpts.Delay) {
				fmt.Println("\nchase stopped")
				return nil
			}
		}
		fmt.Println("... reverse")
		for i := len(vv) - 1; i >= 0; i-- {
			if err = light(i); err != nil {
				return err
			}
			if !sleep(sigdone, chaseOpts.Delay) {
				fmt.Println("\nchase stopped")
				return nil
			}
		}
	}
}
