// SPDX-License-Identifier: MIT

//go:build linux

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/go-gpiocdev"

	"superkit/hc595"
	"superkit/sevenseg"
)

func init() {
	segmentCmd.Flags().IntVar(&segmentOpts.Sdi, "sdi", 17, "GPIO offset of the register data line")
	segmentCmd.Flags().IntVar(&segmentOpts.Rclk, "rclk", 18, "GPIO offset of the register latch clock")
	segmentCmd.Flags().IntVar(&segmentOpts.Srclk, "srclk", 27, "GPIO offset of the register shift clock")
	segmentCmd.Flags().DurationVarP(&segmentOpts.Delay, "delay", "t", 500*time.Millisecond, "time each digit is shown")
	rootCmd.AddCommand(segmentCmd)
}

var (
	segmentCmd = &cobra.Command{
		Use:   "segment",
		Short: "Count 0-F and the decimal point on a 7-segment display (lesson 11)",
		RunE:  segment,
	}
	segmentOpts = struct {
		Sdi   int
		Rclk  int
		Srclk int
		Delay time.Duration
	}{}
)

func segment(cmd *cobra.Command, args []string) error {
	c, err := gpiocdev.NewChip(chip, gpiocdev.WithConsumer("superkit-segment"))
	if err != nil {
		return err
	}
	defer c.Close()
	h, err := hc595.New(c, segmentOpts.Sdi, segmentOpts.Rclk, segmentOpts.Srclk)
	if err != nil {
		return err
	}
	defer h.Close()
	codes := append(sevenseg.Digits[:], sevenseg.DP)
	sigdone, cancel := sigwait()
	defer cancel()
	show := func(code byte) (bool, error) {
		fmt.Printf("code = 0x%02X\n", code)
		if err := h.Set(code); err != nil {
			return false, err
		}
		return sleep(sigdone, segmentOpts.Delay), nil
	}
	for {
		fmt.Println("forward ...")
		for _, code := range codes {
			ok, err := show(code)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("\nsegment stopped")
				return nil
			}
		}
		fmt.Println("... reverse")
		for i := len(codes) - 1; i >= 0; i-- {
			ok, err := show(codes[i])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("\nsegment stopped")
				return nil
			}
		}
	}
}
