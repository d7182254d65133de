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
	dotmatrixCmd.Flags().IntVar(&dotmatrixOpts.Sdi, "sdi", 17, "GPIO offset of the register data line")
	dotmatrixCmd.Flags().IntVar(&dotmatrixOpts.Rclk, "rclk", 18, "GPIO offset of the register latch clock")
	dotmatrixCmd.Flags().IntVar(&dotmatrixOpts.Srclk, "srclk", 27, "GPIO offset of the register shift clock")
	dotmatrixCmd.Flags().DurationVarP(&dotmatrixOpts.Delay, "delay", "t", 100*time.Millisecond, "time each frame is shown")
	rootCmd.AddCommand(dotmatrixCmd)
}

var (
	dotmatrixCmd = &cobra.Command{
		Use:   "dotmatrix",
		Short: "Animate an 8x8 dot matrix through chained shift registers (lesson 12)",
		RunE:  dotmatrix,
	}
	dotmatrixOpts = struct {
		Sdi   int
		Rclk  int
		Srclk int
		Delay time.Duration
	}{}
)

// Frames for the matrix, authored for MSBFirst order. The column byte is
// written first so it lands in the far register; the row byte follows in
// the near one.
var (
	rows = [20]byte{
		0x01, 0xff, 0x80, 0xff, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20,
		0x40, 0x80, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}
	cols = [20]byte{
		0x00, 0x7f, 0x00, 0xfe, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0xfe, 0xfd, 0xfb, 0xf7, 0xef, 0xdf, 0xbf, 0x7f,
	}
)

func dotmatrix(cmd *cobra.Command, args []string) error {
	c, err := gpiocdev.NewChip(chip, gpiocdev.WithConsumer("superkit-dotmatrix"))
	if err != nil {
		return err
	}
	defer c.Close()
	h, err := hc595.New(c, dotmatrixOpts.Sdi, dotmatrixOpts.Rclk, dotmatrixOpts.Srclk)
	if err != nil {
		return err
	}
	defer h.Close()
	sigdone, cancel := sigwait()
	defer cancel()
	for {
		fmt.Println("forward ...")
		for i := 0; i < len(rows); i++ {
			if err = h.Set(cols[i], rows[i]); err != nil {
				return err
			}
			if !sleep(sigdone, dotmatrixOpts.Delay) {
				fmt.Println("\ndotmatrix stopped")
				return nil
			}
		}
		fmt.Println("... reverse")
		for i := len(rows) - 1; i >= 0; i-- {
			if err = h.Set(cols[i], rows[i]); err != nil {
				return err
			}
			if !sleep(sigdone, dotmatrixOpts.Delay) {
				fmt.Println("\ndotmatrix stopped")
				return nil
			}
		}
	}
}
