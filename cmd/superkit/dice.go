// SPDX-License-Identifier: MIT

//go:build linux

package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/go-gpiocdev"

	"superkit/hc595"
	"superkit/sevenseg"
)

func init() {
	diceCmd.Flags().IntVar(&diceOpts.Sdi, "sdi", 17, "GPIO offset of the register data line")
	diceCmd.Flags().IntVar(&diceOpts.Rclk, "rclk", 18, "GPIO offset of the register latch clock")
	diceCmd.Flags().IntVar(&diceOpts.Srclk, "srclk", 27, "GPIO offset of the register shift clock")
	diceCmd.Flags().IntVarP(&diceOpts.Button, "button", "b", 22, "GPIO offset of the roll button")
	rootCmd.AddCommand(diceCmd)
}

var (
	diceCmd = &cobra.Command{
		Use:   "dice",
		Short: "Roll a 7-segment die with a button (lesson 11)",
		RunE:  dice,
	}
	diceOpts = struct {
		Sdi    int
		Rclk   int
		Srclk  int
		Button int
	}{}
)

func dice(cmd *cobra.Command, args []string) error {
	c, err := gpiocdev.NewChip(chip, gpiocdev.WithConsumer("superkit-dice"))
	if err != nil {
		return err
	}
	defer c.Close()
	h, err := hc595.New(c, diceOpts.Sdi, diceOpts.Rclk, diceOpts.Srclk)
	if err != nil {
		return err
	}
	defer h.Close()
	// button pulls the line low when pressed
	b, err := c.RequestLine(diceOpts.Button, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return fmt.Errorf("error requesting GPIO line: %s", err)
	}
	defer b.Close()
	sigdone, cancel := sigwait()
	defer cancel()
	fmt.Println("Press button to roll ...")
	for {
		// flash the faces too fast to read until the button stops the roll
		for _, face := range sevenseg.Faces {
			if err = h.Set(face); err != nil {
				return err
			}
			v, err := b.Value()
			if err != nil {
				return err
			}
			if v == 0 {
				num := rand.Intn(len(sevenseg.Faces))
				if err = h.Set(sevenseg.Faces[num]); err != nil {
					return err
				}
				fmt.Println("number =", num+1)
				if !sleep(sigdone, 2*time.Second) {
					fmt.Println("\ndice stopped")
					return nil
				}
			} else if !sleep(sigdone, 10*time.Millisecond) {
				fmt.Println("\ndice stopped")
				return nil
			}
		}
	}
}
