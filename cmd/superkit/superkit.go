// SPDX-License-Identifier: MIT

//go:build linux

// A utility to run the super kit lesson demos.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "superkit",
	Short: "superkit runs the super kit lesson demos",
	Long:  "superkit drives the super kit lesson circuits from a Linux GPIO character device",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var chip string

func init() {
	rootCmd.PersistentFlags().StringVarP(&chip, "chip", "c", "gpiochip0", "the chip the circuit is wired to")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "superkit %s: %s\n", cmd.Name(), err)
}

// sigwait returns a channel that relays shutdown signals, and a cancel
// function to stop relaying them.
func sigwait() (<-chan os.Signal, func()) {
	sigdone := make(chan os.Signal, 1)
	signal.Notify(sigdone, os.Interrupt, syscall.SIGTERM)
	return sigdone, func() { signal.Stop(sigdone) }
}

// sleep pauses for d, returning false if a shutdown signal arrives first.
//
// Checked between units of work so demos stay responsive to Ctrl-C without
// interrupting a bit sequence in flight.
func sleep(sigdone <-chan os.Signal, d time.Duration) bool {
	select {
	case <-sigdone:
		return false
	case <-time.After(d):
		return true
	}
}
