// SPDX-License-Identifier: MIT

//go:build linux

// A monitor for quadrature rotary encoders.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warthog618/config"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/keys"
	"github.com/warthog618/config/pflag"
	"github.com/warthog618/go-gpiocdev"

	"superkit/rotary"
)

var version = "undefined"

func main() {
	shortFlags := map[byte]string{
		'h': "help",
		'v': "version",
		'c': "chip",
		'i': "interval",
		'n': "num-changes",
		'q': "quiet",
	}
	defaults := dict.New(dict.WithMap(
		map[string]interface{}{
			"chip":        "gpiochip0",
			"clk":         18,
			"dt":          17,
			"sw":          27,
			"interval":    "10ms",
			"num-changes": 0,
			"quiet":       false,
		}))
	flags := pflag.New(pflag.WithShortFlags(shortFlags),
		pflag.WithKeyReplacer(keys.NullReplacer()))
	cfg := config.New(flags, config.WithDefault(defaults))
	if v, err := cfg.Get("help"); err == nil && v.Bool() {
		printHelp()
		os.Exit(0)
	}
	if v, err := cfg.Get("version"); err == nil && v.Bool() {
		printVersion()
		os.Exit(0)
	}
	c, err := gpiocdev.NewChip(cfg.MustGet("chip").String(),
		gpiocdev.WithConsumer("rotarymon"))
	if err != nil {
		die(err.Error())
	}
	defer c.Close()
	e, err := rotary.New(c,
		int(cfg.MustGet("clk").Int()),
		int(cfg.MustGet("dt").Int()),
		int(cfg.MustGet("sw").Int()))
	if err != nil {
		die("error requesting GPIO lines: " + err.Error())
	}
	defer e.Close()
	sigdone := make(chan os.Signal, 1)
	signal.Notify(sigdone, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigdone)
	num := cfg.MustGet("num-changes").Int()
	quiet := cfg.MustGet("quiet").Bool()
	ticker := time.NewTicker(cfg.MustGet("interval").Duration())
	defer ticker.Stop()
	last := e.Count()
	changes := int64(0)
	for {
		select {
		case <-ticker.C:
			if err = e.Poll(); err != nil {
				die(err.Error())
			}
			count := e.Count()
			if count == last {
				continue
			}
			last = count
			if !quiet {
				fmt.Println("counter =", count)
			}
			changes++
			if num > 0 && changes >= num {
				return
			}
		case <-sigdone:
			return
		}
	}
}

func die(reason string) {
	fmt.Fprintln(os.Stderr, "rotarymon: "+reason)
	os.Exit(1)
}

func printHelp() {
	fmt.Printf("Usage: %s [OPTIONS]\n", os.Args[0])
	fmt.Println("Poll a rotary encoder and print the count as it changes.")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -h, --help:\t\tdisplay this message and exit")
	fmt.Println("  -v, --version:\tdisplay the version and exit")
	fmt.Println("  -c, --chip=CHIP:\tGPIO character device (default gpiochip0)")
	fmt.Println("      --clk=OFFSET:\tencoder clock line (default 18)")
	fmt.Println("      --dt=OFFSET:\tencoder data line (default 17)")
	fmt.Println("      --sw=OFFSET:\tencoder switch line (default 27)")
	fmt.Println("  -i, --interval=PERIOD:\tpoll interval (default 10ms)")
	fmt.Println("  -n, --num-changes=NUM:\texit after NUM count changes")
	fmt.Println("  -q, --quiet:\t\tdon't print count changes")
}

func printVersion() {
	fmt.Printf("%s (superkit) %s\n", os.Args[0], version)
}
