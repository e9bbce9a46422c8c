package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"spyfi/internal/adapters/sniffer/radio"
	"spyfi/internal/core/crypto"
	"spyfi/internal/core/ports"
)

// runUtility implements `spyfi utility`: interface listing, power/mode
// toggling, channel pinning, and a standalone PSK-derivation check — the
// grab-bag of single-shot radio operations that don't warrant their own
// subcommand, per spec §6.
func runUtility(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("utility", flag.ContinueOnError)
	var (
		iface   string
		list    bool
		channel int
		hasCh   bool
		ch      bool
		psk     string
		ssid    string
	)
	fs.StringVar(&iface, "iface", "", "wireless interface to operate on")
	fs.StringVar(&iface, "i", "", "alias for --iface")
	fs.BoolVar(&list, "list", false, "list available wireless interfaces")
	fs.BoolVar(&list, "l", false, "alias for --list")
	parseChannel := func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		channel = n
		hasCh = true
		return nil
	}
	fs.Func("channel", "pin the interface to channel N", parseChannel)
	fs.Func("c", "alias for --channel", parseChannel)
	fs.BoolVar(&ch, "ch", false, "print the interface's current channel")
	fs.StringVar(&psk, "psk", "", "derive and print the PSK for PASSPHRASE (requires --ssid)")
	fs.StringVar(&ssid, "ssid", "", "alias for -s")
	fs.StringVar(&ssid, "s", "", "SSID paired with --psk")
	if err := fs.Parse(args); err != nil {
		return exitBadArgs
	}

	mode := fs.Arg(0)
	if mode != "" && mode != "managed" && mode != "monitor" {
		return argError("MODE must be 'managed' or 'monitor', got %q", mode)
	}
	if hasCh && (channel < 0 || channel > 17) {
		return argError("--channel must be in 0..17")
	}
	if psk != "" && ssid == "" {
		return argError("--psk requires --ssid")
	}
	if (mode != "" || hasCh || ch) && iface == "" {
		return argError("MODE, --channel, and --ch require --iface")
	}

	if psk != "" {
		key := crypto.PSK(psk, ssid)
		fmt.Printf("%x\n", key)
	}

	if !list && iface == "" {
		return exitOK
	}

	r := radio.New()

	if list {
		ifaces, err := r.ListInterfaces()
		if err != nil {
			return runtimeError(err)
		}
		for _, name := range ifaces {
			fmt.Println(name)
		}
	}

	if iface == "" {
		return exitOK
	}

	if mode != "" {
		target := ports.ModeManaged
		if mode == "monitor" {
			target = ports.ModeMonitor
		}
		if err := r.SetMode(iface, target); err != nil {
			return runtimeError(err)
		}
		fmt.Fprintf(os.Stderr, "spyfi: %s now in %s mode\n", iface, target)
	}

	if hasCh {
		if err := r.SetChannel(iface, channel); err != nil {
			return runtimeError(err)
		}
	}

	if ch {
		got, err := r.GetChannel(iface)
		if err != nil {
			return runtimeError(err)
		}
		fmt.Println(got)
	}

	return exitOK
}
