// Command spyfi is the CLI entry point: three subcommands dispatching into
// the Radio Adapter, Monitor Loop, and Attack Coordinator, following the
// teacher's single flat main package with one file per concern.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"spyfi/internal/telemetry"
)

// exit codes, per spec §6.
const (
	exitOK      = 0
	exitError   = 1
	exitBadArgs = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	telemetry.InitMetrics()

	shutdownTracer, err := telemetry.InitTracer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "spyfi: tracer init: %v\n", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	if len(os.Args) < 2 {
		usage()
		return exitBadArgs
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch os.Args[1] {
	case "utility":
		return runUtility(ctx, os.Args[2:])
	case "enum":
		return runEnum(ctx, os.Args[2:])
	case "attack":
		return runAttack(ctx, os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "spyfi: unknown subcommand %q\n", os.Args[1])
		usage()
		return exitBadArgs
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  spyfi utility [-i|--iface IFACE] [-l|--list] [-c|--channel N] [--ch]
                [--psk PASSPHRASE -s|--ssid SSID] [MODE]
  spyfi enum -i IFACE [-t|--timeout SECONDS] [-o|--outputfile PATH] [-s|--sweep]
  spyfi attack --type {dict,dos} -b|--bssid BSSID --source (-i IFACE|-c FILE)
               [-s SSID] [-t|--threads N] [--target MAC] [--wordlist PATH] [--sweep]`)
}

// argError reports a usage mistake to stderr and returns the exit-2 code.
func argError(format string, a ...interface{}) int {
	fmt.Fprintf(os.Stderr, "spyfi: "+format+"\n", a...)
	return exitBadArgs
}

// runtimeError reports a typed operational failure and returns the exit-1 code.
func runtimeError(err error) int {
	fmt.Fprintf(os.Stderr, "spyfi: error: %v\n", err)
	return exitError
}
