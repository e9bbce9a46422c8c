package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"spyfi/internal/adapters/sniffer/radio"
	"spyfi/internal/core/audit"
	"spyfi/internal/core/control"
	"spyfi/internal/core/domain"
	"spyfi/internal/core/monitor"
	"spyfi/internal/core/registry"

	"spyfi/internal/adapters/storage"
	"spyfi/internal/config"
)

// runEnum implements `spyfi enum`: listens on iface, maintains the Network
// Index, and prints a periodic table until timeout, per spec §6.
func runEnum(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("enum", flag.ContinueOnError)
	var (
		iface      string
		timeout    int
		outputFile string
		sweep      bool
	)
	fs.StringVar(&iface, "iface", "", "wireless interface to listen on")
	fs.StringVar(&iface, "i", "", "alias for --iface")
	fs.IntVar(&timeout, "timeout", 60, "seconds to listen before exiting")
	fs.IntVar(&timeout, "t", 60, "alias for --timeout")
	fs.StringVar(&outputFile, "outputfile", "", "write the final table to PATH")
	fs.StringVar(&outputFile, "o", "", "alias for --outputfile")
	fs.BoolVar(&sweep, "sweep", false, "enable channel sweeping")
	fs.BoolVar(&sweep, "s", false, "alias for --sweep")
	cfg := config.Load(fs)
	if err := fs.Parse(args); err != nil {
		return exitBadArgs
	}
	if iface == "" {
		return argError("enum requires -i|--iface")
	}

	store, auditSvc := openAudit(cfg.DBPath)
	if store != nil {
		defer store.Close()
	}

	r := radio.New()
	idx := registry.NewIndex()
	bus := control.NewBus(16)

	loop, err := monitor.New(r, iface, idx, bus, cfg.ArchiveDir)
	if err != nil {
		return runtimeError(err)
	}
	if auditSvc != nil {
		auditSvc.Log(ctx, domain.ActionMonitorStart, iface, "enum")
	}

	if sweep {
		bus.MonitorCommands <- control.SweepCommand{}
	}

	go loop.Run()

	deadline := time.After(time.Duration(timeout) * time.Second)
	var last map[domain.Mac]*domain.NetworkInfo

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-deadline:
			break loop
		case ev := <-bus.MonitorEvents:
			switch e := ev.(type) {
			case control.SnapshotEvent:
				last = e.Networks
				printTable(e.Networks)
			case control.PermissionEvent:
				if auditSvc != nil {
					auditSvc.Log(ctx, domain.ActionPermissionError, iface, e.Err.Error())
				}
				return runtimeError(e.Err)
			case control.MonitorEndedEvent:
				break loop
			}
		}
	}

	bus.MonitorCommands <- control.EndCommand{}
	if auditSvc != nil {
		auditSvc.Log(ctx, domain.ActionMonitorEnd, iface, fmt.Sprintf("%d networks", len(last)))
	}

	if outputFile != "" && last != nil {
		if err := writeTableFile(outputFile, last); err != nil {
			return runtimeError(err)
		}
	}

	return exitOK
}

func openAudit(path string) (*storage.SQLiteAdapter, *audit.Service) {
	if path == "" {
		return nil, nil
	}
	store, err := storage.NewSQLiteAdapter(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spyfi: audit log unavailable: %v\n", err)
		return nil, nil
	}
	return store, audit.NewService(store)
}

func printTable(networks map[domain.Mac]*domain.NetworkInfo) {
	fmt.Printf("\n%-17s %-20s %-3s %-8s %-5s %s\n", "BSSID", "SSID", "CH", "PROTO", "CLNT", "HANDSHAKE")
	for _, n := range networks {
		hs := "no"
		if n.Handshake != nil {
			hs = "yes"
		}
		fmt.Printf("%-17s %-20s %-3d %-8s %-5d %s\n",
			n.Bssid.String(), n.Ssid, n.Channel, n.Protocol, len(n.Clients), hs)
	}
}

func writeTableFile(path string, networks map[domain.Mac]*domain.NetworkInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintf(f, "%-17s %-20s %-3s %-8s %-5s %s\n", "BSSID", "SSID", "CH", "PROTO", "CLNT", "HANDSHAKE")
	for _, n := range networks {
		hs := "no"
		if n.Handshake != nil {
			hs = "yes"
		}
		fmt.Fprintf(f, "%-17s %-20s %-3d %-8s %-5d %s\n",
			n.Bssid.String(), n.Ssid, n.Channel, n.Protocol, len(n.Clients), hs)
	}
	return nil
}
