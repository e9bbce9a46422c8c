// Package config implements the ambient configuration surface: stdlib
// flag parsing with environment-variable fallbacks (flags take precedence),
// plus the process-wide global state record §5/§9 describe (interface,
// channel, mode) guarded by a reader-writer lock.
package config

import (
	"flag"
	"os"
	"strconv"
)

// DefaultMaxChannel is the regulatory default channel ceiling (ETSI), per
// the source-quirk correction in §9(ii): MAX_CHANNEL varies across the
// original's source files (11/13/14/18); 13 is the safe default, with a
// CLI/env override parsed into Config.MaxChannel. No subcommand passes that
// value on: the Monitor Loop's sweep always visits channels 1-13.
const DefaultMaxChannel = 13

// Config holds the ambient settings shared by every subcommand.
type Config struct {
	Debug      bool
	MaxChannel int
	DBPath     string
	LogPath    string
	ArchiveDir string
}

// Load parses command-line flags for fs, falling back to environment
// variables, and returns the resulting Config. Flags always take
// precedence over environment variables. Debug, LogPath and MaxChannel are
// parsed and returned but no subcommand reads them: no debug log file is
// written and the channel sweep is fixed.
func Load(fs *flag.FlagSet) *Config {
	cfg := &Config{
		Debug:      getEnvBool("SPYFI_DEBUG", false),
		MaxChannel: getEnvInt("SPYFI_MAX_CHANNEL", DefaultMaxChannel),
		DBPath:     getEnv("SPYFI_DB", defaultDBPath()),
		LogPath:    getEnv("SPYFI_LOG", "spyfi.log"),
		ArchiveDir: getEnv("SPYFI_ARCHIVE_DIR", ""),
	}

	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug setting (parsed; no subcommand reads it)")
	fs.IntVar(&cfg.MaxChannel, "max-channel", cfg.MaxChannel, "channel ceiling (parsed; the sweep always visits channels 1-13)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the audit-log SQLite database")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "debug log file path (parsed; no subcommand writes this file)")
	fs.StringVar(&cfg.ArchiveDir, "archive-dir", cfg.ArchiveDir, "directory to archive captured handshakes as pcap files (disabled if empty)")

	return cfg
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "spyfi.db"
	}
	return home + "/.spyfi.db"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
