// Package cmd implements the CLI application to track holdings.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/market"
	"github.com/etnz/holdings/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands() {
		c.Register(cmd, "holdings")
	}
}

// Commands returns the holdings subcommands.
func Commands() []subcommands.Command {
	return []subcommands.Command{&addCmd{}, &deleteCmd{}, &clearCmd{}, &listCmd{}}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
// Empty flags are unset and fall back to the environment, the config file, then the defaults.

var (
	configFile = flag.String("config", "", "Path to a YAML config file (default \"hld.yaml\" if present). Env: "+EnvConfigFile)
	baseURL    = flag.String("base-url", "", "Base URL of the quote service (default \""+market.DefaultBaseURL+"\"). Env: "+EnvBaseURL)
	storeKind  = flag.String("store", "", "Persisted store, \"file\" or \"sqlite\" (default \"file\"). Env: "+EnvStore)
	storePath  = flag.String("store-path", "", "Directory of the persisted store (default \".holdings\"). Env: "+EnvStorePath)
	slot       = flag.String("slot", "", "Name of the persisted slot (default \""+holdings.DefaultSlot+"\"). Env: "+EnvSlot)
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error (default \"error\"). Env: "+EnvLogLevel)
	raw        = flag.Bool("raw", false, "Print plain markdown instead of rendering it for the terminal")
)

// output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// resolveConfig computes the effective configuration: flags over environment
// over config file over defaults.
func resolveConfig() (Config, error) {
	cfg := DefaultConfig()

	path, required := "hld.yaml", false
	if p := firstOf(*configFile, os.Getenv(EnvConfigFile)); p != "" {
		path, required = p, true
	}
	if err := cfg.LoadConfigFile(path, required); err != nil {
		return cfg, err
	}

	cfg.merge(Config{
		BaseURL:   os.Getenv(EnvBaseURL),
		Store:     os.Getenv(EnvStore),
		StorePath: os.Getenv(EnvStorePath),
		Slot:      os.Getenv(EnvSlot),
		LogLevel:  os.Getenv(EnvLogLevel),
	})
	cfg.merge(Config{
		BaseURL:   *baseURL,
		Store:     *storeKind,
		StorePath: *storePath,
		Slot:      *slot,
		LogLevel:  *logLevel,
	})
	return cfg, cfg.Validate()
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// openStore returns the configured store and the function releasing it.
func openStore(cfg Config, log zerolog.Logger) (holdings.Store, func() error, error) {
	switch cfg.Store {
	case "sqlite":
		db, err := store.OpenSQLite(filepath.Join(cfg.StorePath, "holdings.db"), cfg.Slot, log)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return store.NewFile(cfg.StorePath, cfg.Slot, log), func() error { return nil }, nil
	}
}

// OpenTracker is the central function to get a started tracker. Startup
// warnings are printed to stderr, they never prevent the tracker from working.
// The returned function must be called to release the store.
func OpenTracker(ctx context.Context) (*holdings.Tracker, func() error, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	s, closeStore, err := openStore(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	client := market.New(cfg.BaseURL, market.WithLogger(log))
	tracker := holdings.NewTracker(s, client, client,
		holdings.WithLogger(log),
		holdings.WithCurrencies(cfg.BaseCurrency, cfg.DisplayCurrency),
	)
	if err := tracker.Startup(ctx); err != nil {
		printWarning(err)
	}
	return tracker, closeStore, nil
}

// printWarning prints every line of err as a warning.
func printWarning(err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(stderr, "Warning: %s\n", line)
	}
}

// exitStatus maps an engine error to the command exit status, printing it.
func exitStatus(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if errors.Is(err, holdings.ErrValidation) || errors.Is(err, holdings.ErrIndex) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
