// Wayfarer is a text adventure interpreter: it loads a world written in
// Lua or YAML and plays it in a terminal UI or a plain line-oriented CLI.
//
// Usage: wayfarer [--config file] [--plain] [--script file] [--trace] [--seed n] [--save-db file] [world]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/nathoo/wayfarer/cli"
	"github.com/nathoo/wayfarer/config"
	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/engine/world"
	"github.com/nathoo/wayfarer/loader"
	"github.com/nathoo/wayfarer/observability"
	"github.com/nathoo/wayfarer/store"
	"github.com/nathoo/wayfarer/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	plain := flag.Bool("plain", false, "use the plain line-oriented interface")
	script := flag.String("script", "", "play commands from a file, echoing each one")
	trace := flag.Bool("trace", false, "print how each command was parsed")
	seed := flag.Int64("seed", 0, "dice seed; 0 seeds from the clock")
	saveDB := flag.String("save-db", "", "sqlite file holding save slots")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: wayfarer [flags] [world directory or .yaml file]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("wayfarer %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "plain":
			cfg.UI.Plain = *plain
		case "trace":
			cfg.UI.Trace = *trace
		case "seed":
			cfg.Game.Seed = *seed
		case "save-db":
			cfg.Game.SaveDB = *saveDB
		}
	})
	if flag.NArg() > 0 {
		cfg.Game.World = flag.Arg(0)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *script, logger); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, script string, logger *zap.Logger) error {
	def, err := loader.LoadWorld(cfg.Game.World)
	if err != nil {
		return fmt.Errorf("loading world: %w", err)
	}
	w, err := world.Build(def)
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}

	st, err := store.Open(ctx, cfg.Game.SaveDB)
	if err != nil {
		return err
	}
	defer st.Close()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng := engine.New(w, engine.WithDice(engine.NewRNG(seed)), engine.WithLogger(logger))

	logger.Info("game loaded",
		zap.String("world", cfg.Game.World),
		zap.String("title", w.Title),
		zap.Int64("seed", seed),
		zap.String("save_db", cfg.Game.SaveDB),
	)

	// Script mode: read the file, force plain, echo commands.
	if script != "" {
		f, err := os.Open(script)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c := cli.New(eng, st)
		c.In = f
		c.EchoInput = true
		c.Trace = cfg.UI.Trace
		return c.Run(ctx)
	}

	if cfg.UI.Plain || !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		c := cli.New(eng, st)
		c.EchoInput = cfg.UI.Echo
		c.Trace = cfg.UI.Trace
		return c.Run(ctx)
	}

	return tui.Run(ctx, eng, st, cfg.UI.Trace)
}

// isTerminal reports whether f is a terminal (not piped/redirected).
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
