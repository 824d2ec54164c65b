package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"templatehub/internal/catalog"
	"templatehub/internal/cli"
	"templatehub/internal/config"
	"templatehub/internal/logs"
)

func main() {
	// Parse CLI flags
	contentFlag := flag.String("content", "", "Content directory")
	flag.StringVar(contentFlag, "c", "", "Content directory (shorthand)")
	publicFlag := flag.String("public", "", "Static files directory")
	addrFlag := flag.String("addr", "", "Listen address for serve")
	levelFlag := flag.String("log-level", "", "Log level: debug, info, warn, error")
	formatFlag := flag.String("log-format", "", "Log format: pretty, json, text")
	strictFlag := flag.Bool("strict", false, "Fail the load on the first malformed template")
	watchFlag := flag.Bool("watch", false, "Reload content when files change")
	flag.Parse()

	// Build CLIFlags; bool flags only count when given explicitly
	cliFlags := config.CLIFlags{
		ContentDir: *contentFlag,
		PublicDir:  *publicFlag,
		Addr:       *addrFlag,
		LogLevel:   *levelFlag,
		LogFormat:  *formatFlag,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strict":
			cliFlags.Strict = strictFlag
		case "watch":
			cliFlags.Watch = watchFlag
		}
	})

	// Load configuration
	cfg, err := config.Load(cliFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		logs.Logger.Warn("could not create config file", "error", err)
	}

	args := flag.Args()

	// The terminal browser owns the screen, so its logs go to a file
	logOpts := logs.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}
	if len(args) == 0 || args[0] == "browse" {
		if dir, err := config.ConfigDir(); err == nil {
			logOpts.Dir = dir
		}
	}
	if err := logs.Initialize(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logger: %v\n", err)
	}

	policy := catalog.SkipMalformed
	if cfg.Strict {
		policy = catalog.Strict
	}
	store := catalog.NewStore(cfg.ContentDir, catalog.Options{Policy: policy, Logger: logs.Logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, args, cli.Env{Config: cfg, Store: store})
	stop()
	logs.Close()
	os.Exit(code)
}
