package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/akhileshthite/chrome-extension-fetch/internal/config"
	"github.com/akhileshthite/chrome-extension-fetch/internal/platform"
	"github.com/akhileshthite/chrome-extension-fetch/internal/webstore"
)

// runSync handles the `crxfetch sync` subcommand: retrieve every
// extension listed in the config file, one at a time.
func runSync(args []string) error {
	flags := pflag.NewFlagSet("sync", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to crxfetch.lua (default: search path)")
	timeout := flags.Duration("timeout", 0, "per-request HTTP timeout (default 5m)")
	verbose := flags.BoolP("verbose", "v", false, "enable debug logging")
	quiet := flags.BoolP("quiet", "q", false, "log errors only")
	flags.Usage = func() {
		fmt.Println("Usage: crxfetch sync [flags]")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Print(flags.FlagUsages())
	}

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if flags.NArg() != 0 {
		flags.Usage()
		return fmt.Errorf("sync takes no arguments")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	logger := newLogger(*verbose, *quiet)

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
		if path == "" {
			return fmt.Errorf("no %s found; create one or pass --config", config.Filename)
		}
	}

	parser := config.NewParser(platform.NewDetector())
	cfg, err := parser.ParseFile(ctx, path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if len(cfg.Extensions) == 0 {
		return fmt.Errorf("config %s lists no extensions", path)
	}

	platformInfo, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect platform: %w", err)
	}

	retriever, err := webstore.NewRetriever(webstore.Config{
		PlatformInfo: platformInfo,
		Timeout:      *timeout,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	hopBudget := -1
	if cfg.HopBudget != nil {
		hopBudget = *cfg.HopBudget
	}

	failed := 0
	for _, ext := range cfg.Extensions {
		result, err := retriever.Retrieve(ctx, webstore.Request{
			ID:          ext.ID,
			Name:        ext.Name,
			ProdVersion: cfg.ProdVersion,
			OutputDir:   cfg.OutputDir,
			HopBudget:   hopBudget,
		})
		if err != nil {
			logger.Error("retrieval failed", "extension_id", ext.ID, "error", err)
			failed++
			continue
		}
		fmt.Printf("%s -> %s\n", ext.ID, result.ArchivePath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d extensions failed", failed, len(cfg.Extensions))
	}
	return nil
}
