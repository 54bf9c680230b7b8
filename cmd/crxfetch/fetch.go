package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/akhileshthite/chrome-extension-fetch/internal/config"
	"github.com/akhileshthite/chrome-extension-fetch/internal/platform"
	"github.com/akhileshthite/chrome-extension-fetch/internal/webstore"
)

// runFetch handles the `crxfetch fetch` subcommand
func runFetch(args []string) error {
	flags := pflag.NewFlagSet("fetch", pflag.ContinueOnError)
	outputDir := flags.StringP("out", "o", "", "output directory (default \"extensions\")")
	name := flags.String("name", "", "base filename for the .crx and .zip files (default: the extension ID)")
	prodVersion := flags.String("prodversion", "", "Chrome version to impersonate")
	hops := flags.Int("hops", -1, "redirect hop budget (default 5)")
	timeout := flags.Duration("timeout", 0, "per-request HTTP timeout (default 5m)")
	configPath := flags.String("config", "", "path to crxfetch.lua (default: search path)")
	verbose := flags.BoolP("verbose", "v", false, "enable debug logging")
	quiet := flags.BoolP("quiet", "q", false, "log errors only")
	flags.Usage = func() {
		fmt.Println("Usage: crxfetch fetch [flags] <extension-id-or-store-url>")
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
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("expected exactly one extension ID or store URL")
	}

	id, derivedName, err := resolveTarget(flags.Arg(0))
	if err != nil {
		return err
	}
	if *name == "" {
		*name = derivedName
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	logger := newLogger(*verbose, *quiet)

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		return err
	}
	applyConfigDefaults(cfg, outputDir, prodVersion, hops)

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

	result, err := retriever.Retrieve(ctx, webstore.Request{
		ID:          id,
		Name:        *name,
		ProdVersion: *prodVersion,
		OutputDir:   *outputDir,
		HopBudget:   *hops,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Container: %s\n", result.ContainerPath)
	fmt.Printf("Archive:   %s\n", result.ArchivePath)
	return nil
}

// resolveTarget turns a CLI argument into an extension ID and a base
// filename. Store detail-page URLs yield the page's friendly name;
// bare IDs fall back to the ID itself.
func resolveTarget(arg string) (id, name string, err error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		id, name, err = webstore.ParseStoreURL(arg)
		if err != nil {
			return "", "", err
		}
		if name == "" {
			name = id
		}
		return id, name, nil
	}

	if err := webstore.ValidateExtensionID(arg); err != nil {
		return "", "", err
	}
	return arg, arg, nil
}

// loadConfig loads the Lua config from path, or from the default
// search path when path is empty. A missing default config is not an
// error; an explicitly given path must exist.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
		if path == "" {
			return &config.Config{}, nil
		}
	}

	parser := config.NewParser(platform.NewDetector())
	cfg, err := parser.ParseFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfigDefaults fills unset flag values from the config file.
// Flags beat config, config beats built-in defaults.
func applyConfigDefaults(cfg *config.Config, outputDir, prodVersion *string, hops *int) {
	if *outputDir == "" && cfg.OutputDir != "" {
		*outputDir = cfg.OutputDir
	}
	if *prodVersion == "" && cfg.ProdVersion != "" {
		*prodVersion = cfg.ProdVersion
	}
	if *hops < 0 && cfg.HopBudget != nil {
		*hops = *cfg.HopBudget
	}
}
