// Package config provides sandboxed Lua configuration parsing for
// crxfetch.
//
// Configs are declarative Lua files executed in a restricted VM with a
// read-only `platform` table injected, so values can vary by OS or
// distribution:
//
//	crxfetch = {
//	  prodversion = "114.0.5735.133",
//	  output_dir  = platform.when(platform.is_windows, "Downloads") or "extensions",
//	  hop_budget  = 5,
//	  extensions  = {
//	    "idpfgkgogjjgklefnkjdpghkifbjenap",
//	    { id = "cjpalhdlnbpafiamejdnhcphjbkeiagm", name = "ublock-origin" },
//	  },
//	}
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Filename is the config file name looked up in the search path.
const Filename = "crxfetch.lua"

// Config represents the complete crxfetch configuration.
type Config struct {
	// ProdVersion is the impersonated Chrome version used for every
	// retrieval. Empty means the built-in default.
	ProdVersion string `json:"prodversion,omitempty"`

	// OutputDir is where container and archive files are written.
	OutputDir string `json:"output_dir,omitempty"`

	// HopBudget bounds redirect chains. Nil means the built-in
	// default; zero is a valid (no redirects allowed) value.
	HopBudget *int `json:"hop_budget,omitempty"`

	// Extensions are retrieved by `crxfetch sync`.
	Extensions []Extension `json:"extensions,omitempty"`
}

// Extension identifies one extension to retrieve.
type Extension struct {
	// ID is the 32-character extension identifier.
	ID string `json:"id"`

	// Name is the optional base filename for the output files.
	Name string `json:"name,omitempty"`
}

// prodVersionPattern matches dotted Chrome version strings like
// "114.0.5735.133".
var prodVersionPattern = regexp.MustCompile(`^\d+(\.\d+){1,3}$`)

// extensionIDPattern matches web store extension identifiers.
var extensionIDPattern = regexp.MustCompile(`^[a-p]{32}$`)

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.ProdVersion != "" && !prodVersionPattern.MatchString(c.ProdVersion) {
		return fmt.Errorf("prodversion %q is not a dotted version string", c.ProdVersion)
	}
	if c.HopBudget != nil && *c.HopBudget < 0 {
		return fmt.Errorf("hop_budget must be non-negative, got %d", *c.HopBudget)
	}
	for i, ext := range c.Extensions {
		if !extensionIDPattern.MatchString(ext.ID) {
			return fmt.Errorf("extensions[%d]: %q is not an extension ID (32 characters a-p)", i, ext.ID)
		}
	}
	return nil
}

// DefaultPath returns the first config file found on the search path:
// ./crxfetch.lua, then <user config dir>/crxfetch/crxfetch.lua. An
// empty string means no config file exists, which is not an error.
func DefaultPath() string {
	if _, err := os.Stat(Filename); err == nil {
		return Filename
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(configDir, "crxfetch", Filename)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
