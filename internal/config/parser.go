package config

import (
	"context"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/akhileshthite/chrome-extension-fetch/internal/platform"
)

// Parser represents a Lua config parser with platform detection.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a new config parser with the given platform
// detector. A nil detector skips platform table injection (useful for
// tests that don't exercise platform conditionals).
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// ParseFile parses a Lua config from a file on disk.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return p.ParseString(ctx, string(code))
}

// ParseString parses a Lua config from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()

	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// extractConfig extracts the config from a Lua state.
// It expects a global "crxfetch" table with the config structure.
func extractConfig(L *lua.LState) (*Config, error) {
	rootValue := L.GetGlobal("crxfetch")
	if rootValue.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'crxfetch' table",
			Detail:  fmt.Sprintf("expected table, got %s", rootValue.Type()),
		}
	}

	config := &Config{}
	table := rootValue.(*lua.LTable)

	if v := table.RawGetString("prodversion"); v.Type() == lua.LTString {
		config.ProdVersion = v.String()
	}

	if v := table.RawGetString("output_dir"); v.Type() == lua.LTString {
		config.OutputDir = v.String()
	}

	if v := table.RawGetString("hop_budget"); v.Type() == lua.LTNumber {
		budget := int(v.(lua.LNumber))
		config.HopBudget = &budget
	}

	if v := table.RawGetString("extensions"); v.Type() == lua.LTTable {
		extensions, err := extractExtensions(v.(*lua.LTable))
		if err != nil {
			return nil, err
		}
		config.Extensions = extensions
	}

	if err := config.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return config, nil
}

// extractExtensions reads the extensions array. Entries are either a
// bare ID string or a table with "id" and optional "name" fields.
func extractExtensions(table *lua.LTable) ([]Extension, error) {
	var extensions []Extension
	var extractErr error

	table.ForEach(func(key, value lua.LValue) {
		if extractErr != nil {
			return
		}
		switch value.Type() {
		case lua.LTString:
			extensions = append(extensions, Extension{ID: value.String()})
		case lua.LTTable:
			entry := value.(*lua.LTable)
			ext := Extension{}
			if id := entry.RawGetString("id"); id.Type() == lua.LTString {
				ext.ID = id.String()
			}
			if name := entry.RawGetString("name"); name.Type() == lua.LTString {
				ext.Name = name.String()
			}
			if ext.ID == "" {
				extractErr = &ParseError{
					Message: "invalid extensions entry",
					Detail:  "table entries must have an 'id' field",
				}
				return
			}
			extensions = append(extensions, ext)
		default:
			extractErr = &ParseError{
				Message: "invalid extensions entry",
				Detail:  fmt.Sprintf("expected string or table, got %s", value.Type()),
			}
		}
	})

	if extractErr != nil {
		return nil, extractErr
	}
	return extensions, nil
}
