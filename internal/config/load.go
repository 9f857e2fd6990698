package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/pipecheck/internal/ctxlog"
)

// sections lists the nested blocks a configuration file may contain.
var sections = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "cors"},
		{Type: "socketio"},
		{Type: "metrics"},
	},
}

// Load reads the HCL file at path on top of Default and validates the
// result. An empty path yields the validated defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := Default()

	if path == "" {
		logger.Debug("No configuration file given, using defaults.")
		return cfg, cfg.Validate()
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	if err := decode(file.Body, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	logger.Debug("Configuration file loaded.", "path", path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes HCL source on top of Default without validating it.
// filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	cfg := Default()
	if err := decode(file.Body, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies body to cfg. Attributes and blocks absent from the body
// leave the corresponding fields untouched.
func decode(body hcl.Body, cfg *Config) error {
	evalCtx := evalContext()

	content, remain, diags := body.PartialContent(sections)
	if diags.HasErrors() {
		return diags
	}
	if diags := gohcl.DecodeBody(remain, evalCtx, cfg); diags.HasErrors() {
		return diags
	}

	seen := make(map[string]hcl.Range)
	for _, block := range content.Blocks {
		if prev, dup := seen[block.Type]; dup {
			return hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Duplicate " + block.Type + " block",
				Detail:   fmt.Sprintf("A %s block was already declared at %s.", block.Type, prev),
				Subject:  &block.DefRange,
			}}
		}
		seen[block.Type] = block.DefRange

		var target any
		switch block.Type {
		case "cors":
			target = &cfg.CORS
		case "socketio":
			target = &cfg.SocketIO
		case "metrics":
			target = &cfg.Metrics
		}
		if diags := gohcl.DecodeBody(block.Body, evalCtx, target); diags.HasErrors() {
			return diags
		}
	}
	return nil
}
