package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vk/pipecheck/internal/analysis"
	"github.com/vk/pipecheck/internal/pipeline"
)

// Format names an output format.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMermaid Format = "mermaid"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMermaid}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unsupported format %q (use one of: %s)", s, strings.Join(names, ", "))
}

// Report is the outcome of checking one pipeline file. Exactly one of
// Analysis and Error is set.
type Report struct {
	File     string             `json:"file" yaml:"file"`
	Analysis *analysis.Analysis `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Order    []string           `json:"order,omitempty" yaml:"order,omitempty"`
	Error    []string           `json:"error,omitempty" yaml:"error,omitempty"`

	Pipeline *pipeline.Pipeline `json:"-" yaml:"-"`
}

// Failed reports whether the file could not be analyzed.
func (r *Report) Failed() bool {
	return r.Analysis == nil
}

// Cyclic reports whether the file was analyzed and contains a cycle.
func (r *Report) Cyclic() bool {
	return r.Analysis != nil && r.Analysis.HasCycle
}

// Options tunes the output.
type Options struct {
	// Color enables ANSI colors in text output.
	Color bool
	// Order includes the topological order.
	Order bool
}

// Write renders reports to w in the given format.
func Write(w io.Writer, format Format, reports []Report, opts Options) error {
	if !opts.Order {
		trimmed := make([]Report, len(reports))
		for i, r := range reports {
			r.Order = nil
			trimmed[i] = r
		}
		reports = trimmed
	}

	switch format {
	case FormatText:
		return writeText(w, reports, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatMermaid:
		return writeMermaid(w, reports)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
