package render

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/gookit/color"

	"github.com/vk/pipecheck/internal/analysis"
)

type palette struct {
	ok, bad, warn, dim func(a ...any) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		plain := func(a ...any) string { return fmt.Sprint(a...) }
		return palette{ok: plain, bad: plain, warn: plain, dim: plain}
	}
	return palette{
		ok:   color.Green.Sprint,
		bad:  color.Red.Sprint,
		warn: color.Yellow.Sprint,
		dim:  color.Gray.Sprint,
	}
}

func writeText(w io.Writer, reports []Report, opts Options) error {
	p := newPalette(opts.Color)
	var sb strings.Builder

	for _, r := range reports {
		switch {
		case r.Failed():
			fmt.Fprintf(&sb, "%s %s\n", p.bad("✘"), r.File)
			for _, msg := range r.Error {
				fmt.Fprintf(&sb, "  %s\n", p.bad(msg))
			}
			continue
		case r.Cyclic():
			fmt.Fprintf(&sb, "%s %s\n", p.bad("✘"), r.File)
		default:
			fmt.Fprintf(&sb, "%s %s\n", p.ok("✔"), r.File)
		}

		a := r.Analysis
		fmt.Fprintf(&sb, "  %s %d  %s %d  %s %s\n",
			p.dim("nodes"), a.NumNodes,
			p.dim("edges"), a.NumEdges,
			p.dim("types"), typeSummary(a.NodeTypes),
		)
		if a.HasCycle {
			fmt.Fprintf(&sb, "  %s\n", p.bad(a.Message))
		} else {
			fmt.Fprintf(&sb, "  %s\n", p.ok(a.Message))
		}
		if a.HasIsolatedNodes {
			fmt.Fprintf(&sb, "  %s %s\n", p.warn("isolated:"), strings.Join(a.IsolatedNodes, ", "))
		}
		if len(r.Order) > 0 {
			fmt.Fprintf(&sb, "  %s %s\n", p.dim("order:"), strings.Join(r.Order, analysis.CycleSeparator))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// typeSummary renders the node type histogram sorted by type name.
func typeSummary(types map[string]int) string {
	if len(types) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(types))
	for _, t := range slices.Sorted(maps.Keys(types)) {
		parts = append(parts, fmt.Sprintf("%s=%d", t, types[t]))
	}
	return strings.Join(parts, ", ")
}
