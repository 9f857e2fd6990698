package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vk/pipecheck/internal/analysis"
	"github.com/vk/pipecheck/internal/pipeline"
)

const cycleLinkStyle = "stroke:#d33,stroke-width:3px"

func writeMermaid(w io.Writer, reports []Report) error {
	var sb strings.Builder
	for i, r := range reports {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%%%% %s\n", r.File)
		if r.Failed() || r.Pipeline == nil {
			for _, msg := range r.Error {
				fmt.Fprintf(&sb, "%%%% error: %s\n", msg)
			}
			continue
		}
		sb.WriteString(Mermaid(r.Pipeline, r.Analysis))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Mermaid renders p as a Mermaid flowchart. Node ids are replaced with
// generated identifiers so arbitrary ids render safely. When a reports a
// cycle, its edges are highlighted. Edges touching an unknown node are
// emitted as comments.
func Mermaid(p *pipeline.Pipeline, a *analysis.Analysis) string {
	var sb strings.Builder
	sb.WriteString("flowchart TD\n")

	ids := make(map[string]string, len(p.Nodes))
	for _, n := range p.Nodes {
		if _, dup := ids[n.ID]; dup {
			continue
		}
		ref := "n" + strconv.Itoa(len(ids))
		ids[n.ID] = ref
		fmt.Fprintf(&sb, "    %s[\"%s<br/>(%s)\"]\n", ref, escapeLabel(n.ID), escapeLabel(n.Type))
	}

	onCycle := cycleEdges(a)
	var highlighted []string
	link := 0
	for _, e := range p.Edges {
		src, srcOK := ids[e.Source]
		tgt, tgtOK := ids[e.Target]
		if !srcOK || !tgtOK {
			fmt.Fprintf(&sb, "    %%%% dangling edge: %s --> %s\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&sb, "    %s --> %s\n", src, tgt)

		key := [2]string{e.Source, e.Target}
		if onCycle[key] {
			highlighted = append(highlighted, strconv.Itoa(link))
			delete(onCycle, key)
		}
		link++
	}

	if len(highlighted) > 0 {
		fmt.Fprintf(&sb, "    linkStyle %s %s\n", strings.Join(highlighted, ","), cycleLinkStyle)
	}
	return sb.String()
}

// cycleEdges returns the consecutive pairs of the reported cycle.
func cycleEdges(a *analysis.Analysis) map[[2]string]bool {
	out := make(map[[2]string]bool)
	if a == nil {
		return out
	}
	for i := 0; i+1 < len(a.Cycle); i++ {
		out[[2]string{a.Cycle[i], a.Cycle[i+1]}] = true
	}
	return out
}

func escapeLabel(s string) string {
	return strings.NewReplacer(`"`, "#quot;", "<", "#lt;", ">", "#gt;").Replace(s)
}
