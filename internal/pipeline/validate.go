package pipeline

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Validate checks the rules a decoded pipeline must satisfy beyond its
// shape: node ids are unique. Empty strings are valid ids, types and edge
// endpoints, and edges may name ids that are not declared nodes. Required
// keys are checked while decoding, since a Go value cannot tell a missing
// key from an empty one.
func (p *Pipeline) Validate() error {
	var result *multierror.Error

	seen := make(map[string]int, len(p.Nodes))
	for i, n := range p.Nodes {
		if first, dup := seen[n.ID]; dup {
			result = multierror.Append(result, &SchemaError{
				Field: fmt.Sprintf("nodes[%d].id", i),
				Msg:   fmt.Sprintf("duplicate node id %q (first declared at nodes[%d])", n.ID, first),
			})
			continue
		}
		seen[n.ID] = i
	}

	return result.ErrorOrNil()
}
