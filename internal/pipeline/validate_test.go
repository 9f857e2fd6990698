package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DuplicateIDs(t *testing.T) {
	p := &Pipeline{
		Nodes: []Node{
			{ID: "a", Type: "input"},
			{ID: "", Type: "llm"},
			{ID: "a", Type: ""},
			{ID: "", Type: "text"},
		},
		Edges: []Edge{},
	}

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))

	assert.Equal(t, []string{
		`schema error: nodes[2].id: duplicate node id "a" (first declared at nodes[0])`,
		`schema error: nodes[3].id: duplicate node id "" (first declared at nodes[1])`,
	}, Problems(err))
}

func TestValidate_EmptyStringsAreValues(t *testing.T) {
	p := &Pipeline{
		Nodes: []Node{{ID: "", Type: ""}, {ID: "b", Type: "output"}},
		Edges: []Edge{{Source: "", Target: "b"}, {Source: "b", Target: ""}, {Source: "a", Target: "nowhere"}},
	}
	assert.NoError(t, p.Validate())
}

func TestPipelineHelpers(t *testing.T) {
	p := &Pipeline{
		Nodes: []Node{
			{ID: "a", Type: "input"},
			{ID: "b", Type: "llm"},
			{ID: "c", Type: "llm"},
			{ID: "lonely", Type: "text"},
		},
		Edges: []Edge{
			{Source: "a", Target: "b"},
			{Source: "ghost", Target: "c"},
		},
	}

	assert.Equal(t, []string{"a", "b", "c", "lonely"}, p.NodeIDs())
	assert.Equal(t, map[string]int{"input": 1, "llm": 2, "text": 1}, p.TypeCounts())
	assert.Equal(t, []string{"lonely"}, p.IsolatedNodes())
}

func TestProblems(t *testing.T) {
	assert.Nil(t, Problems(nil))
	assert.Equal(t, []string{"boom"}, Problems(errors.New("boom")))
}
