package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/pipecheck/internal/analysis"
	"github.com/vk/pipecheck/internal/pipeline"
	"github.com/vk/pipecheck/internal/testutil"
)

func analyzed(t *testing.T, file string, p *pipeline.Pipeline) Report {
	t.Helper()
	a := analysis.New(nil).Analyze(testutil.Context(t), p)
	return Report{File: file, Analysis: a, Order: a.Order, Pipeline: p}
}

func sampleReports(t *testing.T) []Report {
	t.Helper()
	ok := testutil.NewPipeline().
		Node("in", "input").Node("llm", "llm").Node("note", "text").
		Edge("in", "llm").
		Build()
	cyclic := testutil.NewPipeline().
		Node("A", "t").Node("B", "t").
		Edge("A", "B").Edge("B", "A").
		Build()
	return []Report{
		analyzed(t, "ok.json", ok),
		analyzed(t, "cyclic.yaml", cyclic),
		{File: "broken.json", Error: []string{"parse error: unexpected EOF"}},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, got)

	_, err = ParseFormat("dot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text, json, yaml, mermaid")
}

func TestReport_State(t *testing.T) {
	reports := sampleReports(t)

	assert.False(t, reports[0].Failed())
	assert.False(t, reports[0].Cyclic())
	assert.True(t, reports[1].Cyclic())
	assert.True(t, reports[2].Failed())
	assert.False(t, reports[2].Cyclic())
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleReports(t), Options{Order: true}))
	out := buf.String()

	assert.Contains(t, out, "✔ ok.json")
	assert.Contains(t, out, "nodes 3  edges 1  types input=1, llm=1, text=1")
	assert.Contains(t, out, "Pipeline is a valid DAG")
	assert.Contains(t, out, "isolated: note")
	assert.Contains(t, out, "order: in -> note -> llm")

	assert.Contains(t, out, "✘ cyclic.yaml")
	assert.Contains(t, out, "Pipeline contains a cycle: A -> B -> A")

	assert.Contains(t, out, "✘ broken.json\n  parse error: unexpected EOF")
	assert.NotContains(t, out, "\x1b[", "colors must be off")
}

func TestWrite_TextWithoutOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleReports(t), Options{}))
	assert.NotContains(t, buf.String(), "order:")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleReports(t), Options{}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "ok.json", got[0]["file"])
	assert.NotContains(t, got[0], "order")
	first := got[0]["analysis"].(map[string]any)
	assert.Equal(t, true, first["is_dag"])
	assert.Equal(t, []any{"note"}, first["isolated_nodes"])

	assert.Equal(t, []any{"A", "B", "A"}, got[1]["analysis"].(map[string]any)["cycle"])

	assert.NotContains(t, got[2], "analysis")
	assert.Equal(t, []any{"parse error: unexpected EOF"}, got[2]["error"])
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleReports(t), Options{Order: true}))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "cyclic.yaml", got[1]["file"])
	second := got[1]["analysis"].(map[string]any)
	assert.Equal(t, false, second["is_dag"])
	assert.Equal(t, true, second["has_cycle"])
	assert.Equal(t, []any{"in", "note", "llm"}, got[0]["order"])
}

func TestMermaid(t *testing.T) {
	p := testutil.NewPipeline().
		Node("A", "llm").Node(`say "hi"`, "text").Node("C", "out").
		Edge("A", `say "hi"`).
		Edge(`say "hi"`, "C").
		Edge("C", "ghost").
		Edge("C", "A").
		Build()
	a := analysis.New(nil).Analyze(testutil.Context(t), p)
	require.True(t, a.HasCycle)

	got := Mermaid(p, a)

	want := strings.Join([]string{
		"flowchart TD",
		`    n0["A<br/>(llm)"]`,
		`    n1["say #quot;hi#quot;<br/>(text)"]`,
		`    n2["C<br/>(out)"]`,
		"    n0 --> n1",
		"    n1 --> n2",
		"    %% dangling edge: C --> ghost",
		"    n2 --> n0",
		"    linkStyle 0,1,2 " + cycleLinkStyle,
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestMermaid_AcyclicHasNoHighlight(t *testing.T) {
	p := testutil.NewPipeline().Node("A", "t").Node("B", "t").Edge("A", "B").Build()
	a := analysis.New(nil).Analyze(testutil.Context(t), p)

	got := Mermaid(p, a)
	assert.Contains(t, got, "n0 --> n1")
	assert.NotContains(t, got, "linkStyle")
}

func TestWrite_Mermaid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatMermaid, sampleReports(t), Options{}))
	out := buf.String()

	assert.Contains(t, out, "%% ok.json\nflowchart TD")
	assert.Contains(t, out, "%% cyclic.yaml\nflowchart TD")
	assert.Contains(t, out, "%% broken.json\n%% error: parse error: unexpected EOF")
}
