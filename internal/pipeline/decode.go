package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// document mirrors Pipeline with pointers so that an absent or null key can
// be told apart from an empty value: "id": "" is a valid id, a missing "id"
// is not.
type document struct {
	Nodes *[]nodeDocument `json:"nodes" yaml:"nodes"`
	Edges *[]edgeDocument `json:"edges" yaml:"edges"`
}

type nodeDocument struct {
	ID       *string        `json:"id" yaml:"id"`
	Type     *string        `json:"type" yaml:"type"`
	Position Position       `json:"position" yaml:"position"`
	Data     map[string]any `json:"data" yaml:"data"`
}

type edgeDocument struct {
	ID           string  `json:"id" yaml:"id"`
	Source       *string `json:"source" yaml:"source"`
	Target       *string `json:"target" yaml:"target"`
	SourceHandle string  `json:"sourceHandle" yaml:"sourceHandle"`
	TargetHandle string  `json:"targetHandle" yaml:"targetHandle"`
}

// pipeline checks that every required key is present, converts the document
// and runs Validate. Missing keys are reported together; uniqueness is only
// checked once every key is present.
func (d *document) pipeline() (*Pipeline, error) {
	var result *multierror.Error
	required := func(field string, v *string) string {
		if v == nil {
			result = multierror.Append(result, &SchemaError{Field: field, Msg: "field required"})
			return ""
		}
		return *v
	}

	if d.Nodes == nil {
		result = multierror.Append(result, &SchemaError{Field: "nodes", Msg: "field required"})
	}
	if d.Edges == nil {
		result = multierror.Append(result, &SchemaError{Field: "edges", Msg: "field required"})
	}

	p := &Pipeline{Nodes: []Node{}, Edges: []Edge{}}
	if d.Nodes != nil {
		for i, n := range *d.Nodes {
			field := fmt.Sprintf("nodes[%d]", i)
			p.Nodes = append(p.Nodes, Node{
				ID:       required(field+".id", n.ID),
				Type:     required(field+".type", n.Type),
				Position: n.Position,
				Data:     n.Data,
			})
		}
	}
	if d.Edges != nil {
		for i, e := range *d.Edges {
			field := fmt.Sprintf("edges[%d]", i)
			p.Edges = append(p.Edges, Edge{
				ID:           e.ID,
				Source:       required(field+".source", e.Source),
				Target:       required(field+".target", e.Target),
				SourceHandle: e.SourceHandle,
				TargetHandle: e.TargetHandle,
			})
		}
	}

	if result.ErrorOrNil() == nil {
		result = multierror.Append(result, p.Validate())
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return p, nil
}

// Decode reads exactly one JSON pipeline document from r and validates it.
// Unknown fields are ignored; editors attach plenty of UI state to nodes.
// Anything but whitespace after the document is a parse error.
func Decode(r io.Reader) (*Pipeline, error) {
	dec := json.NewDecoder(r)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, classifyJSONError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Msg: "unexpected data after pipeline document", Err: err}
	}
	return doc.pipeline()
}

// DecodeYAML reads a single YAML pipeline document from r and validates it.
func DecodeYAML(r io.Reader) (*Pipeline, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, classifyYAMLError(err)
	}
	return doc.pipeline()
}

// Load reads a pipeline file, choosing the decoder by file extension.
func Load(path string) (*Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pipeline file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return Decode(f)
	case ".yaml", ".yml":
		return DecodeYAML(f)
	default:
		return nil, fmt.Errorf("unsupported pipeline file extension %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
}

func classifyJSONError(err error) error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &SchemaError{Field: field, Msg: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)}
	case errors.Is(err, io.EOF):
		return &ParseError{Msg: "empty document", Err: err}
	default:
		return &ParseError{Msg: err.Error(), Err: err}
	}
}

func classifyYAMLError(err error) error {
	var typeErr *yaml.TypeError
	switch {
	case errors.As(err, &typeErr):
		var result *multierror.Error
		for _, msg := range typeErr.Errors {
			result = multierror.Append(result, &SchemaError{Msg: msg})
		}
		if result == nil {
			return &SchemaError{Msg: typeErr.Error()}
		}
		return result
	case errors.Is(err, io.EOF):
		return &ParseError{Msg: "empty document", Err: err}
	default:
		return &ParseError{Msg: err.Error(), Err: err}
	}
}
