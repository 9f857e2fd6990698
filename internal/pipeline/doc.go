// Package pipeline defines the wire model of an editor pipeline (nodes,
// edges and their opaque editor metadata) and the schema layer that decodes
// and rejects malformed documents before any graph analysis runs.
//
// Nothing in this package inspects graph structure beyond what is needed to
// reject a malformed document: dangling edge references are valid input and
// are left for the dag package to ignore.
package pipeline
