// Package render formats analysis reports for the command line: a colored
// human summary, JSON, YAML, or a Mermaid flowchart with the cycle
// highlighted.
package render
