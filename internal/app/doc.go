// Package app contains the service lifecycle. It wires configuration,
// logging, metrics, the analyzer and the HTTP server together, decoupled
// from any specific entrypoint like the CLI.
package app
