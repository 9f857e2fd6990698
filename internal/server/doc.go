// Package server exposes pipeline analysis over HTTP and socket.io.
//
// Routes:
//
//	GET  /                 liveness ping
//	GET  /health           health check, plain "OK"
//	POST /pipelines/parse  analyze a pipeline
//	GET  /pipelines/parse  deprecated, performs no analysis
//
// When enabled, a socket.io endpoint (default /socket.io) lets the editor
// validate while the user wires nodes: it answers every "pipeline:parse"
// event with "pipeline:analysis" or "pipeline:error".
//
// Every request is handled independently; the server keeps no state between
// requests beyond its configuration.
package server
