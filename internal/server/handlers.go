package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vk/pipecheck/internal/ctxlog"
	"github.com/vk/pipecheck/internal/pipeline"
)

// errorBody is the error payload for rejected requests.
type errorBody struct {
	Detail []string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"Ping":   "Pong",
		"status": "Pipeline API is running",
	})
}

// handleHealth answers the health check with a plain 200.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctxlog.FromContext(r.Context()).Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(r.Context())

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	p, err := pipeline.Decode(body)
	if err != nil {
		status := decodeStatus(err)
		logger.Info("Pipeline rejected.", "status", status, "error", err)
		writeJSON(w, status, errorBody{Detail: pipeline.Problems(err)})
		return
	}

	writeJSON(w, http.StatusOK, s.analyzer.Analyze(r.Context(), p))
}

// handleParseLegacy keeps old editor builds working. It performs no analysis.
func (s *Server) handleParseLegacy(w http.ResponseWriter, r *http.Request) {
	ctxlog.FromContext(r.Context()).Warn("Deprecated GET /pipelines/parse called.", "remote_addr", r.RemoteAddr)
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "parsed",
		"message": "Use POST method for full analysis",
	})
}

// decodeStatus maps a pipeline decode error to its HTTP status.
func decodeStatus(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, pipeline.ErrSchema):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
