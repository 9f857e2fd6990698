package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"

	"github.com/vk/pipecheck/internal/ctxlog"
	"github.com/vk/pipecheck/internal/pipeline"
)

// socket.io event names.
const (
	EventParse    = "pipeline:parse"
	EventAnalysis = "pipeline:analysis"
	EventError    = "pipeline:error"
)

func (s *Server) socketOptions() *socket.ServerOptions {
	opts := socket.DefaultServerOptions()
	opts.SetPath(s.cfg.SocketIO.Path)
	opts.SetServeClient(false)

	cors := &types.Cors{Credentials: s.cfg.CORS.AllowCredentials}
	switch origins := s.cfg.CORS.AllowOrigins; len(origins) {
	case 0:
		cors.Origin = false
	case 1:
		cors.Origin = origins[0]
	default:
		list := make([]any, len(origins))
		for i, o := range origins {
			list[i] = o
		}
		cors.Origin = list
	}
	opts.SetCors(cors)
	return opts
}

func (s *Server) newSocketIO(opts *socket.ServerOptions) *socket.Server {
	io := socket.NewServer(nil, opts)

	io.On("connection", func(clients ...any) {
		client, ok := clients[0].(*socket.Socket)
		if !ok {
			return
		}
		ctx, logger := ctxlog.With(ctxlog.WithLogger(context.Background(), s.logger),
			"transport", "socket.io", "sid", string(client.Id()))
		logger.Info("socket.io client connected.")

		client.On(EventParse, func(args ...any) {
			s.onSocketParse(ctx, client, args)
		})
		client.On("disconnect", func(reason ...any) {
			logger.Info("socket.io client disconnected.", "reason", fmt.Sprint(reason...))
		})
	})

	return io
}

// onSocketParse analyzes the first event argument and emits the result.
func (s *Server) onSocketParse(ctx context.Context, client *socket.Socket, args []any) {
	logger := ctxlog.FromContext(ctx)

	if len(args) == 0 {
		client.Emit(EventError, errorBody{Detail: []string{"missing pipeline payload"}})
		return
	}

	raw, err := json.Marshal(args[0])
	if err != nil {
		client.Emit(EventError, errorBody{Detail: []string{err.Error()}})
		return
	}
	p, err := pipeline.Decode(bytes.NewReader(raw))
	if err != nil {
		logger.Info("Pipeline rejected.", "error", err)
		client.Emit(EventError, errorBody{Detail: pipeline.Problems(err)})
		return
	}

	client.Emit(EventAnalysis, s.analyzer.Analyze(ctx, p))
}
