package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/PzNot2ndPlace/hints-service/internal/mcpserver"
)

// RunMCP serves the hint engine over MCP stdio instead of HTTP. The
// logger goes to stderr because stdout carries the protocol stream.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: app.config.App.LogLevel,
	}))
	slog.SetDefault(logger)

	svc, logDB, broker, err := buildService(app)
	if err != nil {
		return err
	}
	if logDB != nil {
		defer logDB.Close()
	}
	defer broker.Close()

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc).ServeStdio()
}
