// Package mcp exposes the time-tracking engine as MCP tools so agent
// clients can drive the timer and query local state over stdio.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zeity-dev/zeity/internal/settings"
	"github.com/zeity-dev/zeity/internal/sync"
	"github.com/zeity-dev/zeity/internal/timer"
)

const serverInstructions = `zeity is a local offline-first time tracker.
Use timer_start, timer_stop and timer_toggle to control the single running
timer, time_list and project_list to inspect recorded state, and time_create
or project_create to record entries directly. Writes sync to the remote
account when one is configured and stay on the device otherwise.`

// Config contains the engine components the tools operate on.
type Config struct {
	Times    *sync.TimeService
	Projects *sync.ProjectService
	Timer    *timer.Timer
	Settings *settings.Service
	Logger   *slog.Logger
}

// NewServer creates an MCP server with all tools and middleware
// registered.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "zeity",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg)

	return server
}

// Run serves the tools over stdio until stdin closes or ctx is
// canceled. Logs must go to stderr in this mode; stdout carries the
// protocol.
func Run(ctx context.Context, server *sdkmcp.Server) error {
	return server.Run(ctx, &sdkmcp.StdioTransport{})
}
