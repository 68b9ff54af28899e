// Package mcpserver exposes a pagecraft canvas to AI agents over the Model
// Context Protocol. Tools edit the canvas, a resource snapshots it and
// prompts wrap the code generation requests of the page builder.
package mcpserver

import (
	"sync"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/gesture"
	"github.com/Gaurav-Gosain/pagecraft/internal/logging"
	"github.com/Gaurav-Gosain/pagecraft/internal/tape"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for one canvas. Tool calls may arrive
// concurrently; every handler holds mu while it touches the canvas.
type Server struct {
	mcp *server.MCPServer

	mu       sync.Mutex
	canvas   *canvas.Canvas
	gestures *gesture.Controller
	exec     *tape.CanvasExecutor
	logger   *log.Logger
}

// Option configures a Server.
type Option func(*options)

type options struct {
	canvas    *canvas.Canvas
	logger    *log.Logger
	placement string
	version   string
}

// WithCanvas serves an existing canvas instead of a new one.
func WithCanvas(c *canvas.Canvas) Option {
	return func(o *options) {
		o.canvas = c
	}
}

// WithLogger sets the logger. Stdout carries the protocol, so it must not
// write there.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPlacement sets the placement mode used by generate_code.
func WithPlacement(mode string) Option {
	return func(o *options) {
		o.placement = mode
	}
}

// WithVersion sets the version reported to clients.
func WithVersion(v string) Option {
	return func(o *options) {
		o.version = v
	}
}

// New creates and configures a server with all tools, resources and
// prompts registered.
func New(opts ...Option) *Server {
	o := options{version: "dev", placement: config.Placement}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	s := &Server{logger: o.logger}
	s.canvas = o.canvas
	if s.canvas == nil {
		s.canvas = canvas.New(canvas.WithEmitter(eventLog{s.logger}))
	}
	s.gestures = gesture.NewController(s.canvas, gesture.ConfiguredLimits())
	s.exec = tape.NewCanvasExecutor(s.canvas, s.gestures, s.logger)
	if err := s.exec.SetPlacement(o.placement); err != nil {
		s.logger.Warn("ignoring placement", "err", err)
	}

	s.mcp = server.NewMCPServer(
		"pagecraft",
		o.version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	s.registerSectionTools()
	s.registerComponentTools()
	s.registerCodeTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Canvas returns the served canvas. Callers must not use it while the
// server handles requests.
func (s *Server) Canvas() *canvas.Canvas {
	return s.canvas
}

// ServeStdio serves the protocol on stdin and stdout until stdin closes.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// eventLog mirrors canvas changes into the debug log.
type eventLog struct {
	logger *log.Logger
}

func (e eventLog) Emit(event string, data any) {
	e.logger.Debug("canvas event", "event", event, "data", data)
}
