package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/catalog"
	"github.com/spacecanva/spacecanva/internal/laboratory"
	"github.com/spacecanva/spacecanva/internal/logging"
	"github.com/spacecanva/spacecanva/internal/scene"
	"github.com/spacecanva/spacecanva/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Expert answers free-form astronomy questions.
type Expert interface {
	AskWith(ctx context.Context, q laboratory.Query) (*laboratory.Reply, error)
}

// Catalog supplies exoplanet records.
type Catalog interface {
	FetchExoplanets(ctx context.Context, table, format string) ([]catalog.Exoplanet, error)
	FetchConfirmed(ctx context.Context) ([]catalog.Exoplanet, error)
}

// Searcher runs semantic queries over indexed planets.
type Searcher interface {
	Search(ctx context.Context, query string, limit int, filter *search.Filter) ([]search.Hit, error)
}

// Deps are the services exposed as tools. A nil dependency leaves its
// tools unregistered.
type Deps struct {
	Expert   Expert
	Catalog  Catalog
	Searcher Searcher
	Scene    scene.Config
	Logger   *zap.Logger
}

// Server wraps an MCP server that exposes the exoplanet tools.
type Server struct {
	deps   Deps
	logger *zap.Logger
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(deps Deps) *Server {
	s := &Server{
		deps:   deps,
		logger: logging.OrNop(deps.Logger),
	}

	s.mcp = server.NewMCPServer(
		"spacecanva",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	if s.deps.Expert != nil {
		s.mcp.AddTool(askSpaceExpertTool, s.handleAskSpaceExpert)
	}
	if s.deps.Catalog != nil {
		s.mcp.AddTool(listExoplanetsTool, s.handleListExoplanets)
		s.mcp.AddTool(placeExoplanetsTool, s.handlePlaceExoplanets)
	}
	if s.deps.Searcher != nil {
		s.mcp.AddTool(searchExoplanetsTool, s.handleSearchExoplanets)
	}
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	s.logger.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcp)
}
