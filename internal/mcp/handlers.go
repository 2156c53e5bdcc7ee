package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/catalog"
	"github.com/spacecanva/spacecanva/internal/laboratory"
	"github.com/spacecanva/spacecanva/internal/scene"
	"github.com/spacecanva/spacecanva/internal/search"
)

const (
	defaultListLimit   = 20
	defaultSearchLimit = 10
)

// handleAskSpaceExpert forwards a question to the laboratory service.
func (s *Server) handleAskSpaceExpert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	q := laboratory.Query{Question: question}
	if args := request.GetArguments(); args["temperature"] != nil {
		t := request.GetFloat("temperature", laboratory.DefaultTemperature)
		q.Temperature = &t
	}

	reply, err := s.deps.Expert.AskWith(ctx, q)
	if err != nil {
		if errors.Is(err, laboratory.ErrEmptyQuestion) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.logger.Warn("ask_space_expert failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("ask failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatReply(reply)), nil
}

// handleListExoplanets lists catalog rows matching the optional query.
func (s *Server) handleListExoplanets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		planets []catalog.Exoplanet
		err     error
	)
	if request.GetBool("confirmed_only", true) {
		planets, err = s.deps.Catalog.FetchConfirmed(ctx)
	} else {
		planets, err = s.deps.Catalog.FetchExoplanets(ctx, "", catalog.DefaultFormat)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching exoplanets: %v", err)), nil
	}

	matched := catalog.Filter(planets, request.GetString("query", ""))
	limit := request.GetInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	return mcp.NewToolResultText(formatPlanets(catalog.Limit(matched, limit), len(matched))), nil
}

// handlePlaceExoplanets returns scene markers for confirmed planets.
func (s *Server) handlePlaceExoplanets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planets, err := s.deps.Catalog.FetchConfirmed(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching exoplanets: %v", err)), nil
	}

	cfg := s.deps.Scene
	if md := request.GetFloat("max_distance", 0); md > 0 {
		cfg.MaxDistance = md
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		cfg.Limit = limit
	}

	planets = catalog.Filter(planets, request.GetString("query", ""))
	markers := scene.Place(planets, cfg, request.GetString("selected", ""))

	out, err := json.MarshalIndent(struct {
		Total   int            `json:"total"`
		Markers []scene.Marker `json:"markers"`
	}{len(markers), markers}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding markers: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// handleSearchExoplanets performs semantic search over the planet index.
func (s *Server) handleSearchExoplanets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", defaultSearchLimit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	filter := &search.Filter{
		Bucket: request.GetString("bucket", ""),
		Method: request.GetString("method", ""),
	}

	hits, err := s.deps.Searcher.Search(ctx, query, limit, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(hits) == 0 {
		return mcp.NewToolResultText("No results found. The catalog may not be indexed yet. Run `spacecanva index` to index it."), nil
	}

	return mcp.NewToolResultText(search.FormatHits(hits)), nil
}

// formatReply renders the prose followed by each visualization as JSON.
func formatReply(reply *laboratory.Reply) string {
	var sb strings.Builder
	sb.WriteString(reply.Text)

	for i, v := range reply.Visualizations {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "\n\n--- Visualization %d: %s (%s) ---\n", i+1, v.Data.DisplayTitle(v.Type), v.Type)
		sb.Write(data)
	}
	return sb.String()
}

// formatPlanets renders one line per planet.
func formatPlanets(planets []catalog.Exoplanet, matched int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Showing %d of %d exoplanet(s):\n", len(planets), matched)

	for _, p := range planets {
		fmt.Fprintf(&sb, "\n- %s (host: %s)", p.Name, p.Host)
		if p.DiscMethod != "" {
			fmt.Fprintf(&sb, ", %s", p.DiscMethod)
		}
		if p.DiscYear != nil {
			fmt.Fprintf(&sb, " %d", *p.DiscYear)
		}
		if d := p.Distance(); d != nil {
			fmt.Fprintf(&sb, ", %.1f pc", *d)
		}
		if p.EqTemperature != nil {
			fmt.Fprintf(&sb, ", %.0f K", *p.EqTemperature)
		}
		if p.RadiusEarth != nil {
			fmt.Fprintf(&sb, ", %.2f R⊕", *p.RadiusEarth)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
