// Package mcp exposes the timer's persisted state to MCP clients. No tool
// changes the timer; the running UI stays the only writer. The mcp command
// hands it storage.ReadOnly stores so a corrupt state file is reported and
// left where it is.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/discipline-tracker/internal/domain"
	"github.com/xvierd/discipline-tracker/internal/heatmap"
	"github.com/xvierd/discipline-tracker/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server       *server.MCPServer
	states       ports.StateStore
	history      ports.HistoryLog
	historyLimit int
	now          func() time.Time
}

// NewServer creates a server reading from the given stores.
func NewServer(states ports.StateStore, history ports.HistoryLog, historyLimit int) *Server {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	s := &Server{
		states:       states,
		history:      history,
		historyLimit: historyLimit,
		now:          time.Now,
	}

	s.server = server.NewMCPServer(
		"discipline-tracker",
		"1.0.0",
		server.WithLogging(),
	)
	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_state",
			mcp.WithDescription("Get the persisted timer state: mode, remaining time, completed work sessions and today's contributions"),
		),
		s.handleGetState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"recent_history",
			mcp.WithDescription("List the most recently completed sessions, newest first"),
			mcp.WithNumber(
				"limit",
				mcp.Description("Maximum number of entries (default: the configured display limit)"),
			),
		),
		s.handleRecentHistory,
	)

	s.server.AddTool(
		mcp.NewTool(
			"heatmap",
			mcp.WithDescription("Get the contribution heatmap for the last 53 weeks as rows of bucket levels 0-4"),
		),
		s.handleHeatmap,
	)
}

// Start serves MCP requests over stdio until the input closes.
func (s *Server) Start(ctx context.Context) error {
	return server.ServeStdio(s.server)
}

type stateView struct {
	Mode          string `json:"mode"`
	ModeLabel     string `json:"mode_label"`
	IsRunning     bool   `json:"is_running"`
	Remaining     string `json:"remaining"`
	RemainingSecs int    `json:"remaining_seconds"`
	WorkSessions  int    `json:"work_sessions"`
	Today         int    `json:"today"`
	Total         int    `json:"total_contributions"`
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		// Load still returns the default state; report what happened.
		return mcp.NewToolResultError(fmt.Sprintf("stored state could not be read: %v", err)), nil
	}

	view := stateView{
		Mode:          state.Mode.String(),
		ModeLabel:     state.Mode.Label(),
		IsRunning:     state.IsRunning,
		Remaining:     domain.FormatClock(state.Remaining),
		RemainingSecs: state.Remaining,
		WorkSessions:  state.WorkSessions,
		Today:         state.ContributionsOn(domain.DateOf(s.now())),
		Total:         state.TotalContributions(),
	}
	return jsonResult(view)
}

func (s *Server) handleRecentHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", s.historyLimit)
	if limit <= 0 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	lines, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return jsonResult(map[string]any{"entries": lines})
}

type heatmapView struct {
	Today string  `json:"today"`
	Total int     `json:"total"`
	Rows  [][]int `json:"rows"`
}

// handleHeatmap returns seven rows, one per day offset, each holding the
// bucket of every week with the most recent week first.
func (s *Server) handleHeatmap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stored state could not be read: %v", err)), nil
	}

	today := domain.DateOf(s.now())
	grid := heatmap.Build(state.Contributions, today)

	view := heatmapView{Today: today.String(), Total: grid.Total()}
	view.Rows = make([][]int, heatmap.Days)
	for d := 0; d < heatmap.Days; d++ {
		row := make([]int, heatmap.Weeks)
		for w := 0; w < heatmap.Weeks; w++ {
			row[w] = int(grid[w][d].Bucket)
		}
		view.Rows[d] = row
	}
	return jsonResult(view)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
