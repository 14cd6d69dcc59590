// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
)

// Server exposes the focus service to AI assistants as MCP tools.
type Server struct {
	server *server.MCPServer
	api    ports.FocusAPI
	locale domain.Locale
	logger *slog.Logger
}

// NewServer creates a new MCP server instance.
func NewServer(api ports.FocusAPI, locale domain.Locale, logger *slog.Logger, version string) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		api:    api,
		locale: locale,
		logger: logger,
	}

	s.server = server.NewMCPServer(
		"focuswatch",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_focus_status",
			mcp.WithDescription("Get the live gaze direction and the running stats of the current focus session"),
		),
		s.handleGetFocusStatus,
	)

	historyTool := mcp.NewTool(
		"get_history",
		mcp.WithDescription("List recorded focus sessions, most recent first as the service returns them"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of sessions to return (default: all)"),
		),
	)
	s.server.AddTool(historyTool, s.handleGetHistory)

	s.server.AddTool(
		mcp.NewTool(
			"start_session",
			mcp.WithDescription("Ask the focus service to begin tracking a new session"),
		),
		s.handleStartSession,
	)

	s.server.AddTool(
		mcp.NewTool(
			"end_session",
			mcp.WithDescription("End the current focus session and record it"),
		),
		s.handleEndSession,
	)
}

// Serve answers MCP requests on stdio until the client disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.server)
}

type statusResult struct {
	Direction       domain.Direction `json:"direction"`
	Label           string           `json:"label"`
	Warned          bool             `json:"warned"`
	FocusTime       string           `json:"focus_time"`
	UnfocusTime     string           `json:"unfocus_time"`
	FocusPercentage string           `json:"focus_percentage"`
	Tier            domain.Tier      `json:"tier"`
}

func (s *Server) handleGetFocusStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	live, err := s.api.LiveState(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get live state: %v", err)), nil
	}
	stats, err := s.api.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stats: %v", err)), nil
	}

	return jsonResult(statusResult{
		Direction:       live.Direction,
		Label:           s.locale.DirectionLabel(live.Direction),
		Warned:          live.Warned,
		FocusTime:       domain.FormatDuration(stats.TotalFocus, s.locale),
		UnfocusTime:     domain.FormatDuration(stats.TotalUnfocus, s.locale),
		FocusPercentage: domain.FormatPercent(stats.FocusPercentage),
		Tier:            domain.Classify(stats.FocusPercentage),
	})
}

type sessionResult struct {
	ID              int64       `json:"id,omitempty"`
	Date            string      `json:"date"`
	StartTime       string      `json:"start_time"`
	EndTime         string      `json:"end_time,omitempty"`
	FocusTime       string      `json:"focus_time"`
	UnfocusTime     string      `json:"unfocus_time"`
	FocusPercentage string      `json:"focus_percentage"`
	Tier            domain.Tier `json:"tier"`
	Periods         int         `json:"periods"`
}

func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", 0))
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}

	sessions, err := s.api.History(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get history: %v", err)), nil
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}

	result := make([]sessionResult, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionResult{
			ID:              sess.ID,
			Date:            sess.Date,
			StartTime:       sess.StartTime,
			EndTime:         sess.EndTime,
			FocusTime:       domain.FormatDurationLong(sess.TotalFocus, s.locale),
			UnfocusTime:     domain.FormatDurationLong(sess.TotalUnfocus, s.locale),
			FocusPercentage: domain.FormatPercent(sess.FocusPercentage),
			Tier:            domain.Classify(sess.FocusPercentage),
			Periods:         len(sess.Periods),
		})
	}

	return jsonResult(map[string]any{
		"count":    len(result),
		"sessions": result,
	})
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.api.StartSession(ctx); err != nil {
		s.logger.Warn("mcp start failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to start session: %v", err)), nil
	}
	s.logger.Info("session started", "via", "mcp")
	return mcp.NewToolResultText("Session started"), nil
}

func (s *Server) handleEndSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.api.EndSession(ctx); err != nil {
		s.logger.Warn("mcp end failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to end session: %v", err)), nil
	}
	s.logger.Info("session ended", "via", "mcp")
	return mcp.NewToolResultText("Session ended"), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
