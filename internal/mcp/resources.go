// ABOUTME: MCP resource implementations for fittrack.
// ABOUTME: Provides fittrack://dashboard, fittrack://today, and fittrack://history resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/metrics"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	dashboardURI = "fittrack://dashboard"
	todayURI     = "fittrack://today"
	historyURI   = "fittrack://history"
)

func (s *Server) registerResources() {
	// fittrack://dashboard - Everything the dashboard shows
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardURI,
		Name:        "Fitness Dashboard",
		Description: "Progress summary, streak, weekly goal, insights, chart series and workout stats",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	// fittrack://today - Today's record and workout
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today",
		Description: "Today's record, if logged, and today's scheduled workout",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// fittrack://history - Every record newest first
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         historyURI,
		Name:        "Record History",
		Description: "All logged records newest first with day-over-day change",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// Resource handlers

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	d, err := s.session.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return jsonResource(dashboardURI, toDashboardOutput(d))
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := s.session.Today()

	result := map[string]interface{}{
		"date":   models.FormatDate(today),
		"logged": false,
	}

	r, err := s.session.Record(ctx, today)
	switch {
	case err == nil:
		result["logged"] = true
		result["record"] = toRecordOutput(r)
	case !errors.Is(err, errs.ErrNotFound):
		return nil, fmt.Errorf("failed to get today's record: %w", err)
	}

	plan, done, err := s.session.TodayWorkout(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find today's workout: %w", err)
	}
	if plan != nil {
		result["workout"] = toPlanOutput(plan)
		result["workout_done"] = done
	}

	return jsonResource(todayURI, result)
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.session.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	out := toHistoryOutput(metrics.History(records))
	return jsonResource(historyURI, map[string]interface{}{
		"records": out,
		"count":   len(out),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
