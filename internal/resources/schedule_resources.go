package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"psiagenda/internal/schedule"
	"psiagenda/internal/server"
)

// RegisterScheduleResources registers the read-only schedule resources.
// They mirror the query tools for MCP clients that prefer fetching context
// over calling tools.
func RegisterScheduleResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	todayResource := mcp.NewResource(
		"schedule://today",
		"Today's Appointments",
		mcp.WithResourceDescription("The appointments scheduled for today, ordered by start time"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(todayResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleToday(ctx, request, sc)
	})

	backupResource := mcp.NewResource(
		"schedule://backup-status",
		"Backup Status",
		mcp.WithResourceDescription("Whether a fresh backup of the appointment book is due"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(backupResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleBackupStatus(ctx, request, sc)
	})

	return nil
}

// handleToday returns the appointments for the current calendar day.
func handleToday(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	today := time.Now().Format(schedule.DateLayout)
	appointments, err := sc.Service().ByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's appointments: %w", err)
	}

	payload := map[string]interface{}{
		"date":         today,
		"appointments": appointments,
	}
	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointments: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleBackupStatus returns the backup freshness summary.
func handleBackupStatus(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	due, err := sc.Backups().IsDue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check backup status: %w", err)
	}

	payload := map[string]interface{}{
		"due": due,
	}
	if last, ok, err := sc.Service().Store().LastBackup(ctx); err == nil && ok {
		payload["lastBackup"] = last.UTC().Format(time.RFC3339)
	}

	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup status: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
