package schedule_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"psiagenda/internal/schedule"
	"psiagenda/internal/server"
	"psiagenda/internal/tools/common"
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	timePattern  = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// requireString extracts a required string argument from request arguments.
func requireString(args map[string]interface{}, key string) (string, error) {
	val, ok := args[key].(string)
	if !ok || val == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return val, nil
}

// optionalString returns a pointer to the string argument if present,
// nil otherwise. An explicit empty string is a valid value: it clears
// the field when used in a patch.
func optionalString(args map[string]interface{}, key string) *string {
	if val, ok := args[key].(string); ok {
		return &val
	}
	return nil
}

// patchFromArgs builds an appointment patch from the optional mutation
// arguments shared by the update tools.
func patchFromArgs(args map[string]interface{}) (schedule.Patch, error) {
	p := schedule.Patch{
		PatientName: optionalString(args, "patientName"),
		Phone:       optionalString(args, "phone"),
		Email:       optionalString(args, "email"),
		Date:        optionalString(args, "date"),
		StartTime:   optionalString(args, "startTime"),
		Notes:       optionalString(args, "notes"),
	}
	if p.Date != nil && !datePattern.MatchString(*p.Date) {
		return schedule.Patch{}, fmt.Errorf("date must be YYYY-MM-DD, got %q", *p.Date)
	}
	if p.StartTime != nil && !timePattern.MatchString(*p.StartTime) {
		return schedule.Patch{}, fmt.Errorf("startTime must be HH:mm, got %q", *p.StartTime)
	}
	return p, nil
}

// RegisterScheduleTools registers all scheduling tools with the MCP server.
// Query tools are always available; mutating tools are only registered when
// readOnly is false.
func RegisterScheduleTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerQueryTools(s, sc); err != nil {
		return fmt.Errorf("failed to register query tools: %w", err)
	}

	if err := registerBackupTools(s, sc); err != nil {
		return fmt.Errorf("failed to register backup tools: %w", err)
	}

	if err := registerAssistantTools(s, sc); err != nil {
		return fmt.Errorf("failed to register assistant tools: %w", err)
	}

	if !readOnly {
		if err := registerMutationTools(s, sc); err != nil {
			return fmt.Errorf("failed to register mutation tools: %w", err)
		}
	}

	return nil
}

// registerQueryTools registers the read-only appointment queries.
func registerQueryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTool := mcp.NewTool("schedule_list_appointments",
		mcp.WithDescription("List all appointments in chronological order"),
	)

	s.AddTool(listTool, common.InstrumentedToolHandler("schedule_list_appointments", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		appointments, err := sc.Service().All(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list appointments: %v", err)), nil
		}

		result, _ := json.MarshalIndent(appointments, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	byDateTool := mcp.NewTool("schedule_appointments_by_date",
		mcp.WithDescription("List the appointments on a single calendar day, ordered by start time"),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Calendar day in YYYY-MM-DD form"),
		),
	)

	s.AddTool(byDateTool, common.InstrumentedToolHandler("schedule_appointments_by_date", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		date, err := requireString(args, "date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !datePattern.MatchString(date) {
			return mcp.NewToolResultError(fmt.Sprintf("date must be YYYY-MM-DD, got %q", date)), nil
		}

		appointments, err := sc.Service().ByDate(ctx, date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to query appointments: %v", err)), nil
		}

		result, _ := json.MarshalIndent(appointments, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	byMonthTool := mcp.NewTool("schedule_appointments_by_month",
		mcp.WithDescription("List the appointments within a calendar month, in chronological order"),
		mcp.WithString("month",
			mcp.Required(),
			mcp.Description("Calendar month in YYYY-MM form"),
		),
	)

	s.AddTool(byMonthTool, common.InstrumentedToolHandler("schedule_appointments_by_month", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		month, err := requireString(args, "month")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !monthPattern.MatchString(month) {
			return mcp.NewToolResultError(fmt.Sprintf("month must be YYYY-MM, got %q", month)), nil
		}

		appointments, err := sc.Service().ByMonth(ctx, month)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to query appointments: %v", err)), nil
		}

		result, _ := json.MarshalIndent(appointments, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	return nil
}

// backupStatus is the JSON shape returned by schedule_backup_status.
type backupStatus struct {
	Due        bool   `json:"due"`
	LastBackup string `json:"lastBackup,omitempty"`
}

// registerBackupTools registers the backup freshness query.
func registerBackupTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	statusTool := mcp.NewTool("schedule_backup_status",
		mcp.WithDescription("Report whether a fresh backup is due and when the last backup was made"),
	)

	s.AddTool(statusTool, common.InstrumentedToolHandler("schedule_backup_status", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		due, err := sc.Backups().IsDue(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to check backup status: %v", err)), nil
		}

		status := backupStatus{Due: due}
		if last, ok, err := sc.Service().Store().LastBackup(ctx); err == nil && ok {
			status.LastBackup = last.UTC().Format(time.RFC3339)
		}

		result, _ := json.MarshalIndent(status, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	return nil
}

// registerAssistantTools registers the natural-language schedule query.
func registerAssistantTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	askTool := mcp.NewTool("schedule_ask",
		mcp.WithDescription("Ask a natural-language question about the schedule, answered by the configured AI assistant"),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to ask, e.g. 'when is my next free morning?'"),
		),
	)

	s.AddTool(askTool, common.InstrumentedToolHandler("schedule_ask", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ai := sc.Assistant()
		if ai == nil {
			return mcp.NewToolResultError("AI assistant is not configured. Set GEMINI_API_KEY or gemini.api_key in the config file."), nil
		}

		args, _ := request.Params.Arguments.(map[string]interface{})

		question, err := requireString(args, "question")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		appointments, err := sc.Service().All(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load appointments: %v", err)), nil
		}

		answer, err := ai.Ask(ctx, question, appointments)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to query assistant: %v", err)), nil
		}

		return mcp.NewToolResultText(answer), nil
	}))

	return nil
}
