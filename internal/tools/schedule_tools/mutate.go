package schedule_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"psiagenda/internal/schedule"
	"psiagenda/internal/server"
	"psiagenda/internal/tools/common"
)

// registerMutationTools registers the tools that modify the schedule. These
// are only available when the server runs with write access enabled.
func registerMutationTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createTool := mcp.NewTool("schedule_create_appointment",
		mcp.WithDescription("Create an appointment. With a frequency this expands into a recurring series covering the next six months."),
		mcp.WithString("patientName",
			mcp.Required(),
			mcp.Description("Name of the patient"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date of the first session in YYYY-MM-DD form"),
		),
		mcp.WithString("startTime",
			mcp.Required(),
			mcp.Description("Start time in HH:mm form (24-hour)"),
		),
		mcp.WithString("phone",
			mcp.Description("Patient phone number"),
		),
		mcp.WithString("email",
			mcp.Description("Patient email address"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form session notes"),
		),
		mcp.WithString("frequency",
			mcp.Description("Recurrence cadence: 'weekly' or 'biweekly'. Omit for a one-time appointment."),
		),
	)

	s.AddTool(createTool, common.InstrumentedToolHandler("schedule_create_appointment", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		name, err := requireString(args, "patientName")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		date, err := requireString(args, "date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		startTime, err := requireString(args, "startTime")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !datePattern.MatchString(date) {
			return mcp.NewToolResultError(fmt.Sprintf("date must be YYYY-MM-DD, got %q", date)), nil
		}
		if !timePattern.MatchString(startTime) {
			return mcp.NewToolResultError(fmt.Sprintf("startTime must be HH:mm, got %q", startTime)), nil
		}

		var freq schedule.Frequency
		if raw, ok := args["frequency"].(string); ok && raw != "" {
			freq = schedule.Frequency(raw)
			if !freq.Valid() {
				return mcp.NewToolResultError(fmt.Sprintf("frequency must be 'weekly' or 'biweekly', got %q", raw)), nil
			}
		}

		template := schedule.Appointment{
			PatientName: name,
			Date:        date,
			StartTime:   startTime,
		}
		if phone := optionalString(args, "phone"); phone != nil {
			template.Phone = *phone
		}
		if email := optionalString(args, "email"); email != nil {
			template.Email = *email
		}
		if notes := optionalString(args, "notes"); notes != nil {
			template.Notes = *notes
		}

		created, err := sc.Service().Create(ctx, template, freq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create appointment: %v", err)), nil
		}

		result, _ := json.MarshalIndent(created, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	updateTool := mcp.NewTool("schedule_update_appointment",
		mcp.WithDescription("Update a single appointment. Only the provided fields change."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("ID of the appointment to update"),
		),
		mcp.WithString("patientName", mcp.Description("New patient name")),
		mcp.WithString("phone", mcp.Description("New phone number")),
		mcp.WithString("email", mcp.Description("New email address")),
		mcp.WithString("date", mcp.Description("New date in YYYY-MM-DD form")),
		mcp.WithString("startTime", mcp.Description("New start time in HH:mm form")),
		mcp.WithString("notes", mcp.Description("New notes")),
	)

	s.AddTool(updateTool, common.InstrumentedToolHandler("schedule_update_appointment", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		id, err := requireString(args, "id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		patch, err := patchFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := sc.Service().UpdateSingle(ctx, id, patch); err != nil {
			if errors.Is(err, schedule.ErrNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("No appointment with id %q", id)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update appointment: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Appointment %s updated", id)), nil
	}))

	updateSeriesTool := mcp.NewTool("schedule_update_series",
		mcp.WithDescription("Update every occurrence of a series at or after a cutoff moment. Dates cannot be changed this way, only the shared fields and the time of day."),
		mcp.WithString("seriesId",
			mcp.Required(),
			mcp.Description("Series ID shared by the occurrences"),
		),
		mcp.WithString("fromDate",
			mcp.Required(),
			mcp.Description("Cutoff date in YYYY-MM-DD form; occurrences on later dates are updated"),
		),
		mcp.WithString("fromTime",
			mcp.Required(),
			mcp.Description("Cutoff time in HH:mm form; on the cutoff date only occurrences starting at or after this time are updated"),
		),
		mcp.WithString("patientName", mcp.Description("New patient name")),
		mcp.WithString("phone", mcp.Description("New phone number")),
		mcp.WithString("email", mcp.Description("New email address")),
		mcp.WithString("startTime", mcp.Description("New start time in HH:mm form")),
		mcp.WithString("notes", mcp.Description("New notes")),
	)

	s.AddTool(updateSeriesTool, common.InstrumentedToolHandler("schedule_update_series", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		seriesID, err := requireString(args, "seriesId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		fromDate, err := requireString(args, "fromDate")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		fromTime, err := requireString(args, "fromTime")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !datePattern.MatchString(fromDate) {
			return mcp.NewToolResultError(fmt.Sprintf("fromDate must be YYYY-MM-DD, got %q", fromDate)), nil
		}
		if !timePattern.MatchString(fromTime) {
			return mcp.NewToolResultError(fmt.Sprintf("fromTime must be HH:mm, got %q", fromTime)), nil
		}
		patch, err := patchFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := sc.Service().UpdateSeriesFrom(ctx, seriesID, fromDate, fromTime, patch); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update series: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Series %s updated from %s %s", seriesID, fromDate, fromTime)), nil
	}))

	deleteTool := mcp.NewTool("schedule_delete_appointment",
		mcp.WithDescription("Delete a single appointment by id"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("ID of the appointment to delete"),
		),
	)

	s.AddTool(deleteTool, common.InstrumentedToolHandler("schedule_delete_appointment", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		id, err := requireString(args, "id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := sc.Service().DeleteSingle(ctx, id); err != nil {
			if errors.Is(err, schedule.ErrNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("No appointment with id %q", id)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete appointment: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Appointment %s deleted", id)), nil
	}))

	deleteSeriesTool := mcp.NewTool("schedule_delete_series",
		mcp.WithDescription("Delete every occurrence of a series"),
		mcp.WithString("seriesId",
			mcp.Required(),
			mcp.Description("Series ID shared by the occurrences to delete"),
		),
	)

	s.AddTool(deleteSeriesTool, common.InstrumentedToolHandler("schedule_delete_series", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		seriesID, err := requireString(args, "seriesId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := sc.Service().DeleteSeries(ctx, seriesID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete series: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Series %s deleted", seriesID)), nil
	}))

	return nil
}
