package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "journal-reminders"
	serverVersion = "1.0.0"
)

// Server exposes the reminder service as MCP tools.
type Server struct {
	mcpServer *server.MCPServer
	service   *Service
}

// NewServer creates an MCP server backed by the given service.
func NewServer(service *Service) *Server {
	s := &Server{
		service: service,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a reminder. Provide exactly one of 'on' (a weekday or a date like 24.Dec) or 'every' (a weekday, N.days or N.weeks)"),
			mcp.WithString("message", mcp.Required(), mcp.Description("Reminder text")),
			mcp.WithString("on", mcp.Description("One-off date: Monday, 24.Dec, 24.Dec.2026")),
			mcp.WithString("every", mcp.Description("Recurrence: Monday, 3.days, 2.weeks")),
		),
		s.handleAddReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List all reminders with their current position numbers"),
		),
		s.handleListReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_due_reminders",
			mcp.WithDescription("Get the messages of reminders due today"),
		),
		s.handleGetDueReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder. Provide exactly one of 'id' or 'index' as shown by list_reminders; prefer 'id', positions shift after every delete"),
			mcp.WithString("id", mcp.Description("Reminder id from list_reminders")),
			mcp.WithNumber("index", mcp.Description("1-based position from list_reminders")),
		),
		s.handleDeleteReminder,
	)
}

type listedReminder struct {
	Nr       int    `json:"nr"`
	ID       string `json:"id"`
	Schedule string `json:"schedule"`
	Message  string `json:"message"`
}

func (s *Server) handleAddReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := req.GetString("message", "")
	on := strings.TrimSpace(req.GetString("on", ""))
	every := strings.TrimSpace(req.GetString("every", ""))

	if (on == "") == (every == "") {
		return mcp.NewToolResultError("provide exactly one of 'on' or 'every'"), nil
	}

	mode, expr := OnceMode, on
	if every != "" {
		mode, expr = RecurringMode, every
	}

	added, err := s.service.New(mode, expr, message)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Added reminder %q (%s).", added.Message, Render(added.Schedule))), nil
}

func (s *Server) handleListReminders(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.service.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}

	listed := make([]listedReminder, 0, len(entries))
	for _, e := range entries {
		listed = append(listed, listedReminder{
			Nr:       e.Index,
			ID:       e.Reminder.ID,
			Schedule: e.Schedule,
			Message:  e.Message,
		})
	}

	output, _ := json.MarshalIndent(listed, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleGetDueReminders(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	due, err := s.service.DueToday()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get due reminders: %v", err)), nil
	}

	if len(due) == 0 {
		return mcp.NewToolResultText("No due reminders."), nil
	}

	output, _ := json.MarshalIndent(due, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleDeleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	args := req.GetArguments()
	_, hasIndex := args["index"]

	if (id == "") == !hasIndex {
		return mcp.NewToolResultError("provide exactly one of 'id' or 'index'"), nil
	}

	var (
		removed Reminder
		index   int
		err     error
	)
	if id != "" {
		removed, index, err = s.service.DeleteByID(id)
	} else {
		indexFloat := req.GetFloat("index", 0)
		if indexFloat != float64(int(indexFloat)) {
			return mcp.NewToolResultError(fmt.Sprintf("index must be a whole number, got %v", indexFloat)), nil
		}
		index = int(indexFloat)
		removed, err = s.service.Delete(index)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Removed reminder %d: %s", index, removed.Message)), nil
}
