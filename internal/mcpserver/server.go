// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the hint engine for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/PzNot2ndPlace/hints-service/internal/api"
	"github.com/PzNot2ndPlace/hints-service/internal/apperr"
	"github.com/PzNot2ndPlace/hints-service/internal/hintservice"
	"github.com/PzNot2ndPlace/hints-service/internal/models"
)

// vocabularyDoc describes the request format for MCP clients.
const vocabularyDoc = `# Hint request vocabulary

Notes are JSON objects:

	{
	  "text": "buy milk",
	  "createdAt": "2025-06-16 17:05",
	  "updatedAt": null,
	  "categoryType": "Shopping",
	  "triggers": [{"triggerType": "Time", "triggerValue": "2025-06-16 18:00"}]
	}

Allowed categoryType values: Time, Location, Event, Shopping, Call,
Meeting, Deadline, Health, Routine, Other.
Allowed triggerType values: Time, Location.
Timestamps use the "YYYY-MM-DD HH:MM" layout.
`

// Server wraps the MCP server around the hint engine.
type Server struct {
	mcp *server.MCPServer
	svc *hintservice.Service
}

// New creates a new MCP server with the hint tools registered.
func New(svc *hintservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"hints-service",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("recommend_hint",
		mcp.WithDescription("Recommend a single proactive reminder from a note history. "+
			"Takes the full history as a JSON array of notes plus the current time; "+
			"returns the synthesized note and hint text, or reports that no "+
			"recurring pattern was found. Read hints://vocabulary for the note format."),
		mcp.WithString("notes", mcp.Required(), mcp.Description("JSON array of notes (the full history)")),
		mcp.WithString("current_time", mcp.Required(), mcp.Description(`Current time, "YYYY-MM-DD HH:MM"`)),
	), s.recommendHint)

	s.mcp.AddTool(mcp.NewTool("time_signatures",
		mcp.WithDescription("Summarize the temporal signal of a note history per category: "+
			"time-trigger counts and average trigger time-of-day."),
		mcp.WithString("notes", mcp.Required(), mcp.Description("JSON array of notes (the full history)")),
	), s.timeSignatures)

	// Resource: request vocabulary.
	s.mcp.AddResource(
		mcp.NewResource("hints://vocabulary", "Hint Request Vocabulary",
			mcp.WithResourceDescription("Note format and the closed category/trigger enums."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readVocabularyResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) recommendHint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := parseNotes(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	currentTime, err := req.RequireString("current_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	now, err := time.Parse(models.TimeLayout, currentTime)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("current_time: %v", err)), nil
	}

	res, err := s.svc.Recommend(ctx, notes, now)
	if err != nil {
		if errors.Is(err, apperr.ErrNoRecommendation) {
			return mcp.NewToolResultText("no recommendation: no recurring pattern found"), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, _ := json.MarshalIndent(api.HintResponse{
		Note:     api.NoteToDTO(res.Note),
		HintText: res.HintText,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) timeSignatures(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := parseNotes(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sigs := s.svc.Signatures(notes)
	rows := make(map[string]map[string]any, len(sigs))
	for cat, sig := range sigs {
		rows[string(cat)] = map[string]any{
			"trigger_count":    sig.TriggerCount,
			"avg_trigger_time": sig.AvgTrigger.String(),
		}
	}
	out, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readVocabularyResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "hints://vocabulary",
			MIMEType: "text/markdown",
			Text:     vocabularyDoc,
		},
	}, nil
}

// parseNotes decodes and validates the notes argument shared by both
// tools.
func parseNotes(req mcp.CallToolRequest) ([]models.Note, error) {
	raw, err := req.RequireString("notes")
	if err != nil {
		return nil, err
	}
	var dtos []api.NoteDTO
	if err := json.Unmarshal([]byte(raw), &dtos); err != nil {
		return nil, fmt.Errorf("notes: invalid JSON: %w", err)
	}
	sr := api.SignaturesRequest{Context: dtos}
	if err := sr.Validate(); err != nil {
		return nil, err
	}
	return sr.ToNotes()
}
