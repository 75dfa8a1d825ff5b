package toolserver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/voyago/chrono/internal/observability"
	"github.com/voyago/chrono/server/calendar"
	"github.com/voyago/chrono/server/dateparse"
)

// WeekOffsetInput is the argument shape of the weekOffset tool.
type WeekOffsetInput struct {
	PastDate string `json:"pastDate" jsonschema:"a past date in YYYY-MM-DD format"`
}

// NormaliseDateInput is the argument shape of the normaliseDate tool.
type NormaliseDateInput struct {
	RawDate string `json:"rawDate" jsonschema:"free-form date text, e.g. 2025/6/1 or June 1st, 2025"`
}

// AddInput is the argument shape of the add tool.
type AddInput struct {
	A int `json:"a" jsonschema:"first addend"`
	B int `json:"b" jsonschema:"second addend"`
}

// FestivalDateInput is the argument shape of the festivalDate tool.
type FestivalDateInput struct {
	Festival string `json:"festival" jsonschema:"festival name, e.g. oktoberfest or chinese new year"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "weekOffset",
		Description: "Count the whole weeks between a past date (YYYY-MM-DD) and today, baseline 1. Today returns 1, last week returns 2. Invalid or future dates return 1.",
	}, s.handleWeekOffset)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "normaliseDate",
		Description: "Normalise loosely-formatted date text into YYYY-MM-DD. Returns an empty string when the text cannot be confidently parsed.",
	}, s.handleNormaliseDate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add",
		Description: "Add two integers.",
	}, s.handleAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "festivalDate",
		Description: "Look up the date (YYYY-MM-DD) of a well-known festival.",
	}, s.handleFestivalDate)
}

func (s *Server) handleWeekOffset(_ context.Context, _ *mcp.CallToolRequest, in WeekOffsetInput) (*mcp.CallToolResult, any, error) {
	weeks := dateparse.WeeksSince(in.PastDate, s.now())
	slog.Debug("weekOffset computed",
		observability.LogFieldTool, "weekOffset",
		"past_date", in.PastDate,
		"weeks", weeks)
	return textResult(strconv.Itoa(weeks)), nil, nil
}

func (s *Server) handleNormaliseDate(_ context.Context, _ *mcp.CallToolRequest, in NormaliseDateInput) (*mcp.CallToolResult, any, error) {
	normalized := dateparse.Normalize(in.RawDate)
	slog.Debug("date normalised",
		observability.LogFieldTool, "normaliseDate",
		"raw_date", in.RawDate,
		"normalized", normalized)
	return textResult(normalized), nil, nil
}

func (s *Server) handleAdd(_ context.Context, _ *mcp.CallToolRequest, in AddInput) (*mcp.CallToolResult, any, error) {
	return textResult(strconv.Itoa(in.A + in.B)), nil, nil
}

func (s *Server) handleFestivalDate(_ context.Context, _ *mcp.CallToolRequest, in FestivalDateInput) (*mcp.CallToolResult, any, error) {
	date, ok := calendar.Lookup(in.Festival)
	if !ok {
		res := textResult(fmt.Sprintf("unknown festival %q; known festivals: %v", in.Festival, calendar.Names()))
		res.IsError = true
		return res, nil, nil
	}
	return textResult(date), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
