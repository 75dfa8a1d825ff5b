package toolserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/voyago/chrono/server/dateparse"
)

// DurationPromptName identifies the duration-extraction prompt.
const DurationPromptName = "extract_duration_weeks"

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        DurationPromptName,
		Description: "Map a free-text duration phrase (e.g. \"2 weeks\", \"1 month\", \"ytd\") to an integer week count with a confidence score.",
		Arguments: []*mcp.PromptArgument{
			{Name: "text", Description: "the duration phrase to interpret", Required: true},
		},
	}, s.handleDurationPrompt)
}

func (s *Server) handleDurationPrompt(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := req.Params.Arguments["text"]

	// "ytd" is resolved deterministically against the server clock; the
	// model only applies the table.
	ytd := dateparse.WeeksSinceYearStart(s.now())

	instructions := fmt.Sprintf(`Convert the duration phrase below into a whole number of weeks using this table:

- week = 1
- month = 4
- quarter = 12
- half year = 24
- year = 52
- "ytd" (year to date) = %d

Multiply by the quantity in the phrase when one is present ("2 weeks" = 2, "3 months" = 12). Phrase: %q

Respond with JSON only: {"weeks": <integer>, "confidence": <0.0-1.0>}. Use a low confidence when the phrase is ambiguous or not a duration.`, ytd, text)

	return &mcp.GetPromptResult{
		Description: "Duration extraction request",
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: instructions}},
		},
	}, nil
}
