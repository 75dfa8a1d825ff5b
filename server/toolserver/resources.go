package toolserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/voyago/chrono/server/calendar"
)

// FestivalsURI identifies the festival calendar resource.
const FestivalsURI = "calendar://festivals"

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         FestivalsURI,
		Name:        "festivals",
		Description: "Fixed festival-name to date table (YYYY-MM-DD).",
		MIMEType:    "application/json",
	}, s.handleFestivals)
}

func (s *Server) handleFestivals(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	body, err := calendar.JSON()
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     body,
		}},
	}, nil
}
