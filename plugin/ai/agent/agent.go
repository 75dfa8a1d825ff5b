// Package agent implements the tool-calling loop that connects an LLM to
// the chrono MCP tool server. The agent lists the server's tools, offers
// them to the model, and executes whatever tool calls the model requests
// until it produces a final answer.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	"github.com/voyago/chrono/internal/observability"
)

// ChatClient is the LLM capability the agent needs. *ai.Provider satisfies it.
type ChatClient interface {
	ChatWithTools(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error)
}

// ToolSession is the slice of an MCP client session the agent uses.
// *mcp.ClientSession satisfies it.
type ToolSession interface {
	ListTools(ctx context.Context, params *mcp.ListToolsParams) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error)
}

// DefaultSystemPrompt instructs the model to lean on the server's tools for
// any date arithmetic rather than computing dates itself.
const DefaultSystemPrompt = `You are a travel-planning assistant. You have access to date tools served over MCP. Never do date arithmetic yourself: use normaliseDate to turn user-provided date text into YYYY-MM-DD, and weekOffset to count weeks between a date and today. Answer concisely once you have what you need.`

// Config holds configuration for creating an Agent.
type Config struct {
	// Name identifies this agent in logs.
	Name string

	// SystemPrompt is the base system prompt for the LLM.
	SystemPrompt string

	// MaxIterations is the maximum number of tool-calling loops.
	MaxIterations int
}

// Agent is a lightweight, framework-less tool-calling agent.
type Agent struct {
	llm     ChatClient
	session ToolSession
	config  Config
}

// New creates an Agent over an LLM client and an MCP session.
func New(llm ChatClient, session ToolSession, config Config) *Agent {
	if config.MaxIterations <= 0 {
		config.MaxIterations = 10
	}
	if config.SystemPrompt == "" {
		config.SystemPrompt = DefaultSystemPrompt
	}
	return &Agent{
		llm:     llm,
		session: session,
		config:  config,
	}
}

// Callback is called during agent execution for events.
type Callback func(event string, data string)

// Event constants for callbacks.
const (
	EventToolUse    = "tool_use"
	EventToolResult = "tool_result"
	EventAnswer     = "answer"
)

// Run executes the agent with the given input and returns the final answer.
func (a *Agent) Run(ctx context.Context, input string) (string, error) {
	return a.RunWithCallback(ctx, input, nil)
}

// RunWithCallback executes the agent with callback support.
func (a *Agent) RunWithCallback(ctx context.Context, input string, callback Callback) (string, error) {
	start := time.Now()
	logger := slog.With(
		observability.LogFieldRunID, observability.NewRunID(),
		observability.LogFieldAgent, a.config.Name)

	tools, err := a.listOpenAITools(ctx)
	if err != nil {
		return "", errors.Wrap(err, "listing server tools")
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: a.config.SystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: input},
	}

	for iteration := 0; iteration < a.config.MaxIterations; iteration++ {
		msg, err := a.llm.ChatWithTools(ctx, messages, tools)
		if err != nil {
			return "", errors.Wrapf(err, "LLM call failed (iteration %d)", iteration+1)
		}

		// No tool calls = final answer
		if len(msg.ToolCalls) == 0 {
			if callback != nil && msg.Content != "" {
				callback(EventAnswer, msg.Content)
			}
			logger.Info("agent answered",
				observability.LogFieldIteration, iteration+1,
				observability.LogFieldDuration, time.Since(start).Milliseconds())
			return msg.Content, nil
		}

		messages = append(messages, msg)

		for _, tc := range msg.ToolCalls {
			if callback != nil {
				callback(EventToolUse, fmt.Sprintf("%s:%s", tc.Function.Name, tc.Function.Arguments))
			}

			result := a.executeTool(ctx, tc, logger)

			if callback != nil {
				callback(EventToolResult, result)
			}

			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}

	return "", errors.Errorf("max iterations (%d) exceeded", a.config.MaxIterations)
}

// listOpenAITools converts the MCP server's tool list into OpenAI tool
// definitions, passing each tool's JSON schema through unchanged.
func (a *Agent) listOpenAITools(ctx context.Context) ([]openai.Tool, error) {
	listed, err := a.session.ListTools(ctx, nil)
	if err != nil {
		return nil, err
	}

	emptySchema := []byte(`{"type":"object","properties":{}}`)
	tools := make([]openai.Tool, 0, len(listed.Tools))
	for _, t := range listed.Tools {
		params := emptySchema
		if t.InputSchema != nil {
			if b, err := json.Marshal(t.InputSchema); err != nil {
				slog.Warn("failed to marshal tool schema, using empty schema",
					observability.LogFieldTool, t.Name,
					observability.LogFieldError, err.Error())
			} else {
				params = b
			}
		}
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  json.RawMessage(params),
			},
		})
	}
	return tools, nil
}

// executeTool runs one requested tool call against the MCP session. Failures
// are reported back to the model as text so the loop can recover.
func (a *Agent) executeTool(ctx context.Context, tc openai.ToolCall, logger *slog.Logger) string {
	args := map[string]any{}
	if tc.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return fmt.Sprintf("Error: invalid tool arguments: %v", err)
		}
	}

	res, err := a.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      tc.Function.Name,
		Arguments: args,
	})
	if err != nil {
		logger.Warn("tool call failed",
			observability.LogFieldTool, tc.Function.Name,
			observability.LogFieldError, err.Error())
		return fmt.Sprintf("Error: %v", err)
	}

	text := textFromResult(res)
	logger.Debug("tool call succeeded",
		observability.LogFieldTool, tc.Function.Name,
		"result", text)
	return text
}

// textFromResult flattens a tool result's text content blocks.
func textFromResult(res *mcp.CallToolResult) string {
	var sb strings.Builder
	for _, content := range res.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	out := sb.String()
	if res.IsError && !strings.HasPrefix(out, "Error") {
		return "Error: " + out
	}
	return out
}
