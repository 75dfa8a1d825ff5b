package agent

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM replays a scripted sequence of assistant messages.
type fakeLLM struct {
	script []openai.ChatCompletionMessage
	calls  int

	// lastMessages captures the conversation passed on the final call.
	lastMessages []openai.ChatCompletionMessage
	lastTools    []openai.Tool
}

func (f *fakeLLM) ChatWithTools(_ context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error) {
	f.lastMessages = messages
	f.lastTools = tools
	msg := f.script[f.calls]
	f.calls++
	return msg, nil
}

// fakeSession serves a canned tool list and records tool calls.
type fakeSession struct {
	tools   []*mcp.Tool
	results map[string]string
	called  []string
}

func (f *fakeSession) ListTools(_ context.Context, _ *mcp.ListToolsParams) (*mcp.ListToolsResult, error) {
	return &mcp.ListToolsResult{Tools: f.tools}, nil
}

func (f *fakeSession) CallTool(_ context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error) {
	f.called = append(f.called, params.Name)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: f.results[params.Name]}},
	}, nil
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		tools: []*mcp.Tool{
			{Name: "weekOffset", Description: "count weeks"},
			{Name: "normaliseDate", Description: "normalise a date"},
		},
		results: map[string]string{
			"weekOffset":    "3",
			"normaliseDate": "2025-06-01",
		},
	}
}

func toolCallMsg(id, name, args string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		ToolCalls: []openai.ToolCall{{
			ID:   id,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      name,
				Arguments: args,
			},
		}},
	}
}

func TestAgentDirectAnswer(t *testing.T) {
	llm := &fakeLLM{script: []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleAssistant, Content: "It is June."},
	}}
	session := newFakeSession()

	a := New(llm, session, Config{Name: "test"})
	answer, err := a.Run(context.Background(), "what month is it?")
	require.NoError(t, err)
	assert.Equal(t, "It is June.", answer)
	assert.Empty(t, session.called)

	// Both server tools were offered to the model.
	require.Len(t, llm.lastTools, 2)
	assert.Equal(t, "weekOffset", llm.lastTools[0].Function.Name)
}

func TestAgentExecutesRequestedTools(t *testing.T) {
	llm := &fakeLLM{script: []openai.ChatCompletionMessage{
		toolCallMsg("call_1", "normaliseDate", `{"rawDate":"June 1st, 2025"}`),
		toolCallMsg("call_2", "weekOffset", `{"pastDate":"2025-06-01"}`),
		{Role: openai.ChatMessageRoleAssistant, Content: "That was 3 weeks ago."},
	}}
	session := newFakeSession()

	var events []string
	a := New(llm, session, Config{Name: "test"})
	answer, err := a.RunWithCallback(context.Background(), "how long since June 1st, 2025?", func(event, data string) {
		events = append(events, event+":"+data)
	})
	require.NoError(t, err)
	assert.Equal(t, "That was 3 weeks ago.", answer)
	assert.Equal(t, []string{"normaliseDate", "weekOffset"}, session.called)

	// Tool results flow back as tool-role messages bound to the call ID.
	var toolMsgs []openai.ChatCompletionMessage
	for _, m := range llm.lastMessages {
		if m.Role == openai.ChatMessageRoleTool {
			toolMsgs = append(toolMsgs, m)
		}
	}
	require.Len(t, toolMsgs, 2)
	assert.Equal(t, "call_1", toolMsgs[0].ToolCallID)
	assert.Equal(t, "2025-06-01", toolMsgs[0].Content)
	assert.Equal(t, "call_2", toolMsgs[1].ToolCallID)
	assert.Equal(t, "3", toolMsgs[1].Content)

	assert.Contains(t, events, "tool_use:normaliseDate:{\"rawDate\":\"June 1st, 2025\"}")
	assert.Contains(t, events, "tool_result:3")
	assert.Contains(t, events, "answer:That was 3 weeks ago.")
}

func TestAgentMaxIterationsExceeded(t *testing.T) {
	llm := &fakeLLM{script: []openai.ChatCompletionMessage{
		toolCallMsg("call_1", "weekOffset", `{"pastDate":"2025-06-01"}`),
		toolCallMsg("call_2", "weekOffset", `{"pastDate":"2025-06-01"}`),
	}}
	session := newFakeSession()

	a := New(llm, session, Config{Name: "test", MaxIterations: 2})
	_, err := a.Run(context.Background(), "loop forever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max iterations")
}

func TestAgentReportsUnknownToolToModel(t *testing.T) {
	llm := &fakeLLM{script: []openai.ChatCompletionMessage{
		toolCallMsg("call_1", "weekOffset", `{not json`),
		{Role: openai.ChatMessageRoleAssistant, Content: "done"},
	}}
	session := newFakeSession()

	a := New(llm, session, Config{Name: "test"})
	answer, err := a.Run(context.Background(), "bad args")
	require.NoError(t, err)
	assert.Equal(t, "done", answer)
	assert.Empty(t, session.called, "malformed arguments never reach the server")

	var toolMsg openai.ChatCompletionMessage
	for _, m := range llm.lastMessages {
		if m.Role == openai.ChatMessageRoleTool {
			toolMsg = m
		}
	}
	assert.Contains(t, toolMsg.Content, "Error")
}

func TestTextFromResultFlagsErrors(t *testing.T) {
	res := &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "unknown festival"}},
	}
	assert.Equal(t, "Error: unknown festival", textFromResult(res))

	res = &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "2025-06-01"}},
	}
	assert.Equal(t, "2025-06-01", textFromResult(res))
}
