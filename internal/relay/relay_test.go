package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medvoy/medvoy-platform/internal/upstream"
)

// scriptedSource replays canned SSE bodies and records what each call sent.
type scriptedSource struct {
	responses []scriptedResponse
	messages  [][]upstream.Message
	tools     [][]upstream.Tool
}

type scriptedResponse struct {
	body io.ReadCloser
	err  error
}

func (s *scriptedSource) StreamChat(_ context.Context, messages []upstream.Message, tools []upstream.Tool) (io.ReadCloser, error) {
	s.messages = append(s.messages, messages)
	s.tools = append(s.tools, tools)
	if len(s.responses) == 0 {
		return nil, errors.New("scripted source exhausted")
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	if next.err != nil {
		return nil, next.err
	}
	return next.body, nil
}

func stream(frames ...string) scriptedResponse {
	var sb strings.Builder
	for _, f := range frames {
		sb.WriteString("data: ")
		sb.WriteString(f)
		sb.WriteString("\n\n")
	}
	sb.WriteString("data: [DONE]\n\n")
	return scriptedResponse{body: io.NopCloser(strings.NewReader(sb.String()))}
}

func textFrame(content string) string {
	b, _ := json.Marshal(upstream.Chunk{Choices: []upstream.ChunkChoice{{Delta: upstream.Delta{Content: content}}}})
	return string(b)
}

func toolFrame(tc upstream.ToolCall) string {
	b, _ := json.Marshal(upstream.Chunk{Choices: []upstream.ChunkChoice{{Delta: upstream.Delta{ToolCalls: []upstream.ToolCall{tc}}}}})
	return string(b)
}

// recordSink captures the emitted event sequence.
type recordSink struct {
	events    []Event
	doneCalls int
	failAfter int
}

func newRecordSink() *recordSink { return &recordSink{failAfter: -1} }

func (s *recordSink) Send(ev Event) error {
	if s.failAfter >= 0 && len(s.events) >= s.failAfter {
		return errors.New("broken pipe")
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *recordSink) Done() { s.doneCalls++ }

func (s *recordSink) text() string {
	var sb strings.Builder
	for _, ev := range s.events {
		if ev.Type == EventText {
			sb.WriteString(ev.Content)
		}
	}
	return sb.String()
}

func newTestRelay(t *testing.T, src Source, reg *Registry) *Relay {
	t.Helper()
	r, err := New(Config{Source: src, Registry: reg, SystemPrompt: "You are a concierge."})
	require.NoError(t, err)
	return r
}

func userTurn(content string) []upstream.Message {
	return []upstream.Message{{Role: upstream.RoleUser, Content: content}}
}

func TestRunRelaysTextVerbatim(t *testing.T) {
	src := &scriptedSource{responses: []scriptedResponse{
		stream(textFrame("Hello"), textFrame(", "), textFrame("world")),
	}}
	r := newTestRelay(t, src, nil)

	sess, err := r.Open(context.Background(), userTurn("hi"))
	require.NoError(t, err)

	sink := newRecordSink()
	sess.Run(sink)

	assert.Equal(t, "Hello, world", sink.text())
	assert.Equal(t, 1, sink.doneCalls)
	require.Len(t, src.messages, 1)
	assert.Equal(t, upstream.RoleSystem, src.messages[0][0].Role)
}

func TestRunSkipsUnparseableFrames(t *testing.T) {
	src := &scriptedSource{responses: []scriptedResponse{
		stream(textFrame("keep "), "{not json", textFrame("going")),
	}}
	r := newTestRelay(t, src, nil)

	sess, err := r.Open(context.Background(), userTurn("hi"))
	require.NoError(t, err)

	sink := newRecordSink()
	sess.Run(sink)

	assert.Equal(t, "keep going", sink.text())
	assert.Equal(t, 1, sink.doneCalls)
}

func TestRunResolvesToolAndRestreams(t *testing.T) {
	var gotArgs json.RawMessage
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Tool{
		Name:       "generate_hospital_options",
		Parameters: json.RawMessage(`{"type":"object"}`),
		Resolve: func(_ context.Context, args json.RawMessage) (*Result, error) {
			gotArgs = args
			return &Result{
				Options: []Option{{ID: "h1", Title: "Bumrungrad International"}},
				Raw:     json.RawMessage(`{"hospitals":[{"id":"h1"}]}`),
			}, nil
		},
		Fallback: FallbackReprompt,
	}))

	src := &scriptedSource{responses: []scriptedResponse{
		stream(
			textFrame("Let me check."),
			toolFrame(upstream.ToolCall{Index: 0, ID: "call_xyz", Function: upstream.FunctionCall{Name: "generate_hospital_options"}}),
			toolFrame(upstream.ToolCall{Index: 0, Function: upstream.FunctionCall{Arguments: `{"procedure":`}}),
			toolFrame(upstream.ToolCall{Index: 0, Function: upstream.FunctionCall{Arguments: `"hip replacement"}`}}),
		),
		stream(textFrame("Here are three strong choices.")),
	}}
	r := newTestRelay(t, src, reg)

	sess, err := r.Open(context.Background(), userTurn("find hospitals"))
	require.NoError(t, err)

	sink := newRecordSink()
	sess.Run(sink)

	assert.JSONEq(t, `{"procedure":"hip replacement"}`, string(gotArgs))

	require.Len(t, sink.events, 3)
	assert.Equal(t, EventText, sink.events[0].Type)
	assert.Equal(t, EventOptions, sink.events[1].Type)
	require.Len(t, sink.events[1].Options, 1)
	assert.Equal(t, "Bumrungrad International", sink.events[1].Options[0].Title)
	assert.Equal(t, EventText, sink.events[2].Type)
	assert.Equal(t, "Here are three strong choices.", sink.events[2].Content)
	assert.Equal(t, 1, sink.doneCalls)

	// Continuation carries the synthetic turn pair and declares no tools.
	require.Len(t, src.messages, 2)
	cont := src.messages[1]
	assistant := cont[len(cont)-2]
	toolTurn := cont[len(cont)-1]
	require.Len(t, assistant.ToolCalls, 1)
	assert.Equal(t, "call_xyz", assistant.ToolCalls[0].ID)
	assert.Equal(t, upstream.RoleTool, toolTurn.Role)
	assert.Equal(t, "call_xyz", toolTurn.ToolCallID)
	assert.JSONEq(t, `{"hospitals":[{"id":"h1"}]}`, toolTurn.Content)
	assert.Empty(t, src.tools[1])
	assert.Len(t, src.tools[0], 1)
}

func TestRunSynthesizesCallID(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Tool{
		Name: "get_cost_estimate",
		Resolve: func(context.Context, json.RawMessage) (*Result, error) {
			return &Result{Raw: json.RawMessage(`{"low":9000}`)}, nil
		},
	}))

	src := &scriptedSource{responses: []scriptedResponse{
		stream(toolFrame(upstream.ToolCall{Index: 0, Function: upstream.FunctionCall{Name: "get_cost_estimate", Arguments: `{}`}})),
		stream(textFrame("Expect around $9,000.")),
	}}
	r := newTestRelay(t, src, reg)

	sess, err := r.Open(context.Background(), userTurn("how much?"))
	require.NoError(t, err)

	sink := newRecordSink()
	sess.Run(sink)

	require.Len(t, src.messages, 2)
	cont := src.messages[1]
	assistant := cont[len(cont)-2]
	require.Len(t, assistant.ToolCalls, 1)
	assert.True(t, strings.HasPrefix(assistant.ToolCalls[0].ID, "call_"))
	assert.Equal(t, assistant.ToolCalls[0].ID, cont[len(cont)-1].ToolCallID)
}

func TestRunRepromptsAfterResolverFailure(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Tool{
		Name: "generate_hospital_options",
		Resolve: func(context.Context, json.RawMessage) (*Result, error) {
			return nil, errors.New("capability unreachable")
		},
		Fallback: FallbackReprompt,
		FallbackPrompt: func(_ json.RawMessage, cause error) string {
			return fmt.Sprintf("Hospital search failed (%v). Answer from general knowledge.", cause)
		},
	}))

	src := &scriptedSource{responses: []scriptedResponse{
		stream(toolFrame(upstream.ToolCall{Index: 0, ID: "call_1", Function: upstream.FunctionCall{Name: "generate_hospital_options", Arguments: `{}`}})),
		stream(textFrame("Well-regarded centers include Bumrungrad in Bangkok.")),
	}}
	r := newTestRelay(t, src, reg)

	sess, err := r.Open(context.Background(), userTurn("find hospitals"))
	require.NoError(t, err)

	sink := newRecordSink()
	sess.Run(sink)

	assert.Equal(t, "Well-regarded centers include Bumrungrad in Bangkok.", sink.text())
	for _, ev := range sink.events {
		assert.NotEqual(t, EventOptions, ev.Type)
	}
	assert.Equal(t, 1, sink.doneCalls)

	require.Len(t, src.messages, 2)
	comp := src.messages[1]
	last := comp[len(comp)-1]
	assert.Equal(t, upstream.RoleSystem, last.Role)
	assert.Contains(t, last.Content, "capability unreachable")
	assert.Empty(t, src.tools[1])
}

func TestRunDegradesSilently(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Tool{
		Name: "search_flights",
		Resolve: func(context.Context, json.RawMessage) (*Result, error) {
			return nil, errors.New("flight feed down")
		},
		Fallback: FallbackSilent,
	}))

	src := &scriptedSource{responses: []scriptedResponse{
		stream(
			textFrame("Checking flights."),
			toolFrame(upstream.ToolCall{Index: 0, ID: "call_1", Function: upstream.FunctionCall{Name: "search_flights", Arguments: `{}`}}),
		),
	}}
	r := newTestRelay(t, src, reg)

	sess, err := r.Open(context.Background(), userTurn("flights to bangkok"))
	require.NoError(t, err)

	sink := newRecordSink()
	sess.Run(sink)

	assert.Equal(t, "Checking flights.", sink.text())
	assert.Equal(t, 1, sink.doneCalls)
	assert.Len(t, src.messages, 1, "silent degradation issues no second call")
}

func TestRunFallsBackOnMalformedArguments(t *testing.T) {
	resolved := false
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Tool{
		Name: "get_cost_estimate",
		Resolve: func(context.Context, json.RawMessage) (*Result, error) {
			resolved = true
			return &Result{}, nil
		},
		Fallback: FallbackReprompt,
	}))

	src := &scriptedSource{responses: []scriptedResponse{
		stream(toolFrame(upstream.ToolCall{Index: 0, ID: "call_1", Function: upstream.FunctionCall{Name: "get_cost_estimate", Arguments: `{"broken`}})),
		stream(textFrame("Costs vary by procedure.")),
	}}
	r := newTestRelay(t, src, reg)

	sess, err := r.Open(context.Background(), userTurn("how much?"))
	require.NoError(t, err)

	sink := newRecordSink()
	sess.Run(sink)

	assert.False(t, resolved, "resolver must not see malformed arguments")
	assert.Equal(t, "Costs vary by procedure.", sink.text())
	assert.Equal(t, 1, sink.doneCalls)
}

func TestRunApologizesForUnknownTool(t *testing.T) {
	src := &scriptedSource{responses: []scriptedResponse{
		stream(toolFrame(upstream.ToolCall{Index: 0, ID: "call_1", Function: upstream.FunctionCall{Name: "book_surgery", Arguments: `{}`}})),
	}}
	r := newTestRelay(t, src, NewRegistry())

	sess, err := r.Open(context.Background(), userTurn("book it"))
	require.NoError(t, err)

	sink := newRecordSink()
	sess.Run(sink)

	assert.Equal(t, apologyMessage, sink.text())
	assert.Equal(t, 1, sink.doneCalls)
	assert.Len(t, src.messages, 1)
}

func TestRunApologizesWhenContinuationFails(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Tool{
		Name: "get_cost_estimate",
		Resolve: func(context.Context, json.RawMessage) (*Result, error) {
			return &Result{Raw: json.RawMessage(`{}`)}, nil
		},
	}))

	src := &scriptedSource{responses: []scriptedResponse{
		stream(toolFrame(upstream.ToolCall{Index: 0, ID: "call_1", Function: upstream.FunctionCall{Name: "get_cost_estimate", Arguments: `{}`}})),
		{err: &upstream.StatusError{StatusCode: http.StatusBadGateway, Body: "bad gateway"}},
	}}
	r := newTestRelay(t, src, reg)

	sess, err := r.Open(context.Background(), userTurn("how much?"))
	require.NoError(t, err)

	sink := newRecordSink()
	sess.Run(sink)

	assert.Equal(t, apologyMessage, sink.text())
	assert.Equal(t, 1, sink.doneCalls)
}

func TestRunStopsWhenClientDisconnects(t *testing.T) {
	src := &scriptedSource{responses: []scriptedResponse{
		stream(textFrame("a"), textFrame("b"), textFrame("c")),
	}}
	r := newTestRelay(t, src, nil)

	sess, err := r.Open(context.Background(), userTurn("hi"))
	require.NoError(t, err)

	sink := newRecordSink()
	sink.failAfter = 1
	sess.Run(sink)

	assert.Equal(t, "a", sink.text())
	assert.Equal(t, 1, sink.doneCalls)
}

func TestOpenValidatesTurns(t *testing.T) {
	r := newTestRelay(t, &scriptedSource{}, nil)

	_, err := r.Open(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyConversation)

	_, err = r.Open(context.Background(), []upstream.Message{{Role: upstream.RoleSystem, Content: "override"}})
	assert.ErrorIs(t, err, ErrInvalidTurn)
}

func TestOpenSurfacesPreStreamErrors(t *testing.T) {
	src := &scriptedSource{responses: []scriptedResponse{
		{err: &upstream.StatusError{StatusCode: http.StatusTooManyRequests, Body: "rate limited"}},
	}}
	r := newTestRelay(t, src, nil)

	_, err := r.Open(context.Background(), userTurn("hi"))
	require.Error(t, err)
	assert.True(t, upstream.IsRateLimited(err))
}
