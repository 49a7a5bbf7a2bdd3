package relay

import (
	"errors"
	"sort"
	"strings"

	"github.com/medvoy/medvoy-platform/internal/upstream"
)

// ErrMultipleToolCalls marks an assistant turn that built more than one tool
// call. The protocol never exercises that case; resolving it with a single
// buffer would silently merge argument fragments, so it fails loudly instead.
var ErrMultipleToolCalls = errors.New("relay: multiple tool calls in one assistant turn")

type pendingCall struct {
	id   string
	name string
	args strings.Builder
}

// toolCallAccumulator reassembles streamed tool-call fragments, keyed by the
// wire index so interleaved calls are kept apart. Owned by a single relay
// run; never shared across requests.
type toolCallAccumulator struct {
	calls map[int]*pendingCall
}

func newToolCallAccumulator() *toolCallAccumulator {
	return &toolCallAccumulator{calls: make(map[int]*pendingCall)}
}

// add merges one streamed fragment. The id and name arrive at most once,
// typically on the first fragment; argument chunks are always appended.
func (a *toolCallAccumulator) add(delta upstream.ToolCall) {
	call, ok := a.calls[delta.Index]
	if !ok {
		call = &pendingCall{}
		a.calls[delta.Index] = call
	}
	if delta.ID != "" {
		call.id = delta.ID
	}
	if delta.Function.Name != "" {
		call.name = delta.Function.Name
	}
	call.args.WriteString(delta.Function.Arguments)
}

func (a *toolCallAccumulator) empty() bool {
	return len(a.calls) == 0
}

// complete returns the single accumulated call once the stream has ended.
func (a *toolCallAccumulator) complete() (upstream.ToolCall, error) {
	if len(a.calls) == 0 {
		return upstream.ToolCall{}, errors.New("relay: no tool call accumulated")
	}
	if len(a.calls) > 1 {
		return upstream.ToolCall{}, ErrMultipleToolCalls
	}

	indexes := make([]int, 0, len(a.calls))
	for idx := range a.calls {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	call := a.calls[indexes[0]]
	return upstream.ToolCall{
		Index: indexes[0],
		ID:    call.id,
		Type:  "function",
		Function: upstream.FunctionCall{
			Name:      call.name,
			Arguments: call.args.String(),
		},
	}, nil
}
