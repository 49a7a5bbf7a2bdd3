package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/medvoy/medvoy-platform/internal/observability/metrics"
	"github.com/medvoy/medvoy-platform/internal/upstream"
	"github.com/medvoy/medvoy-platform/pkg/logging"
)

// apologyMessage is the static floor when every recovery path has failed.
const apologyMessage = "I'm sorry, I wasn't able to look that up just now. Please try again in a moment."

// ErrEmptyConversation rejects a relay request with no turns to continue.
var ErrEmptyConversation = errors.New("relay: conversation has no turns")

// ErrInvalidTurn rejects inbound turns whose role is not user or assistant.
// Clients never submit system or tool turns; those are synthesized here.
var ErrInvalidTurn = errors.New("relay: turn role must be user or assistant")

// Source opens a streaming chat completion. Satisfied by *upstream.Client.
type Source interface {
	StreamChat(ctx context.Context, messages []upstream.Message, tools []upstream.Tool) (io.ReadCloser, error)
}

// Config assembles a Relay.
type Config struct {
	Source       Source
	Registry     *Registry
	SystemPrompt string
	Logger       *logging.Logger
	Metrics      *metrics.RelayMetrics
}

// Relay drives one upstream completion per client turn, intercepting a tool
// call when the model emits one, resolving it against a registered
// capability, and restreaming the grounded answer.
type Relay struct {
	source       Source
	registry     *Registry
	systemPrompt string
	log          *logging.Logger
	metrics      *metrics.RelayMetrics
	tracer       trace.Tracer
}

func New(cfg Config) (*Relay, error) {
	if cfg.Source == nil {
		return nil, errors.New("relay: source required")
	}
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Default()
	}
	return &Relay{
		source:       cfg.Source,
		registry:     cfg.Registry,
		systemPrompt: cfg.SystemPrompt,
		log:          log.Named("relay"),
		metrics:      cfg.Metrics,
		tracer:       otel.Tracer("medvoy.relay"),
	}, nil
}

// Session is one opened relay run: the first upstream stream is already
// connected, so Open's caller can still map a connection failure to a plain
// JSON error before committing to the event-stream response.
type Session struct {
	relay    *Relay
	ctx      context.Context
	messages []upstream.Message
	body     io.ReadCloser
}

// Open validates the inbound turns and connects the first upstream stream.
// A 429, 402, or missing-credential error surfaces here, pre-stream.
func (r *Relay) Open(ctx context.Context, turns []upstream.Message) (*Session, error) {
	if len(turns) == 0 {
		return nil, ErrEmptyConversation
	}
	for _, t := range turns {
		if t.Role != upstream.RoleUser && t.Role != upstream.RoleAssistant {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidTurn, t.Role)
		}
	}

	messages := make([]upstream.Message, 0, len(turns)+1)
	if r.systemPrompt != "" {
		messages = append(messages, upstream.Message{Role: upstream.RoleSystem, Content: r.systemPrompt})
	}
	messages = append(messages, turns...)

	body, err := r.source.StreamChat(ctx, messages, r.registry.Definitions())
	if err != nil {
		return nil, err
	}
	return &Session{relay: r, ctx: ctx, messages: messages, body: body}, nil
}

// Run consumes the opened stream and emits events to sink. The terminal
// sentinel is delivered exactly once, via sink.Done, on every return path.
func (s *Session) Run(sink Sink) {
	r := s.relay
	start := time.Now()
	status := "ok"

	ctx, span := r.tracer.Start(s.ctx, "relay.run")
	defer span.End()

	defer func() {
		sink.Done()
		r.metrics.ObserveStreamLatency(status, time.Since(start).Seconds())
	}()
	defer s.body.Close()

	acc := newToolCallAccumulator()
	if err := s.consume(s.body, sink, acc); err != nil {
		if errors.Is(err, errClientGone) {
			status = "client_gone"
			return
		}
		status = "upstream_error"
		r.log.Error("first stream failed mid-flight", "error", err)
		// Text already relayed stands on its own; a partially accumulated
		// tool call cannot be resolved from truncated arguments.
		return
	}

	if acc.empty() {
		return
	}

	call, err := acc.complete()
	if err != nil {
		status = "tool_error"
		r.log.Error("tool call accumulation failed", "error", err)
		r.metrics.ObserveResolution("unknown", "malformed")
		s.sendText(sink, apologyMessage)
		return
	}

	span.SetAttributes(attribute.String("relay.tool", call.Function.Name))
	status = s.resolveAndRestream(ctx, sink, call)
}

// errClientGone marks a failed write to the downstream sink.
var errClientGone = errors.New("relay: client disconnected")

// consume relays text deltas from one upstream stream body and, when acc is
// non-nil, merges tool-call fragments into it. Returns nil on clean
// exhaustion, which is either the terminal marker or EOF.
func (s *Session) consume(body io.Reader, sink Sink, acc *toolCallAccumulator) error {
	r := s.relay
	sc := newFrameScanner(body)
	for {
		payload, ok := sc.Next()
		if !ok {
			return sc.Err()
		}
		if payload == doneMarker {
			return nil
		}

		var chunk upstream.Chunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			r.metrics.ObserveFrameError()
			r.log.Warn("dropping unparseable stream frame", "error", err)
			continue
		}

		delta := chunk.FirstDelta()
		if delta.Content != "" {
			if err := sink.Send(Event{Type: EventText, Content: delta.Content}); err != nil {
				return errClientGone
			}
			r.metrics.ObserveEvent(EventText)
		}
		if acc != nil {
			for _, tc := range delta.ToolCalls {
				acc.add(tc)
			}
		} else if len(delta.ToolCalls) > 0 {
			// The continuation call declares no tools; a nested call here
			// is a model misfire and is dropped rather than resolved.
			r.log.Warn("ignoring tool call in continuation stream")
		}
	}
}

// resolveAndRestream executes the accumulated call against its registered
// capability and streams the grounded continuation. Returns the run status
// for the latency metric.
func (s *Session) resolveAndRestream(ctx context.Context, sink Sink, call upstream.ToolCall) string {
	r := s.relay
	name := call.Function.Name

	tool, ok := r.registry.Lookup(name)
	if !ok {
		r.log.Error("model invoked unregistered tool", "tool", name)
		r.metrics.ObserveResolution(name, "unknown")
		s.sendText(sink, apologyMessage)
		return "tool_error"
	}

	args := json.RawMessage(call.Function.Arguments)
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if !json.Valid(args) {
		r.log.Error("tool arguments are not valid JSON", "tool", name)
		r.metrics.ObserveResolution(name, "malformed")
		return s.fallback(ctx, sink, tool, args, errors.New("malformed arguments"))
	}

	result, err := tool.Resolve(ctx, args)
	if err != nil {
		r.log.Error("tool resolution failed", "tool", name, "error", err)
		r.metrics.ObserveResolution(name, "error")
		return s.fallback(ctx, sink, tool, args, err)
	}
	r.metrics.ObserveResolution(name, "ok")

	if len(result.Options) > 0 {
		if err := sink.Send(Event{Type: EventOptions, Options: result.Options}); err != nil {
			return "client_gone"
		}
		r.metrics.ObserveEvent(EventOptions)
	}

	// The synthetic turn pair closes the tool-call loop for the model: the
	// assistant's own call, then the capability payload as the tool reply.
	callID := call.ID
	if callID == "" {
		callID = "call_" + uuid.NewString()
	}
	call.ID = callID

	raw := result.Raw
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	continuation := append(append([]upstream.Message{}, s.messages...),
		upstream.Message{Role: upstream.RoleAssistant, ToolCalls: []upstream.ToolCall{call}},
		upstream.Message{Role: upstream.RoleTool, ToolCallID: callID, Content: string(raw)},
	)

	body, err := r.source.StreamChat(ctx, continuation, nil)
	if err != nil {
		r.log.Error("continuation stream failed to open", "tool", name, "error", err)
		s.sendText(sink, apologyMessage)
		return "upstream_error"
	}
	defer body.Close()

	if err := s.consume(body, sink, nil); err != nil {
		if errors.Is(err, errClientGone) {
			return "client_gone"
		}
		r.log.Error("continuation stream failed mid-flight", "tool", name, "error", err)
		return "upstream_error"
	}
	return "ok"
}

// fallback applies the tool's failure policy: stay silent, or run a
// compensating query so the model answers from general knowledge. Every
// path still ends at the terminal sentinel.
func (s *Session) fallback(ctx context.Context, sink Sink, tool *Tool, args json.RawMessage, cause error) string {
	r := s.relay

	if tool.Fallback == FallbackSilent {
		r.log.Warn("degrading silently after tool failure", "tool", tool.Name)
		return "tool_degraded"
	}

	prompt := ""
	if tool.FallbackPrompt != nil {
		prompt = tool.FallbackPrompt(args, cause)
	}
	if prompt == "" {
		prompt = "The " + tool.Name + " service is temporarily unavailable. Answer the patient's last question from your general knowledge, and say that live results are briefly unavailable."
	}

	compensating := append(append([]upstream.Message{}, s.messages...),
		upstream.Message{Role: upstream.RoleSystem, Content: prompt},
	)

	body, err := r.source.StreamChat(ctx, compensating, nil)
	if err != nil {
		r.log.Error("compensating stream failed to open", "tool", tool.Name, "error", err)
		s.sendText(sink, apologyMessage)
		return "upstream_error"
	}
	defer body.Close()

	if err := s.consume(body, sink, nil); err != nil {
		if errors.Is(err, errClientGone) {
			return "client_gone"
		}
		r.log.Error("compensating stream failed mid-flight", "tool", tool.Name, "error", err)
		return "upstream_error"
	}
	return "tool_degraded"
}

// sendText emits one best-effort text event; a gone client is not an error
// at this point.
func (s *Session) sendText(sink Sink, content string) {
	if err := sink.Send(Event{Type: EventText, Content: content}); err != nil {
		return
	}
	s.relay.metrics.ObserveEvent(EventText)
}
