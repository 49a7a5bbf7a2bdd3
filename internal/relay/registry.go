package relay

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/medvoy/medvoy-platform/internal/upstream"
)

// FallbackPolicy selects what the relay does when a tool's resolver fails.
type FallbackPolicy int

const (
	// FallbackSilent swallows the failure: no options event, straight to the
	// terminal sentinel. For low-stakes enrichments.
	FallbackSilent FallbackPolicy = iota
	// FallbackReprompt issues a substitute upstream call asking the model to
	// answer from general knowledge, and relays that response's text. For
	// primary, must-answer tools.
	FallbackReprompt
)

// Result is what a resolver produces: the normalized option list for the
// client event plus the raw JSON woven verbatim into the synthetic tool turn.
type Result struct {
	Options []Option
	Raw     json.RawMessage
}

// ResolverFunc performs the capability call for one tool.
type ResolverFunc func(ctx context.Context, args json.RawMessage) (*Result, error)

// Tool binds a declared schema to its resolver and failure policy.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage
	Resolve     ResolverFunc
	Fallback    FallbackPolicy

	// FallbackPrompt builds the explanatory message for a compensating
	// query. Only consulted when Fallback is FallbackReprompt; a nil func
	// falls back to a generic wording.
	FallbackPrompt func(args json.RawMessage, cause error) string
}

// Registry holds the tools declared to the upstream source for one relay.
type Registry struct {
	order []string
	tools map[string]*Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds a tool. Registering a duplicate name is a programming error.
func (r *Registry) Register(t *Tool) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("relay: tool requires a name")
	}
	if t.Resolve == nil {
		return fmt.Errorf("relay: tool %q requires a resolver", t.Name)
	}
	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("relay: tool %q already registered", t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Len reports the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Definitions returns the tool schemas declared to the upstream source, in
// registration order.
func (r *Registry) Definitions() []upstream.Tool {
	defs := make([]upstream.Tool, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, upstream.Tool{
			Type: "function",
			Function: upstream.ToolFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return defs
}
