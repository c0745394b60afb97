// Package farmtools implements the capabilities advisors can call while
// drafting a reply: weather, seasonal patterns, market analysis, greenhouse
// control and plant health checks. Data is a curated offline snapshot, not a
// live feed.
package farmtools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
)

// Handler executes one capability. Arguments arrive as the raw JSON object
// produced by the model.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

type Capability struct {
	Name        string
	Description string
	Parameters  json.RawMessage
	Handler     Handler
}

// Registry is an ordered set of capabilities. Order is preserved so tool
// listings are stable across calls.
type Registry struct {
	caps  map[string]Capability
	order []string
}

func NewRegistry() *Registry {
	return &Registry{caps: make(map[string]Capability)}
}

func (r *Registry) Register(c Capability) {
	if _, ok := r.caps[c.Name]; !ok {
		r.order = append(r.order, c.Name)
	}
	r.caps[c.Name] = c
}

func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Subset returns a new registry containing only the named capabilities,
// skipping names that are not registered.
func (r *Registry) Subset(names ...string) *Registry {
	sub := NewRegistry()
	for _, name := range names {
		if c, ok := r.caps[name]; ok {
			sub.Register(c)
		}
	}
	return sub
}

// Tools renders the registry in the wire format the model expects.
func (r *Registry) Tools() []core.Tool {
	tools := make([]core.Tool, 0, len(r.order))
	for _, name := range r.order {
		c := r.caps[name]
		tools = append(tools, core.Tool{
			Type: "function",
			Function: core.Function{
				Name:        c.Name,
				Description: c.Description,
				Parameters:  c.Parameters,
			},
		})
	}
	return tools
}

// Invoke runs a capability and serializes its result for the tool message.
// Unknown names and handler failures are reported as a string so the model
// can recover instead of the round aborting.
func (r *Registry) Invoke(ctx context.Context, name, arguments string) string {
	c, ok := r.caps[name]
	if !ok {
		return fmt.Sprintf("error: unknown tool %q", name)
	}

	result, err := c.Handler(ctx, json.RawMessage(arguments))
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("error: encode result: %v", err)
	}
	return string(data)
}
