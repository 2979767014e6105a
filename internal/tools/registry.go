// Package tools implements the functions the model can call during a turn and
// the registry that dispatches them.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gateway/pkg/domain"
	"gateway/pkg/llm"
	"gateway/pkg/serrors"
)

// ErrUnknownTool is returned when the model asks for a tool that is not registered.
var ErrUnknownTool = serrors.NewKind("UNKNOWN_TOOL")

// Invocation carries everything a tool may need to run.
type Invocation struct {
	Args     Args
	State    *domain.Conversation
	Language string
}

// Result is what a tool returns. Data may be any JSON encodable value when
// PostProcess is set.
type Result struct {
	Event   domain.Event
	Data    any
	Updates domain.Updates
	// PostProcess asks the orchestrator to hand Data back to the model
	// instead of replying with it directly.
	PostProcess bool
}

// Output is a normalized Result.
type Output struct {
	Event       domain.Event
	Data        string
	Updates     domain.Updates
	PostProcess bool
}

// Tool is a single model callable function.
type Tool interface {
	Definition() llm.Tool
	Execute(ctx context.Context, inv Invocation) (Result, error)
}

// Registry dispatches tool calls by name, keeping registration order.
type Registry struct {
	tools []Tool
	index map[string]int
}

var _ Executor = (*Registry)(nil)

// NewRegistry registers tools in the given order. A later tool with an
// already registered name replaces the earlier one.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{index: make(map[string]int, len(tools))}
	for _, t := range tools {
		name := t.Definition().Name
		if i, exists := r.index[name]; exists {
			r.tools[i] = t

			continue
		}
		r.index[name] = len(r.tools)
		r.tools = append(r.tools, t)
	}

	return r
}

// Schemas returns the definitions of every registered tool in registration order.
func (r *Registry) Schemas() []llm.Tool {
	out := make([]llm.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Definition())
	}

	return out
}

// Execute decodes arguments, runs the named tool and normalizes its result.
func (r *Registry) Execute(ctx context.Context,
	name string,
	arguments string,
	state *domain.Conversation,
	language string) (Output, error) {
	i, ok := r.index[name]
	if !ok {
		return Output{}, serrors.With(ErrUnknownTool, "tool %q is not registered", name)
	}

	args, err := ParseArgs(arguments)
	if err != nil {
		return Output{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid arguments for tool %q", name)
	}

	res, err := r.tools[i].Execute(ctx, Invocation{Args: args, State: state, Language: language})
	if err != nil {
		return Output{}, fmt.Errorf("tool %q failed: %w", name, err)
	}

	return normalize(res)
}

func normalize(res Result) (Output, error) {
	out := Output{
		Event:       res.Event,
		Updates:     res.Updates,
		PostProcess: res.PostProcess,
	}
	if out.Event == "" {
		out.Event = domain.EventSend
	}
	if out.Updates == nil {
		out.Updates = domain.Updates{}
	}

	switch data := res.Data.(type) {
	case nil:
	case string:
		out.Data = data
	default:
		if !res.PostProcess {
			out.Data = fmt.Sprint(data)

			break
		}
		encoded, err := encodeJSON(data)
		if err != nil {
			return Output{}, fmt.Errorf("could not encode tool data: %w", err)
		}
		out.Data = encoded
	}

	return out, nil
}

// encodeJSON marshals v without escaping HTML characters or non-ASCII text.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err //nolint: wrapcheck
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
