// Package orchestrator runs a chatbot turn: it loads the conversation, asks
// the model for a reply, executes the tools the model requests and stores the
// outcome.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"gateway/internal/config"
	"gateway/internal/conversation"
	"gateway/internal/tools"
	"gateway/pkg/domain"
	"gateway/pkg/llm"
	"gateway/pkg/logger"
	"gateway/pkg/metrics"
	"gateway/pkg/serrors"
)

const (
	fallbackTextEN = "Sorry, I cannot process this request right now. Please try again in a moment."
	fallbackTextUK = "Вибачте, наразі я не можу опрацювати запит. Будь ласка, спробуйте знову трохи пізніше."

	unknownToolTextEN = "The requested tool is unavailable right now."
	unknownToolTextUK = "Запитаний інструмент зараз недоступний."
)

// Turn outcomes reported to metrics.
const (
	outcomeReply    = "reply"
	outcomeFunction = "function"
	outcomeFallback = "fallback"
)

// ClientFactory builds the LLM client on first use.
type ClientFactory func() (llm.Client, error)

// Options configure the orchestrator.
type Options struct {
	// DefaultLanguage is used when neither the conversation nor the message
	// carry a language.
	DefaultLanguage string
	// Now overrides the clock used to timestamp user messages.
	Now func() time.Time
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		DefaultLanguage: cfg.Conversation.DefaultLanguage,
	}
}

// orchestrator is the concrete implementation of the Agent interface.
type orchestrator struct {
	options  Options
	store    conversation.Store
	tools    tools.Executor
	recorder *metrics.Recorder

	factory  ClientFactory
	clientMu sync.Mutex
	client   llm.Client
}

// New creates an Agent. recorder may be nil.
func New(store conversation.Store,
	executor tools.Executor,
	factory ClientFactory,
	recorder *metrics.Recorder,
	options Options) Agent {
	if options.DefaultLanguage == "" {
		options.DefaultLanguage = "uk"
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	return &orchestrator{
		options:  options,
		store:    store,
		tools:    executor,
		factory:  factory,
		recorder: recorder,
	}
}

// HandleTurn loads the conversation, records the user message, produces a
// reply and persists the updated conversation.
func (o *orchestrator) HandleTurn(ctx context.Context, msg domain.ChatbotMessage) (domain.AgentReply, error) {
	ctx = logger.WithFields(ctx, zap.String("chatID", msg.ChatID))

	state, err := o.store.Load(ctx, msg)
	if err != nil {
		return domain.AgentReply{}, fmt.Errorf("could not load conversation: %w", err)
	}
	logger.Debug(ctx, "handling chatbot turn", zap.String("messageID", msg.MessageID))

	language := firstNonEmpty(state.Language, msg.Context.Language, o.options.DefaultLanguage)
	state.AppendHistory(domain.RoleUser,
		renderUserContent(msg, state, language, o.options.Now()),
		o.store.MaxHistory())

	t := &turn{o: o, state: state, language: firstNonEmpty(state.Language, o.options.DefaultLanguage)}
	reply := t.run(ctx)

	if len(reply.ContextUpdates) > 0 {
		state.ApplyUpdates(reply.ContextUpdates)
	}
	if reply.IsText() {
		state.AppendHistory(domain.RoleAssistant, reply.Data, o.store.MaxHistory())
	}
	if err := o.store.Persist(ctx, state); err != nil {
		return domain.AgentReply{}, fmt.Errorf("could not persist conversation: %w", err)
	}

	outcome := outcomeReply
	switch {
	case t.fellBack:
		outcome = outcomeFallback
	case reply.Event != domain.EventSend:
		outcome = outcomeFunction
	}
	o.recorder.Turn(ctx, outcome)
	logger.Info(ctx, "chatbot turn handled",
		zap.String("event", string(reply.Event)),
		zap.String("outcome", outcome))

	return reply, nil
}

// AnswerDirect answers q with the system prompt only.
func (o *orchestrator) AnswerDirect(ctx context.Context, q domain.DirectQuestion) domain.AgentReply {
	language := firstNonEmpty(q.Language, o.options.DefaultLanguage)

	completion, err := o.complete(ctx, llm.Request{Messages: []llm.Message{
		{Role: llm.RoleSystem, Content: SystemPrompt},
		{Role: llm.RoleUser, Content: q.Question},
	}})
	if err == nil {
		choice := completion.FirstChoice()
		switch {
		case choice == nil:
			err = serrors.With(serrors.ErrUpstream, "no choices returned by the model")
		case strings.TrimSpace(choice.Message.Content) == "":
			err = serrors.With(serrors.ErrUpstream, "the model returned an empty response")
		default:
			return domain.AgentReply{Event: domain.EventSend, Data: strings.TrimSpace(choice.Message.Content)}
		}
	}

	logger.Error(ctx, "direct answer failed", zap.Error(err))
	reply := fallbackReply(language, err)

	return domain.AgentReply{Event: reply.Event, Data: reply.Data}
}

// llmClient returns the LLM client, creating it on first use. A failed
// creation is retried on the next call.
func (o *orchestrator) llmClient() (llm.Client, error) {
	o.clientMu.Lock()
	defer o.clientMu.Unlock()

	if o.client != nil {
		return o.client, nil
	}
	if o.factory == nil {
		return nil, serrors.With(serrors.ErrInternal, "no LLM client factory configured")
	}
	client, err := o.factory()
	if err != nil {
		return nil, fmt.Errorf("could not create LLM client: %w", err)
	}
	o.client = client

	return client, nil
}

func (o *orchestrator) complete(ctx context.Context, req llm.Request) (*llm.Completion, error) {
	client, err := o.llmClient()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	completion, err := client.Complete(ctx, req)
	o.recorder.LLMCall(ctx, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	return completion, nil
}

// turn holds the state of a single HandleTurn call.
type turn struct {
	o        *orchestrator
	state    *domain.Conversation
	language string
	fellBack bool
}

func (t *turn) run(ctx context.Context) domain.AgentReply {
	completion, err := t.o.complete(ctx, llm.Request{
		Messages: t.messages(),
		Tools:    t.o.tools.Schemas(),
	})
	if err != nil {
		return t.fallback(ctx, err)
	}

	return t.fromCompletion(ctx, completion, nil)
}

// messages is the system prompt followed by the conversation history.
func (t *turn) messages() []llm.Message {
	out := make([]llm.Message, 0, len(t.state.History)+1)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: SystemPrompt})
	for _, entry := range t.state.History {
		out = append(out, llm.Message{Role: llm.Role(entry.Role), Content: entry.Content})
	}

	return out
}

// fromCompletion turns a model answer into a reply. updates were collected by
// earlier tool calls of the same turn.
func (t *turn) fromCompletion(ctx context.Context, completion *llm.Completion, updates domain.Updates) domain.AgentReply {
	choice := completion.FirstChoice()
	if choice == nil {
		return t.fallback(ctx, nil)
	}

	if len(choice.Message.ToolCalls) > 0 {
		reply := t.handleToolCalls(ctx, choice.Message.ToolCalls)
		if len(updates) > 0 {
			reply.ContextUpdates = domain.MergeUpdates(updates, reply.ContextUpdates)
		}

		return reply
	}

	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return t.fallback(ctx, nil)
	}

	return domain.AgentReply{Event: domain.EventSend, Data: text, ContextUpdates: updates}
}

type executedCall struct {
	call   llm.ToolCall
	output tools.Output
}

func (t *turn) handleToolCalls(ctx context.Context, calls []llm.ToolCall) domain.AgentReply {
	executed := make([]executedCall, 0, len(calls))
	collected := make([]domain.Updates, 0, len(calls))

	for _, call := range calls {
		if call.Name == "" {
			logger.Warn(ctx, "received tool call without a function", zap.String("callID", call.ID))

			continue
		}

		out, err := t.o.tools.Execute(ctx, call.Name, call.Arguments, t.state, t.language)
		if err != nil {
			t.o.recorder.ToolInvoked(ctx, call.Name, "")
			if errors.Is(err, tools.ErrUnknownTool) {
				logger.Warn(ctx, "unknown tool requested", zap.String("tool", call.Name))

				return domain.AgentReply{Event: domain.EventSend, Data: unknownToolText(t.language)}
			}

			logger.Error(ctx, "tool execution failed", zap.String("tool", call.Name), zap.Error(err))

			return t.fallback(ctx, err)
		}
		t.o.recorder.ToolInvoked(ctx, call.Name, string(out.Event))
		logger.Debug(ctx, "tool executed",
			zap.String("tool", call.Name),
			zap.String("event", string(out.Event)),
			zap.Bool("postProcess", out.PostProcess))

		executed = append(executed, executedCall{call: call, output: out})
		collected = append(collected, out.Updates)
		if len(out.Updates) > 0 {
			t.state.ApplyUpdates(out.Updates)
		}
	}

	if len(executed) == 0 {
		return t.fallback(ctx, nil)
	}

	updates := domain.MergeUpdates(collected...)
	for _, e := range executed {
		if e.output.Event != domain.EventSend {
			return domain.AgentReply{Event: e.output.Event, Data: e.output.Data, ContextUpdates: updates}
		}
	}

	assistant := llm.Message{Role: llm.RoleAssistant}
	var toolMessages []llm.Message
	for i, e := range executed {
		if !e.output.PostProcess {
			continue
		}
		id := e.call.ID
		if id == "" {
			id = fmt.Sprintf("tool_call_%d", i)
		}
		arguments := e.call.Arguments
		if arguments == "" {
			arguments = "{}"
		}
		assistant.ToolCalls = append(assistant.ToolCalls, llm.ToolCall{ID: id, Name: e.call.Name, Arguments: arguments})
		toolMessages = append(toolMessages, llm.Message{Role: llm.RoleTool, ToolCallID: id, Content: e.output.Data})
	}
	if len(toolMessages) > 0 {
		return t.completeWithToolOutputs(ctx, assistant, toolMessages, updates)
	}

	texts := make([]string, 0, len(executed))
	for _, e := range executed {
		if e.output.Data != "" {
			texts = append(texts, e.output.Data)
		}
	}

	return domain.AgentReply{Event: domain.EventSend, Data: strings.Join(texts, "\n\n"), ContextUpdates: updates}
}

// completeWithToolOutputs hands post processed tool results back to the model.
func (t *turn) completeWithToolOutputs(ctx context.Context,
	assistant llm.Message,
	toolMessages []llm.Message,
	updates domain.Updates) domain.AgentReply {
	messages := append(t.messages(), assistant)
	messages = append(messages, toolMessages...)

	completion, err := t.o.complete(ctx, llm.Request{Messages: messages})
	if err != nil {
		logger.Error(ctx, "post tool completion failed", zap.Error(err))

		return t.fallback(ctx, err)
	}

	return t.fromCompletion(ctx, completion, updates)
}

func (t *turn) fallback(ctx context.Context, err error) domain.AgentReply {
	t.fellBack = true
	if err != nil {
		logger.Warn(ctx, "replying with fallback", zap.Error(err))
	}

	return fallbackReply(t.language, err)
}

func fallbackReply(language string, err error) domain.AgentReply {
	reply := domain.AgentReply{Event: domain.EventSend, Data: fallbackTextUK}
	if tools.IsEnglish(language) {
		reply.Data = fallbackTextEN
	}
	if err != nil {
		reply.ContextUpdates = domain.Updates{
			domain.UpdateKeyMetadata: map[string]any{"last_error": errorType(err)},
		}
	}

	return reply
}

func unknownToolText(language string) string {
	if tools.IsEnglish(language) {
		return unknownToolTextEN
	}

	return unknownToolTextUK
}

// errorType names err by its semantic kind, or by the type of its root cause.
func errorType(err error) string {
	if kind := serrors.KindOf(err); kind != nil {
		return kind.Error()
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}

	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
