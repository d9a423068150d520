package whatsbygo

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/whatsbygo/whatsbygo/filters"
	"github.com/whatsbygo/whatsbygo/types"
)

// HandlerID identifies one registered handler for later removal.
type HandlerID int64

// Callback signatures per update kind. A returned error is logged and does
// not affect other updates of the same delivery.
type (
	MessageCallback           func(ctx context.Context, client *Client, m *types.Message) error
	CallbackButtonCallback    func(ctx context.Context, client *Client, b *types.CallbackButton) error
	CallbackSelectionCallback func(ctx context.Context, client *Client, s *types.CallbackSelection) error
	MessageStatusCallback     func(ctx context.Context, client *Client, s *types.MessageStatus) error
	TemplateStatusCallback    func(ctx context.Context, client *Client, s *types.TemplateStatus) error
	ChatOpenedCallback        func(ctx context.Context, client *Client, o *types.ChatOpened) error
	FlowCompletionCallback    func(ctx context.Context, client *Client, f *types.FlowCompletion) error
	RawCallback               func(ctx context.Context, client *Client, payload json.RawMessage) error
)

type binding[U any] struct {
	id       HandlerID
	filter   func(context.Context, U) bool
	callback func(context.Context, *Client, U) error
}

// bindings holds the per-kind handler lists in registration order.
type bindings struct {
	messages    []binding[*types.Message]
	buttons     []binding[*types.CallbackButton]
	selections  []binding[*types.CallbackSelection]
	statuses    []binding[*types.MessageStatus]
	templates   []binding[*types.TemplateStatus]
	chatOpens   []binding[*types.ChatOpened]
	completions []binding[*types.FlowCompletion]
	raw         []binding[json.RawMessage]
}

type registry struct {
	mu     sync.RWMutex
	nextID HandlerID
	bindings
}

// snapshot returns the current handler lists. Appends and removals build
// fresh slices, so a delivery dispatches against a consistent view even
// while handlers are added or removed concurrently.
func (r *registry) snapshot() bindings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bindings
}

func register[U any](r *registry, list *[]binding[U], filter func(context.Context, U) bool, cb func(context.Context, *Client, U) error) HandlerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	next := make([]binding[U], len(*list), len(*list)+1)
	copy(next, *list)
	*list = append(next, binding[U]{id: r.nextID, filter: filter, callback: cb})
	return r.nextID
}

func remove[U any](list *[]binding[U], id HandlerID) bool {
	for i, b := range *list {
		if b.id != id {
			continue
		}
		next := make([]binding[U], 0, len(*list)-1)
		next = append(next, (*list)[:i]...)
		next = append(next, (*list)[i+1:]...)
		*list = next
		return true
	}
	return false
}

// OnMessage registers a handler for inbound messages. A nil filter matches
// every message. Handlers are tried in registration order and the first
// whose filter accepts the update is the only one invoked.
func (c *Client) OnMessage(filter filters.MessageFilter, cb MessageCallback) HandlerID {
	var f func(context.Context, *types.Message) bool
	if filter != nil {
		f = filter
	}
	return register(&c.handlers, &c.handlers.messages, f, cb)
}

// OnCallbackButton registers a handler for button presses.
func (c *Client) OnCallbackButton(filter filters.CallbackFilter, cb CallbackButtonCallback) HandlerID {
	var f func(context.Context, *types.CallbackButton) bool
	if filter != nil {
		f = func(ctx context.Context, b *types.CallbackButton) bool { return filter(ctx, b) }
	}
	return register(&c.handlers, &c.handlers.buttons, f, cb)
}

// OnCallbackSelection registers a handler for list selections.
func (c *Client) OnCallbackSelection(filter filters.CallbackFilter, cb CallbackSelectionCallback) HandlerID {
	var f func(context.Context, *types.CallbackSelection) bool
	if filter != nil {
		f = func(ctx context.Context, s *types.CallbackSelection) bool { return filter(ctx, s) }
	}
	return register(&c.handlers, &c.handlers.selections, f, cb)
}

// OnMessageStatus registers a handler for delivery status updates.
func (c *Client) OnMessageStatus(filter filters.StatusFilter, cb MessageStatusCallback) HandlerID {
	var f func(context.Context, *types.MessageStatus) bool
	if filter != nil {
		f = filter
	}
	return register(&c.handlers, &c.handlers.statuses, f, cb)
}

// OnTemplateStatus registers a handler for template review events.
func (c *Client) OnTemplateStatus(filter filters.TemplateStatusFilter, cb TemplateStatusCallback) HandlerID {
	var f func(context.Context, *types.TemplateStatus) bool
	if filter != nil {
		f = filter
	}
	return register(&c.handlers, &c.handlers.templates, f, cb)
}

// OnChatOpened registers a handler for users opening a chat with the
// business.
func (c *Client) OnChatOpened(filter func(context.Context, *types.ChatOpened) bool, cb ChatOpenedCallback) HandlerID {
	return register(&c.handlers, &c.handlers.chatOpens, filter, cb)
}

// OnFlowCompletion registers a handler for completed WhatsApp Flows.
func (c *Client) OnFlowCompletion(filter func(context.Context, *types.FlowCompletion) bool, cb FlowCompletionCallback) HandlerID {
	return register(&c.handlers, &c.handlers.completions, filter, cb)
}

// OnRawUpdate registers a fallback handler. It receives the unparsed
// delivery body for updates that no typed handler matched, or that could
// not be parsed at all.
func (c *Client) OnRawUpdate(cb RawCallback) HandlerID {
	return register(&c.handlers, &c.handlers.raw, nil, cb)
}

// RemoveHandler unregisters the handler with the given ID.
func (c *Client) RemoveHandler(id HandlerID) error {
	c.handlers.mu.Lock()
	defer c.handlers.mu.Unlock()
	removed := remove(&c.handlers.messages, id) ||
		remove(&c.handlers.buttons, id) ||
		remove(&c.handlers.selections, id) ||
		remove(&c.handlers.statuses, id) ||
		remove(&c.handlers.templates, id) ||
		remove(&c.handlers.chatOpens, id) ||
		remove(&c.handlers.completions, id) ||
		remove(&c.handlers.raw, id)
	if !removed {
		return ErrHandlerNotFound
	}
	return nil
}

// Handler is a declarative handler registration, for bulk setup with
// AddHandlers.
type Handler interface {
	attach(c *Client) HandlerID
}

// MessageHandler pairs a message filter with its callback.
type MessageHandler struct {
	Filter   filters.MessageFilter
	Callback MessageCallback
}

func (h MessageHandler) attach(c *Client) HandlerID { return c.OnMessage(h.Filter, h.Callback) }

// CallbackButtonHandler pairs a callback filter with a button callback.
type CallbackButtonHandler struct {
	Filter   filters.CallbackFilter
	Callback CallbackButtonCallback
}

func (h CallbackButtonHandler) attach(c *Client) HandlerID {
	return c.OnCallbackButton(h.Filter, h.Callback)
}

// CallbackSelectionHandler pairs a callback filter with a selection
// callback.
type CallbackSelectionHandler struct {
	Filter   filters.CallbackFilter
	Callback CallbackSelectionCallback
}

func (h CallbackSelectionHandler) attach(c *Client) HandlerID {
	return c.OnCallbackSelection(h.Filter, h.Callback)
}

// MessageStatusHandler pairs a status filter with its callback.
type MessageStatusHandler struct {
	Filter   filters.StatusFilter
	Callback MessageStatusCallback
}

func (h MessageStatusHandler) attach(c *Client) HandlerID {
	return c.OnMessageStatus(h.Filter, h.Callback)
}

// TemplateStatusHandler pairs a template status filter with its callback.
type TemplateStatusHandler struct {
	Filter   filters.TemplateStatusFilter
	Callback TemplateStatusCallback
}

func (h TemplateStatusHandler) attach(c *Client) HandlerID {
	return c.OnTemplateStatus(h.Filter, h.Callback)
}

// ChatOpenedHandler registers a chat-opened callback.
type ChatOpenedHandler struct {
	Filter   func(context.Context, *types.ChatOpened) bool
	Callback ChatOpenedCallback
}

func (h ChatOpenedHandler) attach(c *Client) HandlerID {
	return c.OnChatOpened(h.Filter, h.Callback)
}

// FlowCompletionHandler registers a flow completion callback.
type FlowCompletionHandler struct {
	Filter   func(context.Context, *types.FlowCompletion) bool
	Callback FlowCompletionCallback
}

func (h FlowCompletionHandler) attach(c *Client) HandlerID {
	return c.OnFlowCompletion(h.Filter, h.Callback)
}

// RawHandler registers a fallback callback.
type RawHandler struct {
	Callback RawCallback
}

func (h RawHandler) attach(c *Client) HandlerID { return c.OnRawUpdate(h.Callback) }

// AddHandlers registers several handlers at once and returns their IDs in
// argument order.
func (c *Client) AddHandlers(handlers ...Handler) []HandlerID {
	ids := make([]HandlerID, len(handlers))
	for i, h := range handlers {
		ids[i] = h.attach(c)
	}
	return ids
}

// dispatch walks the bindings in registration order and invokes the first
// one whose filter accepts the update. It reports whether any binding ran.
func dispatch[U any](ctx context.Context, c *Client, list []binding[U], u U) bool {
	for _, b := range list {
		if !matches(ctx, c, b, u) {
			continue
		}
		invoke(ctx, c, b, u)
		return true
	}
	return false
}

func matches[U any](ctx context.Context, c *Client, b binding[U], u U) (ok bool) {
	if b.filter == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("filter panicked, treating as no match",
				"handler_id", b.id, "panic", r)
			ok = false
		}
	}()
	return b.filter(ctx, u)
}

func invoke[U any](ctx context.Context, c *Client, b binding[U], u U) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("handler panicked", "handler_id", b.id, "panic", r)
		}
	}()
	if err := b.callback(ctx, c, u); err != nil {
		c.logger.Error("handler failed", "handler_id", b.id, "error", err)
	}
}
