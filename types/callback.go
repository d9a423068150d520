package types

import (
	"encoding/json"
	"time"
)

// Callback is the capability shared by button presses and list selections,
// letting one filter work over both.
type Callback interface {
	CallbackData() string
}

// CallbackButton is a press of an interactive reply button or a template
// quick-reply button.
type CallbackButton struct {
	ID        string
	Metadata  Metadata
	From      User
	Timestamp time.Time
	Data      string
	Title     string
	Raw       json.RawMessage
}

// NewCallbackButton builds a CallbackButton from an interactive button_reply
// or a template quick-reply press.
func NewCallbackButton(v *Value, wm *WebhookMessage, raw json.RawMessage) *CallbackButton {
	c := &CallbackButton{
		ID:        wm.ID,
		Metadata:  v.Metadata,
		From:      User{WaID: wm.From, Name: v.SenderName(wm.From)},
		Timestamp: parseTimestamp(wm.Timestamp),
		Raw:       raw,
	}
	switch {
	case wm.Interactive != nil && wm.Interactive.ButtonReply != nil:
		c.Data = wm.Interactive.ButtonReply.ID
		c.Title = wm.Interactive.ButtonReply.Title
	case wm.Button != nil:
		c.Data = wm.Button.Payload
		c.Title = wm.Button.Text
	}
	return c
}

// CallbackData implements Callback.
func (c *CallbackButton) CallbackData() string {
	return c.Data
}

// CallbackSelection is a selection from an interactive section list.
type CallbackSelection struct {
	ID          string
	Metadata    Metadata
	From        User
	Timestamp   time.Time
	Data        string
	Title       string
	Description string
	Raw         json.RawMessage
}

// NewCallbackSelection builds a CallbackSelection from an interactive
// list_reply.
func NewCallbackSelection(v *Value, wm *WebhookMessage, raw json.RawMessage) *CallbackSelection {
	c := &CallbackSelection{
		ID:        wm.ID,
		Metadata:  v.Metadata,
		From:      User{WaID: wm.From, Name: v.SenderName(wm.From)},
		Timestamp: parseTimestamp(wm.Timestamp),
		Raw:       raw,
	}
	if wm.Interactive != nil && wm.Interactive.ListReply != nil {
		c.Data = wm.Interactive.ListReply.ID
		c.Title = wm.Interactive.ListReply.Title
		c.Description = wm.Interactive.ListReply.Description
	}
	return c
}

// CallbackData implements Callback.
func (c *CallbackSelection) CallbackData() string {
	return c.Data
}

// ChatOpened signals that a user opened a chat with the business for the
// first time (or after clearing it).
type ChatOpened struct {
	ID        string
	Metadata  Metadata
	From      User
	Timestamp time.Time
	Raw       json.RawMessage
}

// NewChatOpened builds a ChatOpened update from a request_welcome message.
func NewChatOpened(v *Value, wm *WebhookMessage, raw json.RawMessage) *ChatOpened {
	return &ChatOpened{
		ID:        wm.ID,
		Metadata:  v.Metadata,
		From:      User{WaID: wm.From, Name: v.SenderName(wm.From)},
		Timestamp: parseTimestamp(wm.Timestamp),
		Raw:       raw,
	}
}

// FlowCompletion carries the final screen payload of a completed WhatsApp
// Flow (an interactive nfm_reply).
type FlowCompletion struct {
	ID        string
	Metadata  Metadata
	From      User
	Timestamp time.Time
	Body      string
	Token     string
	Response  map[string]any
	Raw       json.RawMessage
}

// NewFlowCompletion builds a FlowCompletion from an interactive nfm_reply.
// The response_json is decoded leniently: an undecodable response leaves
// Response nil rather than failing the update.
func NewFlowCompletion(v *Value, wm *WebhookMessage, raw json.RawMessage) *FlowCompletion {
	f := &FlowCompletion{
		ID:        wm.ID,
		Metadata:  v.Metadata,
		From:      User{WaID: wm.From, Name: v.SenderName(wm.From)},
		Timestamp: parseTimestamp(wm.Timestamp),
		Raw:       raw,
	}
	if wm.Interactive != nil && wm.Interactive.NFMReply != nil {
		f.Body = wm.Interactive.NFMReply.Body
		var resp map[string]any
		if err := json.Unmarshal([]byte(wm.Interactive.NFMReply.ResponseJSON), &resp); err == nil {
			f.Response = resp
			if token, ok := resp["flow_token"].(string); ok {
				f.Token = token
			}
		}
	}
	return f
}
