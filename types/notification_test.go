package types

import (
	"encoding/json"
	"testing"
	"time"
)

const messageDelivery = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "1234567890",
		"changes": [{
			"field": "messages",
			"value": {
				"messaging_product": "whatsapp",
				"metadata": {"display_phone_number": "15550001111", "phone_number_id": "111111"},
				"contacts": [{"wa_id": "49170000000", "profile": {"name": "Ada"}}],
				"messages": [{
					"from": "49170000000",
					"id": "wamid.abc",
					"timestamp": "1700000000",
					"type": "text",
					"text": {"body": "Hello"},
					"context": {"id": "wamid.parent", "forwarded": true}
				}]
			}
		}]
	}]
}`

func TestParseNotification(t *testing.T) {
	n, err := ParseNotification([]byte(messageDelivery))
	if err != nil {
		t.Fatalf("ParseNotification: %v", err)
	}
	if n.Object != "whatsapp_business_account" {
		t.Errorf("Object = %q", n.Object)
	}
	if len(n.Entry) != 1 || len(n.Entry[0].Changes) != 1 {
		t.Fatalf("unexpected envelope shape: %+v", n)
	}

	change := n.Entry[0].Changes[0]
	if change.Field != "messages" {
		t.Errorf("Field = %q", change.Field)
	}
	if got := change.Value.Metadata.PhoneNumberID; got != "111111" {
		t.Errorf("PhoneNumberID = %q", got)
	}
	if len(change.Value.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(change.Value.Messages))
	}

	wm := change.Value.Messages[0]
	if wm.Text == nil || wm.Text.Body != "Hello" {
		t.Errorf("Text = %+v", wm.Text)
	}
	if wm.Context == nil || !wm.Context.Forwarded || wm.Context.ID != "wamid.parent" {
		t.Errorf("Context = %+v", wm.Context)
	}
}

func TestParseNotificationMalformed(t *testing.T) {
	if _, err := ParseNotification([]byte("{not json")); err == nil {
		t.Fatal("expected an error for malformed body")
	}
}

func TestSenderName(t *testing.T) {
	v := &Value{Contacts: []NotificationContact{{WaID: "123"}}}
	v.Contacts[0].Profile.Name = "Ada"

	if got := v.SenderName("123"); got != "Ada" {
		t.Errorf("SenderName(123) = %q", got)
	}
	if got := v.SenderName("456"); got != "" {
		t.Errorf("SenderName(456) = %q, want empty", got)
	}
}

func TestNewMessage(t *testing.T) {
	n, err := ParseNotification([]byte(messageDelivery))
	if err != nil {
		t.Fatal(err)
	}
	v := &n.Entry[0].Changes[0].Value
	m := NewMessage(v, &v.Messages[0], json.RawMessage(messageDelivery))

	if m.Type != MessageTypeText {
		t.Errorf("Type = %v", m.Type)
	}
	if m.Text != "Hello" {
		t.Errorf("Text = %q", m.Text)
	}
	if m.From.Name != "Ada" {
		t.Errorf("From.Name = %q", m.From.Name)
	}
	if !m.Forwarded {
		t.Error("Forwarded = false")
	}
	if m.ReplyToMessageID != "wamid.parent" {
		t.Errorf("ReplyToMessageID = %q", m.ReplyToMessageID)
	}
	if want := time.Unix(1700000000, 0); !m.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", m.Timestamp, want)
	}
}

func TestNewMessageUnknownType(t *testing.T) {
	v := &Value{}
	m := NewMessage(v, &WebhookMessage{Type: "hologram", ID: "wamid.x"}, nil)
	if m.Type != MessageTypeUnsupported {
		t.Errorf("Type = %v, want unsupported", m.Type)
	}
}

func TestNewMessageStatusUnknownStatus(t *testing.T) {
	v := &Value{}
	s := NewMessageStatus(v, &WebhookStatus{ID: "wamid.x", Status: "teleported"}, nil)
	if s.Status != MessageStatusTypeFailed {
		t.Errorf("Status = %v, want failed", s.Status)
	}
}

func TestNewMessageStatusError(t *testing.T) {
	v := &Value{Errors: []Error{{Code: 1, Title: "value level"}}}
	ws := &WebhookStatus{
		ID:     "wamid.x",
		Status: "failed",
		Errors: []Error{{Code: 131026, Title: "undeliverable"}},
	}
	s := NewMessageStatus(v, ws, nil)
	if s.Error == nil || s.Error.Code != 131026 {
		t.Fatalf("Error = %+v, want the status level error", s.Error)
	}

	// Without status level errors the value level error is used.
	s = NewMessageStatus(v, &WebhookStatus{ID: "wamid.y", Status: "failed"}, nil)
	if s.Error == nil || s.Error.Code != 1 {
		t.Fatalf("Error = %+v, want the value level error", s.Error)
	}
}

func TestNewCallbackButton(t *testing.T) {
	v := &Value{}

	interactive := &WebhookMessage{
		From: "123", ID: "wamid.a", Timestamp: "1700000000", Type: "interactive",
		Interactive: &Interactive{
			Type:        "button_reply",
			ButtonReply: &InteractiveReply{ID: "data-1", Title: "Yes"},
		},
	}
	b := NewCallbackButton(v, interactive, nil)
	if b.Data != "data-1" || b.Title != "Yes" {
		t.Errorf("interactive press = %+v", b)
	}

	quickReply := &WebhookMessage{
		From: "123", ID: "wamid.b", Timestamp: "1700000000", Type: "button",
		Button: &ButtonReply{Payload: "data-2", Text: "No"},
	}
	b = NewCallbackButton(v, quickReply, nil)
	if b.Data != "data-2" || b.Title != "No" {
		t.Errorf("quick reply press = %+v", b)
	}
}

func TestNewFlowCompletion(t *testing.T) {
	v := &Value{}
	wm := &WebhookMessage{
		From: "123", ID: "wamid.f", Timestamp: "1700000000", Type: "interactive",
		Interactive: &Interactive{
			Type: "nfm_reply",
			NFMReply: &NFMReply{
				Body:         "Sent",
				ResponseJSON: `{"flow_token":"tok-1","answer":"42"}`,
			},
		},
	}
	f := NewFlowCompletion(v, wm, nil)
	if f.Token != "tok-1" {
		t.Errorf("Token = %q", f.Token)
	}
	if f.Response["answer"] != "42" {
		t.Errorf("Response = %+v", f.Response)
	}

	// An undecodable response payload leaves Response nil.
	wm.Interactive.NFMReply.ResponseJSON = "{broken"
	f = NewFlowCompletion(v, wm, nil)
	if f.Response != nil {
		t.Errorf("Response = %+v, want nil", f.Response)
	}
}

func TestNewTemplateStatus(t *testing.T) {
	entry := &Entry{ID: "waba-1", Time: 1700000000}
	v := &Value{
		Event:                   "APPROVED",
		MessageTemplateID:       42,
		MessageTemplateName:     "order_update",
		MessageTemplateLanguage: "en_US",
	}
	s := NewTemplateStatus(entry, v, nil)
	if s.Event != TemplateEventAPPROVED {
		t.Errorf("Event = %v", s.Event)
	}
	if s.ID != "42" {
		t.Errorf("ID = %q", s.ID)
	}
	if s.TemplateName != "order_update" {
		t.Errorf("TemplateName = %q", s.TemplateName)
	}
}
