package types

import (
	"encoding/json"
	"strconv"
	"time"
)

// Notification is the top-level webhook delivery envelope. One delivery may
// carry several entries, each with several changes, and each change value may
// carry a batch of messages or statuses.
type Notification struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry represents one WhatsApp Business Account entry in a delivery.
type Entry struct {
	ID      string   `json:"id"`
	Time    int64    `json:"time,omitempty"`
	Changes []Change `json:"changes"`
}

// Change wraps a single change notification with its subscribed field name.
type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

// Value holds the payload of a change. Which of the optional slices is
// populated depends on the change field.
type Value struct {
	MessagingProduct string                `json:"messaging_product,omitempty"`
	Metadata         Metadata              `json:"metadata,omitempty"`
	Contacts         []NotificationContact `json:"contacts,omitempty"`
	Messages         []WebhookMessage      `json:"messages,omitempty"`
	Statuses         []WebhookStatus       `json:"statuses,omitempty"`
	Errors           []Error               `json:"errors,omitempty"`

	// message_template_status_update fields
	Event                   string `json:"event,omitempty"`
	MessageTemplateID       int64  `json:"message_template_id,omitempty"`
	MessageTemplateName     string `json:"message_template_name,omitempty"`
	MessageTemplateLanguage string `json:"message_template_language,omitempty"`
	Reason                  string `json:"reason,omitempty"`
}

// NotificationContact carries the sender profile attached to a delivery.
type NotificationContact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

// WebhookMessage is the wire shape of one inbound message inside a delivery.
type WebhookMessage struct {
	From        string          `json:"from"`
	ID          string          `json:"id"`
	Timestamp   string          `json:"timestamp"`
	Type        string          `json:"type"`
	Text        *Text           `json:"text,omitempty"`
	Image       *MediaObject    `json:"image,omitempty"`
	Video       *MediaObject    `json:"video,omitempty"`
	Audio       *MediaObject    `json:"audio,omitempty"`
	Document    *MediaObject    `json:"document,omitempty"`
	Sticker     *MediaObject    `json:"sticker,omitempty"`
	Reaction    *Reaction       `json:"reaction,omitempty"`
	Location    *Location       `json:"location,omitempty"`
	Contacts    []Contact       `json:"contacts,omitempty"`
	Order       *Order          `json:"order,omitempty"`
	Context     *MessageContext `json:"context,omitempty"`
	Interactive *Interactive    `json:"interactive,omitempty"`
	Button      *ButtonReply    `json:"button,omitempty"`
	Errors      []Error         `json:"errors,omitempty"`
}

// WebhookStatus is the wire shape of one message status inside a delivery.
type WebhookStatus struct {
	ID           string        `json:"id"`
	Status       string        `json:"status"`
	Timestamp    string        `json:"timestamp"`
	RecipientID  string        `json:"recipient_id"`
	Conversation *Conversation `json:"conversation,omitempty"`
	Pricing      *Pricing      `json:"pricing,omitempty"`
	Errors       []Error       `json:"errors,omitempty"`
}

// Text holds a text message body.
type Text struct {
	Body string `json:"body"`
}

// MessageContext describes forwarding and reply information.
type MessageContext struct {
	From                string           `json:"from,omitempty"`
	ID                  string           `json:"id,omitempty"`
	Forwarded           bool             `json:"forwarded,omitempty"`
	FrequentlyForwarded bool             `json:"frequently_forwarded,omitempty"`
	ReferredProduct     *ReferredProduct `json:"referred_product,omitempty"`
}

// ReferredProduct identifies the catalog item a user is asking about.
type ReferredProduct struct {
	CatalogID         string `json:"catalog_id"`
	ProductRetailerID string `json:"product_retailer_id"`
}

// Interactive is the wire shape of an interactive message reply.
type Interactive struct {
	Type        string            `json:"type"`
	ButtonReply *InteractiveReply `json:"button_reply,omitempty"`
	ListReply   *InteractiveReply `json:"list_reply,omitempty"`
	NFMReply    *NFMReply         `json:"nfm_reply,omitempty"`
}

// InteractiveReply is a pressed button or a selected list row.
type InteractiveReply struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// NFMReply is the completion payload of a WhatsApp Flow.
type NFMReply struct {
	Name         string `json:"name"`
	Body         string `json:"body"`
	ResponseJSON string `json:"response_json"`
}

// ButtonReply is a template quick-reply button press.
type ButtonReply struct {
	Payload string `json:"payload"`
	Text    string `json:"text"`
}

// ParseNotification decodes a raw delivery body into the envelope.
func ParseNotification(body []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// SenderName resolves the profile name for a wa_id from the delivery
// contacts, or "" when the delivery carries no profile for it.
func (v *Value) SenderName(waID string) string {
	for _, c := range v.Contacts {
		if c.WaID == waID {
			return c.Profile.Name
		}
	}
	return ""
}

func parseTimestamp(s string) time.Time {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
