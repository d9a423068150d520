package types

import (
	"encoding/json"
	"time"
)

// Message is one inbound message update, built from a delivery value.
// Immutable once constructed.
type Message struct {
	ID        string
	Metadata  Metadata
	From      User
	Timestamp time.Time
	Type      MessageType

	Text     string
	Image    *MediaObject
	Video    *MediaObject
	Audio    *MediaObject
	Document *MediaObject
	Sticker  *MediaObject
	Reaction *Reaction
	Location *Location
	Contacts []Contact
	Order    *Order

	Forwarded          bool
	ForwardedManyTimes bool
	ReplyToMessageID   string
	ReferredProduct    *ReferredProduct
	Error              *Error

	// Raw keeps the whole delivery body for fallback access.
	Raw json.RawMessage
}

// NewMessage builds a Message update from one wire message of a delivery.
func NewMessage(v *Value, wm *WebhookMessage, raw json.RawMessage) *Message {
	mt, err := ParseMessageType(wm.Type)
	if err != nil {
		mt = MessageTypeUnsupported
	}
	m := &Message{
		ID:        wm.ID,
		Metadata:  v.Metadata,
		From:      User{WaID: wm.From, Name: v.SenderName(wm.From)},
		Timestamp: parseTimestamp(wm.Timestamp),
		Type:      mt,
		Image:     wm.Image,
		Video:     wm.Video,
		Audio:     wm.Audio,
		Document:  wm.Document,
		Sticker:   wm.Sticker,
		Reaction:  wm.Reaction,
		Location:  wm.Location,
		Contacts:  wm.Contacts,
		Order:     wm.Order,
		Raw:       raw,
	}
	if wm.Text != nil {
		m.Text = wm.Text.Body
	}
	if ctx := wm.Context; ctx != nil {
		m.Forwarded = ctx.Forwarded || ctx.FrequentlyForwarded
		m.ForwardedManyTimes = ctx.FrequentlyForwarded
		m.ReplyToMessageID = ctx.ID
		m.ReferredProduct = ctx.ReferredProduct
	}
	if len(wm.Errors) > 0 {
		m.Error = &wm.Errors[0]
	}
	return m
}

// Media returns the attachment of a media message, or nil for other types.
func (m *Message) Media() *MediaObject {
	switch m.Type {
	case MessageTypeImage:
		return m.Image
	case MessageTypeVideo:
		return m.Video
	case MessageTypeAudio:
		return m.Audio
	case MessageTypeDocument:
		return m.Document
	case MessageTypeSticker:
		return m.Sticker
	}
	return nil
}

// HasMedia reports whether the message carries a media attachment.
func (m *Message) HasMedia() bool {
	return m.Media() != nil
}

// Caption returns the attachment caption, or "" when there is none.
func (m *Message) Caption() string {
	if media := m.Media(); media != nil {
		return media.Caption
	}
	return ""
}

// Sender is a shortcut for the wa_id of the sending user.
func (m *Message) Sender() string {
	return m.From.WaID
}
