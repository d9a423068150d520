package types

import (
	"encoding/json"
	"time"
)

// MessageStatus reports the delivery state of a previously sent message.
type MessageStatus struct {
	ID        string
	Metadata  Metadata
	Recipient User
	Timestamp time.Time
	Status    MessageStatusType

	Conversation *Conversation
	PricingModel string
	Error        *Error

	Raw json.RawMessage
}

// NewMessageStatus builds a MessageStatus update from one wire status of a
// delivery. Unknown status strings default to failed, matching platform
// behavior for undocumented values.
func NewMessageStatus(v *Value, ws *WebhookStatus, raw json.RawMessage) *MessageStatus {
	st, err := ParseMessageStatusType(ws.Status)
	if err != nil {
		st = MessageStatusTypeFailed
	}
	s := &MessageStatus{
		ID:           ws.ID,
		Metadata:     v.Metadata,
		Recipient:    User{WaID: ws.RecipientID},
		Timestamp:    parseTimestamp(ws.Timestamp),
		Status:       st,
		Conversation: ws.Conversation,
		Raw:          raw,
	}
	if ws.Pricing != nil {
		s.PricingModel = ws.Pricing.PricingModel
	}
	switch {
	case len(ws.Errors) > 0:
		s.Error = &ws.Errors[0]
	case len(v.Errors) > 0:
		s.Error = &v.Errors[0]
	}
	return s
}
