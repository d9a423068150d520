package types

import (
	"encoding/json"
	"strconv"
	"time"
)

// TemplateStatus reports a review event for a message template.
type TemplateStatus struct {
	ID           string
	Event        TemplateEvent
	TemplateName string
	Language     string
	Reason       string
	Timestamp    time.Time
	Raw          json.RawMessage
}

// NewTemplateStatus builds a TemplateStatus update from a
// message_template_status_update change.
func NewTemplateStatus(entry *Entry, v *Value, raw json.RawMessage) *TemplateStatus {
	event, err := ParseTemplateEvent(v.Event)
	if err != nil {
		event = TemplateEvent(v.Event)
	}
	return &TemplateStatus{
		ID:           strconv.FormatInt(v.MessageTemplateID, 10),
		Event:        event,
		TemplateName: v.MessageTemplateName,
		Language:     v.MessageTemplateLanguage,
		Reason:       v.Reason,
		Timestamp:    time.Unix(entry.Time, 0),
		Raw:          raw,
	}
}
