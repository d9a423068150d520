package filters

import (
	"context"

	"github.com/samber/lo"
	"github.com/whatsbygo/whatsbygo/types"
)

// StatusIs matches message statuses of any of the given states.
func StatusIs(sts ...types.MessageStatusType) StatusFilter {
	return func(_ context.Context, s *types.MessageStatus) bool {
		return lo.Contains(sts, s.Status)
	}
}

var (
	// StatusSent matches messages that were sent.
	StatusSent = StatusIs(types.MessageStatusTypeSent)
	// StatusDelivered matches messages that were delivered.
	StatusDelivered = StatusIs(types.MessageStatusTypeDelivered)
	// StatusRead matches messages that were read.
	StatusRead = StatusIs(types.MessageStatusTypeRead)
	// StatusFailed matches messages that failed to send.
	StatusFailed = StatusIs(types.MessageStatusTypeFailed)
)

// StatusFailedWith matches failed statuses carrying any of the given error
// codes.
func StatusFailedWith(codes ...int) StatusFilter {
	return func(_ context.Context, s *types.MessageStatus) bool {
		return s.Status == types.MessageStatusTypeFailed && s.Error != nil &&
			lo.Contains(codes, s.Error.Code)
	}
}

// TemplateEventIs matches template statuses with any of the given events.
func TemplateEventIs(events ...types.TemplateEvent) TemplateStatusFilter {
	return func(_ context.Context, s *types.TemplateStatus) bool {
		return lo.Contains(events, s.Event)
	}
}

// TemplateNameIs matches template statuses for any of the given template
// names.
func TemplateNameIs(names ...string) TemplateStatusFilter {
	return func(_ context.Context, s *types.TemplateStatus) bool {
		return lo.Contains(names, s.TemplateName)
	}
}
