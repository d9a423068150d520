//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package types

// MessageType represents the type of an inbound message
// ENUM(text,image,video,audio,document,sticker,reaction,location,contacts,order,interactive,button,request_welcome,system,unsupported)
type MessageType string

// MessageStatusType represents the delivery state of a sent message
// ENUM(sent,delivered,read,failed)
type MessageStatusType string

// TemplateEvent represents a template review event
// ENUM(APPROVED,REJECTED,DISABLED,PAUSED,PENDING_DELETION)
type TemplateEvent string
