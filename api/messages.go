package api

import (
	"context"
	"net/http"

	"github.com/whatsbygo/whatsbygo/types"
)

const messagingProduct = "whatsapp"

// SendMessageResponse is the Graph response to a send-message request.
type SendMessageResponse struct {
	MessagingProduct string `json:"messaging_product"`
	Contacts         []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// MessageID returns the ID of the first sent message, or "".
func (r *SendMessageResponse) MessageID() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].ID
}

// MediaSource references a media asset either by uploaded ID or by URL.
// Exactly one field should be set.
type MediaSource struct {
	ID   string `json:"id,omitempty"`
	Link string `json:"link,omitempty"`
}

type textPayload struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url,omitempty"`
}

type mediaPayload struct {
	MediaSource
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type reactionPayload struct {
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji"`
}

type locationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

type contextPayload struct {
	MessageID string `json:"message_id"`
}

type templatePayload struct {
	Name       string `json:"name"`
	Language   struct {
		Code string `json:"code"`
	} `json:"language"`
	Components any `json:"components,omitempty"`
}

type messageRequest struct {
	MessagingProduct string           `json:"messaging_product"`
	RecipientType    string           `json:"recipient_type,omitempty"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             *textPayload     `json:"text,omitempty"`
	Image            *mediaPayload    `json:"image,omitempty"`
	Video            *mediaPayload    `json:"video,omitempty"`
	Audio            *mediaPayload    `json:"audio,omitempty"`
	Document         *mediaPayload    `json:"document,omitempty"`
	Sticker          *mediaPayload    `json:"sticker,omitempty"`
	Reaction         *reactionPayload `json:"reaction,omitempty"`
	Location         *locationPayload `json:"location,omitempty"`
	Contacts         []types.Contact  `json:"contacts,omitempty"`
	Interactive      *Interactive     `json:"interactive,omitempty"`
	Template         *templatePayload `json:"template,omitempty"`
	Context          *contextPayload  `json:"context,omitempty"`
}

// Interactive is an outbound interactive message (reply buttons, a section
// list, or a flow button).
type Interactive struct {
	Type   string             `json:"type"`
	Header *InteractiveHeader `json:"header,omitempty"`
	Body   *InteractiveText   `json:"body,omitempty"`
	Footer *InteractiveText   `json:"footer,omitempty"`
	Action *InteractiveAction `json:"action,omitempty"`
}

// InteractiveText is a plain-text block of an interactive message.
type InteractiveText struct {
	Text string `json:"text"`
}

// InteractiveHeader is the optional header block of an interactive message.
type InteractiveHeader struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// InteractiveAction carries the buttons, sections or flow parameters of an
// interactive message.
type InteractiveAction struct {
	Buttons    []InteractiveButton `json:"buttons,omitempty"`
	Button     string              `json:"button,omitempty"`
	Sections   []Section           `json:"sections,omitempty"`
	Name       string              `json:"name,omitempty"`
	Parameters map[string]any      `json:"parameters,omitempty"`
}

// InteractiveButton is one reply button.
type InteractiveButton struct {
	Type  string `json:"type"`
	Reply struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"reply"`
}

// NewReplyButton builds a reply button with callback data and a title.
func NewReplyButton(data, title string) InteractiveButton {
	b := InteractiveButton{Type: "reply"}
	b.Reply.ID = data
	b.Reply.Title = title
	return b
}

// Section is one section of an interactive list.
type Section struct {
	Title string       `json:"title,omitempty"`
	Rows  []SectionRow `json:"rows"`
}

// SectionRow is one selectable row of a list section.
type SectionRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func (a *CloudAPI) sendMessage(ctx context.Context, req *messageRequest) (*SendMessageResponse, error) {
	req.MessagingProduct = messagingProduct
	req.RecipientType = "individual"
	var out SendMessageResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(a.phoneID, "messages"), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendTextMessage sends a text message. replyTo quotes an earlier message
// when non-empty.
func (a *CloudAPI) SendTextMessage(ctx context.Context, to, body string, previewURL bool, replyTo string) (*SendMessageResponse, error) {
	req := &messageRequest{
		To:   to,
		Type: "text",
		Text: &textPayload{Body: body, PreviewURL: previewURL},
	}
	if replyTo != "" {
		req.Context = &contextPayload{MessageID: replyTo}
	}
	return a.sendMessage(ctx, req)
}

// SendMedia sends an image, video, audio, document or sticker message.
// mediaType is one of the media message type strings.
func (a *CloudAPI) SendMedia(ctx context.Context, to, mediaType string, source MediaSource, caption, filename, replyTo string) (*SendMessageResponse, error) {
	payload := &mediaPayload{MediaSource: source, Caption: caption, Filename: filename}
	req := &messageRequest{To: to, Type: mediaType}
	switch mediaType {
	case "image":
		req.Image = payload
	case "video":
		req.Video = payload
	case "audio":
		req.Audio = payload
	case "document":
		req.Document = payload
	case "sticker":
		req.Sticker = payload
	default:
		return nil, &Error{Code: 100, Type: "invalid_parameter", Message: "unsupported media type: " + mediaType}
	}
	if replyTo != "" {
		req.Context = &contextPayload{MessageID: replyTo}
	}
	return a.sendMessage(ctx, req)
}

// SendReaction reacts to a message. An empty emoji removes the reaction.
func (a *CloudAPI) SendReaction(ctx context.Context, to, messageID, emoji string) (*SendMessageResponse, error) {
	return a.sendMessage(ctx, &messageRequest{
		To:       to,
		Type:     "reaction",
		Reaction: &reactionPayload{MessageID: messageID, Emoji: emoji},
	})
}

// SendLocation sends a location message.
func (a *CloudAPI) SendLocation(ctx context.Context, to string, lat, lon float64, name, address string) (*SendMessageResponse, error) {
	return a.sendMessage(ctx, &messageRequest{
		To:       to,
		Type:     "location",
		Location: &locationPayload{Latitude: lat, Longitude: lon, Name: name, Address: address},
	})
}

// SendContacts sends one or more contact cards.
func (a *CloudAPI) SendContacts(ctx context.Context, to string, contacts []types.Contact) (*SendMessageResponse, error) {
	return a.sendMessage(ctx, &messageRequest{
		To:       to,
		Type:     "contacts",
		Contacts: contacts,
	})
}

// SendInteractive sends an interactive message (buttons, list or flow).
func (a *CloudAPI) SendInteractive(ctx context.Context, to string, interactive *Interactive, replyTo string) (*SendMessageResponse, error) {
	req := &messageRequest{
		To:          to,
		Type:        "interactive",
		Interactive: interactive,
	}
	if replyTo != "" {
		req.Context = &contextPayload{MessageID: replyTo}
	}
	return a.sendMessage(ctx, req)
}

// SendTemplate sends a pre-approved template message.
func (a *CloudAPI) SendTemplate(ctx context.Context, to, name, languageCode string, components any) (*SendMessageResponse, error) {
	tpl := &templatePayload{Name: name, Components: components}
	tpl.Language.Code = languageCode
	return a.sendMessage(ctx, &messageRequest{
		To:       to,
		Type:     "template",
		Template: tpl,
	})
}

// MarkMessageAsRead marks an inbound message as read (blue ticks).
func (a *CloudAPI) MarkMessageAsRead(ctx context.Context, messageID string) (*SuccessResponse, error) {
	body := map[string]any{
		"messaging_product": messagingProduct,
		"status":            "read",
		"message_id":        messageID,
	}
	var out SuccessResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(a.phoneID, "messages"), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
