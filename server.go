package whatsbygo

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/whatsbygo/whatsbygo/types"
)

const signaturePrefix = "sha256="

// ValidateSignature reports whether header is a valid X-Hub-Signature-256
// value for body under the given app secret. The comparison is constant
// time.
func ValidateSignature(body []byte, header, appSecret string) bool {
	sig, ok := strings.CutPrefix(header, signaturePrefix)
	if !ok {
		return false
	}
	got, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}

// WebhookHandler returns the http.Handler that terminates Cloud API webhook
// traffic. GET requests answer the platform's subscription verification
// handshake; POST requests carry update deliveries, which are verified,
// parsed and dispatched synchronously before the 200 response.
func (c *Client) WebhookHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			c.handleVerification(w, r)
		case http.MethodPost:
			c.handleDelivery(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func (c *Client) handleVerification(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") != "subscribe" || c.verifyToken == "" || q.Get("hub.verify_token") != c.verifyToken {
		c.logger.Warn("rejected webhook verification request",
			"mode", q.Get("hub.mode"))
		http.Error(w, "verify token mismatch", http.StatusForbidden)
		return
	}
	io.WriteString(w, q.Get("hub.challenge"))
}

func (c *Client) handleDelivery(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "unreadable body", http.StatusBadRequest)
		return
	}
	if c.appSecret != "" && !ValidateSignature(body, r.Header.Get("X-Hub-Signature-256"), c.appSecret) {
		c.logger.Warn("rejected delivery with invalid signature")
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	c.dispatchDelivery(r.Context(), body)
	io.WriteString(w, "ok")
}

// dispatchDelivery routes every update of one delivery body to its
// handlers, preserving payload order. Dispatch never fails: malformed or
// unmatched payloads fall back to raw handlers.
func (c *Client) dispatchDelivery(ctx context.Context, body []byte) {
	ctx = context.WithValue(ctx, clientContextKey{}, c)
	snap := c.handlers.snapshot()
	raw := json.RawMessage(body)

	n, err := types.ParseNotification(body)
	if err != nil || len(n.Entry) == 0 {
		c.fallbackRaw(ctx, snap, raw, "undecodable delivery")
		return
	}

	for ei := range n.Entry {
		entry := &n.Entry[ei]
		for ci := range entry.Changes {
			change := &entry.Changes[ci]
			v := &change.Value
			switch change.Field {
			case "messages":
				if c.filterUpdates && v.Metadata.PhoneNumberID != c.api.PhoneID() {
					c.logger.Debug("skipping delivery for foreign phone number",
						"phone_number_id", v.Metadata.PhoneNumberID)
					continue
				}
				for mi := range v.Messages {
					c.routeMessage(ctx, snap, v, &v.Messages[mi], raw)
				}
				for si := range v.Statuses {
					st := types.NewMessageStatus(v, &v.Statuses[si], raw)
					if !dispatch(ctx, c, snap.statuses, st) {
						c.fallbackRaw(ctx, snap, raw, "unmatched message status")
					}
				}
			case "message_template_status_update":
				ts := types.NewTemplateStatus(entry, v, raw)
				if !dispatch(ctx, c, snap.templates, ts) {
					c.fallbackRaw(ctx, snap, raw, "unmatched template status")
				}
			default:
				c.fallbackRaw(ctx, snap, raw, "unknown change field "+change.Field)
			}
		}
	}
}

// routeMessage maps one wire message to its update kind. Interactive
// replies become button, selection or flow completion updates; template
// quick replies become button updates; request_welcome becomes a chat
// opened update; everything else, unknown types included, becomes a
// Message.
func (c *Client) routeMessage(ctx context.Context, snap bindings, v *types.Value, wm *types.WebhookMessage, raw json.RawMessage) {
	mt, err := types.ParseMessageType(wm.Type)
	if err != nil {
		mt = types.MessageTypeUnsupported
	}

	var handled bool
	switch {
	case mt == types.MessageTypeInteractive && wm.Interactive != nil && wm.Interactive.ButtonReply != nil:
		handled = dispatch(ctx, c, snap.buttons, types.NewCallbackButton(v, wm, raw))
	case mt == types.MessageTypeInteractive && wm.Interactive != nil && wm.Interactive.ListReply != nil:
		handled = dispatch(ctx, c, snap.selections, types.NewCallbackSelection(v, wm, raw))
	case mt == types.MessageTypeInteractive && wm.Interactive != nil && wm.Interactive.NFMReply != nil:
		handled = dispatch(ctx, c, snap.completions, types.NewFlowCompletion(v, wm, raw))
	case mt == types.MessageTypeButton:
		handled = dispatch(ctx, c, snap.buttons, types.NewCallbackButton(v, wm, raw))
	case mt == types.MessageTypeRequestWelcome:
		handled = dispatch(ctx, c, snap.chatOpens, types.NewChatOpened(v, wm, raw))
	default:
		handled = dispatch(ctx, c, snap.messages, types.NewMessage(v, wm, raw))
	}
	if !handled {
		c.fallbackRaw(ctx, snap, raw, "unmatched "+wm.Type+" update")
	}
}

func (c *Client) fallbackRaw(ctx context.Context, snap bindings, raw json.RawMessage, reason string) {
	if dispatch(ctx, c, snap.raw, raw) {
		return
	}
	if c.logUnmatched {
		c.logger.Debug("dropping unhandled webhook update", "reason", reason)
	}
}
