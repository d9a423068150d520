package whatsbygo

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/whatsbygo/whatsbygo/types"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

func postDelivery(t *testing.T, c *Client, body, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	if signature != "" {
		req.Header.Set("X-Hub-Signature-256", signature)
	}
	rec := httptest.NewRecorder()
	c.WebhookHandler().ServeHTTP(rec, req)
	return rec
}

const textDelivery = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "waba-1",
		"changes": [{
			"field": "messages",
			"value": {
				"messaging_product": "whatsapp",
				"metadata": {"phone_number_id": "111111"},
				"contacts": [{"wa_id": "49170000000", "profile": {"name": "Ada"}}],
				"messages": [
					{"from": "49170000000", "id": "wamid.1", "timestamp": "1700000000", "type": "text", "text": {"body": "one"}},
					{"from": "49170000000", "id": "wamid.2", "timestamp": "1700000001", "type": "text", "text": {"body": "two"}}
				]
			}
		}]
	}]
}`

const buttonDelivery = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "waba-1",
		"changes": [{
			"field": "messages",
			"value": {
				"metadata": {"phone_number_id": "111111"},
				"messages": [{
					"from": "49170000000", "id": "wamid.3", "timestamp": "1700000002",
					"type": "interactive",
					"interactive": {"type": "button_reply", "button_reply": {"id": "confirm", "title": "Confirm"}}
				}]
			}
		}]
	}]
}`

const statusDelivery = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "waba-1",
		"changes": [{
			"field": "messages",
			"value": {
				"metadata": {"phone_number_id": "111111"},
				"statuses": [{"id": "wamid.9", "status": "delivered", "timestamp": "1700000003", "recipient_id": "49170000000"}]
			}
		}]
	}]
}`

const templateDelivery = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "waba-1",
		"time": 1700000004,
		"changes": [{
			"field": "message_template_status_update",
			"value": {"event": "APPROVED", "message_template_id": 42, "message_template_name": "order_update", "message_template_language": "en_US"}
		}]
	}]
}`

func TestWebhookVerification(t *testing.T) {
	c := newTestClient(t, WithVerifyToken("secret-token"))

	cases := []struct {
		name      string
		query     url.Values
		status    int
		challenge string
	}{
		{
			name: "valid",
			query: url.Values{
				"hub.mode":         {"subscribe"},
				"hub.verify_token": {"secret-token"},
				"hub.challenge":    {"12345"},
			},
			status:    http.StatusOK,
			challenge: "12345",
		},
		{
			name: "wrong token",
			query: url.Values{
				"hub.mode":         {"subscribe"},
				"hub.verify_token": {"wrong"},
				"hub.challenge":    {"12345"},
			},
			status: http.StatusForbidden,
		},
		{
			name: "wrong mode",
			query: url.Values{
				"hub.mode":         {"unsubscribe"},
				"hub.verify_token": {"secret-token"},
				"hub.challenge":    {"12345"},
			},
			status: http.StatusForbidden,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/webhook?"+tc.query.Encode(), nil)
			rec := httptest.NewRecorder()
			c.WebhookHandler().ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.challenge != "" {
				if body, _ := io.ReadAll(rec.Body); string(body) != tc.challenge {
					t.Fatalf("body = %q, want the challenge echoed", body)
				}
			}
		})
	}
}

func TestWebhookVerificationWithoutToken(t *testing.T) {
	c := newTestClient(t)
	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=&hub.challenge=1", nil)
	rec := httptest.NewRecorder()
	c.WebhookHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 when no verify token is configured", rec.Code)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	c := newTestClient(t, WithAppSecret("app-secret"))
	var called bool
	c.OnMessage(nil, func(context.Context, *Client, *types.Message) error {
		called = true
		return nil
	})

	cases := map[string]string{
		"missing":      "",
		"wrong secret": sign([]byte(textDelivery), "other-secret"),
		"no prefix":    "deadbeef",
		"not hex":      signaturePrefix + "zzzz",
	}
	for name, sig := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postDelivery(t, c, textDelivery, sig)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
	if called {
		t.Fatal("a handler ran for an unverified delivery")
	}
}

func TestWebhookAcceptsValidSignature(t *testing.T) {
	c := newTestClient(t, WithAppSecret("app-secret"))
	var bodies []string
	c.OnMessage(nil, func(_ context.Context, _ *Client, m *types.Message) error {
		bodies = append(bodies, m.Text)
		return nil
	})

	rec := postDelivery(t, c, textDelivery, sign([]byte(textDelivery), "app-secret"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// Both messages of the batch are dispatched, in payload order.
	if len(bodies) != 2 || bodies[0] != "one" || bodies[1] != "two" {
		t.Fatalf("bodies = %v", bodies)
	}
}

func TestWebhookRelaxedModeWithoutSecret(t *testing.T) {
	c := newTestClient(t)
	var called bool
	c.OnMessage(nil, func(context.Context, *Client, *types.Message) error {
		called = true
		return nil
	})

	rec := postDelivery(t, c, textDelivery, "")
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("status = %d, called = %v", rec.Code, called)
	}
}

func TestWebhookRoutesButtonPress(t *testing.T) {
	c := newTestClient(t)
	var pressed *types.CallbackButton
	c.OnMessage(nil, func(context.Context, *Client, *types.Message) error {
		t.Fatal("button press was routed to the message handlers")
		return nil
	})
	c.OnCallbackButton(nil, func(_ context.Context, _ *Client, b *types.CallbackButton) error {
		pressed = b
		return nil
	})

	postDelivery(t, c, buttonDelivery, "")
	if pressed == nil || pressed.Data != "confirm" || pressed.Title != "Confirm" {
		t.Fatalf("pressed = %+v", pressed)
	}
}

func TestWebhookRoutesChatOpenedAndFlowCompletion(t *testing.T) {
	const delivery = `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "waba-1",
			"changes": [{
				"field": "messages",
				"value": {
					"metadata": {"phone_number_id": "111111"},
					"messages": [
						{"from": "49170000000", "id": "wamid.4", "timestamp": "1700000005", "type": "request_welcome"},
						{"from": "49170000000", "id": "wamid.5", "timestamp": "1700000006", "type": "interactive",
						 "interactive": {"type": "nfm_reply", "nfm_reply": {"body": "Sent", "response_json": "{\"flow_token\":\"tok-1\"}"}}}
					]
				}
			}]
		}]
	}`

	c := newTestClient(t)
	var opened *types.ChatOpened
	var completed *types.FlowCompletion
	c.OnChatOpened(nil, func(_ context.Context, _ *Client, o *types.ChatOpened) error {
		opened = o
		return nil
	})
	c.OnFlowCompletion(nil, func(_ context.Context, _ *Client, f *types.FlowCompletion) error {
		completed = f
		return nil
	})

	postDelivery(t, c, delivery, "")
	if opened == nil || opened.From.WaID != "49170000000" {
		t.Fatalf("opened = %+v", opened)
	}
	if completed == nil || completed.Token != "tok-1" {
		t.Fatalf("completed = %+v", completed)
	}
}

func TestWebhookRoutesStatus(t *testing.T) {
	c := newTestClient(t)
	var got *types.MessageStatus
	c.OnMessageStatus(nil, func(_ context.Context, _ *Client, s *types.MessageStatus) error {
		got = s
		return nil
	})

	postDelivery(t, c, statusDelivery, "")
	if got == nil || got.Status != types.MessageStatusTypeDelivered || got.Recipient.WaID != "49170000000" {
		t.Fatalf("status = %+v", got)
	}
}

func TestWebhookRoutesTemplateStatus(t *testing.T) {
	c := newTestClient(t)
	var got *types.TemplateStatus
	c.OnTemplateStatus(nil, func(_ context.Context, _ *Client, s *types.TemplateStatus) error {
		got = s
		return nil
	})

	postDelivery(t, c, templateDelivery, "")
	if got == nil || got.Event != types.TemplateEventAPPROVED || got.TemplateName != "order_update" {
		t.Fatalf("template status = %+v", got)
	}
}

func TestWebhookMalformedFallsBackToRaw(t *testing.T) {
	c := newTestClient(t)
	var raw json.RawMessage
	c.OnRawUpdate(func(_ context.Context, _ *Client, payload json.RawMessage) error {
		raw = payload
		return nil
	})

	rec := postDelivery(t, c, "{not json", "")
	// Parsing problems never fail the delivery response.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if string(raw) != "{not json" {
		t.Fatalf("raw = %q", raw)
	}
}

func TestWebhookUnmatchedFallsBackToRaw(t *testing.T) {
	c := newTestClient(t)
	c.OnMessage(func(context.Context, *types.Message) bool { return false },
		func(context.Context, *Client, *types.Message) error { return nil })

	var rawCalls int
	c.OnRawUpdate(func(context.Context, *Client, json.RawMessage) error {
		rawCalls++
		return nil
	})

	postDelivery(t, c, textDelivery, "")
	// One fallback per unmatched update in the batch.
	if rawCalls != 2 {
		t.Fatalf("rawCalls = %d", rawCalls)
	}
}

func TestWebhookFiltersForeignPhoneNumber(t *testing.T) {
	delivery := strings.ReplaceAll(textDelivery, `"111111"`, `"222222"`)

	c := newTestClient(t)
	c.OnMessage(nil, func(context.Context, *Client, *types.Message) error {
		t.Fatal("handled a delivery for another phone number")
		return nil
	})
	postDelivery(t, c, delivery, "")

	// With filtering disabled the same delivery is dispatched.
	c = newTestClient(t, WithUpdateFiltering(false))
	var called int
	c.OnMessage(nil, func(context.Context, *Client, *types.Message) error {
		called++
		return nil
	})
	postDelivery(t, c, delivery, "")
	if called != 2 {
		t.Fatalf("called = %d with filtering disabled", called)
	}
}

func TestWebhookHandlerErrorDoesNotBreakBatch(t *testing.T) {
	c := newTestClient(t)
	var seen []string
	c.OnMessage(nil, func(_ context.Context, _ *Client, m *types.Message) error {
		seen = append(seen, m.Text)
		if m.Text == "one" {
			panic("first handler blows up")
		}
		return nil
	})

	rec := postDelivery(t, c, textDelivery, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(seen) != 2 {
		t.Fatalf("seen = %v, want the batch to continue after a panic", seen)
	}
}

func TestWebhookClientReachableFromContext(t *testing.T) {
	c := newTestClient(t)
	var got *Client
	c.OnMessage(nil, func(ctx context.Context, _ *Client, _ *types.Message) error {
		got = ClientFromContext(ctx)
		return nil
	})

	postDelivery(t, c, textDelivery, "")
	if got != c {
		t.Fatal("dispatching client not reachable from the handler context")
	}
}

func TestWebhookMethodNotAllowed(t *testing.T) {
	c := newTestClient(t)
	req := httptest.NewRequest(http.MethodDelete, "/webhook", nil)
	rec := httptest.NewRecorder()
	c.WebhookHandler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestValidateSignature(t *testing.T) {
	body := []byte("payload")
	if !ValidateSignature(body, sign(body, "s"), "s") {
		t.Error("valid signature rejected")
	}
	if ValidateSignature(body, sign(body, "other"), "s") {
		t.Error("signature from another secret accepted")
	}
	if ValidateSignature(body, "", "s") {
		t.Error("empty header accepted")
	}
}
