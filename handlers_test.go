package whatsbygo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/whatsbygo/whatsbygo/filters"
	"github.com/whatsbygo/whatsbygo/types"
)

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	c, err := New("111111", "token", opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestDispatchFirstMatchWins(t *testing.T) {
	c := newTestClient(t)
	var ran []string

	c.OnMessage(filters.TextMatches("hello"), func(context.Context, *Client, *types.Message) error {
		ran = append(ran, "specific")
		return nil
	})
	c.OnMessage(nil, func(context.Context, *Client, *types.Message) error {
		ran = append(ran, "catch-all")
		return nil
	})

	m := &types.Message{Type: types.MessageTypeText, Text: "hello"}
	if !dispatch(context.Background(), c, c.handlers.snapshot().messages, m) {
		t.Fatal("dispatch reported unmatched")
	}
	if len(ran) != 1 || ran[0] != "specific" {
		t.Fatalf("ran = %v, want only the first matching handler", ran)
	}
}

func TestDispatchRegistrationOrder(t *testing.T) {
	c := newTestClient(t)
	var ran []string

	for _, name := range []string{"a", "b", "c"} {
		c.OnMessage(nil, func(context.Context, *Client, *types.Message) error {
			ran = append(ran, name)
			return nil
		})
	}

	dispatch(context.Background(), c, c.handlers.snapshot().messages, &types.Message{})
	if len(ran) != 1 || ran[0] != "a" {
		t.Fatalf("ran = %v, want the earliest registered handler", ran)
	}
}

func TestDispatchSkipsNonMatching(t *testing.T) {
	c := newTestClient(t)
	var ran string

	c.OnMessage(filters.Image, func(context.Context, *Client, *types.Message) error {
		ran = "image"
		return nil
	})
	c.OnMessage(filters.Text, func(context.Context, *Client, *types.Message) error {
		ran = "text"
		return nil
	})

	dispatch(context.Background(), c, c.handlers.snapshot().messages,
		&types.Message{Type: types.MessageTypeText, Text: "hi"})
	if ran != "text" {
		t.Fatalf("ran = %q", ran)
	}
}

func TestDispatchUnmatched(t *testing.T) {
	c := newTestClient(t)
	c.OnMessage(filters.Image, func(context.Context, *Client, *types.Message) error {
		t.Fatal("image handler ran for a text message")
		return nil
	})

	handled := dispatch(context.Background(), c, c.handlers.snapshot().messages,
		&types.Message{Type: types.MessageTypeText})
	if handled {
		t.Fatal("dispatch reported handled")
	}
}

func TestDispatchIsolatesCallbackFailures(t *testing.T) {
	c := newTestClient(t)

	c.OnMessage(nil, func(context.Context, *Client, *types.Message) error {
		return errors.New("boom")
	})

	// An error from the callback still counts as handled and never
	// propagates out of dispatch.
	if !dispatch(context.Background(), c, c.handlers.snapshot().messages, &types.Message{}) {
		t.Fatal("dispatch reported unmatched")
	}
}

func TestDispatchRecoversPanics(t *testing.T) {
	c := newTestClient(t)

	c.OnMessage(func(context.Context, *types.Message) bool { panic("filter") },
		func(context.Context, *Client, *types.Message) error {
			t.Fatal("callback ran after its filter panicked")
			return nil
		})
	c.OnMessage(nil, func(context.Context, *Client, *types.Message) error {
		panic("callback")
	})

	// A panicking filter counts as no match; a panicking callback is
	// recovered and counts as handled.
	if !dispatch(context.Background(), c, c.handlers.snapshot().messages, &types.Message{}) {
		t.Fatal("dispatch reported unmatched")
	}
}

func TestRemoveHandler(t *testing.T) {
	c := newTestClient(t)
	var ran string

	first := c.OnMessage(nil, func(context.Context, *Client, *types.Message) error {
		ran = "first"
		return nil
	})
	c.OnMessage(nil, func(context.Context, *Client, *types.Message) error {
		ran = "second"
		return nil
	})

	if err := c.RemoveHandler(first); err != nil {
		t.Fatalf("RemoveHandler: %v", err)
	}
	dispatch(context.Background(), c, c.handlers.snapshot().messages, &types.Message{})
	if ran != "second" {
		t.Fatalf("ran = %q after removal", ran)
	}

	if err := c.RemoveHandler(first); !errors.Is(err, ErrHandlerNotFound) {
		t.Fatalf("second removal: %v, want ErrHandlerNotFound", err)
	}
}

func TestRemoveHandlerOtherKinds(t *testing.T) {
	c := newTestClient(t)

	id := c.OnCallbackButton(nil, func(context.Context, *Client, *types.CallbackButton) error {
		return nil
	})
	if err := c.RemoveHandler(id); err != nil {
		t.Fatalf("RemoveHandler(button): %v", err)
	}

	id = c.OnRawUpdate(func(context.Context, *Client, json.RawMessage) error { return nil })
	if err := c.RemoveHandler(id); err != nil {
		t.Fatalf("RemoveHandler(raw): %v", err)
	}
}

func TestAddHandlers(t *testing.T) {
	c := newTestClient(t)

	ids := c.AddHandlers(
		MessageHandler{Filter: filters.Text, Callback: func(context.Context, *Client, *types.Message) error { return nil }},
		CallbackButtonHandler{Callback: func(context.Context, *Client, *types.CallbackButton) error { return nil }},
		MessageStatusHandler{Callback: func(context.Context, *Client, *types.MessageStatus) error { return nil }},
		TemplateStatusHandler{Callback: func(context.Context, *Client, *types.TemplateStatus) error { return nil }},
		RawHandler{Callback: func(context.Context, *Client, json.RawMessage) error { return nil }},
	)
	if len(ids) != 5 {
		t.Fatalf("got %d ids", len(ids))
	}
	for i, id := range ids {
		if err := c.RemoveHandler(id); err != nil {
			t.Errorf("RemoveHandler(ids[%d]): %v", i, err)
		}
	}
}

func TestSnapshotUnaffectedByLaterRegistration(t *testing.T) {
	c := newTestClient(t)
	c.OnMessage(nil, func(context.Context, *Client, *types.Message) error { return nil })

	snap := c.handlers.snapshot()
	c.OnMessage(nil, func(context.Context, *Client, *types.Message) error { return nil })

	if len(snap.messages) != 1 {
		t.Fatalf("snapshot grew to %d bindings", len(snap.messages))
	}
}

func TestClientFromContext(t *testing.T) {
	if ClientFromContext(context.Background()) != nil {
		t.Fatal("expected nil outside a dispatch")
	}

	c := newTestClient(t)
	ctx := context.WithValue(context.Background(), clientContextKey{}, c)
	if ClientFromContext(ctx) != c {
		t.Fatal("did not get the dispatching client back")
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New("", "token"); !errors.Is(err, ErrMissingPhoneID) {
		t.Errorf("New without phone ID: %v", err)
	}
	if _, err := New("111111", ""); !errors.Is(err, ErrMissingAccessToken) {
		t.Errorf("New without token: %v", err)
	}
}
