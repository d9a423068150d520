package main

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/whatsbygo/whatsbygo"
	"github.com/whatsbygo/whatsbygo/api"
	"github.com/whatsbygo/whatsbygo/filters"
	"github.com/whatsbygo/whatsbygo/types"
)

// RegisterHandlers attaches the bot's handlers. Order matters: the first
// handler whose filter matches an update is the only one invoked, so the
// most specific filters come first.
func RegisterHandlers(client *whatsbygo.Client) {
	client.AddHandlers(
		whatsbygo.MessageHandler{
			Filter:   filters.TextCommand("start", "help"),
			Callback: handleStart,
		},
		whatsbygo.MessageHandler{
			Filter:   filters.All(filters.Text, filters.TextContainsFold("menu")),
			Callback: handleMenu,
		},
		whatsbygo.MessageHandler{
			Filter:   filters.Text,
			Callback: handleEcho,
		},
		whatsbygo.MessageHandler{
			Filter:   filters.Media,
			Callback: handleMedia,
		},
		whatsbygo.CallbackButtonHandler{
			Filter:   filters.DataStartsWith("menu:"),
			Callback: handleMenuButton,
		},
		whatsbygo.MessageStatusHandler{
			Filter:   filters.StatusFailed,
			Callback: handleFailedStatus,
		},
		whatsbygo.RawHandler{
			Callback: handleUnknown,
		},
	)
}

func handleStart(ctx context.Context, client *whatsbygo.Client, m *types.Message) error {
	_, err := client.ReplyText(ctx, m,
		"Hi "+m.From.Name+"! Send me any text and I will echo it back. Send \"menu\" for buttons.")
	return err
}

func handleMenu(ctx context.Context, client *whatsbygo.Client, m *types.Message) error {
	_, err := client.API().SendInteractive(ctx, m.From.WaID, &api.Interactive{
		Type: "button",
		Body: &api.InteractiveText{Text: "Pick one:"},
		Action: &api.InteractiveAction{
			Buttons: []api.InteractiveButton{
				api.NewReplyButton("menu:echo", "Echo mode"),
				api.NewReplyButton("menu:quiet", "Quiet mode"),
			},
		},
	}, m.ID)
	return err
}

func handleEcho(ctx context.Context, client *whatsbygo.Client, m *types.Message) error {
	if err := client.MarkRead(ctx, m.ID); err != nil {
		slog.Warn("Failed to mark message as read", "message_id", m.ID, "error", err)
	}
	_, err := client.ReplyText(ctx, m, m.Text)
	return err
}

func handleMedia(ctx context.Context, client *whatsbygo.Client, m *types.Message) error {
	media := m.Media()
	if media == nil {
		return nil
	}
	_, err := client.ReplyText(ctx, m, "Got your "+m.Type.String()+" ("+media.MimeType+")")
	return err
}

func handleMenuButton(ctx context.Context, client *whatsbygo.Client, b *types.CallbackButton) error {
	_, err := client.SendText(ctx, b.From.WaID, "You picked: "+b.Title)
	return err
}

func handleFailedStatus(ctx context.Context, client *whatsbygo.Client, s *types.MessageStatus) error {
	if s.Error != nil {
		slog.Error("Message delivery failed",
			"message_id", s.ID, "recipient", s.Recipient.WaID, "code", s.Error.Code, "title", s.Error.Title)
	}
	return nil
}

func handleUnknown(ctx context.Context, client *whatsbygo.Client, payload json.RawMessage) error {
	slog.Debug("Unhandled webhook payload", "size", len(payload))
	return nil
}

// HandleFlowRequest answers flow data exchange requests. The echo bot has
// no real screens, so every request completes the flow.
func HandleFlowRequest(ctx context.Context, client *whatsbygo.Client, req *whatsbygo.FlowRequest) (*whatsbygo.FlowResponse, error) {
	slog.Info("Flow request", "action", req.Action, "screen", req.Screen)
	return &whatsbygo.FlowResponse{
		Version: req.Version,
		Screen:  "SUCCESS",
		Data:    map[string]any{"flow_token": req.FlowToken},
	}, nil
}
