package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	sloghttp "github.com/samber/slog-http"

	"github.com/whatsbygo/whatsbygo"
	"github.com/whatsbygo/whatsbygo/internal/shared/config"
)

type WebhookServer struct {
	cfg    *config.Config
	client *whatsbygo.Client
	logger *slog.Logger
	server *http.Server
}

func NewWebhookServer(cfg *config.Config, client *whatsbygo.Client) *WebhookServer {
	return &WebhookServer{
		cfg:    cfg,
		client: client,
		logger: slog.Default(),
	}
}

func (s *WebhookServer) Start() error {
	mux := http.NewServeMux()

	// Webhook endpoint (verification handshake + deliveries)
	mux.Handle(s.cfg.WebhookPath, s.client.WebhookHandler())

	// Flow data exchange endpoint, only when a private key is configured
	if s.cfg.FlowPrivateKeyPath != "" {
		pemData, err := os.ReadFile(s.cfg.FlowPrivateKeyPath)
		if err != nil {
			return fmt.Errorf("failed to read flow private key: %w", err)
		}
		flowHandler, err := s.client.FlowEndpointHandler(pemData, HandleFlowRequest)
		if err != nil {
			return fmt.Errorf("failed to build flow endpoint: %w", err)
		}
		mux.Handle("POST /flow", flowHandler)
	}

	// Health check endpoint
	mux.HandleFunc("GET /health", s.handleHealth)

	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("Webhook server starting", "addr", addr)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *WebhookServer) Stop(ctx context.Context) {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("Error shutting down webhook server", "error", err)
	}
}

func (s *WebhookServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
