package main

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/whatsbygo/whatsbygo"
	"github.com/whatsbygo/whatsbygo/internal/shared/config"
)

// SetupDI initializes the dependency injection container
func SetupDI() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	})

	// Register Client (handlers need to be attached before the webhook
	// server starts accepting deliveries)
	do.Provide(injector, func(i do.Injector) (*whatsbygo.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)

		opts := []whatsbygo.Option{
			whatsbygo.WithVerifyToken(cfg.VerifyToken),
			whatsbygo.WithUnmatchedLogging(),
		}
		if cfg.AppSecret != "" {
			opts = append(opts, whatsbygo.WithAppSecret(cfg.AppSecret))
		}
		if cfg.APIVersion != "" {
			opts = append(opts, whatsbygo.WithAPIVersion(cfg.APIVersion))
		}
		if cfg.BusinessAccountID != "" {
			opts = append(opts, whatsbygo.WithBusinessAccountID(cfg.BusinessAccountID))
		}

		client, err := whatsbygo.New(cfg.PhoneNumberID, cfg.AccessToken, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create whatsapp client: %w", err)
		}

		RegisterHandlers(client)

		return client, nil
	})

	// Register WebhookServer
	do.Provide(injector, func(i do.Injector) (*WebhookServer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := do.MustInvoke[*whatsbygo.Client](i)
		return NewWebhookServer(cfg, client), nil
	})

	return injector, nil
}
