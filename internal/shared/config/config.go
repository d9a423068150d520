package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

var (
	ErrMissingAccessToken = errors.New("WA_ACCESS_TOKEN environment variable is required")
	ErrMissingPhoneID     = errors.New("WA_PHONE_NUMBER_ID environment variable is required")
)

type Config struct {
	AccessToken        string `koanf:"wa_access_token"`
	PhoneNumberID      string `koanf:"wa_phone_number_id"`
	BusinessAccountID  string `koanf:"wa_business_account_id"`
	VerifyToken        string `koanf:"wa_verify_token"`
	AppSecret          string `koanf:"wa_app_secret"`
	APIVersion         string `koanf:"wa_api_version"`
	FlowPrivateKeyPath string `koanf:"wa_flow_private_key_path"`
	HTTPPort           string `koanf:"http_port"`
	WebhookPath        string `koanf:"webhook_path"`
	AppEnv             AppEnv `koanf:"app_env"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("webhook_path") {
		k.Set("webhook_path", "/webhook")
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Parse AppEnv from string if needed
	if appEnvStr := k.String("app_env"); appEnvStr != "" {
		if env, err := ParseAppEnv(appEnvStr); err == nil {
			cfg.AppEnv = env
		} else {
			cfg.AppEnv = AppEnvProduction
		}
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	// Validate required fields
	if cfg.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}
	if cfg.PhoneNumberID == "" {
		return nil, ErrMissingPhoneID
	}

	return &cfg, nil
}
