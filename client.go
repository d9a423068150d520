// Package whatsbygo is a WhatsApp Cloud API client. It sends messages
// through the Graph API and receives updates through a signature-verified
// webhook, routing each update to the first registered handler whose
// filter accepts it.
package whatsbygo

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/whatsbygo/whatsbygo/api"
	"github.com/whatsbygo/whatsbygo/types"
)

// Client ties together the Cloud API wrapper, the handler registry and the
// webhook endpoints for one business phone number.
type Client struct {
	api               *api.CloudAPI
	logger            *slog.Logger
	verifyToken       string
	appSecret         string
	businessAccountID string
	filterUpdates     bool
	logUnmatched      bool

	handlers registry
}

type settings struct {
	baseURL           string
	version           string
	httpClient        *http.Client
	logger            *slog.Logger
	verifyToken       string
	appSecret         string
	businessAccountID string
	filterUpdates     bool
	logUnmatched      bool
}

// Option customizes a Client at construction time.
type Option func(*settings)

// WithBaseURL overrides the Graph API host, e.g. for a local test server.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) { s.baseURL = baseURL }
}

// WithAPIVersion pins the Graph API version, e.g. "19.0".
func WithAPIVersion(version string) Option {
	return func(s *settings) { s.version = version }
}

// WithHTTPClient sets the HTTP client used for outbound API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) { s.httpClient = hc }
}

// WithLogger sets the logger used for dispatch and webhook diagnostics.
// The default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithVerifyToken sets the token expected in webhook verification requests.
// Without it every verification request is rejected.
func WithVerifyToken(token string) Option {
	return func(s *settings) { s.verifyToken = token }
}

// WithAppSecret enables webhook payload signature validation. Without it
// deliveries are accepted unverified.
func WithAppSecret(secret string) Option {
	return func(s *settings) { s.appSecret = secret }
}

// WithBusinessAccountID sets the WhatsApp business account ID used by
// template and flow management calls.
func WithBusinessAccountID(id string) Option {
	return func(s *settings) { s.businessAccountID = id }
}

// WithUpdateFiltering controls whether deliveries addressed to a different
// phone number ID are dropped. Enabled by default.
func WithUpdateFiltering(enabled bool) Option {
	return func(s *settings) { s.filterUpdates = enabled }
}

// WithUnmatchedLogging logs updates that no handler (including raw
// handlers) consumed. Off by default.
func WithUnmatchedLogging() Option {
	return func(s *settings) { s.logUnmatched = true }
}

// New creates a Client for the given business phone number ID and access
// token.
func New(phoneID, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingAccessToken
	}
	if phoneID == "" {
		return nil, ErrMissingPhoneID
	}

	s := settings{
		logger:        slog.Default(),
		filterUpdates: true,
	}
	for _, opt := range opts {
		opt(&s)
	}

	return &Client{
		api: api.New(api.Config{
			PhoneID:    phoneID,
			Token:      token,
			BaseURL:    s.baseURL,
			Version:    s.version,
			HTTPClient: s.httpClient,
		}),
		logger:            s.logger,
		verifyToken:       s.verifyToken,
		appSecret:         s.appSecret,
		businessAccountID: s.businessAccountID,
		filterUpdates:     s.filterUpdates,
		logUnmatched:      s.logUnmatched,
	}, nil
}

// API exposes the underlying Cloud API wrapper for calls that have no
// convenience method on the Client.
func (c *Client) API() *api.CloudAPI {
	return c.api
}

// PhoneID returns the business phone number ID this client serves.
func (c *Client) PhoneID() string {
	return c.api.PhoneID()
}

type clientContextKey struct{}

// ClientFromContext returns the Client that is dispatching the current
// update, or nil outside a dispatch. Filters use this to reach the API.
func ClientFromContext(ctx context.Context) *Client {
	c, _ := ctx.Value(clientContextKey{}).(*Client)
	return c
}

// SendText sends a plain text message.
func (c *Client) SendText(ctx context.Context, to, body string) (*api.SendMessageResponse, error) {
	return c.api.SendTextMessage(ctx, to, body, false, "")
}

// ReplyText sends a text message quoting the given inbound message.
func (c *Client) ReplyText(ctx context.Context, m *types.Message, body string) (*api.SendMessageResponse, error) {
	return c.api.SendTextMessage(ctx, m.From.WaID, body, false, m.ID)
}

// React reacts to the given inbound message. An empty emoji removes a
// previous reaction.
func (c *Client) React(ctx context.Context, m *types.Message, emoji string) (*api.SendMessageResponse, error) {
	return c.api.SendReaction(ctx, m.From.WaID, m.ID, emoji)
}

// MarkRead marks an inbound message as read.
func (c *Client) MarkRead(ctx context.Context, messageID string) error {
	_, err := c.api.MarkMessageAsRead(ctx, messageID)
	return err
}

// CreateTemplate submits a message template for review under the configured
// business account.
func (c *Client) CreateTemplate(ctx context.Context, tpl *api.TemplateDefinition) (*api.CreateTemplateResponse, error) {
	if c.businessAccountID == "" {
		return nil, ErrMissingBusinessAccount
	}
	return c.api.CreateTemplate(ctx, c.businessAccountID, tpl)
}

// GetFlows lists the flows of the configured business account.
func (c *Client) GetFlows(ctx context.Context) ([]api.FlowDetails, error) {
	if c.businessAccountID == "" {
		return nil, ErrMissingBusinessAccount
	}
	return c.api.GetFlows(ctx, c.businessAccountID)
}

// CreateFlow creates a draft flow under the configured business account.
func (c *Client) CreateFlow(ctx context.Context, name string, categories []string) (string, error) {
	if c.businessAccountID == "" {
		return "", ErrMissingBusinessAccount
	}
	return c.api.CreateFlow(ctx, c.businessAccountID, name, categories)
}
