// Package api is a thin typed wrapper over the WhatsApp Cloud (Graph) API.
// Every method issues one authenticated HTTPS request and decodes the
// response; no retries or queueing happen at this layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/samber/oops"
)

// DefaultBaseURL is the Graph API host used when none is configured.
const DefaultBaseURL = "https://graph.facebook.com"

// DefaultVersion is the Graph API version used when none is configured.
const DefaultVersion = "19.0"

// CloudAPI issues requests against one business phone number.
type CloudAPI struct {
	phoneID    string
	token      string
	baseURL    string
	version    string
	httpClient *http.Client
}

// Config carries the settings needed to construct a CloudAPI.
type Config struct {
	PhoneID    string
	Token      string
	BaseURL    string
	Version    string
	HTTPClient *http.Client
}

// New creates a CloudAPI. Zero-value BaseURL, Version and HTTPClient fall
// back to defaults.
func New(cfg Config) *CloudAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &CloudAPI{
		phoneID:    cfg.PhoneID,
		token:      cfg.Token,
		baseURL:    cfg.BaseURL,
		version:    cfg.Version,
		httpClient: cfg.HTTPClient,
	}
}

// PhoneID returns the business phone number ID requests are issued for.
func (a *CloudAPI) PhoneID() string {
	return a.phoneID
}

// SetPhoneID switches the business phone number used for subsequent calls.
func (a *CloudAPI) SetPhoneID(phoneID string) {
	a.phoneID = phoneID
}

// Error is the decoded Graph API error envelope.
type Error struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	Subcode   int    `json:"error_subcode,omitempty"`
	Details   string `json:"-"`
	FBTraceID string `json:"fbtrace_id,omitempty"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("whatsapp api error %d (%s): %s: %s", e.Code, e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("whatsapp api error %d (%s): %s", e.Code, e.Type, e.Message)
}

type errorEnvelope struct {
	Error *struct {
		Error
		ErrorData *struct {
			Details string `json:"details"`
		} `json:"error_data,omitempty"`
	} `json:"error,omitempty"`
}

func (a *CloudAPI) endpoint(parts ...string) string {
	u := a.baseURL + "/v" + a.version
	for _, p := range parts {
		u += "/" + p
	}
	return u
}

// do issues one JSON request. A non-2xx response with a Graph error
// envelope is returned as *Error; transport failures are wrapped with
// request context.
func (a *CloudAPI) do(ctx context.Context, method, rawURL string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return oops.With("url", rawURL).Wrap(err)
		}
		reader = bytes.NewReader(data)
	}
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return oops.With("url", rawURL).Wrap(err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.send(req, out)
}

func (a *CloudAPI) send(req *http.Request, out any) error {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return oops.With("url", req.URL.String(), "method", req.Method).Wrap(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return oops.With("url", req.URL.String()).Wrap(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorEnvelope
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error != nil {
			apiErr := envelope.Error.Error
			if envelope.Error.ErrorData != nil {
				apiErr.Details = envelope.Error.ErrorData.Details
			}
			return &apiErr
		}
		return oops.With("url", req.URL.String(), "status", resp.StatusCode).
			Errorf("unexpected response: %s", data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return oops.With("url", req.URL.String()).Wrap(err)
	}
	return nil
}

// SuccessResponse is the generic {"success": true} Graph response.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// AppAccessToken is an application token used for app-level endpoints.
type AppAccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// GetAppAccessToken exchanges the app ID and secret for an app access token.
func (a *CloudAPI) GetAppAccessToken(ctx context.Context, appID, appSecret string) (*AppAccessToken, error) {
	q := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {appID},
		"client_secret": {appSecret},
	}
	var out AppAccessToken
	if err := a.do(ctx, http.MethodGet, a.endpoint("oauth", "access_token"), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetCallbackURL subscribes the app to webhook deliveries on the given URL.
func (a *CloudAPI) SetCallbackURL(ctx context.Context, appID, appAccessToken, callbackURL, verifyToken string, fields []string) (*SuccessResponse, error) {
	body := map[string]any{
		"object":       "whatsapp_business_account",
		"callback_url": callbackURL,
		"verify_token": verifyToken,
		"access_token": appAccessToken,
	}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	var out SuccessResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(appID, "subscriptions"), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterPhoneNumber registers the phone number for Cloud API use.
func (a *CloudAPI) RegisterPhoneNumber(ctx context.Context, pin string) (*SuccessResponse, error) {
	body := map[string]any{
		"messaging_product": messagingProduct,
		"pin":               pin,
	}
	var out SuccessResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(a.phoneID, "register"), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
