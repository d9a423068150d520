package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// TemplateDefinition is a template submitted for review.
type TemplateDefinition struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Language   string `json:"language"`
	Components any    `json:"components"`
}

// CreateTemplateResponse is the Graph response to template creation.
type CreateTemplateResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

// CreateTemplate submits a message template for review under the given
// business account.
func (a *CloudAPI) CreateTemplate(ctx context.Context, businessAccountID string, tpl *TemplateDefinition) (*CreateTemplateResponse, error) {
	var out CreateTemplateResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(businessAccountID, "message_templates"), nil, tpl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BusinessProfile is the public profile of the business phone number.
type BusinessProfile struct {
	About             string   `json:"about,omitempty"`
	Address           string   `json:"address,omitempty"`
	Description       string   `json:"description,omitempty"`
	Email             string   `json:"email,omitempty"`
	ProfilePictureURL string   `json:"profile_picture_url,omitempty"`
	Websites          []string `json:"websites,omitempty"`
	Vertical          string   `json:"vertical,omitempty"`
}

type businessProfileEnvelope struct {
	Data []BusinessProfile `json:"data"`
}

var businessProfileFields = strings.Join([]string{
	"about", "address", "description", "email",
	"profile_picture_url", "websites", "vertical",
}, ",")

// GetBusinessProfile fetches the business profile of the phone number.
func (a *CloudAPI) GetBusinessProfile(ctx context.Context) (*BusinessProfile, error) {
	q := url.Values{"fields": {businessProfileFields}}
	var out businessProfileEnvelope
	if err := a.do(ctx, http.MethodGet, a.endpoint(a.phoneID, "whatsapp_business_profile"), q, nil, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return &BusinessProfile{}, nil
	}
	return &out.Data[0], nil
}

// UpdateBusinessProfile updates the given business profile fields.
func (a *CloudAPI) UpdateBusinessProfile(ctx context.Context, fields map[string]any) (*SuccessResponse, error) {
	body := map[string]any{"messaging_product": messagingProduct}
	for k, v := range fields {
		body[k] = v
	}
	var out SuccessResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(a.phoneID, "whatsapp_business_profile"), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetBusinessPublicKey uploads the 2048-bit RSA public key used by the
// platform to encrypt flow data exchange requests.
func (a *CloudAPI) SetBusinessPublicKey(ctx context.Context, publicKey string) (*SuccessResponse, error) {
	body := map[string]any{"business_public_key": publicKey}
	var out SuccessResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(a.phoneID, "whatsapp_business_encryption"), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
