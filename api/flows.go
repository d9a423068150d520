package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// FlowDetails describes one WhatsApp Flow.
type FlowDetails struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Status           string   `json:"status"`
	Categories       []string `json:"categories,omitempty"`
	ValidationErrors []struct {
		Error       string `json:"error"`
		ErrorType   string `json:"error_type"`
		Message     string `json:"message"`
		LineStart   int    `json:"line_start"`
		LineEnd     int    `json:"line_end"`
		ColumnStart int    `json:"column_start"`
		ColumnEnd   int    `json:"column_end"`
	} `json:"validation_errors,omitempty"`
	JSONVersion    string `json:"json_version,omitempty"`
	DataAPIVersion string `json:"data_api_version,omitempty"`
	EndpointURI    string `json:"endpoint_uri,omitempty"`
	PreviewURL     string `json:"preview,omitempty"`
}

// FlowAsset is one asset attached to a flow (currently only FLOW_JSON).
type FlowAsset struct {
	Name        string `json:"name"`
	AssetType   string `json:"asset_type"`
	DownloadURL string `json:"download_url"`
}

type flowListEnvelope[T any] struct {
	Data []T `json:"data"`
}

type createFlowResponse struct {
	ID string `json:"id"`
}

var flowFields = strings.Join([]string{
	"id", "name", "status", "categories", "validation_errors",
	"json_version", "data_api_version", "endpoint_uri",
}, ",")

// CreateFlow creates a new draft flow under the business account and
// returns its ID.
func (a *CloudAPI) CreateFlow(ctx context.Context, businessAccountID, name string, categories []string) (string, error) {
	body := map[string]any{
		"name":       name,
		"categories": categories,
	}
	var out createFlowResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(businessAccountID, "flows"), nil, body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateFlowMetadata updates a flow's name, categories or endpoint URI.
// Nil-valued entries are not sent.
func (a *CloudAPI) UpdateFlowMetadata(ctx context.Context, flowID string, fields map[string]any) (*SuccessResponse, error) {
	var out SuccessResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(flowID), nil, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFlowJSON replaces the flow JSON of a draft flow.
func (a *CloudAPI) UpdateFlowJSON(ctx context.Context, flowID, flowJSON string) (*SuccessResponse, error) {
	body := map[string]any{
		"name":       "flow.json",
		"asset_type": "FLOW_JSON",
		"file":       flowJSON,
	}
	var out SuccessResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(flowID, "assets"), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublishFlow makes a draft flow available for sending.
func (a *CloudAPI) PublishFlow(ctx context.Context, flowID string) (*SuccessResponse, error) {
	var out SuccessResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(flowID, "publish"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFlow deletes a draft flow. Published flows can only be deprecated.
func (a *CloudAPI) DeleteFlow(ctx context.Context, flowID string) (*SuccessResponse, error) {
	var out SuccessResponse
	if err := a.do(ctx, http.MethodDelete, a.endpoint(flowID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeprecateFlow deprecates a published flow.
func (a *CloudAPI) DeprecateFlow(ctx context.Context, flowID string) (*SuccessResponse, error) {
	var out SuccessResponse
	if err := a.do(ctx, http.MethodPost, a.endpoint(flowID, "deprecate"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFlow fetches the details of one flow.
func (a *CloudAPI) GetFlow(ctx context.Context, flowID string) (*FlowDetails, error) {
	q := url.Values{"fields": {flowFields}}
	var out FlowDetails
	if err := a.do(ctx, http.MethodGet, a.endpoint(flowID), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFlows lists the flows of the business account.
func (a *CloudAPI) GetFlows(ctx context.Context, businessAccountID string) ([]FlowDetails, error) {
	q := url.Values{"fields": {flowFields}}
	var out flowListEnvelope[FlowDetails]
	if err := a.do(ctx, http.MethodGet, a.endpoint(businessAccountID, "flows"), q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetFlowAssets lists the assets attached to a flow.
func (a *CloudAPI) GetFlowAssets(ctx context.Context, flowID string) ([]FlowAsset, error) {
	var out flowListEnvelope[FlowAsset]
	if err := a.do(ctx, http.MethodGet, a.endpoint(flowID, "assets"), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
