package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/samber/oops"
)

// UploadMediaResponse carries the ID of an uploaded media asset.
type UploadMediaResponse struct {
	ID string `json:"id"`
}

// MediaURLResponse describes a retrievable media asset.
type MediaURLResponse struct {
	ID               string `json:"id"`
	URL              string `json:"url"`
	MimeType         string `json:"mime_type"`
	SHA256           string `json:"sha256"`
	FileSize         int64  `json:"file_size"`
	MessagingProduct string `json:"messaging_product"`
}

// UploadMedia uploads a media asset so it can be referenced by ID in sent
// messages. Uploaded media is kept by the platform for 30 days.
func (a *CloudAPI) UploadMedia(ctx context.Context, filename, mimeType string, data []byte) (*UploadMediaResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("messaging_product", messagingProduct); err != nil {
		return nil, oops.Wrap(err)
	}
	if err := w.WriteField("type", mimeType); err != nil {
		return nil, oops.Wrap(err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, oops.Wrap(err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, oops.Wrap(err)
	}
	if err := w.Close(); err != nil {
		return nil, oops.Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint(a.phoneID, "media"), &buf)
	if err != nil {
		return nil, oops.With("filename", filename).Wrap(err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out UploadMediaResponse
	if err := a.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMediaURL resolves a media ID to a short-lived download URL.
func (a *CloudAPI) GetMediaURL(ctx context.Context, mediaID string) (*MediaURLResponse, error) {
	var out MediaURLResponse
	if err := a.do(ctx, http.MethodGet, a.endpoint(mediaID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadMedia fetches the bytes behind a URL returned by GetMediaURL.
// The URL expires after a few minutes, so download promptly.
func (a *CloudAPI) DownloadMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, oops.With("url", mediaURL).Wrap(err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, oops.With("url", mediaURL).Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, oops.With("url", mediaURL, "status", resp.StatusCode).
			Errorf("media download failed")
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, oops.With("url", mediaURL).Wrap(err)
	}
	return data, nil
}

// DeleteMedia removes an uploaded media asset.
func (a *CloudAPI) DeleteMedia(ctx context.Context, mediaID string) (*SuccessResponse, error) {
	var out SuccessResponse
	if err := a.do(ctx, http.MethodDelete, a.endpoint(mediaID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
