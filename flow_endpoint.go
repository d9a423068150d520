package whatsbygo

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"

	"github.com/samber/oops"
)

// FlowRequest is a decrypted data exchange request from a running WhatsApp
// Flow.
type FlowRequest struct {
	Version   string         `json:"version"`
	Action    string         `json:"action"`
	Screen    string         `json:"screen,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	FlowToken string         `json:"flow_token,omitempty"`
}

// FlowResponse is the next screen (or completion payload) returned to a
// running flow.
type FlowResponse struct {
	Version string         `json:"version"`
	Screen  string         `json:"screen,omitempty"`
	Data    map[string]any `json:"data"`
}

// FlowRequestHandler produces the response to one flow data exchange
// request. Health check pings are answered before the handler is reached.
type FlowRequestHandler func(ctx context.Context, client *Client, req *FlowRequest) (*FlowResponse, error)

type encryptedFlowRequest struct {
	EncryptedFlowData string `json:"encrypted_flow_data"`
	EncryptedAESKey   string `json:"encrypted_aes_key"`
	InitialVector     string `json:"initial_vector"`
}

// The platform re-fetches the business public key when the endpoint
// answers 421, so decryption failures must map to exactly that status.
const statusMisdirectedRequest = 421

// FlowEndpointHandler returns an http.Handler implementing the flow data
// exchange endpoint. Request bodies are decrypted with the business RSA
// private key (PEM, PKCS#1 or PKCS#8) and responses are encrypted back
// with the request's AES key under a bit-flipped IV.
func (c *Client) FlowEndpointHandler(privateKeyPEM []byte, handler FlowRequestHandler) (http.Handler, error) {
	key, err := parseFlowPrivateKey(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "unreadable body", http.StatusBadRequest)
			return
		}
		var env encryptedFlowRequest
		if err := json.Unmarshal(body, &env); err != nil {
			http.Error(w, "malformed request", http.StatusBadRequest)
			return
		}

		plain, aesKey, iv, err := decryptFlowRequest(key, &env)
		if err != nil {
			c.logger.Error("flow request decryption failed", "error", err)
			w.WriteHeader(statusMisdirectedRequest)
			return
		}
		var req FlowRequest
		if err := json.Unmarshal(plain, &req); err != nil {
			http.Error(w, "malformed flow payload", http.StatusBadRequest)
			return
		}

		var resp *FlowResponse
		if req.Action == "ping" {
			resp = &FlowResponse{Version: req.Version, Data: map[string]any{"status": "active"}}
		} else {
			ctx := context.WithValue(r.Context(), clientContextKey{}, c)
			resp, err = handler(ctx, c, &req)
			if err != nil {
				c.logger.Error("flow request handler failed",
					"action", req.Action, "screen", req.Screen, "error", err)
				http.Error(w, "flow handler failed", http.StatusInternalServerError)
				return
			}
		}

		out, err := json.Marshal(resp)
		if err != nil {
			http.Error(w, "unencodable flow response", http.StatusInternalServerError)
			return
		}
		sealed, err := encryptFlowResponse(out, aesKey, iv)
		if err != nil {
			c.logger.Error("flow response encryption failed", "error", err)
			http.Error(w, "encryption failed", http.StatusInternalServerError)
			return
		}
		io.WriteString(w, sealed)
	}), nil
}

func parseFlowPrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, oops.Errorf("no PEM block in flow private key")
	}
	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, ErrPrivateKeyNotRSA
		}
		return rsaKey, nil
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, oops.With("context", "parsing flow private key").Wrap(err)
	}
	return key, nil
}

// decryptFlowRequest recovers the request plaintext: the AES key travels
// RSA-OAEP(SHA-256) encrypted, and the flow data is AES-GCM with the tag
// appended to the ciphertext.
func decryptFlowRequest(key *rsa.PrivateKey, env *encryptedFlowRequest) (plain, aesKey, iv []byte, err error) {
	encKey, err := base64.StdEncoding.DecodeString(env.EncryptedAESKey)
	if err != nil {
		return nil, nil, nil, oops.With("field", "encrypted_aes_key").Wrap(err)
	}
	data, err := base64.StdEncoding.DecodeString(env.EncryptedFlowData)
	if err != nil {
		return nil, nil, nil, oops.With("field", "encrypted_flow_data").Wrap(err)
	}
	iv, err = base64.StdEncoding.DecodeString(env.InitialVector)
	if err != nil {
		return nil, nil, nil, oops.With("field", "initial_vector").Wrap(err)
	}

	aesKey, err = rsa.DecryptOAEP(sha256.New(), nil, key, encKey, nil)
	if err != nil {
		return nil, nil, nil, oops.With("context", "unwrapping aes key").Wrap(err)
	}
	gcm, err := newGCM(aesKey, len(iv))
	if err != nil {
		return nil, nil, nil, err
	}
	plain, err = gcm.Open(nil, iv, data, nil)
	if err != nil {
		return nil, nil, nil, oops.With("context", "decrypting flow data").Wrap(err)
	}
	return plain, aesKey, iv, nil
}

// encryptFlowResponse seals the response under the request AES key with
// every IV bit flipped, as the platform requires, and base64-encodes it.
func encryptFlowResponse(plain, aesKey, iv []byte) (string, error) {
	flipped := make([]byte, len(iv))
	for i, b := range iv {
		flipped[i] = ^b
	}
	gcm, err := newGCM(aesKey, len(flipped))
	if err != nil {
		return "", err
	}
	sealed := gcm.Seal(nil, flipped, plain, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func newGCM(aesKey []byte, nonceSize int) (cipher.AEAD, error) {
	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, oops.With("context", "building aes cipher").Wrap(err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, oops.With("context", "building gcm").Wrap(err)
	}
	return gcm, nil
}
