package whatsbygo

import "errors"

var (
	ErrMissingAccessToken     = errors.New("a Cloud API access token is required")
	ErrMissingPhoneID         = errors.New("a business phone number ID is required")
	ErrMissingBusinessAccount = errors.New("a WhatsApp business account ID is required for this call")
	ErrHandlerNotFound        = errors.New("handler not found")
	ErrPrivateKeyNotRSA       = errors.New("flow endpoint private key is not an RSA key")
)
