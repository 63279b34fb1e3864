package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
)

// Event is the inbound webhook payload. Only the reference is taken from it;
// everything else is re-fetched through VerifyTransaction.
type Event struct {
	Event string `json:"event"`
	Data  struct {
		Reference string   `json:"reference"`
		Status    string   `json:"status"`
		Amount    int64    `json:"amount"`
		Metadata  Metadata `json:"metadata"`
	} `json:"data"`
}

// SignBody computes the hex HMAC-SHA512 of body under secret, the scheme
// Paystack uses for the x-paystack-signature header.
func SignBody(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidSignature compares the provided signature header against the HMAC of
// the raw body in constant time.
func ValidSignature(body []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}
	expected := SignBody(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseEvent decodes a verified webhook body.
func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
