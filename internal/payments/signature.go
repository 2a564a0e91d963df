package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// signingString joins the signed webhook fields in a fixed order
func signingString(p *WebhookPayload) string {
	return fmt.Sprintf("%s|%s|%.2f|%s|%s",
		p.TransactionID,
		p.Status,
		p.Amount,
		p.Method,
		p.Timestamp.UTC().Format(time.RFC3339),
	)
}

// SignWebhook returns the hex HMAC-SHA256 of a webhook payload
func SignWebhook(secret string, p *WebhookPayload) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signingString(p)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhook checks the payload signature in constant time
func VerifyWebhook(secret string, p *WebhookPayload) bool {
	if secret == "" {
		return false
	}
	expected, err := hex.DecodeString(SignWebhook(secret, p))
	if err != nil {
		return false
	}
	given, err := hex.DecodeString(p.Signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, given)
}
