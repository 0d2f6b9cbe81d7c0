// Package notify sends alert messages to a user's protectors over SMS and
// WhatsApp. Senders are plain outbound HTTP clients; the dispatch policy
// (fire-and-forget, log-only failure) lives with the caller.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const fast2smsURL = "https://www.fast2sms.com/dev/bulkV2"

// Fast2SMSClient sends transactional SMS through the Fast2SMS bulk API.
type Fast2SMSClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewFast2SMSClient creates a client with a sane default timeout.
func NewFast2SMSClient(apiKey string) *Fast2SMSClient {
	return &Fast2SMSClient{
		APIKey:     apiKey,
		BaseURL:    fast2smsURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether the client has credentials to send with.
func (c *Fast2SMSClient) Configured() bool {
	return c.APIKey != ""
}

// NormalizePhone strips non-digits and ensures the Indian country prefix.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, "91") {
		digits = "91" + digits
	}
	return digits
}

// Send delivers one message to all numbers in a single bulk call.
func (c *Fast2SMSClient) Send(ctx context.Context, numbers []string, message string) error {
	if !c.Configured() {
		return fmt.Errorf("fast2sms: api key not configured")
	}

	cleaned := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if d := NormalizePhone(n); d != "" {
			cleaned = append(cleaned, d)
		}
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("fast2sms: no valid numbers")
	}

	payload := struct {
		Route   string `json:"route"`
		Message string `json:"message"`
		Numbers string `json:"numbers"`
	}{
		Route:   "q",
		Message: message,
		Numbers: strings.Join(cleaned, ","),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("fast2sms: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("fast2sms: build request: %w", err)
	}
	req.Header.Set("authorization", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("fast2sms: send: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var status struct {
		Return *bool `json:"return"`
	}
	_ = json.Unmarshal(respBody, &status)

	if resp.StatusCode >= 400 || (status.Return != nil && !*status.Return) {
		return fmt.Errorf("fast2sms: request failed (%d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}
