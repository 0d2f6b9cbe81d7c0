package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const whatsappBaseURL = "https://graph.facebook.com/v20.0"

// WhatsAppClient sends text messages through the WhatsApp Cloud (Graph) API.
type WhatsAppClient struct {
	Token         string
	PhoneNumberID string
	BaseURL       string
	HTTPClient    *http.Client
}

// NewWhatsAppClient creates a client with a sane default timeout.
func NewWhatsAppClient(token, phoneNumberID string) *WhatsAppClient {
	return &WhatsAppClient{
		Token:         token,
		PhoneNumberID: phoneNumberID,
		BaseURL:       whatsappBaseURL,
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether the client has credentials to send with.
func (c *WhatsAppClient) Configured() bool {
	return c.Token != "" && c.PhoneNumberID != ""
}

// Send delivers one text message to a single recipient.
func (c *WhatsAppClient) Send(ctx context.Context, to, message string) error {
	if !c.Configured() {
		return fmt.Errorf("whatsapp: credentials not configured")
	}

	payload := struct {
		MessagingProduct string `json:"messaging_product"`
		To               string `json:"to"`
		Type             string `json:"type"`
		Text             struct {
			Body string `json:"body"`
		} `json:"text"`
	}{
		MessagingProduct: "whatsapp",
		To:               NormalizePhone(to),
		Type:             "text",
	}
	payload.Text.Body = message

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("whatsapp: marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.BaseURL, c.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("whatsapp: request failed (%d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}
