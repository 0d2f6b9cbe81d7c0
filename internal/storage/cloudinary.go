// Package storage uploads user media to an external image host and hands
// back the hosted URL. Nothing is persisted locally.
package storage

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

const (
	cloudinaryBaseURL = "https://api.cloudinary.com/v1_1"

	// AvatarFolder groups every uploaded avatar under one asset folder.
	AvatarFolder = "safespot/avatars"
)

// CloudinaryClient uploads images through the Cloudinary signed-upload API.
type CloudinaryClient struct {
	CloudName  string
	APIKey     string
	APISecret  string
	BaseURL    string
	HTTPClient *http.Client
}

// NewCloudinaryClient creates a client with a sane default timeout.
func NewCloudinaryClient(cloudName, apiKey, apiSecret string) *CloudinaryClient {
	return &CloudinaryClient{
		CloudName:  cloudName,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		BaseURL:    cloudinaryBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadImage streams one image to the host and returns its hosted URL.
func (c *CloudinaryClient) UploadImage(ctx context.Context, filename string, image io.Reader) (string, error) {
	if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
		return "", fmt.Errorf("cloudinary client not configured")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"api_key":   c.APIKey,
		"timestamp": timestamp,
		"folder":    AvatarFolder,
		"signature": c.sign(timestamp),
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return "", fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.BaseURL, c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded cloudinaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if resp.StatusCode >= 400 || decoded.SecureURL == "" {
		msg := decoded.Error.Message
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("upload rejected: %s", msg)
	}

	return decoded.SecureURL, nil
}

// sign produces the request signature: the sorted upload parameters joined
// with '&', suffixed with the API secret, hashed with SHA-1.
func (c *CloudinaryClient) sign(timestamp string) string {
	payload := fmt.Sprintf("folder=%s&timestamp=%s%s", AvatarFolder, timestamp, c.APISecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(payload)))
}
