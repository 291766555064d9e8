package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type ImagesConfig struct {
	AccountID   string
	APIToken    string
	AccountHash string
	// BaseURL overrides the images API endpoint; empty uses the hosted API.
	BaseURL string
}

// ImageCDNStorage stores blobs in a hosted image CDN. The destination key
// minus its extension is used as the stable external image id, so repeated
// uploads under the same key collide by design; callers avoid that by
// generating a fresh random key per upload.
type ImageCDNStorage struct {
	accountID   string
	apiToken    string
	accountHash string
	baseURL     string
	client      *http.Client
}

type imageAPIResponse struct {
	Success bool `json:"success"`
	Result  struct {
		ID       string   `json:"id"`
		Variants []string `json:"variants"`
	} `json:"result"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func NewImageCDNStorage(cfg ImagesConfig) *ImageCDNStorage {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.cloudflare.com/client/v4"
	}

	client := &http.Client{
		Timeout: 5 * time.Minute,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &ImageCDNStorage{
		accountID:   cfg.AccountID,
		apiToken:    cfg.APIToken,
		accountHash: cfg.AccountHash,
		baseURL:     baseURL,
		client:      client,
	}
}

// ImageID derives the CDN image id from a destination key by stripping the
// file extension. Delete must derive the same id from the stored key.
func ImageID(key string) string {
	return strings.TrimSuffix(key, filepath.Ext(key))
}

func (c *ImageCDNStorage) Upload(ctx context.Context, localPath, key, contentType string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file for upload: %w", err)
	}
	defer file.Close()

	var formBuf bytes.Buffer
	writer := multipart.NewWriter(&formBuf)

	part, err := writer.CreateFormFile("file", filepath.Base(key))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to copy file into form: %w", err)
	}
	if err := writer.WriteField("id", ImageID(key)); err != nil {
		return "", fmt.Errorf("failed to add form field: %w", err)
	}
	if err := writer.WriteField("requireSignedURLs", "false"); err != nil {
		return "", fmt.Errorf("failed to add form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close form: %w", err)
	}

	url := fmt.Sprintf("%s/accounts/%s/images/v1", c.baseURL, c.accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &formBuf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("image CDN returned status %d: %s", resp.StatusCode, string(body))
	}

	var response imageAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !response.Success {
		return "", fmt.Errorf("image CDN returned error: %v", response.Errors)
	}

	return c.publicURL(response.Result.ID), nil
}

func (c *ImageCDNStorage) Delete(ctx context.Context, key string) error {
	url := fmt.Sprintf("%s/accounts/%s/images/v1/%s", c.baseURL, c.accountID, ImageID(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to delete image: status %d", resp.StatusCode)
	}
	return nil
}

func (c *ImageCDNStorage) publicURL(imageID string) string {
	return fmt.Sprintf("https://imagedelivery.net/%s/%s/public", c.accountHash, imageID)
}
