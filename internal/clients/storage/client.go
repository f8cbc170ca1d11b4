// Package storage uploads document files to the object storage endpoint and
// returns their public URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
)

// Client uploads files over HTTP PUT to <endpoint>/<bucket>/<path>.
type Client struct {
	endpoint   string
	bucket     string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a storage client.
func NewClient(endpoint, bucket, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		bucket:     bucket,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements the storage port
var _ portssvc.FileStorageClient = (*Client)(nil)

// StoreFile uploads data and returns the object's public URL.
func (c *Client) StoreFile(ctx context.Context, data []byte, contentType string, path string) (string, error) {
	objectURL := fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, escapePath(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, objectURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return "", fmt.Errorf("upload returned status %d", resp.StatusCode)
	}
	return objectURL, nil
}

// escapePath escapes each path segment while keeping the separators.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
