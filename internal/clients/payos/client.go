// Package payos is a minimal client for the PayOS hosted-checkout API.
package payos

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
)

// Client talks to the PayOS payment-requests endpoint. Every call is bounded
// by the configured timeout.
type Client struct {
	endpoint    string
	clientID    string
	apiKey      string
	checksumKey string
	httpClient  *http.Client
}

// NewClient creates a PayOS client.
func NewClient(endpoint, clientID, apiKey, checksumKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint:    endpoint,
		clientID:    clientID,
		apiKey:      apiKey,
		checksumKey: checksumKey,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements the gateway port
var _ portssvc.PaymentGatewayClient = (*Client)(nil)

type createPaymentRequest struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReturnURL   string `json:"returnUrl"`
	CancelURL   string `json:"cancelUrl"`
	Signature   string `json:"signature"`
}

type createPaymentResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data struct {
		CheckoutURL string `json:"checkoutUrl"`
	} `json:"data"`
}

// signature computes the HMAC-SHA256 checksum over the canonical
// alphabetically-ordered field string PayOS expects.
func (c *Client) signature(req createPaymentRequest) string {
	payload := fmt.Sprintf("amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		req.Amount, req.CancelURL, req.Description, req.OrderCode, req.ReturnURL)
	mac := hmac.New(sha256.New, []byte(c.checksumKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// CreateCheckoutLink creates a hosted checkout and returns its URL.
func (c *Client) CreateCheckoutLink(ctx context.Context, req portssvc.CreateCheckoutLinkRequest) (string, error) {
	body := createPaymentRequest{
		OrderCode: req.OrderCode,
		// PayOS amounts are integral VND.
		Amount:      req.Amount.Round(0).IntPart(),
		Description: req.Description,
		ReturnURL:   req.ReturnURL,
		CancelURL:   req.CancelURL,
	}
	body.Signature = c.signature(body)

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v2/payment-requests", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", c.clientID)
	httpReq.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checkout request returned status %d", resp.StatusCode)
	}

	var decoded createPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode checkout response: %w", err)
	}

	// "00" is the PayOS success code.
	if decoded.Code != "00" {
		return "", fmt.Errorf("checkout rejected by gateway: code=%s desc=%s", decoded.Code, decoded.Desc)
	}
	if decoded.Data.CheckoutURL == "" {
		return "", fmt.Errorf("gateway returned no checkout URL")
	}
	return decoded.Data.CheckoutURL, nil
}
