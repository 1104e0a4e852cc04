// Package payment integrates the external Snap-style payment provider: an
// outbound call to open a payment session, and an inbound bridge applying
// the provider's asynchronous status notifications to orders.
package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	sandboxBaseURL    = "https://app.sandbox.midtrans.com"
	productionBaseURL = "https://app.midtrans.com"
)

var ErrNotConfigured = errors.New("payment provider not configured: missing server key")

// Session is what the ordering UI needs to hand control to the provider.
type Session struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

type SessionRequest struct {
	OrderID      uint
	Amount       float64
	Method       string // qris, gopay, ovo, ewallet
	CustomerName string
	Phone        string
}

type Client struct {
	ServerKey  string
	HTTPClient *http.Client
	// BaseURL overrides host selection; tests point it at a local server.
	BaseURL string
}

func NewClient(serverKey string) *Client {
	return &Client{ServerKey: serverKey, HTTPClient: http.DefaultClient}
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if strings.Contains(c.ServerKey, "SB-") {
		return sandboxBaseURL
	}
	return productionBaseURL
}

// enabledPayments maps our method selection to the provider's channel list.
// An unknown method leaves the list empty, letting the provider offer all
// channels.
func enabledPayments(method string) []string {
	switch method {
	case "gopay":
		return []string{"gopay"}
	case "ovo":
		return []string{"other_qris"}
	case "qris":
		return []string{"qris"}
	default:
		return nil
	}
}

// CreateSession opens a provider transaction and returns its token and
// redirect URL.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if c.ServerKey == "" {
		return nil, ErrNotConfigured
	}

	name := req.CustomerName
	if name == "" {
		name = "Customer"
	}
	body := map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     strconv.FormatUint(uint64(req.OrderID), 10),
			"gross_amount": req.Amount,
		},
		"customer_details": map[string]interface{}{
			"first_name": name,
			"phone":      req.Phone,
		},
	}
	if channels := enabledPayments(req.Method); channels != nil {
		body["enabled_payments"] = channels
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+"/snap/v1/transactions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.ServerKey+":")))

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}
