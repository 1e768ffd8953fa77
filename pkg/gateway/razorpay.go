package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RazorpayClient talks to the Razorpay Orders/Payments REST API using basic
// auth with the key id/secret pair.
type RazorpayClient struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	client    *http.Client
}

func NewRazorpayClient(baseURL, keyID, keySecret string) *RazorpayClient {
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}
	return &RazorpayClient{
		BaseURL:   baseURL,
		KeyID:     keyID,
		KeySecret: keySecret,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type razorpayOrderReq struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Receipt        string            `json:"receipt,omitempty"`
	PaymentCapture int               `json:"payment_capture"`
	Notes          map[string]string `json:"notes,omitempty"`
}

type razorpayOrderResp struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func (c *RazorpayClient) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	payload := razorpayOrderReq{
		Amount:         req.AmountMinor,
		Currency:       req.Currency,
		Receipt:        req.Receipt,
		PaymentCapture: 1,
		Notes:          req.Notes,
	}
	var out razorpayOrderResp
	if err := c.do(ctx, http.MethodPost, "/v1/orders", payload, &out); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &Intent{
		GatewayOrderID: out.ID,
		AmountMinor:    out.Amount,
		Currency:       out.Currency,
	}, nil
}

func (c *RazorpayClient) EditReceipt(ctx context.Context, gatewayOrderID, receipt string) error {
	payload := map[string]string{"receipt": receipt}
	if err := c.do(ctx, http.MethodPatch, "/v1/orders/"+gatewayOrderID, payload, nil); err != nil {
		return fmt.Errorf("edit receipt: %w", err)
	}
	return nil
}

type razorpayPaymentResp struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

func (c *RazorpayClient) FetchPayment(ctx context.Context, gatewayPaymentID string) (*PaymentDetails, error) {
	var out razorpayPaymentResp
	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+gatewayPaymentID, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch payment: %w", err)
	}
	return &PaymentDetails{
		Status:      out.Status,
		AmountMinor: out.Amount,
		Method:      out.Method,
	}, nil
}

func (c *RazorpayClient) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.KeyID, c.KeySecret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("razorpay %s %s: status %d: %s", method, path, resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}
