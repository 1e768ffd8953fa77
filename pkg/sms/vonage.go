package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// VonageSender sends SMS via the Vonage SMS API.
type VonageSender struct {
	APIKey    string
	APISecret string
	From      string
	BaseURL   string
	client    *http.Client
}

func NewVonageSender(apiKey, apiSecret, from string) *VonageSender {
	return &VonageSender{
		APIKey:    apiKey,
		APISecret: apiSecret,
		From:      from,
		BaseURL:   "https://rest.nexmo.com",
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type vonageResp struct {
	Messages []struct {
		Status    string `json:"status"`
		ErrorText string `json:"error-text"`
	} `json:"messages"`
}

func (s *VonageSender) Send(ctx context.Context, to, text string) error {
	form := url.Values{}
	form.Set("api_key", s.APIKey)
	form.Set("api_secret", s.APISecret)
	form.Set("from", s.From)
	form.Set("to", strings.TrimPrefix(to, "+"))
	form.Set("text", text)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/sms/json", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vonage sms: status %d", resp.StatusCode)
	}
	var out vonageResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if len(out.Messages) == 0 {
		return fmt.Errorf("vonage sms: empty response")
	}
	// Status "0" means accepted for delivery.
	if out.Messages[0].Status != "0" {
		return fmt.Errorf("vonage sms: %s", out.Messages[0].ErrorText)
	}
	return nil
}
