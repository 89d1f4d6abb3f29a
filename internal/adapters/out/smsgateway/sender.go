// Package smsgateway delivers text messages through an HTTP SMS provider.
package smsgateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tolkbook/internal/pkg/errs"
)

const defaultClientTimeout = 10 * time.Second

// Sender implements ports.SMSSender against a form-POST SMS gateway.
type Sender struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewSender creates a gateway sender for the given endpoint.
func NewSender(endpoint, apiKey string) (*Sender, error) {
	if endpoint == "" || apiKey == "" {
		return nil, fmt.Errorf("sms gateway endpoint and api key are required")
	}
	return &Sender{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: defaultClientTimeout},
	}, nil
}

// Send delivers one text message.
func (s *Sender) Send(ctx context.Context, from, to, text string) error {
	form := url.Values{}
	form.Set("from", from)
	form.Set("to", to)
	form.Set("message", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return errs.NewDeliveryFailureError("sms", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.NewDeliveryFailureError("sms", to,
			fmt.Errorf("sms gateway returned status %d", resp.StatusCode))
	}
	return nil
}
