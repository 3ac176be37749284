package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/staffport/attendance-backend-go/internal/config"
	"github.com/staffport/attendance-backend-go/internal/domain/notification"
)

const apiBaseURL = "https://api.twilio.com/2010-04-01"

// Client delivers WhatsApp messages through the Twilio Messages API. It
// implements notification.DeliveryChannel.
type Client struct {
	cfg        config.TwilioConfig
	httpClient *http.Client
	baseURL    string
}

func New(cfg config.TwilioConfig) *Client {
	if cfg.AccountSID == "" {
		slog.Warn("Twilio not configured, WhatsApp deliveries will fail")
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    apiBaseURL,
	}
}

// NewWithBaseURL is used by tests to point the client at a stub server.
func NewWithBaseURL(cfg config.TwilioConfig, baseURL string) *Client {
	c := New(cfg)
	c.baseURL = baseURL
	return c
}

func (c *Client) Kind() notification.Channel {
	return notification.ChannelWhatsApp
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) Send(ctx context.Context, to notification.Recipient, _ string, body string) error {
	if c.cfg.AccountSID == "" {
		return fmt.Errorf("whatsapp channel not configured")
	}

	toPhone := to.Address
	if !strings.HasPrefix(toPhone, "whatsapp:") {
		toPhone = "whatsapp:" + toPhone
	}

	form := url.Values{}
	form.Set("From", c.cfg.WhatsAppNumber)
	form.Set("To", toPhone)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build twilio request: %w", err)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr apiError
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("twilio API error [%d] %d: %s", resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("twilio API error [%d]", resp.StatusCode)
	}

	slog.Info("WhatsApp message sent", "to", to.Address)
	return nil
}
