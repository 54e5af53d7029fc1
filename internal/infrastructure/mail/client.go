package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"talenthub/internal/config"
)

// Mailer sends the transactional emails the auth flow needs. Implementations
// must be safe to call concurrently.
type Mailer interface {
	SendVerification(ctx context.Context, to, actionURL string) error
	SendPasswordReset(ctx context.Context, to, actionURL string) error
}

// Client talks to a SendGrid-compatible mail API over HTTP.
type Client struct {
	apiKey    string
	baseURL   string
	fromEmail string
	fromName  string
	client    *http.Client
}

func NewClient(cfg config.MailConfig) *Client {
	return &Client{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.APIBase, "/"),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SendVerification(ctx context.Context, to, actionURL string) error {
	return c.send(ctx, to, "Verify your email", renderTemplate(verifyEmailTemplate, actionURL))
}

func (c *Client) SendPasswordReset(ctx context.Context, to, actionURL string) error {
	return c.send(ctx, to, "Reset your password", renderTemplate(passwordResetTemplate, actionURL))
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []address `json:"to"`
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (c *Client) send(ctx context.Context, to, subject, html string) error {
	body := sendRequest{
		Personalizations: []personalization{{To: []address{{Email: to}}}},
		From:             address{Email: c.fromEmail, Name: c.fromName},
		Subject:          subject,
		Content:          []content{{Type: "text/html", Value: html}},
	}

	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/mail/send", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail API HTTP %d", resp.StatusCode)
	}
	return nil
}

func renderTemplate(tmpl, actionURL string) string {
	return strings.ReplaceAll(tmpl, "{{action_url}}", actionURL)
}
