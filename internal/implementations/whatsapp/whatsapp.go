package whatsapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	c "remindchat/internal/core/domain/common"
	"strings"
	"time"
)

const (
	DEFAULT_BASE_URL = "https://api.twilio.com"
	MAX_BODY_LENGTH  = 1600
)

type Credentials struct {
	AccountSID string
	AuthToken  string
	From       c.PhoneHandle
}

// TwilioSender sends WhatsApp messages through the Twilio Messages API.
type TwilioSender struct {
	httpClient  http.Client
	baseURL     url.URL
	credentials Credentials
}

func NewTwilioSender(baseURL url.URL, credentials Credentials, timeout time.Duration) *TwilioSender {
	if credentials.AccountSID == "" || credentials.AuthToken == "" || credentials.From == "" {
		panic("Twilio credentials must be set.")
	}
	return &TwilioSender{
		httpClient:  http.Client{Timeout: timeout},
		baseURL:     baseURL,
		credentials: credentials,
	}
}

func address(handle c.PhoneHandle) string {
	return c.WHATSAPP_PREFIX + string(c.NewPhoneHandle(string(handle)))
}

// truncate cuts text to at most MAX_BODY_LENGTH characters.
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MAX_BODY_LENGTH {
		return text
	}
	return string(runes[:MAX_BODY_LENGTH])
}

func (s *TwilioSender) Send(ctx context.Context, to c.PhoneHandle, text string) error {
	endpoint := s.baseURL.JoinPath("2010-04-01", "Accounts", s.credentials.AccountSID, "Messages.json")
	form := url.Values{}
	form.Set("From", address(s.credentials.From))
	form.Set("To", address(to))
	form.Set("Body", truncate(text))

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	request.SetBasicAuth(s.credentials.AccountSID, s.credentials.AuthToken)
	request.Header.Add("content-type", "application/x-www-form-urlencoded")
	resp, err := s.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("could not reach Twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err != nil {
			return err
		}
		return fmt.Errorf("got unsuccessful response from Twilio (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}
