package brevo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	json "github.com/goccy/go-json"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

const DefaultEndpoint = "https://api.brevo.com/v3/smtp/email"

// Config параметры клиента Brevo
type Config struct {
	Enabled     bool
	APIKey      string
	Endpoint    string
	SenderEmail string
	SenderName  string
	Sandbox     bool
	Timeout     time.Duration
	MaxRetries  uint
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Client отправляет транзакционные письма клиентам через Brevo
type Client struct {
	cfg        Config
	catalog    domain.Catalog
	httpClient *http.Client
	backoff    func() backoff.BackOff
	log        Logger
}

// NewClient создает клиент Brevo
// Если ключ или отправитель не заданы, клиент работает в выключенном режиме и возвращает ErrDisabled
func NewClient(cfg Config, catalog domain.Catalog, log Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if strings.TrimSpace(cfg.SenderName) == "" {
		cfg.SenderName = cfg.SenderEmail
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 1
	}
	if strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.SenderEmail) == "" {
		cfg.Enabled = false
	}

	return &Client{
		cfg:        cfg,
		catalog:    catalog,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		},
		log: log,
	}
}

// Enabled возвращает true, если отправка писем настроена
func (c *Client) Enabled() bool {
	return c.cfg.Enabled
}

// SendConfirmation письмо о подтверждении бронирования
func (c *Client) SendConfirmation(ctx context.Context, b *domain.Booking) error {
	html, err := render(confirmationTmpl, newEmailData(b, c.catalog))
	if err != nil {
		return fmt.Errorf("%w: render confirmation: %v", ErrInternal, err)
	}
	subject := fmt.Sprintf("Confirmation de votre rendez-vous - %s", c.catalog.DisplayName(b.ServiceID))
	return c.send(ctx, b, subject, html, "booking-confirmation")
}

// SendCancellation письмо об отмене бронирования
func (c *Client) SendCancellation(ctx context.Context, b *domain.Booking) error {
	html, err := render(cancellationTmpl, newEmailData(b, c.catalog))
	if err != nil {
		return fmt.Errorf("%w: render cancellation: %v", ErrInternal, err)
	}
	subject := fmt.Sprintf("Annulation de votre rendez-vous du %s", FormatDateFR(b.Date))
	return c.send(ctx, b, subject, html, "booking-cancellation")
}

func (c *Client) send(ctx context.Context, b *domain.Booking, subject, html, tag string) error {
	if !c.cfg.Enabled {
		c.log.Warn("Brevo disabled, %s e-mail for booking id=%s not sent", tag, b.ID)
		return ErrDisabled
	}
	if strings.TrimSpace(b.Email) == "" {
		return fmt.Errorf("%w: missing recipient email", ErrInvalidRequest)
	}

	payload := sendRequest{
		Sender:      sender{Name: c.cfg.SenderName, Email: c.cfg.SenderEmail},
		To:          []recipient{{Email: b.Email, Name: b.Name}},
		Subject:     subject,
		HTMLContent: html,
		Tags:        []string{tag},
	}
	if c.cfg.Sandbox {
		payload.Headers = map[string]string{"X-Sib-Sandbox": "drop"}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", ErrInternal, err)
	}

	messageID, err := backoff.Retry(ctx, func() (string, error) {
		return c.post(ctx, raw)
	},
		backoff.WithBackOff(c.backoff()),
		backoff.WithMaxTries(c.cfg.MaxRetries),
	)
	if err != nil {
		return err
	}

	c.log.Info("Brevo %s e-mail accepted for booking id=%s (messageId=%s)", tag, b.ID, messageID)
	return nil
}

// post выполняет один запрос; 4xx помечаются как постоянные ошибки
func (c *Client) post(ctx context.Context, raw []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("%w: failed to create request: %v", ErrInternal, err))
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status=%d body=%s", ErrInvalidResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", backoff.Permanent(fmt.Errorf("%w: status=%d body=%s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", backoff.Permanent(fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err))
	}
	if strings.TrimSpace(out.MessageID) == "" {
		return "", backoff.Permanent(fmt.Errorf("%w: response missing messageId", ErrInvalidResponse))
	}
	return out.MessageID, nil
}
