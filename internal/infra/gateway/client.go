package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/commands"

	"github.com/cenkalti/backoff/v4"
)

const maxResponseBytes = 1 << 20

var ErrGatewayRejected = errs.New("payment gateway rejected the request")

// Client talks to the payment gateway over HTTP JSON. Transport errors, 429 and 5xx responses
// are retried with exponential backoff; other 4xx responses fail immediately.
type Client struct {
	baseURL       string
	apiKey        string
	apiSecret     string
	webhookSecret []byte
	http          *http.Client

	maxAttempts    uint64
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		apiSecret:      cfg.APISecret,
		webhookSecret:  []byte(cfg.WebhookSecret),
		http:           &http.Client{Timeout: cfg.Timeout},
		maxAttempts:    max(cfg.MaxAttempts, 1),
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
	}
}

type prepareRequest struct {
	OrderRef   string    `json:"order_ref"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	CustomerID string    `json:"customer_id"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type prepareResponse struct {
	ExternalPaymentID string            `json:"external_payment_id"`
	CheckoutParams    map[string]string `json:"checkout_params"`
}

type paymentResponse struct {
	ExternalPaymentID string     `json:"external_payment_id"`
	Status            string     `json:"status"`
	Amount            int64      `json:"amount"`
	OrderRef          string     `json:"order_ref"`
	PaidAt            *time.Time `json:"paid_at"`
	FailReason        string     `json:"fail_reason"`
}

type cancelRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

type cancelResponse struct {
	CancellationID string    `json:"cancellation_id"`
	Amount         int64     `json:"amount"`
	Reason         string    `json:"reason"`
	CancelledAt    time.Time `json:"cancelled_at"`
}

func (c *Client) Prepare(ctx context.Context, req commands.PrepareIntentRequest) (payment.PreparedIntent, error) {
	body := prepareRequest{
		OrderRef:   req.OrderRef,
		Amount:     req.Amount,
		Currency:   req.Currency,
		CustomerID: req.CustomerID.String(),
		ExpiresAt:  req.ExpiresAt.UTC(),
	}
	var resp prepareResponse
	if err := c.do(ctx, http.MethodPost, "/payments/prepare", body, "", &resp); err != nil {
		return payment.PreparedIntent{}, err
	}
	if resp.ExternalPaymentID == "" {
		return payment.PreparedIntent{}, errs.Mark(errs.New("prepare response without payment id"), ErrGatewayRejected)
	}
	return payment.PreparedIntent{
		ExternalID:     resp.ExternalPaymentID,
		CheckoutParams: resp.CheckoutParams,
	}, nil
}

func (c *Client) GetPayment(ctx context.Context, externalID string) (payment.GatewayPayment, error) {
	var resp paymentResponse
	if err := c.do(ctx, http.MethodGet, "/payments/"+url.PathEscape(externalID), nil, "", &resp); err != nil {
		return payment.GatewayPayment{}, err
	}
	return payment.GatewayPayment{
		ExternalID: resp.ExternalPaymentID,
		Status:     payment.GatewayStatus(resp.Status),
		Amount:     resp.Amount,
		OrderRef:   resp.OrderRef,
		PaidAt:     resp.PaidAt,
		FailReason: resp.FailReason,
	}, nil
}

func (c *Client) CancelPayment(ctx context.Context, req commands.CancelIntentRequest) (payment.CancellationRecord, error) {
	body := cancelRequest{Amount: req.Amount, Reason: req.Reason}
	var resp cancelResponse
	path := "/payments/" + url.PathEscape(req.ExternalID) + "/cancel"
	if err := c.do(ctx, http.MethodPost, path, body, req.IdempotencyKey, &resp); err != nil {
		return payment.CancellationRecord{}, err
	}
	return payment.CancellationRecord{
		ID:          resp.CancellationID,
		Amount:      resp.Amount,
		Reason:      resp.Reason,
		CancelledAt: resp.CancelledAt,
	}, nil
}

// VerifySignature checks a hex HMAC-SHA256 of the raw webhook body.
func (c *Client) VerifySignature(payload []byte, signature string) bool {
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil || len(got) == 0 {
		return false
	}
	return hmac.Equal(got, Sign(c.webhookSecret, payload))
}

func Sign(secret, payload []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

func (c *Client) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if c.initialBackoff > 0 {
		b.InitialInterval = c.initialBackoff
	}
	if c.maxBackoff > 0 {
		b.MaxInterval = c.maxBackoff
	}
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, c.maxAttempts-1), ctx)
}

func (c *Client) do(ctx context.Context, method, path string, in any, idempotencyKey string, out any) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return errs.Wrap(err, "encode gateway request")
		}
	}

	attempt := 0
	op := func() error {
		attempt++
		return c.roundTrip(ctx, method, path, payload, idempotencyKey, out)
	}
	notify := func(err error, wait time.Duration) {
		slog.Warn("payment gateway call failed, retrying",
			"method", method,
			"path", path,
			"attempt", attempt,
			"wait", wait.String(),
			"error", err.Error())
	}

	err := backoff.RetryNotify(op, c.backOff(ctx), notify)
	if err == nil {
		return nil
	}
	if errs.Is(err, ErrGatewayRejected) {
		return err
	}
	slog.Error("payment gateway unavailable, manual reconciliation may be required",
		"method", method,
		"path", path,
		"attempts", attempt,
		"error", err.Error())
	return errs.Mark(errs.Wrapf(err, "gateway %s %s", method, path), payment.ErrGatewayUnavailable)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, idempotencyKey string, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return backoff.Permanent(errs.Wrap(err, "build gateway request"))
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Wrap(err, "gateway request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errs.Wrap(err, "read gateway response")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return errs.Newf("gateway responded %d: %s", resp.StatusCode, truncate(respBody))
	case resp.StatusCode >= http.StatusBadRequest:
		return backoff.Permanent(errs.Mark(
			errs.Newf("gateway responded %d: %s", resp.StatusCode, truncate(respBody)),
			ErrGatewayRejected))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return backoff.Permanent(errs.Mark(errs.Wrap(err, "decode gateway response"), ErrGatewayRejected))
	}
	return nil
}

func truncate(b []byte) string {
	const limit = 256
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
