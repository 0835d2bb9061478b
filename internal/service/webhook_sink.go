package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"blindbuy-escrow/internal/core/domain"

	"github.com/rs/zerolog"
)

// webhookRetryIntervals are the waits between delivery attempts.
var webhookRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

const HeaderEventType = "X-Event-Type"

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookSink implements ports.EventSink by POSTing each event, HMAC-signed
// with the escrow's own peer credentials, to one configured URL.
type WebhookSink struct {
	url        string
	accessKey  string
	secretKey  string
	signer     *HMACSignatureService
	httpClient HTTPClient
	retries    []time.Duration
	log        zerolog.Logger
}

// NewWebhookSink creates a webhook sink.
func NewWebhookSink(url, accessKey, secretKey string, signer *HMACSignatureService, httpClient HTTPClient, log zerolog.Logger) *WebhookSink {
	return &WebhookSink{
		url:        url,
		accessKey:  accessKey,
		secretKey:  secretKey,
		signer:     signer,
		httpClient: httpClient,
		retries:    webhookRetryIntervals,
		log:        log,
	}
}

func (s *WebhookSink) Name() string { return "webhook" }

// Send delivers ev, retrying on transport errors and non-2xx responses.
// It returns when delivered, when retries are exhausted, or when ctx ends.
func (s *WebhookSink) Send(ctx context.Context, ev domain.Event) error {
	body, err := json.Marshal(ev.Payload())
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}
	log := s.log.With().Str("event_id", ev.ID.String()).Str("event_type", string(ev.Type)).Logger()

	var lastErr error
	for attempt := 0; attempt <= len(s.retries); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retries[attempt-1]):
			}
		}

		status, err := s.deliver(ctx, ev, body)
		if err == nil {
			log.Debug().Int("attempt", attempt+1).Int("status", status).Msg("webhook: delivered")
			return nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt+1).Msg("webhook: delivery failed")
	}

	log.Error().Err(lastErr).Msg("webhook: all retry attempts exhausted")
	return fmt.Errorf("webhook: giving up after %d attempts: %w", len(s.retries)+1, lastErr)
}

func (s *WebhookSink) deliver(ctx context.Context, ev domain.Event, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEventType, string(ev.Type))
	s.signer.SignRequest(req, s.accessKey, s.secretKey, body)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("non-2xx response: %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
