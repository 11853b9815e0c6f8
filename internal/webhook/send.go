package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const sendRetries = 3

// platform error code for rate limiting
const errCodeRateLimited = 4

// Sender delivers outbound messages to a conversation participant.
type Sender interface {
	Send(ctx context.Context, recipientID, text string) error
}

// Client sends messages through the Messenger Graph API, throttled by a
// local rate limiter.
type Client struct {
	graphURL  string
	pageToken string
	http      *http.Client
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewClient builds a send client. sendRate is messages per second and burst
// the momentary allowance.
func NewClient(graphURL, pageToken string, sendRate float64, burst int, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if burst < 1 {
		burst = 1
	}
	return &Client{
		graphURL:  graphURL,
		pageToken: pageToken,
		http:      &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Limit(sendRate), burst),
		logger:    logger,
	}
}

type sendPayload struct {
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
	MessagingType string `json:"messaging_type"`
}

type graphError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Send posts one text message, retrying on platform rate limits with
// exponential backoff.
func (c *Client) Send(ctx context.Context, recipientID, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for send slot: %w", err)
	}

	var payload sendPayload
	payload.Recipient.ID = recipientID
	payload.Message.Text = text
	payload.MessagingType = "RESPONSE"

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding send payload: %w", err)
	}

	endpoint := c.graphURL + "?" + url.Values{"access_token": {c.pageToken}}.Encode()

	var lastErr error
	for attempt := 0; attempt < sendRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("creating send request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return nil
		}

		var ge graphError
		if json.Unmarshal(respBody, &ge) == nil && ge.Error.Code == errCodeRateLimited {
			wait := time.Duration(1<<attempt) * time.Second
			c.logger.Warn("send rate limited by platform",
				zap.Duration("backoff", wait),
				zap.Int("attempt", attempt+1))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
			lastErr = fmt.Errorf("rate limited: %s", ge.Error.Message)
			continue
		}

		return fmt.Errorf("send failed with status %d: %s", resp.StatusCode, respBody)
	}

	return fmt.Errorf("send failed after %d attempts: %w", sendRetries, lastErr)
}
