package promotions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/greenhollow/leafmarket-pricing/pkg/errors"
)

const (
	validateAction              = "validate"
	errorBodyReadLimit    int64 = 1024
	defaultRequestTimeout       = 10 * time.Second
)

var (
	errBaseURLRequired = errors.New("marketplace base URL is required")

	// ErrNotFound signals the backend has no record for the code.
	ErrNotFound = errors.New("promotion not found")
)

// Client calls the legacy marketplace endpoint that owns promotion
// records. The endpoint is shared with promotion creation; the action
// discriminator keeps validation traffic apart.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithAPIKey sets the bearer credential sent to the marketplace.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// NewClient builds a marketplace promotions client.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return client, nil
}

type validateRequest struct {
	Code         string          `json:"code"`
	CartSubtotal decimal.Decimal `json:"cart_subtotal"`
	BusinessID   string          `json:"business_id"`
	Action       string          `json:"action"`
}

// Lookup fetches the promotion record for a code. Returns ErrNotFound
// when the backend answers without a promotion id; any transport or
// payload problem surfaces as a dependency error.
func (c *Client) Lookup(ctx context.Context, code string, cartSubtotal decimal.Decimal, businessID string) (*PromotionRecord, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "marketplace client not configured")
	}

	payload, err := json.Marshal(validateRequest{
		Code:         code,
		CartSubtotal: cartSubtotal,
		BusinessID:   businessID,
		Action:       validateAction,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal promotion lookup")
	}

	url := c.baseURL + "/promotions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build promotion lookup")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute promotion lookup")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "promotion lookup failed")
	}

	var apiResp struct {
		Data *wirePromotion `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode promotion lookup response")
	}

	// The backend answers 200 with an empty data object for unknown
	// codes; the id is the only reliable existence signal.
	if apiResp.Data == nil || strings.TrimSpace(apiResp.Data.ID) == "" {
		return nil, ErrNotFound
	}

	record, err := apiResp.Data.toRecord()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "malformed promotion payload")
	}
	return record, nil
}
