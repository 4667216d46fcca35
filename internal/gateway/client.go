package gateway

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

	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// LocalTimeLayout is the wall-clock layout the remote endpoint expects. The
// value carries no zone designator on purpose: the endpoint interprets it in
// its own configured timezone, so it must never be converted to UTC first.
const LocalTimeLayout = "2006-01-02T15:04:05"

// FormatLocal renders a publish timestamp in the endpoint's wall-clock form.
func FormatLocal(t time.Time) string {
	return t.Format(LocalTimeLayout)
}

var (
	ErrEndpointRequired    = errors.New("gateway: target endpoint is required")
	ErrExternalRefRequired = errors.New("gateway: external reference is required")
)

// RemoteError reports a non-success response from the publishing endpoint.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("gateway: endpoint returned %d: %s", e.StatusCode, e.Body)
}

// Client talks to a WordPress-compatible REST endpoint. Posts are created with
// a "future" status so the remote system performs the actual publishing when
// the scheduled moment arrives.
type Client struct {
	httpClient *http.Client
	logger     interfaces.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger attaches a logger to the client.
func WithLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a gateway client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createPayload struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Slug          string `json:"slug,omitempty"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	FeaturedMedia string `json:"featured_media_url,omitempty"`
}

type createResponse struct {
	ID   json.Number `json:"id"`
	Link string      `json:"link"`
}

// CreateScheduledPost registers a post on the remote endpoint for future
// publication at localTimestamp. The returned acceptance carries the remote
// identifier needed to cancel the post later.
func (c *Client) CreateScheduledPost(ctx context.Context, creds interfaces.TargetCredentials, post interfaces.GatewayPost, localTimestamp string) (*interfaces.GatewayAcceptance, error) {
	if strings.TrimSpace(creds.Endpoint) == "" {
		return nil, ErrEndpointRequired
	}

	rendered, err := RenderBody(post.Body)
	if err != nil {
		return nil, err
	}

	payload := createPayload{
		Title:         post.Title,
		Content:       rendered,
		Slug:          SlugForTitle(post.Title),
		Status:        "future",
		Date:          localTimestamp,
		FeaturedMedia: post.MediaURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gateway: encode post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, postsURL(creds.Endpoint), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(creds.Principal, creds.Secret)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: create scheduled post: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("gateway: read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &RemoteError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var accepted createResponse
	if err := json.Unmarshal(raw, &accepted); err != nil {
		return nil, fmt.Errorf("gateway: decode response: %w", err)
	}

	c.logger.Debug("scheduled post accepted", "external_ref", accepted.ID.String(), "date", localTimestamp)

	return &interfaces.GatewayAcceptance{
		ExternalRef: accepted.ID.String(),
		Link:        accepted.Link,
	}, nil
}

// CancelScheduledPost removes a previously accepted post from the remote
// endpoint. Cancelling a post that no longer exists returns a RemoteError
// with the endpoint's 404 status.
func (c *Client) CancelScheduledPost(ctx context.Context, creds interfaces.TargetCredentials, externalRef string) error {
	if strings.TrimSpace(creds.Endpoint) == "" {
		return ErrEndpointRequired
	}
	if strings.TrimSpace(externalRef) == "" {
		return ErrExternalRefRequired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, postsURL(creds.Endpoint)+"/"+externalRef+"?force=true", nil)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.SetBasicAuth(creds.Principal, creds.Secret)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: cancel scheduled post: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		return &RemoteError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	c.logger.Debug("scheduled post cancelled", "external_ref", externalRef)
	return nil
}

func postsURL(endpoint string) string {
	return strings.TrimRight(endpoint, "/") + "/wp-json/wp/v2/posts"
}

var _ interfaces.PublishingGateway = (*Client)(nil)
