// Package booker is the REST client for the booking platform. Every call
// asserts the exact status code the remote contractually returns (including
// its non-conventional ones) and records the full exchange for diagnostics.
package booker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/almoelda/restful-booker-automation/internal/config"
	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/almoelda/restful-booker-automation/internal/tools/requesting"
	"github.com/rs/zerolog"
)

// ErrTokenRequired is returned before any network I/O when a mutating call
// has neither an explicit token nor a cached one.
var ErrTokenRequired = errors.New("authentication token required")

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
	recording  *schema.Recording

	// token is the cached bearer credential. The client instance is its only
	// writer; concurrent test cases needing distinct identities use separate
	// instances, never a shared one.
	mu    sync.Mutex
	token string
}

type OptionFunc func(*options)

type options struct {
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
}

func WithBaseURL(url string) OptionFunc {
	return func(o *options) {
		o.baseURL = url
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithTransport(transport http.RoundTripper) OptionFunc {
	return func(o *options) {
		o.transport = transport
	}
}

func New(logger *zerolog.Logger, optionFuncs ...OptionFunc) *Client {
	opts := options{
		baseURL:   config.FromEnv().APIBaseURL,
		timeout:   defaultTimeout,
		transport: http.DefaultTransport,
	}

	for _, fn := range optionFuncs {
		fn(&opts)
	}

	recording := schema.NewRecording()

	return &Client{
		baseURL: opts.baseURL,
		httpClient: &http.Client{
			Timeout: opts.timeout,
			Transport: &requesting.InterceptorTransport{
				Transport: opts.transport,
				Middlewares: []requesting.TransportMiddleware{
					requesting.NewLoggingTransportMiddleware(logger),
					requesting.NewRecordingTransportMiddleware(recording),
				},
			},
		},
		logger:    logger,
		recording: recording,
	}
}

// Recording exposes the captured request/response history so a failing spec
// can dump it.
func (c *Client) Recording() *schema.Recording {
	return c.recording
}

// CachedToken returns the token stored by the last successful Authenticate.
func (c *Client) CachedToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// tokenOr resolves the credential for a mutating call: the explicit argument
// wins, otherwise the cached token; neither present fails before the network.
func (c *Client) tokenOr(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if cached := c.CachedToken(); cached != "" {
		return cached, nil
	}

	return "", ErrTokenRequired
}

// roundTrip issues one named API call and enforces its expected status code.
// The response body is returned whole; callers bind it to their shape.
func (c *Client) roundTrip(ctx context.Context, name, method, url string, body any, token string, wantStatus int) ([]byte, error) {
	ctx = context.WithValue(ctx, schema.CallNameKey, name)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", name, err)
		}

		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", name, err)
	}

	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	if token != "" {
		request.Header.Set("Cookie", "token="+token)
	}

	rawResponse, doErr := c.httpClient.Do(request)

	response, callErr := requesting.RequestErrors(rawResponse, doErr, wantStatus)
	if callErr != nil {
		if rawResponse != nil {
			rawResponse.Body.Close()
		}

		return nil, fmt.Errorf("%s: %w", name, *callErr)
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", name, err)
	}

	return responseBytes, nil
}
