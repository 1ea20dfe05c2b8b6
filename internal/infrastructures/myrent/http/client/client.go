package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
	"github.com/Golden-Bit/myrent-SDK/internal/infrastructures/myrent/dto"
)

const (
	AuthPath       = "/api/v1/touroperator/authentication"
	LocationsPath  = "/api/v1/touroperator/locations"
	QuotationsPath = "/api/v1/touroperator/quotations"

	TokenHeader = "tokenValue"
	userAgent   = "myrent-go/1.0"
)

// errUnauthorized marks a 401/403 answer so the caller can re-authenticate.
var errUnauthorized = errors.New("unauthorized")

type Config struct {
	BaseURL     string
	UserID      string
	Password    string
	CompanyCode string
	Timeout     time.Duration
	MaxRetries  int
	Backoff     time.Duration
}

type Client struct {
	baseURL     string
	userID      string
	password    string
	companyCode string
	maxRetries  int
	backoff     time.Duration
	httpClient  *http.Client
	log         *zap.Logger

	mu    sync.Mutex
	token string
}

func NewClient(cfg Config, httpClient *http.Client, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		userID:      cfg.UserID,
		password:    cfg.Password,
		companyCode: cfg.CompanyCode,
		maxRetries:  cfg.MaxRetries,
		backoff:     cfg.Backoff,
		httpClient:  httpClient,
		log:         log,
	}
}

func (c *Client) CompanyCode() string {
	return c.companyCode
}

// Authenticate logs in and stores the token for later calls.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	const op = "myrent.Authenticate"

	if c.userID == "" || c.password == "" || c.companyCode == "" {
		return "", fmt.Errorf("%s: %w: missing credentials", op, derr.ErrUpstreamAuth)
	}

	body, err := c.send(ctx, http.MethodPost, AuthPath, dto.AuthenticationRequest{
		UserID:      c.userID,
		Password:    c.password,
		CompanyCode: c.companyCode,
	}, "")
	if err != nil {
		if errors.Is(err, errUnauthorized) {
			return "", fmt.Errorf("%s: %w", op, derr.ErrUpstreamAuth)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var resp dto.AuthenticationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%s: %w: decode response: %v", op, derr.ErrUpstreamRejected, err)
	}

	token := resp.Token()
	if token == "" {
		return "", fmt.Errorf("%s: %w: no token in response: %s", op, derr.ErrUpstreamAuth, resp.Message)
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	c.log.Debug("upstream authenticated", zap.String("company", c.companyCode))
	return token, nil
}

// Locations returns the decoded locations payload.
func (c *Client) Locations(ctx context.Context) (any, error) {
	const op = "myrent.Locations"

	payload, err := c.authorized(ctx, http.MethodGet, LocationsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload, nil
}

// Quotations returns the decoded quotation payload. An empty channel falls back to the company code.
func (c *Client) Quotations(ctx context.Context, req dto.QuotationRequest) (any, error) {
	const op = "myrent.Quotations"

	if strings.TrimSpace(req.Channel) == "" {
		req.Channel = c.companyCode
	}

	payload, err := c.authorized(ctx, http.MethodPost, QuotationsPath, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload, nil
}

func (c *Client) authorized(ctx context.Context, method, path string, in any) (any, error) {
	token, err := c.currentToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := c.send(ctx, method, path, in, token)
	if errors.Is(err, errUnauthorized) {
		c.log.Info("upstream token rejected, re-authenticating", zap.String("path", path))
		c.dropToken(token)

		token, err = c.Authenticate(ctx)
		if err != nil {
			return nil, err
		}
		body, err = c.send(ctx, method, path, in, token)
		if errors.Is(err, errUnauthorized) {
			return nil, derr.ErrUpstreamAuth
		}
	}
	if err != nil {
		return nil, err
	}

	payload, err := decode(body)
	if err != nil {
		return nil, err
	}
	if upErr := businessError(payload); upErr != nil {
		return nil, upErr
	}
	return payload, nil
}

func (c *Client) currentToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if token != "" {
		return token, nil
	}
	return c.Authenticate(ctx)
}

func (c *Client) dropToken(stale string) {
	c.mu.Lock()
	if c.token == stale {
		c.token = ""
	}
	c.mu.Unlock()
}

// send performs the request and retries 429, 5xx and transport failures with exponential backoff.
func (c *Client) send(ctx context.Context, method, path string, in any, token string) ([]byte, error) {
	var payload []byte
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		payload = raw
	}

	var (
		out     []byte
		attempt int
	)
	backoff := retry.WithMaxRetries(uint64(c.maxRetries), retry.NewExponential(c.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		body, err := c.roundTrip(ctx, method, path, payload, token)
		if err != nil {
			var retryable *transientError
			if errors.As(err, &retryable) {
				c.log.Warn("upstream call failed, retrying",
					zap.String("path", path),
					zap.Int("attempt", attempt),
					zap.Error(err),
				)
				return retry.RetryableError(err)
			}
			return err
		}
		out = body
		return nil
	})
	if err != nil {
		var transient *transientError
		if errors.As(err, &transient) {
			return nil, fmt.Errorf("%w: %d attempts: %v", derr.ErrUpstreamUnavailable, attempt, transient.err)
		}
		return nil, err
	}

	return out, nil
}

type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }

func (e *transientError) Unwrap() error { return e.err }

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, token string) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &transientError{err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transientError{err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", errUnauthorized, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, &transientError{err: fmt.Errorf("unexpected status: %s", resp.Status)}
	default:
		return nil, fmt.Errorf("%w: unexpected status: %s: %s", derr.ErrUpstreamRejected, resp.Status, snippet(body))
	}
}

func decode(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", derr.ErrUpstreamRejected, err)
	}
	return payload, nil
}

// businessError detects status "error" or a data.errors.Error.ShortText node.
func businessError(payload any) *derr.UpstreamError {
	root, ok := payload.(map[string]any)
	if !ok {
		return nil
	}

	status, _ := root["status"].(string)
	data, _ := root["data"].(map[string]any)
	errs, _ := data["errors"].(map[string]any)
	node, _ := errs["Error"].(map[string]any)

	text, _ := node["ShortText"].(string)
	if !strings.EqualFold(status, "error") && text == "" {
		return nil
	}

	code := ""
	if v, ok := node["Code"]; ok && v != nil {
		code = fmt.Sprint(v)
	}
	if text == "" {
		text, _ = root["message"].(string)
	}
	if text == "" {
		text = "upstream reported an error"
	}
	return &derr.UpstreamError{Code: code, Text: text}
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
