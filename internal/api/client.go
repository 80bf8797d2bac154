// Package api implements the InvestiPet API client. All server
// communication flows through Client.call, which attaches the bearer
// credential, performs a single transparent refresh on 401, and maps
// failures onto the AuthError/HTTPError/NetworkError taxonomy.
package api

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

	"go.uber.org/zap"

	"github.com/investipet/investipet/internal/auth"
)

// Client is the InvestiPet API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      auth.Store
	log        *zap.Logger

	// refreshMu serializes credential refreshes so two 401s in flight
	// trigger one refresh, not two.
	refreshMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Timeouts are owned
// by the transport; the gateway imposes no deadline of its own.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the API at baseURL using creds for bearer
// credentials. The Client is the only component permitted to rewrite stored
// credentials outside the login/register/logout flows.
func New(baseURL string, creds auth.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		creds:      creds,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call performs one authenticated request. On a 401 with a stored refresh
// token it refreshes the credentials once and retries the original request
// once with the new access token; any further 401 surfaces as-is. A 401
// with nothing to refresh (wrong password on login, signed-out session)
// surfaces the server's own message.
func (c *Client) call(ctx context.Context, method, path string, body any, schema *Schema, out any) error {
	start := time.Now()

	status, raw, err := c.send(ctx, method, path, body, c.creds.Tokens().Access)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}

	if status == http.StatusUnauthorized {
		if c.creds.Tokens().Refresh == "" {
			// Nothing to refresh with. This 401 is the server rejecting the
			// request itself (wrong password on login, signed-out session),
			// so its own message must surface.
			return &HTTPError{StatusCode: status, Message: errorMessage(raw, status)}
		}
		access, rerr := c.refreshAccess(ctx)
		if rerr != nil {
			c.log.Warn("credential refresh failed", zap.String("path", path), zap.Error(rerr))
			return rerr
		}
		status, raw, err = c.send(ctx, method, path, body, access)
		if err != nil {
			return err
		}
	}

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)))

	if status < 200 || status >= 300 {
		return &HTTPError{StatusCode: status, Message: errorMessage(raw, status)}
	}

	if err := validateShape(schema, raw); err != nil {
		return &DecodeError{Endpoint: path, Err: err}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &DecodeError{Endpoint: path, Err: err}
		}
	}
	return nil
}

// send performs a single HTTP round trip and returns the status and body.
func (c *Client) send(ctx context.Context, method, path string, body any, token string) (int, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &NetworkError{Err: fmt.Errorf("read body: %w", err)}
	}
	return resp.StatusCode, raw, nil
}

// refreshAccess exchanges the stored refresh token for a new credential
// pair, persists it, and returns the new access token. On any refresh
// failure the stored credentials are cleared and an AuthError surfaces.
func (c *Client) refreshAccess(ctx context.Context) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	t := c.creds.Tokens()
	if t.Refresh == "" {
		_ = c.creds.Clear()
		return "", &AuthError{Err: errors.New("no refresh token")}
	}

	status, raw, err := c.send(ctx, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": t.Refresh}, "")
	if err != nil {
		// Transport failure, not a credential rejection: keep the stored
		// pair so a later retry can still refresh.
		return "", err
	}
	if status < 200 || status >= 300 {
		_ = c.creds.Clear()
		return "", &AuthError{Err: fmt.Errorf("refresh rejected: %s", errorMessage(raw, status))}
	}

	if err := validateShape(tokenPairSchema, raw); err != nil {
		_ = c.creds.Clear()
		return "", &AuthError{Err: err}
	}
	var pair TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		_ = c.creds.Clear()
		return "", &AuthError{Err: err}
	}

	if err := c.creds.Set(auth.Tokens{Access: pair.AccessToken, Refresh: pair.RefreshToken}); err != nil {
		return "", fmt.Errorf("store refreshed credentials: %w", err)
	}
	return pair.AccessToken, nil
}

// errorMessage extracts the server's structured error message from a
// non-2xx body: a {detail} string when present, the stringified JSON body
// otherwise, and the transport status text for unparseable bodies.
func errorMessage(raw []byte, status int) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		if detail, ok := body["detail"].(string); ok {
			return detail
		}
		if compact, err := json.Marshal(body); err == nil {
			return string(compact)
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "request failed"
}
