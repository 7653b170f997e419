// Package gateway is the typed HTTP client for the backend API. It owns the
// token pair: the access token is attached to every call and refreshed once,
// transparently, when the server answers 401.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gestorapp/gestor/internal/common"
)

type Gateway struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func New(baseURL string, timeout time.Duration) *Gateway {
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetTokens installs a token pair, e.g. one restored from disk.
func (g *Gateway) SetTokens(accessToken, refreshToken string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.accessToken = accessToken
	g.refreshToken = refreshToken
}

// Tokens returns the current pair so callers can persist it.
func (g *Gateway) Tokens() (accessToken, refreshToken string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.accessToken, g.refreshToken
}

type apiError struct {
	Err struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// sentinelFor maps an HTTP status onto the shared error sentinels so callers
// can branch with errors.Is.
func sentinelFor(status int) error {
	switch status {
	case http.StatusBadRequest:
		return common.ErrorValidation
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusForbidden:
		return common.ErrorForbidden
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorEmailAlreadyExists
	default:
		return common.ErrorInternal
	}
}

func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return g.doOnce(ctx, method, path, query, body, out, true)
}

func (g *Gateway) doOnce(ctx context.Context, method, path string, query url.Values, body, out any, allowRefresh bool) error {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	g.mu.Lock()
	token := g.accessToken
	g.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && allowRefresh && !strings.HasPrefix(path, "/auth/") {
		if rerr := g.refresh(ctx); rerr == nil {
			return g.doOnce(ctx, method, path, query, body, out, false)
		}
	}

	if resp.StatusCode >= 400 {
		var ae apiError
		if derr := json.NewDecoder(resp.Body).Decode(&ae); derr == nil && ae.Err.Message != "" {
			return fmt.Errorf("%w: %s", sentinelFor(resp.StatusCode), ae.Err.Message)
		}
		return fmt.Errorf("%w: status %d", sentinelFor(resp.StatusCode), resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// refresh exchanges the stored refresh token for a new pair. Concurrent
// callers are serialized; a failure clears both tokens so the next call
// surfaces as unauthorized.
func (g *Gateway) refresh(ctx context.Context) error {
	g.mu.Lock()
	refreshToken := g.refreshToken
	g.mu.Unlock()
	if refreshToken == "" {
		return common.ErrorUnauthorized
	}

	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	err := g.doOnce(ctx, http.MethodPost, "/auth/refresh", nil,
		map[string]string{"refreshToken": refreshToken}, &pair, false)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.accessToken, g.refreshToken = "", ""
		return err
	}
	g.accessToken, g.refreshToken = pair.AccessToken, pair.RefreshToken
	return nil
}
