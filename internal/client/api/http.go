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
	"time"

	"github.com/dmitrijs2005/dojoauth/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	LoginPath   = "/api/login"
	SignupPath  = "/api/cadastro"
	ProfilePath = "/api/perfil"

	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 1 << 20
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at baseURL. timeout bounds
// each request including reading the body; zero means no timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "api"),
	}
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	return c.postAuth(ctx, LoginPath, req)
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	return c.postAuth(ctx, SignupPath, req)
}

// GetProtected fetches path with token as a bearer credential and returns the
// body unchanged. A 401/403 yields an *Error matching ErrUnauthorized whatever
// the body looks like.
func (c *HTTPClient) GetProtected(ctx context.Context, path, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	hc := &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.httpClient.Transport,
		},
	}

	status, body, err := c.do(hc, req)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		e := &Error{StatusCode: status}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil {
			e.Message = eb.Message
		}
		return nil, e
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s is not JSON", ErrMalformedResponse, path)
	}
	return json.RawMessage(body), nil
}

func (c *HTTPClient) postAuth(ctx context.Context, path string, payload any) (*AuthResponse, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(c.httpClient, req)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err != nil {
			return nil, fmt.Errorf("%w: status %d: %w", ErrMalformedResponse, status, err)
		}
		return nil, &Error{StatusCode: status, Message: eb.Message}
	}

	var ar AuthResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if ar.Token == "" || len(ar.User) == 0 || string(ar.User) == "null" {
		return nil, fmt.Errorf("%w: token or usuario missing", ErrMalformedResponse)
	}
	return &ar, nil
}

func (c *HTTPClient) do(hc *http.Client, req *http.Request) (int, []byte, error) {
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	log := c.log.With("request_id", requestID, "method", req.Method, "path", req.URL.Path)
	start := time.Now()

	resp, err := hc.Do(req)
	if err != nil {
		log.Warn(req.Context(), "request failed", "err", err)
		return 0, nil, mapError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn(req.Context(), "reading response failed", "status", resp.StatusCode, "err", err)
		return 0, nil, mapError(err)
	}

	log.Debug(req.Context(), "request done", "status", resp.StatusCode, "elapsed", time.Since(start))
	return resp.StatusCode, body, nil
}

func (c *HTTPClient) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// mapError classifies transport failures. Caller cancellation is passed
// through so that it is not reported as an outage.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
