// Package client is the Go SDK for the phone auth service. It mirrors the
// mobile session provider: a bearer token persisted through a TokenStore and
// an in-memory cache of the signed-in user, re-synced on launch via
// Bootstrap.
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

	"github.com/you/phoneauthsvc/domain"
)

// ErrNotAuthenticated is returned by calls that need a session when the
// client holds no token.
var ErrNotAuthenticated = errors.New("client: not authenticated")

// Client talks to the phone auth API and caches the session state locally.
// All cached state is guarded by a mutex; a Client is safe for concurrent
// use.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore

	mu              sync.Mutex
	token           string
	user            *domain.User
	profileComplete bool
}

// New creates a client against the given base URL ("http://host:port"). A
// nil store falls back to an in-memory one.
func New(baseURL string, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

// SetHTTPClient overrides the underlying HTTP client, for tests and custom
// transports.
func (c *Client) SetHTTPClient(httpc *http.Client) {
	c.httpc = httpc
}

// SendOTPResult reports how a sign-in request was satisfied.
type SendOTPResult struct {
	TestMode bool
	OTP      string
	Warning  string
}

// VerifyResult carries the routing flags the caller needs after a successful
// verification: which onboarding step, if any, the user still has to do.
type VerifyResult struct {
	Success         bool
	HasLanguage     bool
	HasRole         bool
	ProfileComplete bool
	User            *domain.User
}

type apiError struct {
	Error string `json:"error"`
}

type sendOTPResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	TestMode bool   `json:"testMode"`
	OTP      string `json:"otp"`
	Warning  string `json:"warning"`
}

type verifyOTPResponse struct {
	Success bool            `json:"success"`
	User    *domain.User    `json:"user"`
	Token   string          `json:"token"`
	Session *domain.Session `json:"session"`
}

type profileResponse struct {
	Success         bool         `json:"success"`
	User            *domain.User `json:"user"`
	ProfileComplete bool         `json:"profile_complete"`
}

// Bootstrap restores the session on launch: load the persisted token, verify
// it against the server and pull the fresh profile. A rejected token is
// cleared from the store; Bootstrap then returns nil with the client signed
// out. Only transport-level failures are returned as errors.
func (c *Client) Bootstrap(ctx context.Context) error {
	token, err := c.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	status, body, err := c.do(ctx, http.MethodGet, "/auth/verify-session", token, nil)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return c.forget()
	}
	if status != http.StatusOK {
		return apiFailure(status, body)
	}

	status, body, err = c.do(ctx, http.MethodGet, "/users/profile", token, nil)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized || status == http.StatusNotFound {
		return c.forget()
	}
	if status != http.StatusOK {
		return apiFailure(status, body)
	}

	var resp profileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("client: decode profile: %w", err)
	}

	c.mu.Lock()
	c.token = token
	c.user = resp.User
	c.profileComplete = resp.ProfileComplete
	c.mu.Unlock()
	return nil
}

// SignIn requests an OTP for the phone number.
func (c *Client) SignIn(ctx context.Context, phoneNumber string) (*SendOTPResult, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/send-otp", "",
		map[string]string{"phoneNumber": phoneNumber})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apiFailure(status, body)
	}

	var resp sendOTPResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("client: decode send-otp: %w", err)
	}
	return &SendOTPResult{TestMode: resp.TestMode, OTP: resp.OTP, Warning: resp.Warning}, nil
}

// VerifyOTP submits the code. A wrong or expired code yields Success=false
// with a nil error; the session is established and persisted on success, and
// the routing flags tell the caller where to send the user next.
func (c *Client) VerifyOTP(ctx context.Context, phoneNumber, code string) (*VerifyResult, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/verify-otp", "",
		map[string]string{"phoneNumber": phoneNumber, "otp": code})
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest {
		return &VerifyResult{Success: false}, nil
	}
	if status != http.StatusOK {
		return nil, apiFailure(status, body)
	}

	var resp verifyOTPResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("client: decode verify-otp: %w", err)
	}
	if resp.Token == "" || resp.User == nil {
		return nil, errors.New("client: verify-otp response missing session")
	}
	if err := c.tokens.Save(resp.Token); err != nil {
		return nil, err
	}

	complete := domain.NewProfile(resp.User).Complete()
	c.mu.Lock()
	c.token = resp.Token
	c.user = resp.User
	c.profileComplete = complete
	c.mu.Unlock()

	return &VerifyResult{
		Success:         true,
		HasLanguage:     hasValue(resp.User.Language),
		HasRole:         hasValue(resp.User.Role),
		ProfileComplete: complete,
		User:            resp.User,
	}, nil
}

// SignOut revokes the session server-side and always clears the local state,
// even when the API call fails: the user asked to be signed out and stays
// signed out.
func (c *Client) SignOut(ctx context.Context) error {
	token := c.Token()

	var apiErr error
	if token != "" {
		status, body, err := c.do(ctx, http.MethodPost, "/auth/logout", token, nil)
		switch {
		case err != nil:
			apiErr = err
		case status != http.StatusOK:
			apiErr = apiFailure(status, body)
		}
	}
	if err := c.forget(); err != nil {
		return err
	}
	return apiErr
}

// UpdateProfile applies a sparse field update. Keys absent from fields stay
// untouched; keys set to nil clear the column. The cached user and
// completeness flag are refreshed from the response.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*domain.User, bool, error) {
	token := c.Token()
	if token == "" {
		return nil, false, ErrNotAuthenticated
	}

	status, body, err := c.do(ctx, http.MethodPut, "/users/profile", token, fields)
	if err != nil {
		return nil, false, err
	}
	if status != http.StatusOK {
		return nil, false, apiFailure(status, body)
	}

	var resp profileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, false, fmt.Errorf("client: decode profile: %w", err)
	}

	c.mu.Lock()
	c.user = resp.User
	c.profileComplete = resp.ProfileComplete
	c.mu.Unlock()
	return resp.User, resp.ProfileComplete, nil
}

// SetLanguage stores the language preference and mirrors it into the cached
// user.
func (c *Client) SetLanguage(ctx context.Context, language string) error {
	token := c.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	status, body, err := c.do(ctx, http.MethodPut, "/users/language", token,
		map[string]string{"language": language})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return apiFailure(status, body)
	}

	c.mu.Lock()
	if c.user != nil {
		lang := language
		c.user.Language = &lang
	}
	c.mu.Unlock()
	return nil
}

// Token returns the current bearer token, or "" when signed out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SignedIn reports whether the client holds a session.
func (c *Client) SignedIn() bool {
	return c.Token() != ""
}

// User returns the cached user, or nil when signed out.
func (c *Client) User() *domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// ProfileComplete reports the cached completeness flag.
func (c *Client) ProfileComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profileComplete
}

// forget clears the cached session and the persisted token.
func (c *Client) forget() error {
	c.mu.Lock()
	c.token = ""
	c.user = nil
	c.profileComplete = false
	c.mu.Unlock()
	return c.tokens.Clear()
}

// do issues one API request and returns the status plus raw body.
func (c *Client) do(ctx context.Context, method, path, token string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

func apiFailure(status int, body []byte) error {
	var e apiError
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Errorf("client: api error (%d): %s", status, e.Error)
	}
	return fmt.Errorf("client: api error (%d)", status)
}

func hasValue(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
