package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/desertthunder/listenr/internal/models"
	"github.com/desertthunder/listenr/internal/shared"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultPrefix  = "/api/v1"
)

// APIService provides methods for making HTTP requests to the music diary API.
type APIService struct {
	baseURL     string
	prefix      string
	httpClient  *http.Client
	limiter     *rate.Limiter
	credentials func() string
	logger      *log.Logger
}

// Option configures an [APIService].
type Option func(*APIService)

// WithPrefix sets the versioned path prefix. An empty prefix is allowed.
func WithPrefix(prefix string) Option {
	return func(a *APIService) { a.prefix = strings.TrimRight(prefix, "/") }
}

// WithRateLimit paces requests to rps per second. Zero or less disables pacing.
func WithRateLimit(rps float64) Option {
	return func(a *APIService) {
		if rps <= 0 {
			a.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithCredentials sets where the bearer token comes from. fn returning ""
// sends no Authorization header.
func WithCredentials(fn func() string) Option {
	return func(a *APIService) { a.credentials = fn }
}

// WithLogger logs each request at debug level.
func WithLogger(l *log.Logger) Option {
	return func(a *APIService) { a.logger = l }
}

// NewAPIService creates a new API service instance.
func NewAPIService(baseURL string, client *http.Client, opts ...Option) *APIService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	a := &APIService{
		baseURL:     strings.TrimRight(baseURL, "/"),
		prefix:      DefaultPrefix,
		httpClient:  client,
		limiter:     rate.NewLimiter(rate.Inf, 0),
		credentials: func() string { return "" },
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports a 2xx status.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns an [*APIError] for a non-2xx response and nil otherwise.
func (r *APIResponse) Err() error {
	if r.OK() {
		return nil
	}
	return newAPIError(r.StatusCode, r.Body)
}

// URL returns the absolute URL for an endpoint relative to the prefix.
func (a *APIService) URL(endpoint string) string {
	return a.baseURL + a.prefix + "/" + strings.TrimLeft(endpoint, "/")
}

// Get performs a GET request to the endpoint and returns the raw response.
func (a *APIService) Get(ctx context.Context, endpoint string) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, endpoint, nil, "")
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, endpoint string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPost, endpoint, data, "")
}

// do sends one request. token overrides the configured credentials.
func (a *APIService) do(ctx context.Context, method, endpoint string, data []byte, token string) (*APIResponse, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.URL(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token == "" {
		token = a.credentials()
	}
	if token != "" {
		(&oauth2.Token{AccessToken: token}).SetAuthHeader(req)
	}

	start := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	a.logger.Debug("api request",
		"method", method, "endpoint", endpoint, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       raw,
	}

	var jsonData any
	if err := json.Unmarshal(raw, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// call sends payload (when non-nil) as JSON and decodes a 2xx body into out.
func (a *APIService) call(ctx context.Context, method, endpoint string, payload, out any, token string) error {
	var data []byte
	if payload != nil {
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	resp, err := a.do(ctx, method, endpoint, data, token)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %v", shared.ErrAPIRequest, endpoint, err)
	}
	return nil
}

func (a *APIService) exchange(ctx context.Context, endpoint string, payload any) (string, error) {
	var tok oauth2.Token
	if err := a.call(ctx, http.MethodPost, endpoint, payload, &tok, ""); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", shared.ErrMissingToken
	}
	return tok.AccessToken, nil
}

// Login calls auth/login.
func (a *APIService) Login(ctx context.Context, email, password string) (string, error) {
	return a.exchange(ctx, "auth/login", map[string]string{"email": email, "password": password})
}

// Register calls auth/register.
func (a *APIService) Register(ctx context.Context, username, email, password string) (string, error) {
	return a.exchange(ctx, "auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

// Me calls auth/me with token, falling back to the configured credentials
// when token is empty.
func (a *APIService) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := a.call(ctx, http.MethodGet, "auth/me", nil, &user, token); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserByUsername calls users/by-username/:username.
func (a *APIService) UserByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	if err := a.call(ctx, http.MethodGet, "users/by-username/"+url.PathEscape(username), nil, &profile, ""); err != nil {
		return nil, err
	}
	return &profile, nil
}

// List calls lists/:id.
func (a *APIService) List(ctx context.Context, id string) (*models.List, error) {
	var list models.List
	if err := a.call(ctx, http.MethodGet, "lists/"+url.PathEscape(id), nil, &list, ""); err != nil {
		return nil, err
	}
	return &list, nil
}

// Album calls albums/:id.
func (a *APIService) Album(ctx context.Context, id string) (*models.Album, error) {
	var album models.Album
	if err := a.call(ctx, http.MethodGet, "albums/"+url.PathEscape(id), nil, &album, ""); err != nil {
		return nil, err
	}
	return &album, nil
}
