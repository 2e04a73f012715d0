package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/listenr/internal/models"
	"github.com/desertthunder/listenr/internal/shared"
	tu "github.com/desertthunder/listenr/internal/testing"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService("http://example.com/", customClient)

			if srv.baseURL != "http://example.com" {
				t.Errorf("expected baseURL 'http://example.com', got %s", srv.baseURL)
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewAPIService("", nil)

			if srv.baseURL != DefaultBaseURL {
				t.Errorf("expected default baseURL %s, got %s", DefaultBaseURL, srv.baseURL)
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("URL", func(t *testing.T) {
			tc := []struct {
				name   string
				opts   []Option
				input  string
				expect string
			}{
				{"default prefix", nil, "auth/me", "http://example.com/api/v1/auth/me"},
				{"leading slash", nil, "/auth/me", "http://example.com/api/v1/auth/me"},
				{"custom prefix", []Option{WithPrefix("/api/v2/")}, "lists/1", "http://example.com/api/v2/lists/1"},
				{"no prefix", []Option{WithPrefix("")}, "lists/1", "http://example.com/lists/1"},
			}

			for _, tt := range tc {
				t.Run(tt.name, func(t *testing.T) {
					srv := NewAPIService("http://example.com", nil, tt.opts...)
					if got := srv.URL(tt.input); got != tt.expect {
						t.Errorf("expected %s, got %s", tt.expect, got)
					}
				})
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Successful Request With JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Path != "/api/v1/test" {
					t.Errorf("expected path '/api/v1/test', got %s", r.URL.Path)
				}
				if r.Header.Get("X-Request-ID") == "" {
					t.Error("expected a request id")
				}
				if r.Header.Get("Authorization") != "" {
					t.Error("expected no Authorization header without credentials")
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{"status": "success"})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected status 200, got %d", resp.StatusCode)
			}
			if !resp.IsJSON || resp.JSONData == nil {
				t.Error("expected JSON response to be decoded")
			}
			if resp.Err() != nil {
				t.Errorf("expected no response error, got %v", resp.Err())
			}
		})

		t.Run("Successful Request With Non-JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("plain text response"))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected response to not be JSON")
			}
			if string(resp.Body) != "plain text response" {
				t.Errorf("expected body 'plain text response', got %s", string(resp.Body))
			}
		})

		t.Run("Bearer From Credentials", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer abc" {
					t.Errorf("expected 'Bearer abc', got %q", got)
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil, WithCredentials(func() string { return "abc" }))
			if _, err := srv.Get(context.Background(), "/test"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)
			_, err := srv.Get(context.Background(), "/test\x00invalid")

			if err == nil || !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/test")

			if err == nil || !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' error, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/test")

			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			srv := NewAPIService(server.URL, nil, WithRateLimit(1))
			if _, err := srv.Get(ctx, "/test"); err == nil {
				t.Error("expected error for canceled context")
			}
		})

		t.Run("Response Headers Are Preserved", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Custom-Header", "test-value")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("test"))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.Headers.Get("X-Custom-Header") != "test-value" {
				t.Errorf("expected custom header 'test-value', got %s", resp.Headers.Get("X-Custom-Header"))
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		t.Run("Successful Request With JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST method, got %s", r.Method)
				}
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("expected Content-Type 'application/json', got %s", r.Header.Get("Content-Type"))
				}

				body, _ := io.ReadAll(r.Body)
				var data map[string]string
				if err := json.Unmarshal(body, &data); err != nil {
					t.Errorf("failed to unmarshal request body: %v", err)
				}
				if data["test"] != "data" {
					t.Errorf("expected request data 'test:data', got %v", data)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(map[string]string{"id": "123"})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			requestData, _ := json.Marshal(map[string]string{"test": "data"})
			resp, err := srv.Post(context.Background(), "/test", requestData)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusCreated {
				t.Errorf("expected status 201, got %d", resp.StatusCode)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Post(context.Background(), "/test", []byte("data"))

			if err == nil || !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' error, got %v", err)
			}
		})
	})

	t.Run("Rate Limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		srv := NewAPIService(server.URL, nil, WithRateLimit(20))
		start := time.Now()
		for range 3 {
			if _, err := srv.Get(context.Background(), "/test"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		}

		if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
			t.Errorf("expected requests to be paced, took %s", elapsed)
		}
	})
}

func TestAPIError(t *testing.T) {
	tc := []struct {
		name     string
		status   int
		body     string
		message  string
		sentinel error
	}{
		{"error field", http.StatusBadRequest, `{"error": "Email already registered"}`, "Email already registered", shared.ErrAPIRequest},
		{"detail string", http.StatusUnauthorized, `{"detail": "Invalid email or password"}`, "Invalid email or password", shared.ErrUnauthorized},
		{"detail list", http.StatusUnprocessableEntity, `{"detail": [{"msg": "field required"}, {"msg": "too short"}]}`, "field required; too short", shared.ErrAPIRequest},
		{"error wins over detail", http.StatusNotFound, `{"error": "List not found", "detail": "ignored"}`, "List not found", shared.ErrNotFound},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "Bad Gateway", shared.ErrAPIRequest},
		{"empty body", http.StatusNotFound, ``, "Not Found", shared.ErrNotFound},
		{"unknown status", 599, ``, "request failed with status 599", shared.ErrAPIRequest},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.status, []byte(tt.body))
			if err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, err.Error())
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("expected %v to wrap %v", err, tt.sentinel)
			}
		})
	}
}

func TestEndpoints(t *testing.T) {
	backend := tu.NewBackend(t)
	backend.AddUser(models.User{ID: "1", Username: "alice", Email: "alice@example.com", IsAdmin: true}, "hunter2")
	backend.AddList(models.List{ID: "xyz789", UserID: "1", Title: "Desert island"})
	backend.AddAlbum(models.Album{ID: "A1", Title: "Blue", Artist: "Joni Mitchell"})

	ctx := context.Background()
	srv := NewAPIService(backend.URL(), nil)

	t.Run("Login And Me", func(t *testing.T) {
		token, err := srv.Login(ctx, "alice@example.com", "hunter2")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		user, err := srv.Me(ctx, token)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.Username != "alice" || !user.IsAdmin {
			t.Errorf("unexpected user %+v", user)
		}
	})

	t.Run("Login Failure Keeps Server Message", func(t *testing.T) {
		_, err := srv.Login(ctx, "alice@example.com", "wrong")
		if err == nil || err.Error() != "Invalid email or password" {
			t.Errorf("expected server message, got %v", err)
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
			t.Errorf("expected a 401 APIError, got %v", err)
		}
	})

	t.Run("Register", func(t *testing.T) {
		token, err := srv.Register(ctx, "bob", "bob@example.com", "pw")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		user, err := srv.Me(ctx, token)
		if err != nil || user.Username != "bob" {
			t.Errorf("expected bob, got %+v %v", user, err)
		}

		if _, err := srv.Register(ctx, "bob", "other@example.com", "pw"); err == nil || err.Error() != "Username already taken" {
			t.Errorf("expected duplicate username message, got %v", err)
		}
	})

	t.Run("Me Without Token", func(t *testing.T) {
		_, err := srv.Me(ctx, "")
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("Me Uses Credentials", func(t *testing.T) {
		token := tu.IssueToken("alice", time.Hour)
		authed := NewAPIService(backend.URL(), nil, WithCredentials(func() string { return token }))

		user, err := authed.Me(ctx, "")
		if err != nil || user.Username != "alice" {
			t.Errorf("expected alice, got %+v %v", user, err)
		}
	})

	t.Run("Directory", func(t *testing.T) {
		profile, err := srv.UserByUsername(ctx, "alice")
		if err != nil || profile.Username != "alice" {
			t.Errorf("expected alice's profile, got %+v %v", profile, err)
		}

		list, err := srv.List(ctx, "xyz789")
		if err != nil || list.Title != "Desert island" {
			t.Errorf("expected list, got %+v %v", list, err)
		}

		album, err := srv.Album(ctx, "A1")
		if err != nil || album.Artist != "Joni Mitchell" {
			t.Errorf("expected album, got %+v %v", album, err)
		}
	})

	t.Run("Directory Not Found", func(t *testing.T) {
		if _, err := srv.UserByUsername(ctx, "nobody"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if _, err := srv.List(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if _, err := srv.Album(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Missing Access Token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token_type": "bearer"}`))
		}))
		defer server.Close()

		_, err := NewAPIService(server.URL, nil).Login(ctx, "a", "b")
		if !errors.Is(err, shared.ErrMissingToken) {
			t.Errorf("expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("Undecodable Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		_, err := NewAPIService(server.URL, nil).Album(ctx, "A1")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}
