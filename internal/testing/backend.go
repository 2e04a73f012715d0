package testing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/desertthunder/listenr/internal/models"
)

var backendKey = []byte("listenr-test-signing-key")

type account struct {
	user     models.User
	password string
}

// Backend is a fake music diary API served from an [httptest.Server]. Tokens
// it issues are HS256 JWTs whose subject is the username.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	accounts map[string]*account // by email
	profiles map[string]models.Profile
	lists    map[string]models.List
	albums   map[string]models.Album
	hits     map[string]int
}

// NewBackend starts a backend that is closed when t finishes.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		accounts: make(map[string]*account),
		profiles: make(map[string]models.Profile),
		lists:    make(map[string]models.List),
		albums:   make(map[string]models.Album),
		hits:     make(map[string]int),
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(b.count)
	api.HandleFunc("/auth/login", b.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", b.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", b.me).Methods(http.MethodGet)
	api.HandleFunc("/users/by-username/{username}", b.profile).Methods(http.MethodGet)
	api.HandleFunc("/lists/{id}", b.list).Methods(http.MethodGet)
	api.HandleFunc("/albums/{id}", b.album).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeBackendJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the server origin, without the API prefix.
func (b *Backend) URL() string { return b.Server.URL }

// AddUser registers an account and its public profile.
func (b *Backend) AddUser(u models.User, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[u.Email] = &account{user: u, password: password}
	b.profiles[u.Username] = models.Profile{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL, Bio: u.Bio}
}

// AddList makes a list resolvable by id.
func (b *Backend) AddList(l models.List) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists[l.ID] = l
}

// AddAlbum makes an album resolvable by id.
func (b *Backend) AddAlbum(a models.Album) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.albums[a.ID] = a
}

// Hits returns how many requests reached path, e.g. "/api/v1/auth/me".
func (b *Backend) Hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

// IssueToken signs a token for username that expires after ttl. A negative
// ttl yields an already expired token.
func IssueToken(username string, ttl time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(backendKey)
	if err != nil {
		panic(fmt.Sprintf("failed to sign token: %v", err))
	}
	return signed
}

func (b *Backend) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.URL.Path]++
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBackendJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request body"})
		return
	}

	b.mu.Lock()
	acct, ok := b.accounts[body.Email]
	b.mu.Unlock()
	if !ok || acct.password != body.Password {
		writeBackendJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid email or password"})
		return
	}

	writeBackendJSON(w, http.StatusOK, map[string]string{
		"access_token": IssueToken(acct.user.Username, time.Hour),
		"token_type":   "bearer",
	})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBackendJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request body"})
		return
	}
	if body.Username == "" || body.Email == "" || body.Password == "" {
		writeBackendJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": "username, email and password are required"}},
		})
		return
	}

	b.mu.Lock()
	_, emailTaken := b.accounts[body.Email]
	_, nameTaken := b.profiles[body.Username]
	b.mu.Unlock()

	switch {
	case emailTaken:
		writeBackendJSON(w, http.StatusBadRequest, map[string]string{"error": "Email already registered"})
		return
	case nameTaken:
		writeBackendJSON(w, http.StatusBadRequest, map[string]string{"error": "Username already taken"})
		return
	}

	b.AddUser(models.User{
		ID:       fmt.Sprintf("u-%s", body.Username),
		Username: body.Username,
		Email:    body.Email,
	}, body.Password)

	writeBackendJSON(w, http.StatusCreated, map[string]string{
		"access_token": IssueToken(body.Username, time.Hour),
		"token_type":   "bearer",
	})
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	username, ok := b.authenticate(r)
	if !ok {
		writeBackendJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, acct := range b.accounts {
		if acct.user.Username == username {
			writeBackendJSON(w, http.StatusOK, acct.user)
			return
		}
	}
	writeBackendJSON(w, http.StatusUnauthorized, map[string]string{"detail": "User no longer exists"})
}

func (b *Backend) authenticate(r *http.Request) (string, bool) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return "", false
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) { return backendKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

func (b *Backend) profile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	p, ok := b.profiles[mux.Vars(r)["username"]]
	b.mu.Unlock()
	if !ok {
		writeBackendJSON(w, http.StatusNotFound, map[string]string{"detail": "User not found"})
		return
	}
	writeBackendJSON(w, http.StatusOK, p)
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	l, ok := b.lists[mux.Vars(r)["id"]]
	b.mu.Unlock()
	if !ok {
		writeBackendJSON(w, http.StatusNotFound, map[string]string{"detail": "List not found"})
		return
	}
	writeBackendJSON(w, http.StatusOK, l)
}

func (b *Backend) album(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	a, ok := b.albums[mux.Vars(r)["id"]]
	b.mu.Unlock()
	if !ok {
		writeBackendJSON(w, http.StatusNotFound, map[string]string{"error": "Album not found"})
		return
	}
	writeBackendJSON(w, http.StatusOK, a)
}

func writeBackendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
