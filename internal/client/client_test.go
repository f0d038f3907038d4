// ABOUTME: Tests for the authenticated request client
// ABOUTME: Covers the 401 refresh-and-retry protocol against httptest backends

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/Acrsahil/AmaBakeryPos/internal/session"
)

func newTestClient(t *testing.T, baseURL string) (*Client, *session.Store) {
	t.Helper()
	store := session.NewStore("")
	c, err := New(Config{BaseURL: baseURL, Session: store})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return c, store
}

func mintToken(t *testing.T, username string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  int64(1),
		"username": username,
		"exp":      exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestRetryCarriesRefreshedToken(t *testing.T) {
	var refreshCalls, productCalls int32
	var authHeaders []string
	var mu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/refresh/":
			atomic.AddInt32(&refreshCalls, 1)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"access": "T2"})
		case "/api/products/":
			mu.Lock()
			authHeaders = append(authHeaders, r.Header.Get("Authorization"))
			mu.Unlock()
			if atomic.AddInt32(&productCalls, 1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c, store := newTestClient(t, server.URL)
	store.SetAccessToken("T1")

	resp, err := c.Do(context.Background(), http.MethodGet, "/api/products/", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected retried 200, got %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Errorf("expected exactly 1 refresh call, got %d", got)
	}
	if got := atomic.LoadInt32(&productCalls); got != 2 {
		t.Errorf("expected exactly 2 product calls, got %d", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if authHeaders[0] != "Bearer T1" {
		t.Errorf("first attempt carried %q", authHeaders[0])
	}
	if authHeaders[1] != "Bearer T2" {
		t.Errorf("retry carried %q, want the refreshed token", authHeaders[1])
	}
	if store.AccessToken() != "T2" {
		t.Errorf("store holds %q after refresh", store.AccessToken())
	}
}

func TestLoginEndpoint401SkipsRefresh(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found"})
		case "/api/token/refresh/":
			atomic.AddInt32(&refreshCalls, 1)
		}
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	resp, err := c.Do(context.Background(), http.MethodPost, tokenPath, map[string]string{"username": "x", "password": "y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected the original 401 back, got %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 0 {
		t.Errorf("expected no refresh for the login endpoint, got %d", got)
	}
}

func TestRefreshFailureReturnsOriginal401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/refresh/":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	c, store := newTestClient(t, server.URL)
	store.SetAccessToken("T1")

	var unauthorizedFired bool
	c.OnUnauthorized(func() { unauthorizedFired = true })

	resp, err := c.Do(context.Background(), http.MethodGet, "/api/invoice/", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected original 401, got %d", resp.StatusCode)
	}
	if !unauthorizedFired {
		t.Error("expected unauthorized callback to fire")
	}
	if store.AccessToken() != "" {
		t.Errorf("expected store cleared, holds %q", store.AccessToken())
	}
	if store.LoggedIn() {
		t.Error("expected LoggedIn false after failed refresh")
	}
}

func TestRefreshFailureIsSessionExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c, store := newTestClient(t, server.URL)
	store.SetAccessToken("T1")

	_, err := c.RefreshAccessToken(context.Background())
	var expired *SessionExpiredError
	if !errors.As(err, &expired) {
		t.Fatalf("expected SessionExpiredError, got %v", err)
	}
	if err.Error() != "Session expired. Please login again." {
		t.Errorf("unexpected message %q", err.Error())
	}
	if store.AccessToken() != "" {
		t.Error("expected store cleared")
	}
}

func TestNoTokenSendsNoAuthorizationHeader(t *testing.T) {
	var sawAuth string
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/refresh/":
			atomic.AddInt32(&refreshCalls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		default:
			sawAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	if _, err := c.Do(context.Background(), http.MethodGet, "/api/me/", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawAuth != "" {
		t.Errorf("expected no Authorization header, got %q", sawAuth)
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Errorf("expected a refresh attempt before giving up, got %d", got)
	}
}

func TestAtMostOneRetry(t *testing.T) {
	var protectedCalls, refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/refresh/":
			atomic.AddInt32(&refreshCalls, 1)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"access": "T2"})
		default:
			atomic.AddInt32(&protectedCalls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	c, store := newTestClient(t, server.URL)
	store.SetAccessToken("T1")

	resp, err := c.Do(context.Background(), http.MethodGet, "/api/customer/", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected the post-retry 401 returned as-is, got %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&protectedCalls); got != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", got)
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Errorf("expected exactly 1 refresh, got %d", got)
	}
}

func TestConcurrentRefreshesCoalesce(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/token/refresh/" {
			t.Errorf("unexpected path %s", r.URL.Path)
			return
		}
		atomic.AddInt32(&refreshCalls, 1)
		time.Sleep(50 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"access": "T2"})
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := c.RefreshAccessToken(context.Background())
			if err != nil {
				t.Errorf("refresh failed: %v", err)
			}
			if tok != "T2" {
				t.Errorf("got token %q", tok)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Errorf("expected concurrent refreshes coalesced into 1 call, got %d", got)
	}
}

func TestAbsoluteURLPassthrough(t *testing.T) {
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer other.Close()

	c, _ := newTestClient(t, "http://unreachable.invalid")
	resp, err := c.Do(context.Background(), http.MethodGet, other.URL+"/ping", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from absolute URL, got %d", resp.StatusCode)
	}
}

func TestLoginStoresTokenAndLogsIn(t *testing.T) {
	access := mintToken(t, "admin1", time.Now().Add(time.Hour))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/token/" {
			t.Errorf("unexpected path %s", r.URL.Path)
			return
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] != "admin1" || creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"access": access})
	}))
	defer server.Close()

	c, store := newTestClient(t, server.URL)
	if err := c.Login(context.Background(), "admin1", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if store.AccessToken() != access {
		t.Error("expected access token stored")
	}
	if !store.LoggedIn() {
		t.Error("expected LoggedIn true after login")
	}
}

func TestLoginBadCredentialsMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found with the given credentials"})
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	err := c.Login(context.Background(), "admin1", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "No active account found with the given credentials" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestLogoutClearsLocalStateOnServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	server.Close() // server unreachable: logout must still clear locally

	c, store := newTestClient(t, server.URL)
	store.SetAccessToken("T1")
	c.Logout(context.Background())
	if store.AccessToken() != "" {
		t.Error("expected local state cleared despite server failure")
	}
}

func TestBootstrapResumesSavedSession(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/":
			http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "R1", Path: "/api/token/refresh/", HttpOnly: true})
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"access": "T1"})
		case "/api/token/refresh/":
			atomic.AddInt32(&refreshCalls, 1)
			if ck, err := r.Cookie("refresh_token"); err != nil || ck.Value != "R1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"access": "T2"})
		}
	}))
	defer server.Close()

	cookiePath := filepath.Join(t.TempDir(), "session.json")

	first, err := New(Config{BaseURL: server.URL, Session: session.NewStore(""), CookiePath: cookiePath})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	if err := first.Login(context.Background(), "admin1", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// A fresh process: new client, same cookie file, no token in memory.
	store := session.NewStore("")
	second, err := New(Config{BaseURL: server.URL, Session: store, CookiePath: cookiePath})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	second.Bootstrap(context.Background())

	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Errorf("expected 1 refresh during bootstrap, got %d", got)
	}
	if store.AccessToken() != "T2" {
		t.Errorf("expected bootstrapped token T2, got %q", store.AccessToken())
	}
}

func TestBootstrapWithoutSavedSessionIsNoop(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	c.Bootstrap(context.Background())
	if got := atomic.LoadInt32(&refreshCalls); got != 0 {
		t.Errorf("expected no network traffic without a saved session, got %d calls", got)
	}
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(Config{Session: session.NewStore("")}); err == nil {
		t.Error("expected error without BaseURL")
	}
	if _, err := New(Config{BaseURL: "http://localhost:8000"}); err == nil {
		t.Error("expected error without Session")
	}
}

func TestCookieJarInstalled(t *testing.T) {
	jar, _ := cookiejar.New(nil)
	c, _ := newTestClient(t, "http://localhost:8000")
	if c.httpClient.Jar == nil {
		t.Error("expected a cookie jar on the default client")
	}
	custom, err := New(Config{
		BaseURL:    "http://localhost:8000",
		Session:    session.NewStore(""),
		HTTPClient: &http.Client{Jar: jar},
	})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	if custom.httpClient.Jar != jar {
		t.Error("expected the caller's jar preserved")
	}
}
