package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chiruit2077/partslink/internal/platform/httpx"
)

type staticProvider struct {
	mu    sync.Mutex
	token string

	refreshCalls atomic.Int64
	refreshFn    func() (string, error)
}

func (p *staticProvider) AccessToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

func (p *staticProvider) setToken(token string) {
	p.mu.Lock()
	p.token = token
	p.mu.Unlock()
}

func (p *staticProvider) RefreshAccess(ctx context.Context) (string, error) {
	p.refreshCalls.Add(1)
	token, err := p.refreshFn()
	if err != nil {
		return "", err
	}
	p.setToken(token)
	return token, nil
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	requestIDs := make(map[string]struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		requestIDs[r.Header.Get("X-Request-ID")] = struct{}{}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL:    srv.URL,
		APIVersion: "1",
		AppVersion: "1.2.3",
		Platform:   "cli",
	}, nil)
	provider := &staticProvider{token: "tok-1"}
	client.SetTokenProvider(provider)

	require.NoError(t, client.Get(context.Background(), "/ping", nil))
	require.Equal(t, "Bearer tok-1", got.Get("Authorization"))
	require.Equal(t, "1", got.Get("X-API-Version"))
	require.Equal(t, "true", got.Get("X-Mobile-App"))
	require.Equal(t, "1.2.3", got.Get("X-App-Version"))
	require.Equal(t, "cli", got.Get("X-Platform"))
	require.NotEmpty(t, got.Get("X-Request-ID"))

	require.NoError(t, client.Get(context.Background(), "/ping", nil))
	require.Len(t, requestIDs, 2, "every request carries a fresh request id")

	require.NoError(t, client.Get(context.Background(), "/ping", nil, Anonymous()))
	require.Empty(t, got.Get("Authorization"), "anonymous calls omit the bearer token")
}

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		status  int
		message string
	}{
		{http.StatusBadRequest, msgValidation},
		{http.StatusForbidden, msgForbidden},
		{http.StatusNotFound, msgNotFound},
		{http.StatusTooManyRequests, msgRateLimited},
		{http.StatusInternalServerError, msgServer},
		{http.StatusBadGateway, msgServer},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httpx.Fail(w, tc.status, "backend says no")
		}))
		client := NewClient(Config{BaseURL: srv.URL}, nil)

		err := client.Get(context.Background(), "/x", nil)
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, tc.status, apiErr.Status)
		require.Equal(t, tc.message, apiErr.Message)
		require.Contains(t, apiErr.Details, "backend says no")
		srv.Close()
	}
}

func TestConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening anymore

	client := NewClient(Config{BaseURL: srv.URL}, nil)
	err := client.Get(context.Background(), "/x", nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.IsConnection())
	require.True(t, apiErr.IsRetryable())
	require.Equal(t, msgConnection, apiErr.Message)
	require.NotEmpty(t, apiErr.Details)
}

func TestUnauthorizedRefreshAndReplay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			httpx.Fail(w, http.StatusUnauthorized, "stale token")
			return
		}
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL}, nil)
	provider := &staticProvider{token: "stale", refreshFn: func() (string, error) { return "fresh", nil }}
	client.SetTokenProvider(provider)

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, client.Get(context.Background(), "/data", &out))
	require.True(t, out.OK)
	require.Equal(t, int64(1), provider.refreshCalls.Load())
}

func TestConcurrentRefreshIsSingleFlight(t *testing.T) {
	const workers = 5

	// Hold the refresh until every worker has observed its 401, so all
	// of them join the same in-flight exchange.
	var stale sync.WaitGroup
	stale.Add(workers)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			stale.Done()
			httpx.Fail(w, http.StatusUnauthorized, "stale token")
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL}, nil)
	provider := &staticProvider{token: "stale", refreshFn: func() (string, error) {
		stale.Wait()
		return "fresh", nil
	}}
	client.SetTokenProvider(provider)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = client.Get(context.Background(), "/data", nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int64(1), provider.refreshCalls.Load(), "concurrent 401s share one refresh")
}

func TestRefreshFailureSurfacesSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, http.StatusUnauthorized, "stale token")
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL}, nil)
	provider := &staticProvider{token: "stale", refreshFn: func() (string, error) {
		return "", ErrSessionExpired
	}}
	client.SetTokenProvider(provider)

	err := client.Get(context.Background(), "/data", nil)
	require.ErrorIs(t, err, ErrSessionExpired)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
