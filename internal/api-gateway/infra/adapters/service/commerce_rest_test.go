package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/storefront-lookup/internal/apperrors"
	"github.com/jcmexdev/storefront-lookup/internal/config"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newMemoryCache() *memoryCache { return &memoryCache{data: map[string]string{}} }

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	m.sets++
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memoryCache) GenerateKey(operation, key string) string { return operation + ":" + key }

func (m *memoryCache) Ping(context.Context) error { return nil }

func newClient(serverURL string, timeout time.Duration, opts ...Option) *RESTCommerceService {
	cfg := config.CommerceConfig{BaseURL: serverURL, AccessToken: "shpat_test", Timeout: timeout}
	return NewRESTCommerceClient(cfg, opts...).(*RESTCommerceService)
}

func TestSearchCustomersByPhone_BuildsQueryAndAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/customers/search.json", r.URL.Path)
		assert.Equal(t, "query=phone%3A5551234567&fields=id", r.URL.RawQuery)
		assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"customers":[{"id":123}]}`))
	}))
	defer server.Close()

	resp, err := newClient(server.URL, time.Second).SearchCustomersByPhone(context.Background(), "5551234567")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"customers":[{"id":123}]}`, string(resp.Body))
}

func TestSearchCustomersByPhone_EmptyPhone(t *testing.T) {
	_, err := newClient("http://unused", time.Second).SearchCustomersByPhone(context.Background(), "")

	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Phone number is required", ve.Message)
}

func TestCustomerOrders_PathEscapesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/123/orders.json", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"orders":[]}`))
	}))
	defer server.Close()

	resp, err := newClient(server.URL, time.Second).CustomerOrders(context.Background(), entity.ID("123"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "success status must be relayed unchanged")
}

func TestOrdersByPhone_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders.json", r.URL.Path)
		assert.Equal(t, "5551234567", r.URL.Query().Get("phone"))
		assert.Equal(t, "any", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`{"orders":[]}`))
	}))
	defer server.Close()

	_, err := newClient(server.URL, time.Second).OrdersByPhone(context.Background(), "5551234567")
	require.NoError(t, err)
}

func TestGet_UpstreamErrorKeepsStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":"[API] Invalid API key or access token"}`))
	}))
	defer server.Close()

	_, err := newClient(server.URL, time.Second).SearchCustomersByPhone(context.Background(), "5551234567")

	var ue *apperrors.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusUnauthorized, ue.StatusCode)
	assert.Equal(t, "application/json", ue.ContentType)
	assert.JSONEq(t, `{"errors":"[API] Invalid API key or access token"}`, string(ue.Body))
}

func TestGet_InvalidJSONIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	_, err := newClient(server.URL, time.Second).SearchCustomersByPhone(context.Background(), "5551234567")

	var te *apperrors.TransportError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, te.Err.Error(), "not valid JSON")
}

func TestGet_NetworkErrorIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newClient(server.URL, time.Second).SearchCustomersByPhone(context.Background(), "5551234567")

	var te *apperrors.TransportError
	require.True(t, errors.As(err, &te))
	assert.NotEmpty(t, te.Err.Error())
}

func TestGet_TimeoutIsTimeoutError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := newClient(server.URL, 50*time.Millisecond).CustomerOrders(context.Background(), "1")

	var te *apperrors.TimeoutError
	require.True(t, errors.As(err, &te), "got %v", err)
	assert.Equal(t, 50*time.Millisecond, te.Timeout)
}

func TestGet_CachesSuccessfulReplies(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"customers":[{"id":1}]}`))
	}))
	defer server.Close()

	c := newMemoryCache()
	client := newClient(server.URL, time.Second, WithCache(c, time.Minute))

	for i := 0; i < 2; i++ {
		resp, err := client.SearchCustomersByPhone(context.Background(), "5551234567")
		require.NoError(t, err)
		assert.JSONEq(t, `{"customers":[{"id":1}]}`, string(resp.Body))
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.sets)
}

func TestGet_CacheKeysOmitPhone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orders":[]}`))
	}))
	defer server.Close()

	c := newMemoryCache()
	client := newClient(server.URL, time.Second, WithCache(c, time.Minute))

	_, err := client.SearchCustomersByPhone(context.Background(), "5551234567")
	require.NoError(t, err)
	_, err = client.OrdersByPhone(context.Background(), "5551234567")
	require.NoError(t, err)

	require.Len(t, c.data, 2)
	for key := range c.data {
		assert.NotContains(t, key, "5551234567")
	}
}

func TestGet_DoesNotCacheFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":"Not Found"}`))
	}))
	defer server.Close()

	c := newMemoryCache()
	_, err := newClient(server.URL, time.Second, WithCache(c, time.Minute)).CustomerOrders(context.Background(), "9")
	require.Error(t, err)
	assert.Zero(t, c.sets)
}

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{}
	client := newClient("http://unused", time.Second, WithHTTPClient(custom))
	assert.Same(t, custom, client.httpClient)
}
