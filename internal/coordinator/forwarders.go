package coordinator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/ports"
	"github.com/jcmexdev/storefront-lookup/internal/apperrors"
	"github.com/jcmexdev/storefront-lookup/internal/pkg/interceptors"
)

// DefaultGatewayTimeout bounds each gateway call when no client is supplied.
const DefaultGatewayTimeout = 30 * time.Second

// Forwarders is the single target a lookup runs against: either the commerce
// platform in-process or a gateway reachable over HTTP.
type Forwarders interface {
	LookupCustomers(ctx context.Context, phone string) (*entity.CustomerList, error)
	FetchOrders(ctx context.Context, customerID entity.ID) (*entity.OrderList, error)
}

// DirectForwarders calls the commerce platform from the current process.
type DirectForwarders struct {
	client ports.CommerceClient
}

func NewDirectForwarders(client ports.CommerceClient) *DirectForwarders {
	return &DirectForwarders{client: client}
}

func (f *DirectForwarders) LookupCustomers(ctx context.Context, phone string) (*entity.CustomerList, error) {
	resp, err := f.client.SearchCustomersByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	var list entity.CustomerList
	if err := decode("customers/search", resp.Body, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (f *DirectForwarders) FetchOrders(ctx context.Context, customerID entity.ID) (*entity.OrderList, error) {
	resp, err := f.client.CustomerOrders(ctx, customerID)
	if err != nil {
		return nil, err
	}
	var list entity.OrderList
	if err := decode("customers/orders", resp.Body, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// HTTPForwarders posts to a gateway's /api/customers and /api/orders routes.
type HTTPForwarders struct {
	baseURL string
	client  *http.Client
}

// NewHTTPForwarders targets the gateway at baseURL. A nil client gets
// DefaultGatewayTimeout and the request-id propagating transport.
func NewHTTPForwarders(baseURL string, client *http.Client) *HTTPForwarders {
	if client == nil {
		client = &http.Client{
			Timeout:   DefaultGatewayTimeout,
			Transport: interceptors.NewTransport(nil),
		}
	}
	return &HTTPForwarders{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (f *HTTPForwarders) LookupCustomers(ctx context.Context, phone string) (*entity.CustomerList, error) {
	var list entity.CustomerList
	if err := f.post(ctx, "/api/customers", map[string]string{"phone": phone}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (f *HTTPForwarders) FetchOrders(ctx context.Context, customerID entity.ID) (*entity.OrderList, error) {
	var list entity.OrderList
	if err := f.post(ctx, "/api/orders", map[string]entity.ID{"customerId": customerID}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (f *HTTPForwarders) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &apperrors.TransportError{Endpoint: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return f.failure(path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return f.failure(path, fmt.Errorf("read response body: %w", err))
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &apperrors.UpstreamError{
			Endpoint:    path,
			StatusCode:  res.StatusCode,
			ContentType: res.Header.Get("Content-Type"),
			Body:        raw,
		}
	}

	return decode(path, raw, out)
}

func (f *HTTPForwarders) failure(path string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &apperrors.TimeoutError{Endpoint: path, Timeout: f.client.Timeout, Err: err}
	}
	return &apperrors.TransportError{Endpoint: path, Err: err}
}

func decode(endpoint string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &apperrors.TransportError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
