package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/ports"
	"github.com/jcmexdev/storefront-lookup/internal/apperrors"
	"github.com/jcmexdev/storefront-lookup/internal/config"
	"github.com/jcmexdev/storefront-lookup/internal/pkg/cache"
	"github.com/jcmexdev/storefront-lookup/internal/pkg/interceptors"
	"github.com/jcmexdev/storefront-lookup/internal/pkg/interceptors/constants"
	"github.com/jcmexdev/storefront-lookup/internal/pkg/telemetry"
)

const (
	EndpointCustomerSearch = "customers/search"
	EndpointCustomerOrders = "customers/orders"
	EndpointOrderSearch    = "orders/search"

	tracerName = "github.com/jcmexdev/storefront-lookup/commerce"
)

// RESTCommerceService talks to the commerce platform's REST admin API.
type RESTCommerceService struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
	tracer     trace.Tracer
}

// Ensure RESTCommerceService implements the port at compile time.
var _ ports.CommerceClient = (*RESTCommerceService)(nil)

type Option func(*RESTCommerceService)

// WithHTTPClient replaces the default client. The configured timeout is
// still enforced per call through the request context.
func WithHTTPClient(c *http.Client) Option {
	return func(s *RESTCommerceService) { s.httpClient = c }
}

// WithCache stores successful 200 replies for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *RESTCommerceService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// NewRESTCommerceClient returns the port backed by the REST API.
func NewRESTCommerceClient(cfg config.CommerceConfig, opts ...Option) ports.CommerceClient {
	s := &RESTCommerceService{
		baseURL: cfg.BaseURL,
		token:   cfg.AccessToken,
		timeout: cfg.Timeout,
		httpClient: &http.Client{
			Transport: interceptors.NewTransport(nil),
			Timeout:   cfg.Timeout,
		},
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchCustomersByPhone queries customers by phone, requesting only ids.
func (s *RESTCommerceService) SearchCustomersByPhone(ctx context.Context, phone string) (*entity.UpstreamResponse, error) {
	if phone == "" {
		return nil, apperrors.ErrPhoneRequired
	}
	path := "/customers/search.json?query=phone%3A" + url.QueryEscape(phone) + "&fields=id"
	return s.get(ctx, EndpointCustomerSearch, path)
}

// CustomerOrders lists a customer's orders. The id is forwarded as given;
// validating it is left to the platform.
func (s *RESTCommerceService) CustomerOrders(ctx context.Context, customerID entity.ID) (*entity.UpstreamResponse, error) {
	path := "/customers/" + url.PathEscape(customerID.String()) + "/orders.json"
	return s.get(ctx, EndpointCustomerOrders, path)
}

// OrdersByPhone lists orders in any status placed with the given phone.
func (s *RESTCommerceService) OrdersByPhone(ctx context.Context, phone string) (*entity.UpstreamResponse, error) {
	if phone == "" {
		return nil, apperrors.ErrPhoneRequired
	}
	q := url.Values{}
	q.Set("phone", phone)
	q.Set("status", "any")
	return s.get(ctx, EndpointOrderSearch, "/orders.json?"+q.Encode())
}

func (s *RESTCommerceService) get(ctx context.Context, endpoint, path string) (*entity.UpstreamResponse, error) {
	ctx, span := s.tracer.Start(ctx, "commerce."+endpoint, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()

	if body, ok := s.fromCache(ctx, endpoint, path); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		telemetry.ObserveCommerceCall(endpoint, telemetry.OutcomeCached, time.Since(start))
		return &entity.UpstreamResponse{StatusCode: http.StatusOK, Body: body}, nil
	}

	resp, err := s.do(ctx, endpoint, path)
	outcome := outcomeOf(err)
	telemetry.ObserveCommerceCall(endpoint, outcome, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode == http.StatusOK {
		s.toCache(ctx, endpoint, path, resp.Body)
	}
	return resp, nil
}

func (s *RESTCommerceService) do(ctx context.Context, endpoint, path string) (*entity.UpstreamResponse, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, &apperrors.TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set(constants.HeaderAccessToken, s.token)
	req.Header.Set("Accept", "application/json")

	res, err := s.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &apperrors.TimeoutError{Endpoint: endpoint, Timeout: s.timeout, Err: err}
		}
		return nil, &apperrors.TransportError{Endpoint: endpoint, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &apperrors.TimeoutError{Endpoint: endpoint, Timeout: s.timeout, Err: err}
		}
		return nil, &apperrors.TransportError{Endpoint: endpoint, Err: fmt.Errorf("read response body: %w", err)}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &apperrors.UpstreamError{
			Endpoint:    endpoint,
			StatusCode:  res.StatusCode,
			ContentType: res.Header.Get("Content-Type"),
			Body:        body,
		}
	}

	if !json.Valid(body) {
		return nil, &apperrors.TransportError{Endpoint: endpoint, Err: errors.New("response body is not valid JSON")}
	}

	return &entity.UpstreamResponse{StatusCode: res.StatusCode, Body: body}, nil
}

func (s *RESTCommerceService) fromCache(ctx context.Context, endpoint, path string) (json.RawMessage, bool) {
	if s.cache == nil {
		return nil, false
	}
	val, err := s.cache.Get(ctx, s.cache.GenerateKey(endpoint, hashPath(path)))
	if err != nil {
		slog.WarnContext(ctx, "commerce cache read failed", "endpoint", endpoint, "error", err)
		return nil, false
	}
	if val == "" || !json.Valid([]byte(val)) {
		return nil, false
	}
	return json.RawMessage(val), true
}

func (s *RESTCommerceService) toCache(ctx context.Context, endpoint, path string, body []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.GenerateKey(endpoint, hashPath(path)), string(body), s.cacheTTL); err != nil {
		slog.WarnContext(ctx, "commerce cache write failed", "endpoint", endpoint, "error", err)
	}
}

// hashPath keeps phone numbers in query strings out of cache keys.
func hashPath(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func outcomeOf(err error) string {
	var (
		ue *apperrors.UpstreamError
		te *apperrors.TimeoutError
	)
	switch {
	case err == nil:
		return telemetry.OutcomeSuccess
	case errors.As(err, &ue):
		return telemetry.OutcomeUpstream
	case errors.As(err, &te):
		return telemetry.OutcomeTimeout
	default:
		return telemetry.OutcomeTransport
	}
}
