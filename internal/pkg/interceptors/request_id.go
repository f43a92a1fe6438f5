package interceptors

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jcmexdev/storefront-lookup/internal/pkg/interceptors/constants"
)

// GetIDFromContext returns the request ID attached by the inbound middleware,
// or "" when the call did not originate from an HTTP request.
func GetIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok && id != "" {
		return id
	}
	return middleware.GetReqID(ctx)
}

// ContextWithRequestID stores id so outbound calls made with ctx carry it.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.ContextKeyRequestID, id)
}

type propagatingTransport struct {
	base http.RoundTripper
}

// NewTransport wraps base so every outbound request carries the caller's
// request ID and W3C trace headers. A nil base uses http.DefaultTransport.
func NewTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &propagatingTransport{base: base}
}

func (t *propagatingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	out := req.Clone(ctx)

	if id := GetIDFromContext(ctx); id != "" && out.Header.Get(constants.HeaderXRequestId) == "" {
		out.Header.Set(constants.HeaderXRequestId, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out.Header))

	return t.base.RoundTrip(out)
}
