package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/storefront-lookup/internal/pkg/interceptors"
	"github.com/jcmexdev/storefront-lookup/internal/pkg/interceptors/constants"
)

// AttachTracingMetadata exposes chi's request ID to outbound calls and echoes
// it back to the caller. It must run after middleware.RequestID.
func AttachTracingMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		if requestID == "" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set(constants.HeaderXRequestId, requestID)
		ctx := interceptors.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
