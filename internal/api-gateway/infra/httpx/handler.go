package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/ports"
	"github.com/jcmexdev/storefront-lookup/internal/apperrors"
	"github.com/jcmexdev/storefront-lookup/internal/coordinator"
)

const (
	msgInternalError   = "Internal Server Error"
	msgGatewayTimeout  = "Gateway Timeout"
	msgInvalidBody     = "Invalid request body"
	msgOrderSearchFail = "Failed to fetch orders"
	msgBodyTooLarge    = "Request body too large"

	defaultMaxBodyBytes = 50 << 20
)

// HealthProbe reports whether an optional dependency is reachable.
type HealthProbe interface {
	Ping(ctx context.Context) error
}

// Handler serves the forwarder routes and the server-side lookup.
type Handler struct {
	commerce ports.CommerceClient
	lookup   *coordinator.Orchestrator
	probe    HealthProbe // nil-safe: health reports ok without it
	validate *validator.Validate

	maxBodyBytes int64
}

// NewHandler wires the commerce client and the orchestrator built on top of it.
// probe may be nil.
func NewHandler(commerce ports.CommerceClient, lookup *coordinator.Orchestrator, probe HealthProbe) *Handler {
	return &Handler{
		commerce: commerce,
		lookup:   lookup,
		probe:    probe,
		validate: validator.New(),

		maxBodyBytes: defaultMaxBodyBytes,
	}
}

// LookupCustomers forwards a phone search to the commerce platform.
func (h *Handler) LookupCustomers(w http.ResponseWriter, r *http.Request) {
	var req CustomerLookupRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeFailure(w, r, apperrors.ErrPhoneRequired)
		return
	}

	resp, err := h.commerce.SearchCustomersByPhone(r.Context(), req.Phone.String())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	relay(w, resp)
}

// FetchOrders forwards a customer's order listing. The id is not validated.
func (h *Handler) FetchOrders(w http.ResponseWriter, r *http.Request) {
	var req OrderFetchRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.commerce.CustomerOrders(r.Context(), req.CustomerID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	relay(w, resp)
}

// SearchOrders is the combined route: one platform query for all orders
// placed with a phone number. Failures collapse into a fixed envelope.
func (h *Handler) SearchOrders(w http.ResponseWriter, r *http.Request) {
	var req OrderSearchRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeFailure(w, r, apperrors.ErrPhoneRequired)
		return
	}

	resp, err := h.commerce.OrdersByPhone(r.Context(), req.PhoneNumber.String())
	if err != nil {
		slog.ErrorContext(r.Context(), "order search failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgOrderSearchFail})
		return
	}

	var body OrderSearchResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		slog.ErrorContext(r.Context(), "order search returned an unexpected body", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgOrderSearchFail})
		return
	}
	if body.Orders == nil || bytes.Equal(body.Orders, []byte("null")) {
		body.Orders = json.RawMessage("[]")
	}
	writeJSON(w, http.StatusOK, body)
}

// Lookup runs the full customer -> orders flow server-side.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req CustomerLookupRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeFailure(w, r, apperrors.ErrPhoneRequired)
		return
	}

	result, err := h.lookup.Lookup(r.Context(), req.Phone.String())
	if err != nil {
		slog.ErrorContext(r.Context(), "order lookup failed", "error", err)

		var ve *apperrors.ValidationError
		switch {
		case errors.As(err, &ve):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: ve.Message})
		case errors.Is(err, coordinator.ErrNoCustomer):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Message: coordinator.UserFailureMessage})
		default:
			writeJSON(w, http.StatusBadGateway, ErrorResponse{Message: coordinator.UserFailureMessage})
		}
		return
	}

	writeJSON(w, http.StatusOK, mapResultToResponse(result))
}

// Health reports ok, or degraded when the probe fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	payload := map[string]string{"status": "ok"}
	if h.probe != nil {
		if err := h.probe.Ping(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "health probe failed", "error", err)
			payload["status"] = "degraded"
			payload["error"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, payload)
			return
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

// decode reads a JSON body of at most maxBodyBytes into v. An empty body
// leaves v zero-valued so required-field checks report the missing field.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Message: msgBodyTooLarge})
		return false
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: msgInvalidBody, Error: err.Error()})
	return false
}

func mapResultToResponse(res *coordinator.Result) LookupResponse {
	orders := res.Orders
	if orders == nil {
		orders = []entity.Order{}
	}
	categories := res.PurchasedCategories
	if categories == nil {
		categories = []string{}
	}
	return LookupResponse{
		LookupID:            res.LookupID,
		CustomerID:          res.CustomerID,
		Orders:              orders,
		PurchasedCategories: categories,
		Recommendations:     res.Recommendations,
	}
}

// writeFailure maps the apperrors kinds onto the forwarder wire contract.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *apperrors.ValidationError
		ue *apperrors.UpstreamError
		to *apperrors.TimeoutError
		tr *apperrors.TransportError
	)

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: ve.Message})
	case errors.As(err, &ue):
		slog.WarnContext(r.Context(), "commerce platform returned an error", "endpoint", ue.Endpoint, "status", ue.StatusCode, "body", string(ue.Body))
		contentType := ue.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(ue.StatusCode)
		_, _ = w.Write(ue.Body)
	case errors.As(err, &to):
		slog.ErrorContext(r.Context(), "commerce platform timed out", "endpoint", to.Endpoint, "error", err)
		writeJSON(w, http.StatusGatewayTimeout, ErrorResponse{Message: msgGatewayTimeout, Error: to.Err.Error()})
	case errors.As(err, &tr):
		slog.ErrorContext(r.Context(), "commerce platform unreachable", "endpoint", tr.Endpoint, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: msgInternalError, Error: tr.Err.Error()})
	default:
		slog.ErrorContext(r.Context(), "unexpected forwarder error", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: msgInternalError, Error: err.Error()})
	}
}

func relay(w http.ResponseWriter, resp *entity.UpstreamResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
