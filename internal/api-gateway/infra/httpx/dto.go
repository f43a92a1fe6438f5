package httpx

import (
	"encoding/json"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
)

// Phone fields use entity.ID so numeric phones are accepted like strings.
type CustomerLookupRequest struct {
	Phone entity.ID `json:"phone" validate:"required"`
}

type OrderFetchRequest struct {
	CustomerID entity.ID `json:"customerId"`
}

type OrderSearchRequest struct {
	PhoneNumber entity.ID `json:"phoneNumber" validate:"required"`
}

type OrderSearchResponse struct {
	Orders json.RawMessage `json:"orders"`
}

type LookupResponse struct {
	LookupID            string                  `json:"lookupId"`
	CustomerID          entity.ID               `json:"customerId"`
	Orders              []entity.Order          `json:"orders"`
	PurchasedCategories []string                `json:"purchasedCategories"`
	Recommendations     []entity.Recommendation `json:"recommendations"`
}

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
