package ports

import (
	"context"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
)

// CommerceClient reads customers and orders from the external commerce
// platform. Successful replies are returned verbatim; failures are one of the
// apperrors kinds.
type CommerceClient interface {
	SearchCustomersByPhone(ctx context.Context, phone string) (*entity.UpstreamResponse, error)
	CustomerOrders(ctx context.Context, customerID entity.ID) (*entity.UpstreamResponse, error)
	OrdersByPhone(ctx context.Context, phone string) (*entity.UpstreamResponse, error)
}
