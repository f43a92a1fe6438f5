package coordinator

import (
	"context"
	"fmt"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/storefront-lookup/internal/apperrors"
)

// ErrNoCustomer is returned when the customer search comes back empty.
var ErrNoCustomer = &apperrors.LookupError{Message: "No customer found with this phone number."}

// --- FindCustomerStep ---

type FindCustomerStep struct {
	forwarders Forwarders
}

func NewFindCustomerStep(f Forwarders) *FindCustomerStep {
	return &FindCustomerStep{forwarders: f}
}

func (s *FindCustomerStep) Name() string { return "Find_Customer_Step" }

// Execute keeps the first customer the platform returned; no tie-break applies.
func (s *FindCustomerStep) Execute(ctx context.Context, p *Progress) error {
	list, err := s.forwarders.LookupCustomers(ctx, p.Phone)
	if err != nil {
		return fmt.Errorf("failed to fetch customer details: %w", err)
	}
	if list == nil || len(list.Customers) == 0 {
		return ErrNoCustomer
	}
	p.CustomerID = list.Customers[0].ID
	return nil
}

// --- FetchOrdersStep ---

type FetchOrdersStep struct {
	forwarders Forwarders
}

func NewFetchOrdersStep(f Forwarders) *FetchOrdersStep {
	return &FetchOrdersStep{forwarders: f}
}

func (s *FetchOrdersStep) Name() string { return "Fetch_Orders_Step" }

func (s *FetchOrdersStep) Execute(ctx context.Context, p *Progress) error {
	list, err := s.forwarders.FetchOrders(ctx, p.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to fetch orders for customer %s: %w", p.CustomerID, err)
	}
	p.Orders = []entity.Order{}
	if list != nil && list.Orders != nil {
		p.Orders = list.Orders
	}
	return nil
}

// --- RecommendStep ---

// RecommendStep records purchased categories and attaches the placeholder
// recommendations. The categories are reported, never used for ranking.
type RecommendStep struct{}

func (RecommendStep) Name() string { return "Recommend_Step" }

func (RecommendStep) Execute(_ context.Context, p *Progress) error {
	p.Categories = PurchasedCategories(p.Orders)
	p.Recommendations = PlaceholderRecommendations()
	return nil
}
