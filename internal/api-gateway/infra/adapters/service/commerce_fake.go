package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/ports"
	"github.com/jcmexdev/storefront-lookup/internal/apperrors"
)

// Ensure fakeCommerceService implements the port at compile time.
var _ ports.CommerceClient = (*fakeCommerceService)(nil)

// FakeCustomerPhone is the only phone number the fake catalogue knows.
const FakeCustomerPhone = "5551234567"

// fakeCommerceService is an in-memory catalogue intended for local
// development and manual testing only. Do NOT use in production.
type fakeCommerceService struct {
	customers map[string]entity.ID
	orders    map[entity.ID][]entity.Order
}

// NewFakeCommerceClient returns an in-memory CommerceClient seeded with one
// customer and two orders.
func NewFakeCommerceClient() ports.CommerceClient {
	const id entity.ID = "207119551"
	return &fakeCommerceService{
		customers: map[string]entity.ID{FakeCustomerPhone: id},
		orders: map[entity.ID][]entity.Order{
			id: {
				{
					ID:          "450789469",
					OrderNumber: "1001",
					CreatedAt:   "2024-03-10T11:00:00-05:00",
					LineItems: []entity.LineItem{
						{ID: "466157049", Title: "Trail Running Shoes", Quantity: 1, ProductType: "Footwear"},
						{ID: "466157050", Title: "Merino Socks", Quantity: 2, ProductType: "Apparel"},
					},
				},
				{
					ID:          "450789470",
					OrderNumber: "1002",
					CreatedAt:   "2024-05-22T09:30:00-05:00",
					LineItems: []entity.LineItem{
						{ID: "466157051", Title: "Hydration Vest", Quantity: 1, ProductType: "Accessories"},
					},
				},
			},
		},
	}
}

func (f *fakeCommerceService) SearchCustomersByPhone(ctx context.Context, phone string) (*entity.UpstreamResponse, error) {
	if phone == "" {
		return nil, apperrors.ErrPhoneRequired
	}
	list := entity.CustomerList{Customers: []entity.Customer{}}
	if id, ok := f.customers[phone]; ok {
		list.Customers = append(list.Customers, entity.Customer{ID: id})
	}
	return encode(list)
}

func (f *fakeCommerceService) CustomerOrders(ctx context.Context, customerID entity.ID) (*entity.UpstreamResponse, error) {
	orders, ok := f.orders[customerID]
	if !ok {
		return nil, &apperrors.UpstreamError{
			Endpoint:    EndpointCustomerOrders,
			StatusCode:  http.StatusNotFound,
			ContentType: "application/json",
			Body:        []byte(`{"errors":"Not Found"}`),
		}
	}
	return encode(entity.OrderList{Orders: orders})
}

func (f *fakeCommerceService) OrdersByPhone(ctx context.Context, phone string) (*entity.UpstreamResponse, error) {
	if phone == "" {
		return nil, apperrors.ErrPhoneRequired
	}
	list := entity.OrderList{Orders: []entity.Order{}}
	if id, ok := f.customers[phone]; ok {
		list.Orders = append(list.Orders, f.orders[id]...)
	}
	return encode(list)
}

func encode(v any) (*entity.UpstreamResponse, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("fake commerce: encode: %w", err)
	}
	return &entity.UpstreamResponse{StatusCode: http.StatusOK, Body: b}, nil
}
