package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/storefront-lookup/internal/apperrors"
)

func TestFakeCommerce_KnownCustomer(t *testing.T) {
	fake := NewFakeCommerceClient()
	ctx := context.Background()

	resp, err := fake.SearchCustomersByPhone(ctx, FakeCustomerPhone)
	require.NoError(t, err)

	var customers entity.CustomerList
	require.NoError(t, json.Unmarshal(resp.Body, &customers))
	require.Len(t, customers.Customers, 1)

	resp, err = fake.CustomerOrders(ctx, customers.Customers[0].ID)
	require.NoError(t, err)

	var orders entity.OrderList
	require.NoError(t, json.Unmarshal(resp.Body, &orders))
	assert.Len(t, orders.Orders, 2)
}

func TestFakeCommerce_UnknownPhone(t *testing.T) {
	resp, err := NewFakeCommerceClient().SearchCustomersByPhone(context.Background(), "0000000000")
	require.NoError(t, err)
	assert.JSONEq(t, `{"customers":[]}`, string(resp.Body))
}

func TestFakeCommerce_UnknownCustomer(t *testing.T) {
	_, err := NewFakeCommerceClient().CustomerOrders(context.Background(), "1")

	var ue *apperrors.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusNotFound, ue.StatusCode)
}

func TestFakeCommerce_OrdersByPhone(t *testing.T) {
	resp, err := NewFakeCommerceClient().OrdersByPhone(context.Background(), FakeCustomerPhone)
	require.NoError(t, err)

	var orders entity.OrderList
	require.NoError(t, json.Unmarshal(resp.Body, &orders))
	assert.Len(t, orders.Orders, 2)
}
