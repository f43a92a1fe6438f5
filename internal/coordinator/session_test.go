package coordinator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/domain/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSession_SuccessFlow(t *testing.T) {
	fw := &fakeForwarders{lookupFunc: customers("123"), ordersFunc: twoOrders}
	s := NewSession(NewOrchestrator(fw), discardLogger())

	assert.Equal(t, PhaseIdle, s.Phase())
	assert.False(t, s.CanSubmit())

	assert.Equal(t, "(555) 123-4567", s.SetPhone("5551234567"))
	assert.True(t, s.CanSubmit())

	res, err := s.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, PhaseSuccess, s.Phase())
	assert.Same(t, res, s.Result())
	assert.Empty(t, s.Message())
	assert.Equal(t, []string{"5551234567"}, fw.lookupPhones)
}

func TestSession_NoCustomerFails(t *testing.T) {
	fw := &fakeForwarders{lookupFunc: customers()}
	s := NewSession(NewOrchestrator(fw), discardLogger())
	s.SetPhone("5551234567")

	_, err := s.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, PhaseFailure, s.Phase())
	assert.Equal(t, UserFailureMessage, s.Message())
	assert.ErrorIs(t, s.Err(), ErrNoCustomer)
	assert.Equal(t, "No customer found with this phone number.", s.Err().Error())
	assert.Nil(t, s.Result())
	assert.Empty(t, fw.orderIDs)
}

func TestSession_ResubmitAfterFailure(t *testing.T) {
	calls := 0
	fw := &fakeForwarders{
		lookupFunc: func(context.Context, string) (*entity.CustomerList, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("network down")
			}
			return &entity.CustomerList{Customers: []entity.Customer{{ID: "7"}}}, nil
		},
	}
	s := NewSession(NewOrchestrator(fw), discardLogger())
	s.SetPhone("5551234567")

	_, err := s.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseFailure, s.Phase())

	_, err = s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseSuccess, s.Phase())
	assert.NoError(t, s.Err())
	assert.Empty(t, s.Message())
}

func TestSession_RejectsSubmitWhileLoading(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	fw := &fakeForwarders{lookupFunc: func(context.Context, string) (*entity.CustomerList, error) {
		close(entered)
		<-release
		return &entity.CustomerList{Customers: []entity.Customer{{ID: "1"}}}, nil
	}}
	s := NewSession(NewOrchestrator(fw), discardLogger())
	s.SetPhone("5551234567")

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()

	<-entered
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.False(t, s.CanSubmit())

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrLookupInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, PhaseSuccess, s.Phase())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "success", PhaseSuccess.String())
	assert.Equal(t, "failure", PhaseFailure.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
