package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrder(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusInProduction, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusConfirmed, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusInProduction, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{"bogus", OrderStatusConfirmed, false},
		{OrderStatusPending, "bogus", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransitionOrder(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionSample(t *testing.T) {
	assert.True(t, CanTransitionSample(SampleStatusRequested, SampleStatusApproved))
	assert.True(t, CanTransitionSample(SampleStatusRequested, SampleStatusDeclined))
	assert.True(t, CanTransitionSample(SampleStatusApproved, SampleStatusShipped))
	assert.False(t, CanTransitionSample(SampleStatusRequested, SampleStatusShipped))
	assert.False(t, CanTransitionSample(SampleStatusDeclined, SampleStatusApproved))
	assert.False(t, CanTransitionSample(SampleStatusShipped, SampleStatusRequested))
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, IsOrderStatus(OrderStatusInProduction))
	assert.False(t, IsOrderStatus("refunded"))
	assert.True(t, IsSampleStatus(SampleStatusDeclined))
	assert.False(t, IsSampleStatus("lost"))
}

func TestAddressValidate(t *testing.T) {
	ok := Address{FullName: "Ada", Line1: "1 Loom St", City: "Leeds", Country: "GB"}
	assert.NoError(t, ok.Validate())

	missing := ok
	missing.Country = " "
	assert.ErrorIs(t, missing.Validate(), ErrInvalidInput)

	missing = ok
	missing.City = ""
	assert.ErrorIs(t, missing.Validate(), ErrInvalidInput)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 0, NewPagination(1, 0, 10).TotalPages)
}
