package usecase

import (
	"context"
	"testing"

	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/internal/shipping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSamples(products ...domain.Product) (*SampleUsecase, *fakeSampleRepo) {
	repo := newFakeSampleRepo()
	return NewSampleUsecase(repo, newFakeProductRepo(products...), shipping.MustNewCalculator(nil), testCache()), repo
}

func TestSample_RequestIgnoresFreeShipping(t *testing.T) {
	p := oakTable()
	p.Shipping.FreeShippingThreshold = ptr(0.0)
	uc, _ := newSamples(p)

	s, err := uc.RequestSample(context.Background(), "builder-1", RequestSampleReq{
		ProductID: "prod-1", Message: "finish swatch please", ShippingAddress: testAddress("Canada"),
	})
	require.NoError(t, err)
	// one 2kg unit to CA: 20 + 5*2
	assert.Equal(t, 30.0, s.ShippingFee)
	assert.Equal(t, "standard", s.ShippingMethod)
	assert.Equal(t, shipping.DeliveryTiming{MinDays: 7, MaxDays: 14}, s.EstimatedDelivery)
	assert.Equal(t, domain.SampleStatusRequested, s.Status)
	assert.Equal(t, "seller-1", s.SellerID)
}

func TestSample_CustomRateStillApplies(t *testing.T) {
	p := oakTable()
	p.Shipping.CustomShippingRates = map[string]float64{"GB": 12}
	uc, _ := newSamples(p)

	s, err := uc.RequestSample(context.Background(), "builder-1", RequestSampleReq{
		ProductID: "prod-1", ShippingAddress: testAddress("GB"),
	})
	require.NoError(t, err)
	assert.Equal(t, 12.0, s.ShippingFee)
}

func TestSample_OneOpenRequest(t *testing.T) {
	uc, _ := newSamples(oakTable())
	ctx := context.Background()
	req := RequestSampleReq{ProductID: "prod-1", ShippingAddress: testAddress("US")}

	first, err := uc.RequestSample(ctx, "builder-1", req)
	require.NoError(t, err)
	_, err = uc.RequestSample(ctx, "builder-1", req)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.UpdateStatus(ctx, "seller-1", first.ID, "declined")
	require.NoError(t, err)
	_, err = uc.RequestSample(ctx, "builder-1", req)
	assert.NoError(t, err)
}

func TestSample_RequestRejects(t *testing.T) {
	p := oakTable()
	p.Shipping.RestrictedCountries = []string{"NZ"}
	uc, _ := newSamples(p)
	ctx := context.Background()

	_, err := uc.RequestSample(ctx, "seller-1", RequestSampleReq{ProductID: "prod-1", ShippingAddress: testAddress("US")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.RequestSample(ctx, "builder-1", RequestSampleReq{ProductID: "prod-1", ShippingAddress: testAddress("NZ")})
	assert.ErrorIs(t, err, shipping.ErrShippingUnavailable)

	_, err = uc.RequestSample(ctx, "builder-1", RequestSampleReq{ProductID: "prod-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RequestSample(ctx, "builder-1", RequestSampleReq{ProductID: "ghost", ShippingAddress: testAddress("US")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSample_UpdateStatus(t *testing.T) {
	uc, _ := newSamples(oakTable())
	ctx := context.Background()

	s, err := uc.RequestSample(ctx, "builder-1", RequestSampleReq{ProductID: "prod-1", ShippingAddress: testAddress("US")})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, "seller-1", s.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.UpdateStatus(ctx, "seller-2", s.ID, "approved")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.UpdateStatus(ctx, "seller-1", s.ID, "misplaced")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, err = uc.UpdateStatus(ctx, "seller-1", s.ID, "Approved")
	require.NoError(t, err)
	assert.Equal(t, domain.SampleStatusApproved, s.Status)
	s, err = uc.UpdateStatus(ctx, "seller-1", s.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, domain.SampleStatusShipped, s.Status)

	mine, err := uc.ListMine(ctx, "builder-1", "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	incoming, err := uc.ListForSeller(ctx, "seller-1", domain.SampleStatusRequested)
	require.NoError(t, err)
	assert.Empty(t, incoming)
}
