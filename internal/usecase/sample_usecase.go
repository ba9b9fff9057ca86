package usecase

import (
	"context"
	"fmt"
	"strings"

	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/internal/shipping"
	"craftsmatch-backend/pkg/cache"
	"craftsmatch-backend/pkg/logger"
	"craftsmatch-backend/pkg/utils"
)

type SampleUsecase struct {
	repo        domain.SampleRepository
	productRepo domain.ProductRepository
	calc        *shipping.Calculator
	cache       cache.CacheService
}

func NewSampleUsecase(repo domain.SampleRepository, productRepo domain.ProductRepository, calc *shipping.Calculator, cache cache.CacheService) *SampleUsecase {
	return &SampleUsecase{repo: repo, productRepo: productRepo, calc: calc, cache: cache}
}

type RequestSampleReq struct {
	ProductID       string         `json:"productId"`
	Message         string         `json:"message"`
	ShippingMethod  string         `json:"shippingMethod"`
	ShippingAddress domain.Address `json:"shippingAddress"`
}

// RequestSample asks the seller for one unit. Samples are priced as a single
// unit with no order value, and free shipping thresholds never apply.
func (u *SampleUsecase) RequestSample(ctx context.Context, buyerID string, req RequestSampleReq) (*domain.SampleRequest, error) {
	if err := req.ShippingAddress.Validate(); err != nil {
		return nil, err
	}
	req.ShippingAddress.Country = shipping.NormalizeCountry(req.ShippingAddress.Country)

	product, err := u.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrNotFound
	}
	if product.SellerID == buyerID {
		return nil, fmt.Errorf("%w: cannot request a sample of your own product", domain.ErrForbidden)
	}

	open, err := u.repo.HasOpenRequest(ctx, buyerID, product.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, fmt.Errorf("%w: a sample request for this product is already open", domain.ErrConflict)
	}

	details := product.Shipping
	details.FreeShippingThreshold = nil
	quote, err := u.calc.Quote(shipping.CostParams{
		Product:        details,
		Country:        req.ShippingAddress.Country,
		SellerCountry:  product.SellerCountry,
		ShippingMethod: req.ShippingMethod,
		OrderValue:     0,
		Quantity:       1,
	})
	if err != nil {
		return nil, err
	}

	sample := &domain.SampleRequest{
		ID:                utils.GenerateUUID(),
		ProductID:         product.ID,
		ProductName:       product.Name,
		BuyerID:           buyerID,
		SellerID:          product.SellerID,
		Message:           strings.TrimSpace(req.Message),
		ShippingMethod:    quote.Method,
		ShippingFee:       quote.Cost,
		EstimatedDelivery: quote.Delivery,
		ShippingAddress:   req.ShippingAddress,
		Status:            domain.SampleStatusRequested,
	}
	if err := u.repo.Create(ctx, sample); err != nil {
		return nil, err
	}
	u.cache.Delete(cache.SellerSummaryKey(product.SellerID))

	logger.WithContext(ctx).Info().
		Str("sample_id", sample.ID).
		Str("product_id", product.ID).
		Msg("sample requested")
	return sample, nil
}

func (u *SampleUsecase) ListMine(ctx context.Context, buyerID, status string) ([]domain.SampleRequest, error) {
	return u.repo.List(ctx, domain.SampleFilter{BuyerID: buyerID, Status: status})
}

func (u *SampleUsecase) ListForSeller(ctx context.Context, sellerID, status string) ([]domain.SampleRequest, error) {
	return u.repo.List(ctx, domain.SampleFilter{SellerID: sellerID, Status: status})
}

func (u *SampleUsecase) UpdateStatus(ctx context.Context, sellerID, id, status string) (*domain.SampleRequest, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !domain.IsSampleStatus(status) {
		return nil, fmt.Errorf("%w: unknown sample status %q", domain.ErrInvalidInput, status)
	}

	sample, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sample.SellerID != sellerID {
		return nil, domain.ErrForbidden
	}
	if !domain.CanTransitionSample(sample.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, sample.Status, status)
	}
	if err := u.repo.UpdateStatus(ctx, id, sample.Status, status); err != nil {
		return nil, err
	}
	sample.Status = status
	u.cache.Delete(cache.SellerSummaryKey(sellerID))
	return sample, nil
}
