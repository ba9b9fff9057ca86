package usecase

import (
	"context"
	"fmt"
	"strings"

	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/internal/shipping"
)

type productGetter interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type ShippingUsecase struct {
	calc     *shipping.Calculator
	products productGetter
}

func NewShippingUsecase(calc *shipping.Calculator, products productGetter) *ShippingUsecase {
	return &ShippingUsecase{calc: calc, products: products}
}

// QuoteRequest prices a stored listing. A nil OrderValue means
// price times quantity.
type QuoteRequest struct {
	ProductID      string   `json:"productId"`
	Country        string   `json:"country"`
	ShippingMethod string   `json:"shippingMethod"`
	Quantity       int      `json:"quantity"`
	OrderValue     *float64 `json:"orderValue"`
}

func (u *ShippingUsecase) QuoteProduct(ctx context.Context, req QuoteRequest) (*shipping.Quote, error) {
	if strings.TrimSpace(req.ProductID) == "" {
		return nil, fmt.Errorf("%w: productId is required", domain.ErrInvalidInput)
	}
	product, err := u.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	params := shipping.CostParams{
		Product:        product.Shipping,
		Country:        req.Country,
		SellerCountry:  product.SellerCountry,
		ShippingMethod: req.ShippingMethod,
		Quantity:       req.Quantity,
	}
	if req.OrderValue != nil {
		params.OrderValue = *req.OrderValue
	} else {
		qty := req.Quantity
		if qty <= 0 {
			qty = 1
		}
		params.OrderValue = product.Price * float64(qty)
	}
	return u.QuoteInline(params)
}

// QuoteInline prices caller-supplied shipping details.
func (u *ShippingUsecase) QuoteInline(params shipping.CostParams) (*shipping.Quote, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return u.calc.Quote(params)
}

func (u *ShippingUsecase) EstimateDelivery(destination, origin, method string) (shipping.DeliveryTiming, error) {
	if strings.TrimSpace(destination) == "" || strings.TrimSpace(origin) == "" {
		return shipping.DeliveryTiming{}, fmt.Errorf("%w: destination and origin are required", domain.ErrInvalidInput)
	}
	return u.calc.EstimateDeliveryTime(destination, origin, method), nil
}

func (u *ShippingUsecase) AvailableMethods(ctx context.Context, productID, destination string) ([]string, error) {
	if strings.TrimSpace(destination) == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrInvalidInput)
	}
	product, err := u.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return u.calc.AvailableMethods(destination, product.SellerCountry, product.Shipping), nil
}

func (u *ShippingUsecase) VolumetricWeight(length, width, height float64) (float64, error) {
	if !(length >= 0) || !(width >= 0) || !(height >= 0) {
		return 0, fmt.Errorf("%w: dimensions must be non-negative", domain.ErrInvalidInput)
	}
	return shipping.CalculateVolumetricWeight(length, width, height), nil
}

func (u *ShippingUsecase) Zones() []shipping.ZoneSummary {
	return u.calc.Zones()
}
