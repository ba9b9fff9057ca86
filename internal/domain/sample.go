package domain

import (
	"context"
	"time"

	"craftsmatch-backend/internal/shipping"
)

// SampleRequest is a builder asking a craftsman for a single sample unit
// before committing to an order.
type SampleRequest struct {
	ID                string                  `json:"id"`
	ProductID         string                  `json:"productId"`
	ProductName       string                  `json:"productName"`
	BuyerID           string                  `json:"buyerId"`
	SellerID          string                  `json:"sellerId"`
	Message           string                  `json:"message"`
	ShippingMethod    string                  `json:"shippingMethod"`
	ShippingFee       float64                 `json:"shippingFee"`
	EstimatedDelivery shipping.DeliveryTiming `json:"estimatedDelivery"`
	ShippingAddress   Address                 `json:"shippingAddress"`
	Status            string                  `json:"status"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

type SampleFilter struct {
	BuyerID  string
	SellerID string
	Status   string
}

type SampleRepository interface {
	Create(ctx context.Context, sample *SampleRequest) error
	GetByID(ctx context.Context, id string) (*SampleRequest, error)
	List(ctx context.Context, filter SampleFilter) ([]SampleRequest, error)
	UpdateStatus(ctx context.Context, id, from, to string) error
	HasOpenRequest(ctx context.Context, buyerID, productID string) (bool, error)
}
