package domain

import (
	"context"
	"time"

	"craftsmatch-backend/internal/shipping"
)

// --- Interfaces ---

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Product is a craftsman's listing.
type Product struct {
	ID            string                          `json:"id"`
	SellerID      string                          `json:"sellerId"`
	SellerName    string                          `json:"sellerName"`
	SellerCountry string                          `json:"sellerCountry"` // origin for shipping
	Name          string                          `json:"name"`
	Description   string                          `json:"description"`
	Price         float64                         `json:"price"`
	Currency      string                          `json:"currency"`
	Stock         int                             `json:"stock"`
	IsActive      bool                            `json:"isActive"`
	Images        []string                        `json:"images"`
	Shipping      shipping.ProductShippingDetails `json:"shipping"`
	CreatedAt     time.Time                       `json:"createdAt"`
	UpdatedAt     time.Time                       `json:"updatedAt"`
}

type ProductFilter struct {
	SellerID string
	Query    string
	MinPrice float64
	MaxPrice float64
	Sort     string // newest, price_asc, price_desc
	Limit    int
	Offset   int
	IsActive *bool // nil = all
}

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	BuyerID   string    `json:"buyerId"`
	BuyerName string    `json:"buyerName"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProductRepository interface {
	GetProducts(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) error
	UpdateShipping(ctx context.Context, productID string, details shipping.ProductShippingDetails) error
	// AdjustStock applies delta; a decrement that would go negative returns ErrInsufficientStock.
	AdjustStock(ctx context.Context, productID string, delta int) error

	// Reviews
	CreateReview(ctx context.Context, review *Review) error
	GetReviews(ctx context.Context, productID string) ([]Review, error)
}
