package domain

import (
	"context"
	"time"

	"craftsmatch-backend/internal/shipping"
)

type OrderFilter struct {
	BuyerID  string
	SellerID string
	Status   string
	Limit    int
	Offset   int
}

// --- Order Entities ---

type Order struct {
	ID                string                  `json:"id"`
	BuyerID           string                  `json:"buyerId"`
	SellerID          string                  `json:"sellerId"`
	ProductID         string                  `json:"productId"`
	ProductName       string                  `json:"productName"`
	Quantity          int                     `json:"quantity"`
	UnitPrice         float64                 `json:"unitPrice"` // Price at time of purchase
	Subtotal          float64                 `json:"subtotal"`
	ShippingFee       float64                 `json:"shippingFee"`
	TotalAmount       float64                 `json:"totalAmount"`
	Currency          string                  `json:"currency"`
	ShippingMethod    string                  `json:"shippingMethod"`
	ShippingZone      shipping.Zone           `json:"shippingZone"`
	EstimatedDelivery shipping.DeliveryTiming `json:"estimatedDelivery"`
	ShippingAddress   Address                 `json:"shippingAddress"`
	Notes             string                  `json:"notes"`
	Status            string                  `json:"status"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

type OrderHistory struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	PreviousStatus *string   `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	Reason         *string   `json:"reason"`
	CreatedBy      *string   `json:"createdBy"` // UserID
	CreatedAt      time.Time `json:"createdAt"`
}

// --- Interfaces ---

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	// UpdateStatus moves the order from one status to another; ErrConflict if it is no longer in from.
	UpdateStatus(ctx context.Context, id, from, to string) error

	CreateOrderHistory(ctx context.Context, history *OrderHistory) error
	GetOrderHistory(ctx context.Context, orderID string) ([]OrderHistory, error)

	HasReceivedProduct(ctx context.Context, buyerID, productID string) (bool, error)
}
