package domain

import (
	"context"
	"time"
)

type SellerSummary struct {
	ActiveListings int64   `json:"activeListings"`
	TotalOrders    int64   `json:"totalOrders"`
	PendingOrders  int64   `json:"pendingOrders"`
	Revenue        float64 `json:"revenue"`
	PendingSamples int64   `json:"pendingSamples"`
	AverageRating  float64 `json:"averageRating"`
	ReviewCount    int64   `json:"reviewCount"`
}

type BuyerSummary struct {
	OrdersPlaced int64   `json:"ordersPlaced"`
	TotalSpent   float64 `json:"totalSpent"`
	OpenSamples  int64   `json:"openSamples"`
}

// DailySales is one point of the seller revenue chart.
type DailySales struct {
	Day     time.Time `json:"day"`
	Orders  int64     `json:"orders"`
	Revenue float64   `json:"revenue"`
}

type StatsRepository interface {
	SellerSummary(ctx context.Context, sellerID string) (*SellerSummary, error)
	SellerDailySales(ctx context.Context, sellerID string, start, end time.Time) ([]DailySales, error)
	BuyerSummary(ctx context.Context, buyerID string) (*BuyerSummary, error)
}
