package usecase

import (
	"context"
	"fmt"
	"time"

	"craftsmatch-backend/config"
	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/pkg/cache"
)

const maxSalesRange = 366 * 24 * time.Hour

type StatsUsecase struct {
	repo  domain.StatsRepository
	cache cache.CacheService
	cfg   *config.Config
}

func NewStatsUsecase(repo domain.StatsRepository, cache cache.CacheService, cfg *config.Config) *StatsUsecase {
	return &StatsUsecase{repo: repo, cache: cache, cfg: cfg}
}

func (uc *StatsUsecase) SellerSummary(ctx context.Context, sellerID string) (*domain.SellerSummary, error) {
	key := cache.SellerSummaryKey(sellerID)
	if val, found := uc.cache.Get(key); found {
		return val.(*domain.SellerSummary), nil
	}

	summary, err := uc.repo.SellerSummary(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(key, summary, uc.cfg.CacheStatsTTL)
	return summary, nil
}

// SellerDailySales validates the range; the client controls it.
func (uc *StatsUsecase) SellerDailySales(ctx context.Context, sellerID string, start, end time.Time) ([]domain.DailySales, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}
	if end.Sub(start) > maxSalesRange {
		return nil, fmt.Errorf("%w: date range cannot exceed 366 days", domain.ErrInvalidInput)
	}
	return uc.repo.SellerDailySales(ctx, sellerID, start, end)
}

func (uc *StatsUsecase) BuyerSummary(ctx context.Context, buyerID string) (*domain.BuyerSummary, error) {
	return uc.repo.BuyerSummary(ctx, buyerID)
}
