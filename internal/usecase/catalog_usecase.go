package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"craftsmatch-backend/config"
	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/internal/shipping"
	"craftsmatch-backend/pkg/cache"
	"craftsmatch-backend/pkg/logger"
	"craftsmatch-backend/pkg/utils"
)

type CatalogUsecase struct {
	repo      domain.ProductRepository
	orderRepo domain.OrderRepository
	userRepo  domain.UserRepository
	cache     cache.CacheService
	cfg       *config.Config
}

func NewCatalogUsecase(repo domain.ProductRepository, orderRepo domain.OrderRepository, userRepo domain.UserRepository, cache cache.CacheService, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		repo:      repo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		cache:     cache,
		cfg:       cfg,
	}
}

type CreateListingInput struct {
	Name        string                          `json:"name"`
	Description string                          `json:"description"`
	Price       float64                         `json:"price"`
	Currency    string                          `json:"currency"`
	Stock       int                             `json:"stock"`
	Images      []string                        `json:"images"`
	Shipping    shipping.ProductShippingDetails `json:"shipping"`
}

func (in CreateListingInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !(in.Price > 0) {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
	}
	if err := in.Shipping.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// CreateListing publishes a product for an onboarded craftsman. The seller's
// country becomes the shipping origin.
func (u *CatalogUsecase) CreateListing(ctx context.Context, sellerID string, in CreateListingInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	seller, err := u.userRepo.GetByID(ctx, sellerID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !seller.IsOnboarded()) {
		return nil, fmt.Errorf("%w: complete onboarding before listing products", domain.ErrForbidden)
	}
	if err != nil {
		return nil, err
	}
	if seller.Role != domain.RoleCraftsman {
		return nil, fmt.Errorf("%w: only craftsmen can list products", domain.ErrForbidden)
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = u.cfg.DefaultCurrency
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}

	product := &domain.Product{
		ID:            utils.GenerateUUID(),
		SellerID:      sellerID,
		SellerName:    seller.DisplayName,
		SellerCountry: seller.Country,
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		Price:         in.Price,
		Currency:      currency,
		Stock:         in.Stock,
		IsActive:      true,
		Images:        images,
		Shipping:      in.Shipping.Normalized(),
	}
	if err := u.repo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	u.cache.Delete(cache.SellerSummaryKey(sellerID))

	logger.WithContext(ctx).Info().
		Str("product_id", product.ID).
		Str("seller_id", sellerID).
		Msg("listing created")
	return product, nil
}

func (u *CatalogUsecase) UpdateShipping(ctx context.Context, sellerID, productID string, details shipping.ProductShippingDetails) (*domain.Product, error) {
	if err := details.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	product, err := u.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, fmt.Errorf("%w: product belongs to another seller", domain.ErrForbidden)
	}

	details = details.Normalized()
	if err := u.repo.UpdateShipping(ctx, productID, details); err != nil {
		return nil, fmt.Errorf("update shipping: %w", err)
	}
	u.cache.Delete(cache.ProductKey(productID))

	product.Shipping = details
	return product, nil
}

// GetProduct returns an active product, served from cache when possible.
func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := cache.ProductKey(id)
	if val, found := u.cache.Get(key); found {
		return val.(*domain.Product), nil
	}

	product, err := u.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrNotFound
	}

	u.cache.Set(key, product, u.cfg.CacheProductTTL)
	return product, nil
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	return u.repo.GetProducts(ctx, filter)
}

// ListSellerProducts includes inactive listings.
func (u *CatalogUsecase) ListSellerProducts(ctx context.Context, sellerID string) ([]domain.Product, error) {
	products, _, err := u.repo.GetProducts(ctx, domain.ProductFilter{SellerID: sellerID})
	return products, err
}

// --- Reviews ---

func (u *CatalogUsecase) AddReview(ctx context.Context, buyerID, productID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	product, err := u.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	received, err := u.orderRepo.HasReceivedProduct(ctx, buyerID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify purchase: %w", err)
	}
	if !received {
		return nil, fmt.Errorf("%w: you can only review products you have received", domain.ErrForbidden)
	}

	review := &domain.Review{
		ID:        utils.GenerateUUID(),
		ProductID: productID,
		BuyerID:   buyerID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	if err := u.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	u.cache.Delete(cache.SellerSummaryKey(product.SellerID))
	return review, nil
}

func (u *CatalogUsecase) GetReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	return u.repo.GetReviews(ctx, productID)
}
