package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"craftsmatch-backend/config"
	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/internal/shipping"
	"craftsmatch-backend/pkg/cache"
	"craftsmatch-backend/pkg/logger"
	"craftsmatch-backend/pkg/utils"
)

type OrderUsecase struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	calc        *shipping.Calculator
	txManager   domain.TransactionManager
	cache       cache.CacheService
	cfg         *config.Config
}

func NewOrderUsecase(repo domain.OrderRepository, pRepo domain.ProductRepository, calc *shipping.Calculator, txManager domain.TransactionManager, cache cache.CacheService, cfg *config.Config) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   repo,
		productRepo: pRepo,
		calc:        calc,
		txManager:   txManager,
		cache:       cache,
		cfg:         cfg,
	}
}

type PlaceOrderReq struct {
	ProductID       string         `json:"productId"`
	Quantity        int            `json:"quantity"`
	ShippingMethod  string         `json:"shippingMethod"`
	ShippingAddress domain.Address `json:"shippingAddress"`
	Notes           string         `json:"notes"`
}

func (u *OrderUsecase) PlaceOrder(ctx context.Context, buyerID string, req PlaceOrderReq) (*domain.Order, error) {
	// 1. Validate request
	if req.Quantity < 1 || req.Quantity > u.cfg.MaxOrderQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", domain.ErrInvalidInput, u.cfg.MaxOrderQuantity)
	}
	if err := req.ShippingAddress.Validate(); err != nil {
		return nil, err
	}
	req.ShippingAddress.Country = shipping.NormalizeCountry(req.ShippingAddress.Country)

	// 2. Load the live product; price and stock must not come from cache
	product, err := u.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrNotFound
	}
	if product.SellerID == buyerID {
		return nil, fmt.Errorf("%w: cannot order your own product", domain.ErrForbidden)
	}
	if product.Stock < req.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	// 3. Shipping
	subtotal := roundCents(product.Price * float64(req.Quantity))
	quote, err := u.calc.Quote(shipping.CostParams{
		Product:        product.Shipping,
		Country:        req.ShippingAddress.Country,
		SellerCountry:  product.SellerCountry,
		ShippingMethod: req.ShippingMethod,
		OrderValue:     subtotal,
		Quantity:       req.Quantity,
	})
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:                utils.GenerateUUID(),
		BuyerID:           buyerID,
		SellerID:          product.SellerID,
		ProductID:         product.ID,
		ProductName:       product.Name,
		Quantity:          req.Quantity,
		UnitPrice:         product.Price,
		Subtotal:          subtotal,
		ShippingFee:       quote.Cost,
		TotalAmount:       roundCents(subtotal + quote.Cost),
		Currency:          product.Currency,
		ShippingMethod:    quote.Method,
		ShippingZone:      quote.Zone,
		EstimatedDelivery: quote.Delivery,
		ShippingAddress:   req.ShippingAddress,
		Notes:             strings.TrimSpace(req.Notes),
		Status:            domain.OrderStatusPending,
	}

	// 4. Transaction: create order, reserve stock, record history
	err = u.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := u.orderRepo.CreateOrder(txCtx, order); err != nil {
			return err
		}
		if err := u.productRepo.AdjustStock(txCtx, product.ID, -req.Quantity); err != nil {
			return err
		}
		return u.orderRepo.CreateOrderHistory(txCtx, &domain.OrderHistory{
			ID:        utils.GenerateUUID(),
			OrderID:   order.ID,
			NewStatus: domain.OrderStatusPending,
			CreatedBy: &buyerID,
		})
	})
	if err != nil {
		return nil, err
	}
	u.invalidate(order)

	logger.WithContext(ctx).Info().
		Str("order_id", order.ID).
		Str("product_id", order.ProductID).
		Str("zone", string(order.ShippingZone)).
		Float64("total", order.TotalAmount).
		Msg("order placed")
	return order, nil
}

func (u *OrderUsecase) GetMyOrders(ctx context.Context, buyerID, status string, limit, offset int) ([]domain.Order, int64, error) {
	return u.orderRepo.GetAll(ctx, domain.OrderFilter{BuyerID: buyerID, Status: status, Limit: limit, Offset: offset})
}

func (u *OrderUsecase) GetSellerOrders(ctx context.Context, sellerID, status string, limit, offset int) ([]domain.Order, int64, error) {
	return u.orderRepo.GetAll(ctx, domain.OrderFilter{SellerID: sellerID, Status: status, Limit: limit, Offset: offset})
}

// GetOrder is visible to the buyer and the seller of the order only.
func (u *OrderUsecase) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (u *OrderUsecase) GetOrderHistory(ctx context.Context, userID, orderID string) ([]domain.OrderHistory, error) {
	if _, err := u.GetOrder(ctx, userID, orderID); err != nil {
		return nil, err
	}
	return u.orderRepo.GetOrderHistory(ctx, orderID)
}

// UpdateStatus moves a seller's order along the fulfilment flow.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, sellerID, orderID, status, note string) (*domain.Order, error) {
	return u.transition(ctx, orderID, status, note, sellerID, func(o *domain.Order) error {
		if o.SellerID != sellerID {
			return domain.ErrForbidden
		}
		return nil
	})
}

// CancelOrder lets the buyer withdraw an order the seller has not confirmed.
func (u *OrderUsecase) CancelOrder(ctx context.Context, buyerID, orderID, reason string) (*domain.Order, error) {
	return u.transition(ctx, orderID, domain.OrderStatusCancelled, reason, buyerID, func(o *domain.Order) error {
		if o.BuyerID != buyerID {
			return domain.ErrForbidden
		}
		if o.Status != domain.OrderStatusPending {
			return fmt.Errorf("%w: only pending orders can be cancelled by the buyer", domain.ErrInvalidTransition)
		}
		return nil
	})
}

func (u *OrderUsecase) transition(ctx context.Context, orderID, status, note, actorID string, authorize func(*domain.Order) error) (*domain.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !domain.IsOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, status)
	}

	var order *domain.Order
	err := u.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		order, err = u.orderRepo.GetByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if err := authorize(order); err != nil {
			return err
		}
		if !domain.CanTransitionOrder(order.Status, status) {
			return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, order.Status, status)
		}

		previous := order.Status
		if err := u.orderRepo.UpdateStatus(txCtx, orderID, previous, status); err != nil {
			return err
		}
		if status == domain.OrderStatusCancelled {
			if err := u.productRepo.AdjustStock(txCtx, order.ProductID, order.Quantity); err != nil {
				return fmt.Errorf("restock: %w", err)
			}
		}

		history := &domain.OrderHistory{
			ID:             utils.GenerateUUID(),
			OrderID:        orderID,
			PreviousStatus: &previous,
			NewStatus:      status,
			CreatedBy:      &actorID,
		}
		if note = strings.TrimSpace(note); note != "" {
			history.Reason = &note
		}
		if err := u.orderRepo.CreateOrderHistory(txCtx, history); err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.invalidate(order)

	logger.WithContext(ctx).Info().
		Str("order_id", orderID).
		Str("status", status).
		Str("actor_id", actorID).
		Msg("order status updated")
	return order, nil
}

func (u *OrderUsecase) invalidate(order *domain.Order) {
	u.cache.Delete(cache.ProductKey(order.ProductID))
	u.cache.Delete(cache.SellerSummaryKey(order.SellerID))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
