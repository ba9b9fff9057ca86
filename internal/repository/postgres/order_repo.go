package pgrepo

import (
	"context"
	"fmt"
	"strings"

	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/internal/shipping"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
)

type orderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) domain.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id::text, buyer_id::text, seller_id::text, product_id::text, product_name,
	quantity, unit_price::float8, subtotal::float8, shipping_fee::float8, total_amount::float8,
	currency, shipping_method, shipping_zone, min_delivery_days, max_delivery_days,
	shipping_address, COALESCE(notes, ''), status, created_at, updated_at`

// --- Mappers ---

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o    domain.Order
		zone string
		addr []byte
	)
	err := row.Scan(
		&o.ID, &o.BuyerID, &o.SellerID, &o.ProductID, &o.ProductName,
		&o.Quantity, &o.UnitPrice, &o.Subtotal, &o.ShippingFee, &o.TotalAmount,
		&o.Currency, &o.ShippingMethod, &zone, &o.EstimatedDelivery.MinDays, &o.EstimatedDelivery.MaxDays,
		&addr, &o.Notes, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ShippingZone = shipping.Zone(zone)
	if len(addr) > 0 {
		if err := json.Unmarshal(addr, &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decode shipping address: %w", err)
		}
	}
	return &o, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	addr, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("encode shipping address: %w", err)
	}
	err = conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO orders (
			id, buyer_id, seller_id, product_id, product_name, quantity, unit_price,
			subtotal, shipping_fee, total_amount, currency, shipping_method, shipping_zone,
			min_delivery_days, max_delivery_days, shipping_address, notes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING created_at, updated_at`,
		order.ID, order.BuyerID, order.SellerID, order.ProductID, order.ProductName,
		order.Quantity, order.UnitPrice, order.Subtotal, order.ShippingFee, order.TotalAmount,
		order.Currency, order.ShippingMethod, string(order.ShippingZone),
		order.EstimatedDelivery.MinDays, order.EstimatedDelivery.MaxDays, addr, order.Notes, order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	return translate(err)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(conn(ctx, r.db).QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return o, nil
}

func buildOrderWhere(f domain.OrderFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.BuyerID != "" {
		args = append(args, f.BuyerID)
		conds = append(conds, fmt.Sprintf("buyer_id = $%d", len(args)))
	}
	if f.SellerID != "" {
		args = append(args, f.SellerID)
		conds = append(conds, fmt.Sprintf("seller_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *orderRepository) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	db := conn(ctx, r.db)
	where, args := buildOrderWhere(filter)

	var total int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, from, to string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE orders SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s is no longer %s", domain.ErrConflict, id, from)
	}
	return nil
}

// --- History ---

func (r *orderRepository) CreateOrderHistory(ctx context.Context, h *domain.OrderHistory) error {
	err := conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO order_history (id, order_id, previous_status, new_status, reason, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		h.ID, h.OrderID, h.PreviousStatus, h.NewStatus, h.Reason, h.CreatedBy,
	).Scan(&h.CreatedAt)
	return translate(err)
}

func (r *orderRepository) GetOrderHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT id::text, order_id::text, previous_status, new_status, reason, created_by::text, created_at
		FROM order_history
		WHERE order_id = $1
		ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	history := []domain.OrderHistory{}
	for rows.Next() {
		var h domain.OrderHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.PreviousStatus, &h.NewStatus, &h.Reason, &h.CreatedBy, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func (r *orderRepository) HasReceivedProduct(ctx context.Context, buyerID, productID string) (bool, error) {
	var ok bool
	err := conn(ctx, r.db).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE buyer_id = $1 AND product_id = $2 AND status = $3
		)`, buyerID, productID, domain.OrderStatusDelivered).Scan(&ok)
	return ok, translate(err)
}
