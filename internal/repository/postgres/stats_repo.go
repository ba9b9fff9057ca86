package pgrepo

import (
	"context"
	"time"

	"craftsmatch-backend/internal/domain"
)

type statsRepository struct {
	db DBTX
}

func NewStatsRepository(db DBTX) domain.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) SellerSummary(ctx context.Context, sellerID string) (*domain.SellerSummary, error) {
	var s domain.SellerSummary
	err := conn(ctx, r.db).QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products WHERE seller_id = $1 AND is_active),
			(SELECT COUNT(*) FROM orders WHERE seller_id = $1),
			(SELECT COUNT(*) FROM orders WHERE seller_id = $1 AND status = $2),
			(SELECT COALESCE(SUM(total_amount), 0)::float8 FROM orders WHERE seller_id = $1 AND status <> $3),
			(SELECT COUNT(*) FROM sample_requests s JOIN products p ON p.id = s.product_id
				WHERE p.seller_id = $1 AND s.status = $4),
			(SELECT COALESCE(AVG(r.rating), 0)::float8 FROM reviews r JOIN products p ON p.id = r.product_id
				WHERE p.seller_id = $1),
			(SELECT COUNT(*) FROM reviews r JOIN products p ON p.id = r.product_id WHERE p.seller_id = $1)`,
		sellerID, domain.OrderStatusPending, domain.OrderStatusCancelled, domain.SampleStatusRequested,
	).Scan(&s.ActiveListings, &s.TotalOrders, &s.PendingOrders, &s.Revenue, &s.PendingSamples, &s.AverageRating, &s.ReviewCount)
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// SellerDailySales returns one row per day in [start, end], zero-filled.
func (r *statsRepository) SellerDailySales(ctx context.Context, sellerID string, start, end time.Time) ([]domain.DailySales, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT d.day, COUNT(o.id), COALESCE(SUM(o.total_amount), 0)::float8
		FROM generate_series($2::date, $3::date, interval '1 day') AS d(day)
		LEFT JOIN orders o
			ON o.seller_id = $1 AND o.status <> $4 AND o.created_at::date = d.day::date
		GROUP BY d.day
		ORDER BY d.day`, sellerID, start, end, domain.OrderStatusCancelled)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	sales := []domain.DailySales{}
	for rows.Next() {
		var d domain.DailySales
		if err := rows.Scan(&d.Day, &d.Orders, &d.Revenue); err != nil {
			return nil, err
		}
		sales = append(sales, d)
	}
	return sales, rows.Err()
}

func (r *statsRepository) BuyerSummary(ctx context.Context, buyerID string) (*domain.BuyerSummary, error) {
	var s domain.BuyerSummary
	err := conn(ctx, r.db).QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM orders WHERE buyer_id = $1),
			(SELECT COALESCE(SUM(total_amount), 0)::float8 FROM orders WHERE buyer_id = $1 AND status <> $2),
			(SELECT COUNT(*) FROM sample_requests WHERE buyer_id = $1 AND status IN ($3, $4))`,
		buyerID, domain.OrderStatusCancelled, domain.SampleStatusRequested, domain.SampleStatusApproved,
	).Scan(&s.OrdersPlaced, &s.TotalSpent, &s.OpenSamples)
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}
