package pgrepo

import (
	"context"
	"fmt"
	"strings"

	"craftsmatch-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
)

type sampleRepository struct {
	db DBTX
}

func NewSampleRepository(db DBTX) domain.SampleRepository {
	return &sampleRepository{db: db}
}

const sampleColumns = `s.id::text, s.product_id::text, p.name, s.buyer_id::text, p.seller_id::text,
	COALESCE(s.message, ''), s.shipping_method, s.shipping_fee::float8, s.min_delivery_days,
	s.max_delivery_days, s.shipping_address, s.status, s.created_at, s.updated_at`

const sampleFrom = ` FROM sample_requests s JOIN products p ON p.id = s.product_id`

func scanSample(row pgx.Row) (*domain.SampleRequest, error) {
	var (
		s    domain.SampleRequest
		addr []byte
	)
	err := row.Scan(
		&s.ID, &s.ProductID, &s.ProductName, &s.BuyerID, &s.SellerID,
		&s.Message, &s.ShippingMethod, &s.ShippingFee, &s.EstimatedDelivery.MinDays,
		&s.EstimatedDelivery.MaxDays, &addr, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(addr) > 0 {
		if err := json.Unmarshal(addr, &s.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decode shipping address: %w", err)
		}
	}
	return &s, nil
}

func (r *sampleRepository) Create(ctx context.Context, s *domain.SampleRequest) error {
	addr, err := json.Marshal(s.ShippingAddress)
	if err != nil {
		return fmt.Errorf("encode shipping address: %w", err)
	}
	err = conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO sample_requests (
			id, product_id, buyer_id, message, shipping_method, shipping_fee,
			min_delivery_days, max_delivery_days, shipping_address, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		s.ID, s.ProductID, s.BuyerID, s.Message, s.ShippingMethod, s.ShippingFee,
		s.EstimatedDelivery.MinDays, s.EstimatedDelivery.MaxDays, addr, s.Status,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return translate(err)
}

func (r *sampleRepository) GetByID(ctx context.Context, id string) (*domain.SampleRequest, error) {
	s, err := scanSample(conn(ctx, r.db).QueryRow(ctx, `SELECT `+sampleColumns+sampleFrom+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

func (r *sampleRepository) List(ctx context.Context, filter domain.SampleFilter) ([]domain.SampleRequest, error) {
	var (
		conds []string
		args  []any
	)
	if filter.BuyerID != "" {
		args = append(args, filter.BuyerID)
		conds = append(conds, fmt.Sprintf("s.buyer_id = $%d", len(args)))
	}
	if filter.SellerID != "" {
		args = append(args, filter.SellerID)
		conds = append(conds, fmt.Sprintf("p.seller_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("s.status = $%d", len(args)))
	}
	query := `SELECT ` + sampleColumns + sampleFrom
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY s.created_at DESC"

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	samples := []domain.SampleRequest{}
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, *s)
	}
	return samples, rows.Err()
}

func (r *sampleRepository) UpdateStatus(ctx context.Context, id, from, to string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE sample_requests SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sample request %s is no longer %s", domain.ErrConflict, id, from)
	}
	return nil
}

// HasOpenRequest reports a requested or approved sample for the pair.
func (r *sampleRepository) HasOpenRequest(ctx context.Context, buyerID, productID string) (bool, error) {
	var ok bool
	err := conn(ctx, r.db).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM sample_requests
			WHERE buyer_id = $1 AND product_id = $2 AND status IN ($3, $4)
		)`, buyerID, productID, domain.SampleStatusRequested, domain.SampleStatusApproved).Scan(&ok)
	return ok, translate(err)
}
