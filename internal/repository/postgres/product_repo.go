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

type productRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) domain.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `p.id::text, p.seller_id::text, COALESCE(u.display_name, ''), COALESCE(u.country, ''),
	p.name, COALESCE(p.description, ''), p.price::float8, p.currency, p.stock, p.is_active,
	COALESCE(p.images, '{}'), p.weight_kg::float8, p.length_cm::float8, p.width_cm::float8,
	p.height_cm::float8, COALESCE(p.restricted_countries, '{}'), p.free_shipping_threshold::float8,
	p.custom_shipping_rates, p.created_at, p.updated_at`

const productFrom = ` FROM products p JOIN users u ON u.id = p.seller_id`

// --- Mappers ---

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p             domain.Product
		length, width *float64
		height        *float64
		customRates   []byte
	)
	err := row.Scan(
		&p.ID, &p.SellerID, &p.SellerName, &p.SellerCountry,
		&p.Name, &p.Description, &p.Price, &p.Currency, &p.Stock, &p.IsActive,
		&p.Images, &p.Shipping.Weight, &length, &width,
		&height, &p.Shipping.RestrictedCountries, &p.Shipping.FreeShippingThreshold,
		&customRates, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Shipping.Dimensions = dimensionsFromColumns(length, width, height)
	if len(customRates) > 0 {
		if err := json.Unmarshal(customRates, &p.Shipping.CustomShippingRates); err != nil {
			return nil, fmt.Errorf("decode custom shipping rates: %w", err)
		}
	}
	return &p, nil
}

// dimensionsFromColumns only reports dimensions when all three are stored.
func dimensionsFromColumns(length, width, height *float64) *shipping.PackageDimensions {
	if length == nil || width == nil || height == nil {
		return nil
	}
	return &shipping.PackageDimensions{Length: *length, Width: *width, Height: *height}
}

type shippingColumns struct {
	weight                float64
	length, width, height *float64
	restricted            []string
	threshold             *float64
	customRates           []byte
}

func shippingToColumns(d shipping.ProductShippingDetails) (shippingColumns, error) {
	cols := shippingColumns{
		weight:     d.Weight,
		restricted: d.RestrictedCountries,
		threshold:  d.FreeShippingThreshold,
	}
	if d.Dimensions != nil {
		cols.length = &d.Dimensions.Length
		cols.width = &d.Dimensions.Width
		cols.height = &d.Dimensions.Height
	}
	if len(d.CustomShippingRates) > 0 {
		b, err := json.Marshal(d.CustomShippingRates)
		if err != nil {
			return cols, fmt.Errorf("encode custom shipping rates: %w", err)
		}
		cols.customRates = b
	}
	return cols, nil
}

// buildProductWhere renders the filter as a WHERE clause and its arguments.
func buildProductWhere(f domain.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.SellerID != "" {
		add("p.seller_id = $%d", f.SellerID)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		add("(p.name ILIKE '%%' || $%[1]d || '%%' OR p.description ILIKE '%%' || $%[1]d || '%%')", q)
	}
	if f.MinPrice > 0 {
		add("p.price >= $%d", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		add("p.price <= $%d", f.MaxPrice)
	}
	if f.IsActive != nil {
		add("p.is_active = $%d", *f.IsActive)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func productOrderBy(sort string) string {
	switch sort {
	case "price_asc":
		return " ORDER BY p.price ASC, p.created_at DESC"
	case "price_desc":
		return " ORDER BY p.price DESC, p.created_at DESC"
	default:
		return " ORDER BY p.created_at DESC"
	}
}

func (r *productRepository) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	db := conn(ctx, r.db)
	where, args := buildProductWhere(filter)

	var total int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*)`+productFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}

	query := `SELECT ` + productColumns + productFrom + where + productOrderBy(filter.Sort)
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := scanProduct(conn(ctx, r.db).QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	cols, err := shippingToColumns(product.Shipping)
	if err != nil {
		return err
	}
	err = conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO products (
			id, seller_id, name, description, price, currency, stock, is_active, images,
			weight_kg, length_cm, width_cm, height_cm, restricted_countries,
			free_shipping_threshold, custom_shipping_rates
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at`,
		product.ID, product.SellerID, product.Name, product.Description, product.Price,
		product.Currency, product.Stock, product.IsActive, product.Images,
		cols.weight, cols.length, cols.width, cols.height, cols.restricted,
		cols.threshold, cols.customRates,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	return translate(err)
}

func (r *productRepository) UpdateShipping(ctx context.Context, productID string, details shipping.ProductShippingDetails) error {
	cols, err := shippingToColumns(details)
	if err != nil {
		return err
	}
	tag, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE products SET
			weight_kg = $2, length_cm = $3, width_cm = $4, height_cm = $5,
			restricted_countries = $6, free_shipping_threshold = $7,
			custom_shipping_rates = $8, updated_at = NOW()
		WHERE id = $1`,
		productID, cols.weight, cols.length, cols.width, cols.height,
		cols.restricted, cols.threshold, cols.customRates,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) AdjustStock(ctx context.Context, productID string, delta int) error {
	db := conn(ctx, r.db)
	tag, err := db.Exec(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0`, productID, delta)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return translate(err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInsufficientStock
}

// --- Reviews ---

func (r *productRepository) CreateReview(ctx context.Context, review *domain.Review) error {
	err := conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO reviews (id, product_id, buyer_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		review.ID, review.ProductID, review.BuyerID, review.Rating, review.Comment,
	).Scan(&review.CreatedAt)
	return translate(err)
}

func (r *productRepository) GetReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT r.id::text, r.product_id::text, r.buyer_id::text, COALESCE(u.display_name, ''),
			r.rating, COALESCE(r.comment, ''), r.created_at
		FROM reviews r JOIN users u ON u.id = r.buyer_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.BuyerID, &rv.BuyerName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
