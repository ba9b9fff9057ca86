package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"craftsmatch-backend/config"
	"craftsmatch-backend/internal/domain"
	memcache "craftsmatch-backend/internal/infrastructure/cache"
	"craftsmatch-backend/internal/shipping"
	"craftsmatch-backend/pkg/cache"
)

func testConfig() *config.Config {
	return &config.Config{
		CacheProductTTL:  time.Minute,
		CacheStatsTTL:    time.Minute,
		MaxOrderQuantity: 10,
		DefaultCurrency:  "USD",
	}
}

func testCache() cache.CacheService {
	return memcache.NewMemoryCache(time.Minute, time.Minute)
}

// --- users ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
	calls int
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]domain.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

// --- products ---

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]domain.Product
	reviews  []domain.Review
	gets     int
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]domain.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetProducts(_ context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Product{}
	for _, p := range r.products {
		if f.SellerID != "" && p.SellerID != f.SellerID {
			continue
		}
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) UpdateShipping(_ context.Context, id string, d shipping.ProductShippingDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Shipping = d
	r.products[id] = p
	return nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	r.products[id] = p
	return nil
}

func (r *fakeProductRepo) CreateReview(_ context.Context, rv *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, *rv)
	return nil
}

func (r *fakeProductRepo) GetReviews(_ context.Context, productID string) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Review{}
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) stock(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

// --- orders ---

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[string]domain.Order
	history []domain.OrderHistory
}

func newFakeOrderRepo(orders ...domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]domain.Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.CreatedAt = time.Now()
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) GetAll(_ context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Order{}
	for _, o := range r.orders {
		if (f.BuyerID != "" && o.BuyerID != f.BuyerID) || (f.SellerID != "" && o.SellerID != f.SellerID) || (f.Status != "" && o.Status != f.Status) {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	if o.Status != from {
		return domain.ErrConflict
	}
	o.Status = to
	r.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) CreateOrderHistory(_ context.Context, h *domain.OrderHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, *h)
	return nil
}

func (r *fakeOrderRepo) GetOrderHistory(_ context.Context, orderID string) ([]domain.OrderHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.OrderHistory{}
	for _, h := range r.history {
		if h.OrderID == orderID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) HasReceivedProduct(_ context.Context, buyerID, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.BuyerID == buyerID && o.ProductID == productID && o.Status == domain.OrderStatusDelivered {
			return true, nil
		}
	}
	return false, nil
}

// --- samples ---

type fakeSampleRepo struct {
	mu      sync.Mutex
	samples map[string]domain.SampleRequest
}

func newFakeSampleRepo() *fakeSampleRepo {
	return &fakeSampleRepo{samples: map[string]domain.SampleRequest{}}
}

func (r *fakeSampleRepo) Create(_ context.Context, s *domain.SampleRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples[s.ID] = *s
	return nil
}

func (r *fakeSampleRepo) GetByID(_ context.Context, id string) (*domain.SampleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.samples[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSampleRepo) List(_ context.Context, f domain.SampleFilter) ([]domain.SampleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.SampleRequest{}
	for _, s := range r.samples {
		if (f.BuyerID != "" && s.BuyerID != f.BuyerID) || (f.SellerID != "" && s.SellerID != f.SellerID) || (f.Status != "" && s.Status != f.Status) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSampleRepo) UpdateStatus(_ context.Context, id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.samples[id]
	if !ok {
		return domain.ErrNotFound
	}
	if s.Status != from {
		return domain.ErrConflict
	}
	s.Status = to
	r.samples[id] = s
	return nil
}

func (r *fakeSampleRepo) HasOpenRequest(_ context.Context, buyerID, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.samples {
		if s.BuyerID == buyerID && s.ProductID == productID &&
			(s.Status == domain.SampleStatusRequested || s.Status == domain.SampleStatusApproved) {
			return true, nil
		}
	}
	return false, nil
}

// --- stats ---

type fakeStatsRepo struct {
	summaryCalls int
	seller       domain.SellerSummary
	buyer        domain.BuyerSummary
}

func (r *fakeStatsRepo) SellerSummary(_ context.Context, _ string) (*domain.SellerSummary, error) {
	r.summaryCalls++
	s := r.seller
	return &s, nil
}

func (r *fakeStatsRepo) SellerDailySales(_ context.Context, _ string, start, end time.Time) ([]domain.DailySales, error) {
	out := []domain.DailySales{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, domain.DailySales{Day: d})
	}
	return out, nil
}

func (r *fakeStatsRepo) BuyerSummary(_ context.Context, _ string) (*domain.BuyerSummary, error) {
	b := r.buyer
	return &b, nil
}

// --- tx ---

type fakeTx struct{ calls int }

func (t *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// --- fixtures ---

func ptr[T any](v T) *T { return &v }

func oakTable() domain.Product {
	return domain.Product{
		ID:            "prod-1",
		SellerID:      "seller-1",
		SellerName:    "Oak & Iron",
		SellerCountry: "US",
		Name:          "Oak Table",
		Price:         100,
		Currency:      "USD",
		Stock:         5,
		IsActive:      true,
		Images:        []string{},
		Shipping: shipping.ProductShippingDetails{
			Weight:     2,
			Dimensions: &shipping.PackageDimensions{Length: 30, Width: 20, Height: 10},
		},
	}
}

func testAddress(country string) domain.Address {
	return domain.Address{FullName: "Ada Builder", Line1: "1 Loom St", City: "Leeds", PostalCode: "LS1", Country: country}
}
