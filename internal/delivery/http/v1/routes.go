package v1

import (
	"net/http"

	"craftsmatch-backend/internal/delivery/http/middleware"
	"craftsmatch-backend/internal/domain"
)

// Handlers groups every v1 handler for route registration.
type Handlers struct {
	Profile  *ProfileHandler
	Catalog  *CatalogHandler
	Shipping *ShippingHandler
	Config   *ConfigHandler
	Order    *OrderHandler
	Sample   *SampleHandler
	Stats    *StatsHandler
}

// RegisterRoutes mounts the v1 API on mux. Role checks go through roles so a
// freshly onboarded user does not need a new token.
func RegisterRoutes(mux *http.ServeMux, h Handlers, roles middleware.RoleResolver) {
	authed := func(fn http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(fn)
	}
	craftsman := func(fn http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.RequireRole(roles, domain.RoleCraftsman)(fn))
	}
	builder := func(fn http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.RequireRole(roles, domain.RoleBuilder)(fn))
	}

	// Config (Public)
	mux.HandleFunc("GET /api/v1/config/enums", h.Config.GetEnums)

	// Profile
	mux.Handle("GET /api/v1/me", authed(h.Profile.Me))
	mux.Handle("PUT /api/v1/me/onboarding", authed(h.Profile.CompleteOnboarding))
	mux.Handle("GET /api/v1/me/stats", builder(h.Stats.BuyerSummary))

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/products", h.Catalog.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", h.Catalog.GetProduct)
	mux.HandleFunc("GET /api/v1/products/{id}/reviews", h.Catalog.GetReviews)
	mux.Handle("POST /api/v1/products/{id}/reviews", builder(h.Catalog.AddReview))

	// Shipping (Public)
	mux.HandleFunc("POST /api/v1/shipping/quote", h.Shipping.Quote)
	mux.HandleFunc("POST /api/v1/shipping/calculate", h.Shipping.Calculate)
	mux.HandleFunc("GET /api/v1/shipping/estimate", h.Shipping.Estimate)
	mux.HandleFunc("GET /api/v1/shipping/methods", h.Shipping.Methods)
	mux.HandleFunc("GET /api/v1/shipping/volumetric", h.Shipping.Volumetric)

	// Orders (Builder)
	mux.Handle("POST /api/v1/orders", builder(h.Order.PlaceOrder))
	mux.Handle("GET /api/v1/orders", builder(h.Order.GetMyOrders))
	mux.Handle("GET /api/v1/orders/{id}", authed(h.Order.GetOrder))
	mux.Handle("GET /api/v1/orders/{id}/history", authed(h.Order.GetOrderHistory))
	mux.Handle("POST /api/v1/orders/{id}/cancel", builder(h.Order.CancelOrder))

	// Samples (Builder)
	mux.Handle("POST /api/v1/samples", builder(h.Sample.RequestSample))
	mux.Handle("GET /api/v1/samples", builder(h.Sample.ListMine))

	// Seller (Craftsman)
	mux.Handle("GET /api/v1/seller/products", craftsman(h.Catalog.ListSellerProducts))
	mux.Handle("POST /api/v1/seller/products", craftsman(h.Catalog.CreateListing))
	mux.Handle("PUT /api/v1/seller/products/{id}/shipping", craftsman(h.Catalog.UpdateShipping))
	mux.Handle("GET /api/v1/seller/orders", craftsman(h.Order.GetSellerOrders))
	mux.Handle("PATCH /api/v1/seller/orders/{id}/status", craftsman(h.Order.UpdateStatus))
	mux.Handle("GET /api/v1/seller/samples", craftsman(h.Sample.ListForSeller))
	mux.Handle("PATCH /api/v1/seller/samples/{id}/status", craftsman(h.Sample.UpdateStatus))
	mux.Handle("GET /api/v1/seller/stats/summary", craftsman(h.Stats.SellerSummary))
	mux.Handle("GET /api/v1/seller/stats/daily", craftsman(h.Stats.SellerDailySales))
}
