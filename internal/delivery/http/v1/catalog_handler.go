package v1

import (
	"net/http"

	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/internal/shipping"
	"craftsmatch-backend/internal/usecase"
	"craftsmatch-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

// GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, limit, offset := utils.PageLimit(query.Get("page"), query.Get("limit"), 20, 100)

	active := true
	filter := domain.ProductFilter{
		SellerID: query.Get("seller_id"),
		Query:    query.Get("q"),
		Sort:     query.Get("sort"),
		MinPrice: utils.ParseFloat(query.Get("min_price"), 0),
		MaxPrice: utils.ParseFloat(query.Get("max_price"), 0),
		Limit:    limit,
		Offset:   offset,
		IsActive: &active,
	}

	products, total, err := h.catalogUC.ListProducts(r.Context(), filter)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":       products,
		"pagination": domain.NewPagination(page, limit, total),
	})
}

// GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUC.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

// GET /api/v1/products/{id}/reviews
func (h *CatalogHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.catalogUC.GetReviews(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

type addReviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// POST /api/v1/products/{id}/reviews
func (h *CatalogHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req addReviewReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	review, err := h.catalogUC.AddReview(r.Context(), user.ID, r.PathValue("id"), req.Rating, req.Comment)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, review)
}

// --- Seller listings ---

// GET /api/v1/seller/products
func (h *CatalogHandler) ListSellerProducts(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	products, err := h.catalogUC.ListSellerProducts(r.Context(), user.ID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// POST /api/v1/seller/products
func (h *CatalogHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in usecase.CreateListingInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	product, err := h.catalogUC.CreateListing(r.Context(), user.ID, in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, product)
}

// PUT /api/v1/seller/products/{id}/shipping
func (h *CatalogHandler) UpdateShipping(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var details shipping.ProductShippingDetails
	if err := utils.DecodeJSON(r, &details); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	product, err := h.catalogUC.UpdateShipping(r.Context(), user.ID, r.PathValue("id"), details)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}
