package v1

import (
	"net/http"

	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/internal/usecase"
	"craftsmatch-backend/pkg/utils"
)

type OrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: uc}
}

// POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req usecase.PlaceOrderReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	order, err := h.orderUC.PlaceOrder(r.Context(), user.ID, req)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, order)
}

// GET /api/v1/orders
func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	page, limit, offset := utils.PageLimit(query.Get("page"), query.Get("limit"), 20, 100)

	orders, total, err := h.orderUC.GetMyOrders(r.Context(), user.ID, query.Get("status"), limit, offset)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":       orders,
		"pagination": domain.NewPagination(page, limit, total),
	})
}

// GET /api/v1/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	order, err := h.orderUC.GetOrder(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// GET /api/v1/orders/{id}/history
func (h *OrderHandler) GetOrderHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	history, err := h.orderUC.GetOrderHistory(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, history)
}

type cancelOrderReq struct {
	Reason string `json:"reason"`
}

// POST /api/v1/orders/{id}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req cancelOrderReq
	if r.ContentLength != 0 {
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	order, err := h.orderUC.CancelOrder(r.Context(), user.ID, r.PathValue("id"), req.Reason)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// --- Seller fulfilment ---

// GET /api/v1/seller/orders
func (h *OrderHandler) GetSellerOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	page, limit, offset := utils.PageLimit(query.Get("page"), query.Get("limit"), 20, 100)

	orders, total, err := h.orderUC.GetSellerOrders(r.Context(), user.ID, query.Get("status"), limit, offset)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":       orders,
		"pagination": domain.NewPagination(page, limit, total),
	})
}

type updateStatusReq struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// PATCH /api/v1/seller/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req updateStatusReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	order, err := h.orderUC.UpdateStatus(r.Context(), user.ID, r.PathValue("id"), req.Status, req.Note)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}
