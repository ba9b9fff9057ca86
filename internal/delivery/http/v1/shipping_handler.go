package v1

import (
	"math"
	"net/http"

	"craftsmatch-backend/internal/shipping"
	"craftsmatch-backend/internal/usecase"
	"craftsmatch-backend/pkg/utils"
)

type ShippingHandler struct {
	shippingUC *usecase.ShippingUsecase
}

func NewShippingHandler(uc *usecase.ShippingUsecase) *ShippingHandler {
	return &ShippingHandler{shippingUC: uc}
}

// POST /api/v1/shipping/quote
func (h *ShippingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req usecase.QuoteRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	quote, err := h.shippingUC.QuoteProduct(r.Context(), req)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, quote)
}

// POST /api/v1/shipping/calculate
func (h *ShippingHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var params shipping.CostParams
	if err := utils.DecodeJSON(r, &params); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	quote, err := h.shippingUC.QuoteInline(params)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, quote)
}

// GET /api/v1/shipping/estimate?destination=CA&origin=US&method=express
func (h *ShippingHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	timing, err := h.shippingUC.EstimateDelivery(q.Get("destination"), q.Get("origin"), q.Get("method"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, timing)
}

// GET /api/v1/shipping/methods?productId=...&country=GB
func (h *ShippingHandler) Methods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	methods, err := h.shippingUC.AvailableMethods(r.Context(), q.Get("productId"), q.Get("country"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"methods": methods})
}

// GET /api/v1/shipping/volumetric?length=50&width=40&height=30
func (h *ShippingHandler) Volumetric(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	weight, err := h.shippingUC.VolumetricWeight(
		utils.ParseFloat(q.Get("length"), math.NaN()),
		utils.ParseFloat(q.Get("width"), math.NaN()),
		utils.ParseFloat(q.Get("height"), math.NaN()),
	)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]float64{"volumetricWeight": weight})
}
