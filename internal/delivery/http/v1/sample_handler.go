package v1

import (
	"net/http"

	"craftsmatch-backend/internal/usecase"
	"craftsmatch-backend/pkg/utils"
)

type SampleHandler struct {
	sampleUC *usecase.SampleUsecase
}

func NewSampleHandler(uc *usecase.SampleUsecase) *SampleHandler {
	return &SampleHandler{sampleUC: uc}
}

// POST /api/v1/samples
func (h *SampleHandler) RequestSample(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req usecase.RequestSampleReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	sample, err := h.sampleUC.RequestSample(r.Context(), user.ID, req)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, sample)
}

// GET /api/v1/samples
func (h *SampleHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	samples, err := h.sampleUC.ListMine(r.Context(), user.ID, r.URL.Query().Get("status"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, samples)
}

// GET /api/v1/seller/samples
func (h *SampleHandler) ListForSeller(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	samples, err := h.sampleUC.ListForSeller(r.Context(), user.ID, r.URL.Query().Get("status"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, samples)
}

// PATCH /api/v1/seller/samples/{id}/status
func (h *SampleHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req updateStatusReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	sample, err := h.sampleUC.UpdateStatus(r.Context(), user.ID, r.PathValue("id"), req.Status)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sample)
}
