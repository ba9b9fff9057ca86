package v1

import (
	"net/http"
	"time"

	"craftsmatch-backend/internal/usecase"
	"craftsmatch-backend/pkg/utils"
)

const dateLayout = "2006-01-02"

type StatsHandler struct {
	statsUC *usecase.StatsUsecase
}

func NewStatsHandler(uc *usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{statsUC: uc}
}

// GET /api/v1/seller/stats/summary
func (h *StatsHandler) SellerSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	summary, err := h.statsUC.SellerSummary(r.Context(), user.ID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

// GET /api/v1/seller/stats/daily?start=2026-01-01&end=2026-01-31
// Defaults to the last 30 days.
func (h *StatsHandler) SellerDailySales(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -29)

	q := r.URL.Query()
	if s := q.Get("start"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return
		}
		start = t
	}
	if s := q.Get("end"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
			return
		}
		end = t
	}

	sales, err := h.statsUC.SellerDailySales(r.Context(), user.ID, start, end)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sales)
}

// GET /api/v1/me/stats
func (h *StatsHandler) BuyerSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	summary, err := h.statsUC.BuyerSummary(r.Context(), user.ID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}
