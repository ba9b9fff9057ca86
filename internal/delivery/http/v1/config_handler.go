package v1

import (
	"net/http"
	"time"

	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/internal/shipping"
	"craftsmatch-backend/pkg/cache"
	"craftsmatch-backend/pkg/utils"
)

type zoneLister interface {
	Zones() []shipping.ZoneSummary
}

type ConfigHandler struct {
	cache cache.CacheService
	zones zoneLister
}

func NewConfigHandler(cache cache.CacheService, zones zoneLister) *ConfigHandler {
	return &ConfigHandler{cache: cache, zones: zones}
}

// GET /api/v1/config/enums
func (h *ConfigHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if val, found := h.cache.Get(cache.KeyConfigEnums); found {
		utils.WriteJSON(w, http.StatusOK, val)
		return
	}

	response := map[string]interface{}{
		"roles":           domain.OnboardingRoles,
		"orderStatuses":   domain.OrderStatuses,
		"sampleStatuses":  domain.SampleStatuses,
		"shippingMethods": []string{shipping.MethodStandard, shipping.MethodExpress},
		"shippingZones":   h.zones.Zones(),
	}

	h.cache.Set(cache.KeyConfigEnums, response, 1*time.Hour)
	utils.WriteJSON(w, http.StatusOK, response)
}
