package v1

import (
	"net/http"

	"craftsmatch-backend/internal/usecase"
	"craftsmatch-backend/pkg/utils"
)

type ProfileHandler struct {
	profileUC *usecase.ProfileUsecase
}

func NewProfileHandler(uc *usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profileUC: uc}
}

type profileResponse struct {
	User      interface{} `json:"user"`
	Onboarded bool        `json:"onboarded"`
}

// GET /api/v1/me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}
	user, err := h.profileUC.GetProfile(r.Context(), caller.ID, caller.Email)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, profileResponse{User: user, Onboarded: user.IsOnboarded()})
}

// PUT /api/v1/me/onboarding
func (h *ProfileHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in usecase.OnboardingInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.profileUC.CompleteOnboarding(r.Context(), caller.ID, caller.Email, in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, profileResponse{User: user, Onboarded: true})
}
