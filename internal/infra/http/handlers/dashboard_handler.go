package handlers

import (
	"net/http"
	"strconv"

	"github.com/xavierca1/recruit-pipeline/internal/usecase"
)

type DashboardHandler struct {
	DashboardUC *usecase.DashboardUseCase
}

func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{DashboardUC: uc}
}

func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.DashboardUC.Metrics(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Scorecard (GET /api/dashboard/scorecard?limit=5). A missing or bad limit uses the default.
func (h *DashboardHandler) Scorecard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	card, err := h.DashboardUC.Scorecard(r.Context(), limit)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}
