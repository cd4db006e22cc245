package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
	"github.com/xavierca1/recruit-pipeline/internal/usecase"
)

type AutomationHandler struct {
	AutomationUC *usecase.AutomationUseCase
}

func NewAutomationHandler(uc *usecase.AutomationUseCase) *AutomationHandler {
	return &AutomationHandler{AutomationUC: uc}
}

type UpdateSettingsRequest struct {
	Feature  string          `json:"feature"`
	Settings json.RawMessage `json:"settings"`
}

type UpdateSettingsResponse struct {
	Message  string                    `json:"message"`
	Feature  string                    `json:"feature"`
	Settings entity.AutomationSettings `json:"settings"`
}

func (h *AutomationHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.AutomationUC.Settings.Current())
}

func (h *AutomationHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Feature == "" || len(req.Settings) == 0 {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "feature and settings are required")
		return
	}

	updated, err := h.AutomationUC.Settings.Update(req.Feature, req.Settings)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UpdateSettingsResponse{
		Message:  "Settings updated successfully",
		Feature:  req.Feature,
		Settings: updated,
	})
}

func (h *AutomationHandler) QueueEmail(w http.ResponseWriter, r *http.Request) {
	var input usecase.QueueEmailInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.AutomationUC.QueueEmail(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AutomationHandler) ScheduleInterview(w http.ResponseWriter, r *http.Request) {
	var input usecase.ScheduleInterviewInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.AutomationUC.ScheduleInterview(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AutomationHandler) Status(w http.ResponseWriter, r *http.Request) {
	out, err := h.AutomationUC.Status(r.Context(), chi.URLParam(r, "candidateId"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
