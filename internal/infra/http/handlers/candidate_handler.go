package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/recruit-pipeline/internal/engine"
	"github.com/xavierca1/recruit-pipeline/internal/usecase"
)

type CandidateHandler struct {
	CreateUC      *usecase.CreateCandidateUseCase
	UpdateUC      *usecase.UpdateCandidateUseCase
	ChangeStageUC *usecase.ChangeStageUseCase
	DeleteUC      *usecase.DeleteCandidateUseCase
	GetUC         *usecase.GetCandidateUseCase
	ListUC        *usecase.ListCandidatesUseCase
	ListByStageUC *usecase.ListByStageUseCase
}

func NewCandidateHandler(
	create *usecase.CreateCandidateUseCase,
	update *usecase.UpdateCandidateUseCase,
	changeStage *usecase.ChangeStageUseCase,
	del *usecase.DeleteCandidateUseCase,
	get *usecase.GetCandidateUseCase,
	list *usecase.ListCandidatesUseCase,
	listByStage *usecase.ListByStageUseCase,
) *CandidateHandler {
	return &CandidateHandler{
		CreateUC:      create,
		UpdateUC:      update,
		ChangeStageUC: changeStage,
		DeleteUC:      del,
		GetUC:         get,
		ListUC:        list,
		ListByStageUC: listByStage,
	}
}

// List (GET /api/candidates?search=&date=&score=&status=)
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := engine.ParseFilterConfig(r.URL.Query())

	candidates, err := h.ListUC.Execute(r.Context(), cfg)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// ListByStage (GET /api/candidates/stage/{stage})
func (h *CandidateHandler) ListByStage(w http.ResponseWriter, r *http.Request) {
	stage := chi.URLParam(r, "stage")
	if unescaped, err := url.PathUnescape(stage); err == nil {
		stage = unescaped
	}

	candidates, err := h.ListByStageUC.Execute(r.Context(), stage)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.GetUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCandidateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	c, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateCandidateInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")

	c, err := h.UpdateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ChangeStage (PATCH /api/candidates/{id}/stage) body: {"stage": "Interview"}
func (h *CandidateHandler) ChangeStage(w http.ResponseWriter, r *http.Request) {
	var input usecase.ChangeStageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")

	c, err := h.ChangeStageUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.DeleteUC.Execute(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
