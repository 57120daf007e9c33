package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"pharmtrack/internal/adapters/http/middleware"
	"pharmtrack/internal/domain"
)

type MedicationHandler struct {
	svc domain.MedicationService
}

func NewMedicationHandler(svc domain.MedicationService) *MedicationHandler {
	return &MedicationHandler{svc: svc}
}

func (h *MedicationHandler) Index(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	medications, err := h.svc.List(r.Context(), userCtx.ID)
	if err != nil {
		if errors.Is(err, domain.ErrMedicationNotFound) {
			JSONError(w, http.StatusNotFound, "cannot find any medications")
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to list medications")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Message: "success", Data: medications})
}

func (h *MedicationHandler) Show(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	medicationID, err := strconv.ParseInt(r.PathValue("medicationId"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusNotFound, fmt.Sprintf("cannot find medication with id %s", r.PathValue("medicationId")))
		return
	}

	medication, err := h.svc.Get(r.Context(), userCtx.ID, medicationID)
	if err != nil {
		if errors.Is(err, domain.ErrMedicationNotFound) {
			JSONError(w, http.StatusNotFound, fmt.Sprintf("cannot find medication with id %d", medicationID))
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to get medication")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Message: "success", Data: medication})
}

func (h *MedicationHandler) Store(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userCtx, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req domain.MedicationSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	medication, err := h.svc.Create(r.Context(), userCtx.ID, req)
	if err != nil {
		if errors.Is(err, domain.ErrMedicationExists) {
			JSONError(w, http.StatusConflict, fmt.Sprintf("medication with name %s already exists", req.Name))
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to create medication")
		return
	}

	JSONSuccess(w, http.StatusCreated, APIResponse{Message: "success", Data: medication})
}

func (h *MedicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userCtx, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	medicationID, err := strconv.ParseInt(r.PathValue("medicationId"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusNotFound, fmt.Sprintf("medication with id %s not found", r.PathValue("medicationId")))
		return
	}

	var req domain.MedicationSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	medication, err := h.svc.Update(r.Context(), userCtx.ID, medicationID, req)
	if err != nil {
		if errors.Is(err, domain.ErrMedicationNotFound) {
			JSONError(w, http.StatusNotFound, fmt.Sprintf("medication with id %d not found", medicationID))
			return
		}

		if errors.Is(err, domain.ErrMedicationExists) {
			JSONError(w, http.StatusConflict, fmt.Sprintf("medication with name %s already exists", req.Name))
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to update medication")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: fmt.Sprintf("medication with id %d has been successfully updated", medicationID),
		Data:    medication,
	})
}

func (h *MedicationHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	medicationID, err := strconv.ParseInt(r.PathValue("medicationId"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusNotFound, fmt.Sprintf("cannot find medication with id %s", r.PathValue("medicationId")))
		return
	}

	medication, err := h.svc.Delete(r.Context(), userCtx.ID, medicationID)
	if err != nil {
		if errors.Is(err, domain.ErrMedicationNotFound) {
			JSONError(w, http.StatusNotFound, fmt.Sprintf("cannot find medication with id %d", medicationID))
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to delete medication")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: fmt.Sprintf("medication with id %d has been successfully deleted", medicationID),
		Data:    medication,
	})
}
