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

type ReminderHandler struct {
	svc domain.ReminderService
}

func NewReminderHandler(svc domain.ReminderService) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

func (h *ReminderHandler) Index(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reminders, err := h.svc.ListReminders(r.Context(), userCtx.ID)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			JSONError(w, http.StatusNotFound, "cannot find any reminders")
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to list reminders")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Message: "success", Data: reminders})
}

func (h *ReminderHandler) Show(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	medicationID, reminderID, ok := pathIDs(w, r)
	if !ok {
		return
	}

	reminder, err := h.svc.GetReminder(r.Context(), userCtx.ID, medicationID, reminderID)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			JSONError(w, http.StatusNotFound, fmt.Sprintf("cannot find reminder with id %d", reminderID))
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to get reminder")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Message: "success", Data: reminder})
}

func (h *ReminderHandler) Store(w http.ResponseWriter, r *http.Request) {
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

	var req domain.ReminderSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	reminder, err := h.svc.CreateReminder(r.Context(), userCtx.ID, medicationID, req)
	if err != nil {
		if errors.Is(err, domain.ErrMedicationNotFound) {
			JSONError(w, http.StatusNotFound, fmt.Sprintf("medication with id %d not found", medicationID))
			return
		}

		if errors.Is(err, domain.ErrReminderExists) {
			JSONError(w, http.StatusConflict, fmt.Sprintf("reminder with name %s already exists", req.Name))
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to create reminder")
		return
	}

	JSONSuccess(w, http.StatusCreated, APIResponse{Message: "success", Data: reminder})
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userCtx, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	_, reminderID, ok := pathIDs(w, r)
	if !ok {
		return
	}

	var req domain.ReminderSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	reminder, err := h.svc.UpdateReminder(r.Context(), userCtx.ID, reminderID, req)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			JSONError(w, http.StatusNotFound, fmt.Sprintf("reminder with id %d not found", reminderID))
			return
		}

		if errors.Is(err, domain.ErrReminderExists) {
			JSONError(w, http.StatusConflict, fmt.Sprintf("reminder with name %s already exists", req.Name))
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to update reminder")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: fmt.Sprintf("reminder with id %d has been successfully updated", reminderID),
		Data:    reminder,
	})
}

func (h *ReminderHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	_, reminderID, ok := pathIDs(w, r)
	if !ok {
		return
	}

	reminder, err := h.svc.DeleteReminder(r.Context(), userCtx.ID, reminderID)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			JSONError(w, http.StatusNotFound, fmt.Sprintf("cannot find reminder with id %d", reminderID))
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to delete reminder")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: fmt.Sprintf("reminder with id %d has been successfully deleted", reminderID),
		Data:    reminder,
	})
}

// pathIDs parses both path ids; a malformed id reads as a record that does
// not exist.
func pathIDs(w http.ResponseWriter, r *http.Request) (medicationID, reminderID int64, ok bool) {
	medicationID, err := strconv.ParseInt(r.PathValue("medicationId"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusNotFound, fmt.Sprintf("cannot find medication with id %s", r.PathValue("medicationId")))
		return 0, 0, false
	}

	reminderID, err = strconv.ParseInt(r.PathValue("reminderId"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusNotFound, fmt.Sprintf("cannot find reminder with id %s", r.PathValue("reminderId")))
		return 0, 0, false
	}

	return medicationID, reminderID, true
}
