package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/freelancehub/internal/api/dto"
	"github.com/pratik-mahalle/freelancehub/internal/domain/timeentry"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/utils"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/validator"
)

// TimeEntryHandler handles time tracking CRUD
type TimeEntryHandler struct {
	service   timeentry.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewTimeEntryHandler creates a new time entry handler
func NewTimeEntryHandler(service timeentry.Service, log *logger.Logger, val *validator.Validator) *TimeEntryHandler {
	return &TimeEntryHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the session user's time entries
// @Summary List time entries
// @Tags TimeEntries
// @Produce json
// @Param projectId query string false "Only entries of this project"
// @Param since query string false "Started at or after (RFC3339 or YYYY-MM-DD)"
// @Param limit query int false "Maximum number of entries (default 50, max 500)"
// @Success 200 {array} dto.TimeEntryDTO
// @Security BearerAuth
// @Router /time-entries [get]
func (h *TimeEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	params := utils.ParseListParams(r)

	filter := timeentry.Filter{
		ProjectID: r.URL.Query().Get("projectId"),
		Limit:     params.Limit,
	}
	if since := r.URL.Query().Get("since"); since != "" {
		t, err := parseSince(since)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("since must be RFC3339 or YYYY-MM-DD"))
			return
		}
		filter.Since = &t
	}

	entries, err := h.service.List(r.Context(), user.ID, filter)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list time entries")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromTimeEntries(entries))
}

// Get returns a single time entry
// @Summary Get time entry
// @Tags TimeEntries
// @Produce json
// @Param id path string true "Time entry ID"
// @Success 200 {object} dto.TimeEntryDTO
// @Failure 404 {object} utils.ErrorResponse "Time entry not found"
// @Security BearerAuth
// @Router /time-entries/{id} [get]
func (h *TimeEntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	e, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get time entry")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromTimeEntry(e))
}

// Create records tracked time
// @Summary Create time entry
// @Tags TimeEntries
// @Accept json
// @Produce json
// @Param request body dto.CreateTimeEntryRequest true "Time entry"
// @Success 201 {object} dto.TimeEntryDTO
// @Failure 400 {object} utils.ErrorResponse "Validation error"
// @Failure 402 {object} utils.ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /time-entries [post]
func (h *TimeEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateTimeEntryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	e, err := h.service.Create(r.Context(), user.ID, user.Email, req.ToEntry())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create time entry")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.FromTimeEntry(e))
}

// Update updates a time entry
// @Summary Update time entry
// @Tags TimeEntries
// @Accept json
// @Produce json
// @Param id path string true "Time entry ID"
// @Param request body dto.UpdateTimeEntryRequest true "Fields to change"
// @Success 200 {object} dto.TimeEntryDTO
// @Failure 404 {object} utils.ErrorResponse "Time entry not found"
// @Security BearerAuth
// @Router /time-entries/{id} [put]
func (h *TimeEntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTimeEntryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	e, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get time entry")
		return
	}
	req.Apply(e)

	e, err = h.service.Update(r.Context(), e)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update time entry")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromTimeEntry(e))
}

// Delete deletes a time entry
// @Summary Delete time entry
// @Tags TimeEntries
// @Produce json
// @Param id path string true "Time entry ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Time entry not found"
// @Security BearerAuth
// @Router /time-entries/{id} [delete]
func (h *TimeEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete time entry")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Time entry deleted successfully", nil)
}

func parseSince(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, s)
}
