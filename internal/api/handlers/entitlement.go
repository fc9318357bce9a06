package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/freelancehub/internal/api/dto"
	"github.com/pratik-mahalle/freelancehub/internal/domain/entitlement"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/utils"
)

// EntitlementHandler reports the trial and subscription state of the session user
type EntitlementHandler struct {
	service entitlement.Service
	logger  *logger.Logger
}

// NewEntitlementHandler creates a new entitlement handler
func NewEntitlementHandler(service entitlement.Service, log *logger.Logger) *EntitlementHandler {
	return &EntitlementHandler{
		service: service,
		logger:  log,
	}
}

// Get returns the entitlement, creating the trial profile on first use
// @Summary Current entitlement
// @Tags Entitlement
// @Produce json
// @Success 200 {object} dto.TrialInfoDTO
// @Failure 401 {object} utils.ErrorResponse "No session"
// @Failure 503 {object} utils.ErrorResponse "Profile store unavailable"
// @Security BearerAuth
// @Router /entitlement [get]
func (h *EntitlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	ent, err := h.service.Resolve(r.Context(), user.ID, user.Email)
	if err != nil {
		writeServiceError(w, h.logger.With("user_id", user.ID), err, "Failed to load entitlement")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromEntitlement(ent))
}

// CheckLimit reports whether a feature is blocked for the session user
// @Summary Feature limit check
// @Tags Entitlement
// @Produce json
// @Param feature path string true "Feature (clients, projects, invoices, time_tracking, storage, insights)"
// @Success 200 {object} dto.LimitCheckDTO
// @Failure 400 {object} utils.ErrorResponse "Unknown feature"
// @Security BearerAuth
// @Router /entitlement/limits/{feature} [get]
func (h *EntitlementHandler) CheckLimit(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	feature := entitlement.Feature(chi.URLParam(r, "feature"))
	if !feature.Valid() {
		utils.WriteError(w, errors.BadRequest(fmt.Sprintf("unknown feature %q", feature)))
		return
	}

	ent, err := h.service.Resolve(r.Context(), user.ID, user.Email)
	if err != nil {
		writeServiceError(w, h.logger.With("user_id", user.ID), err, "Failed to load entitlement")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.LimitCheckDTO{
		Feature: string(feature),
		Reached: ent.HasReachedLimit(feature),
	})
}
