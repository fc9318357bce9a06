package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/freelancehub/internal/api/dto"
	"github.com/pratik-mahalle/freelancehub/internal/domain/entitlement"
	"github.com/pratik-mahalle/freelancehub/internal/domain/insight"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/utils"
)

// InsightHandler serves generated business insights
type InsightHandler struct {
	service      insight.Service
	entitlements entitlement.Service
	logger       *logger.Logger
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(service insight.Service, entitlements entitlement.Service, log *logger.Logger) *InsightHandler {
	return &InsightHandler{
		service:      service,
		entitlements: entitlements,
		logger:       log,
	}
}

// List returns up to six insights in fixed slot order
// @Summary Generate insights
// @Tags Insights
// @Produce json
// @Success 200 {array} dto.InsightDTO
// @Failure 402 {object} utils.ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /insights [get]
func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.entitlements.Require(r.Context(), user.ID, user.Email, entitlement.FeatureInsights); err != nil {
		writeServiceError(w, h.logger, err, "Failed to check entitlement")
		return
	}

	insights, err := h.service.Generate(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to generate insights")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromInsights(insights))
}

// Summary returns a narrative over the generated insights
// @Summary Insight summary
// @Tags Insights
// @Produce json
// @Success 200 {object} dto.InsightSummaryDTO
// @Failure 402 {object} utils.ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /insights/summary [get]
func (h *InsightHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.entitlements.Require(r.Context(), user.ID, user.Email, entitlement.FeatureInsights); err != nil {
		writeServiceError(w, h.logger, err, "Failed to check entitlement")
		return
	}

	summary, err := h.service.Summarize(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to summarize insights")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.InsightSummaryDTO{
		Summary:  summary.Text,
		Source:   summary.Source,
		Insights: dto.FromInsights(summary.Insights),
	})
}
