package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/freelancehub/internal/api/dto"
	"github.com/pratik-mahalle/freelancehub/internal/domain/project"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/utils"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/validator"
)

// ProjectHandler handles project CRUD
type ProjectHandler struct {
	service   project.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service project.Service, log *logger.Logger, val *validator.Validator) *ProjectHandler {
	return &ProjectHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the session user's projects
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param status query string false "Comma-separated statuses (active, completed, on_hold, cancelled)"
// @Param limit query int false "Maximum number of projects (default 50, max 500)"
// @Success 200 {array} dto.ProjectDTO
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	params := utils.ParseListParams(r)

	filter := project.Filter{Limit: params.Limit}
	for _, s := range splitCSV(params.Status) {
		filter.Statuses = append(filter.Statuses, project.Status(s))
	}

	projects, err := h.service.List(r.Context(), user.ID, filter)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list projects")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromProjects(projects))
}

// Get returns a single project
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectDTO
// @Failure 404 {object} utils.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get project")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromProject(p))
}

// Create creates a project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectDTO
// @Failure 400 {object} utils.ErrorResponse "Validation error"
// @Failure 402 {object} utils.ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	p, err := h.service.Create(r.Context(), user.ID, user.Email, req.ToProject())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create project")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.FromProject(p))
}

// Update updates a project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Fields to change"
// @Success 200 {object} dto.ProjectDTO
// @Failure 404 {object} utils.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	p, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get project")
		return
	}
	req.Apply(p)

	p, err = h.service.Update(r.Context(), p)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update project")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromProject(p))
}

// Delete deletes a project
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete project")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Project deleted successfully", nil)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
