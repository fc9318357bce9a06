package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/freelancehub/internal/api/dto"
	"github.com/pratik-mahalle/freelancehub/internal/domain/client"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/utils"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/validator"
)

// ClientHandler handles client CRUD
type ClientHandler struct {
	service   client.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewClientHandler creates a new client handler
func NewClientHandler(service client.Service, log *logger.Logger, val *validator.Validator) *ClientHandler {
	return &ClientHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the session user's clients
// @Summary List clients
// @Tags Clients
// @Produce json
// @Param limit query int false "Maximum number of clients (default 50, max 500)"
// @Success 200 {array} dto.ClientDTO
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	params := utils.ParseListParams(r)

	clients, err := h.service.List(r.Context(), user.ID, client.Filter{Limit: params.Limit})
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list clients")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromClients(clients))
}

// Get returns a single client
// @Summary Get client
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientDTO
// @Failure 404 {object} utils.ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	c, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get client")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromClient(c))
}

// Create creates a client
// @Summary Create client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientDTO
// @Failure 400 {object} utils.ErrorResponse "Validation error"
// @Failure 402 {object} utils.ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	c, err := h.service.Create(r.Context(), user.ID, user.Email, req.ToClient())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create client")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.FromClient(c))
}

// Update updates a client
// @Summary Update client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body dto.UpdateClientRequest true "Fields to change"
// @Success 200 {object} dto.ClientDTO
// @Failure 404 {object} utils.ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	c, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get client")
		return
	}
	req.Apply(c)

	c, err = h.service.Update(r.Context(), c)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update client")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromClient(c))
}

// Delete deletes a client
// @Summary Delete client
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete client")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Client deleted successfully", nil)
}
