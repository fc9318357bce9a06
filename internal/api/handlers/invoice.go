package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/freelancehub/internal/api/dto"
	"github.com/pratik-mahalle/freelancehub/internal/domain/invoice"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/utils"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/validator"
)

// InvoiceHandler handles invoice CRUD and status changes
type InvoiceHandler struct {
	service   invoice.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(service invoice.Service, log *logger.Logger, val *validator.Validator) *InvoiceHandler {
	return &InvoiceHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the session user's invoices
// @Summary List invoices
// @Tags Invoices
// @Produce json
// @Param status query string false "Comma-separated statuses (draft, sent, paid, overdue, cancelled)"
// @Param from query string false "Issued on or after (YYYY-MM-DD)"
// @Param to query string false "Issued before (YYYY-MM-DD)"
// @Param limit query int false "Maximum number of invoices (default 50, max 500)"
// @Success 200 {array} dto.InvoiceDTO
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	params := utils.ParseListParams(r)

	filter := invoice.Filter{Limit: params.Limit}
	for _, s := range splitCSV(params.Status) {
		filter.Statuses = append(filter.Statuses, invoice.Status(s))
	}

	var err error
	if filter.IssuedFrom, err = queryDate(r, "from"); err != nil {
		utils.WriteError(w, errors.BadRequest("from must be a date in YYYY-MM-DD format"))
		return
	}
	if filter.IssuedBefore, err = queryDate(r, "to"); err != nil {
		utils.WriteError(w, errors.BadRequest("to must be a date in YYYY-MM-DD format"))
		return
	}

	invoices, err := h.service.List(r.Context(), user.ID, filter)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list invoices")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromInvoices(invoices))
}

// Get returns a single invoice
// @Summary Get invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceDTO
// @Failure 404 {object} utils.ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	inv, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get invoice")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromInvoice(inv))
}

// Create creates an invoice
// @Summary Create invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceDTO
// @Failure 400 {object} utils.ErrorResponse "Validation error"
// @Failure 402 {object} utils.ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	inv, err := h.service.Create(r.Context(), user.ID, user.Email, req.ToInvoice())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create invoice")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.FromInvoice(inv))
}

// Update updates an invoice
// @Summary Update invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.UpdateInvoiceRequest true "Fields to change"
// @Success 200 {object} dto.InvoiceDTO
// @Failure 404 {object} utils.ErrorResponse "Invoice not found"
// @Failure 409 {object} utils.ErrorResponse "Status change not allowed"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	inv, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get invoice")
		return
	}
	req.Apply(inv)

	inv, err = h.service.Update(r.Context(), inv)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update invoice")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromInvoice(inv))
}

// Delete deletes an invoice
// @Summary Delete invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete invoice")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Invoice deleted successfully", nil)
}

// Send marks a draft invoice as sent
// @Summary Send invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceDTO
// @Failure 409 {object} utils.ErrorResponse "Invoice is not a draft"
// @Security BearerAuth
// @Router /invoices/{id}/send [post]
func (h *InvoiceHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	inv, err := h.service.MarkSent(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to send invoice")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromInvoice(inv))
}

// Pay records payment of an invoice
// @Summary Mark invoice paid
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceDTO
// @Failure 409 {object} utils.ErrorResponse "Invoice cannot be paid"
// @Security BearerAuth
// @Router /invoices/{id}/pay [post]
func (h *InvoiceHandler) Pay(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	inv, err := h.service.MarkPaid(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to mark invoice paid")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromInvoice(inv))
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(r *http.Request, key string) (*time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
