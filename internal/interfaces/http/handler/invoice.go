package handler

import (
	"time"

	billingapp "github.com/cohaus/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice send lifecycle API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
	now            func() time.Time
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		now:            time.Now,
	}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cycles := rg.Group("/cycles")
	{
		cycles.GET("/:id/can-send", h.CanSend)
		cycles.POST("/:id/send", h.Send)
	}
}

// CanSend godoc
// @Summary      Check the send preconditions of a cycle without side effects
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Cycle ID"
// @Success      200 {object} dto.Response{data=billingapp.SendGate}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cycles/{id}/can-send [get]
func (h *InvoiceHandler) CanSend(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cycle ID")
		return
	}

	gate, err := h.invoiceService.CanSend(c.Request.Context(), id, h.now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gate)
}

// SendInvoicesRequest represents a request to send invoices for a cycle.
// An empty unit selection sends to every unit with a computed charge.
type SendInvoicesRequest struct {
	UnitIDs []uuid.UUID `json:"unit_ids"`
}

// Send godoc
// @Summary      Send invoices for the selected units of a cycle
// @Description  Marks charges sent, fixes the due date at first send and
// @Description  dispatches notifications. Per-unit failures are collected in
// @Description  the result instead of aborting the batch.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Cycle ID"
// @Param        request body SendInvoicesRequest false "Unit selection"
// @Success      200 {object} dto.Response{data=billingapp.SendResult}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cycles/{id}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cycle ID")
		return
	}

	var req SendInvoicesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.invoiceService.Send(c.Request.Context(), id, req.UnitIDs, h.now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
