package handler

import (
	billingapp "github.com/cohaus/backend/internal/application/billing"
	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CycleHandler handles billing cycle, cost item and charge API endpoints
type CycleHandler struct {
	BaseHandler
	cycleService  *billingapp.CycleService
	chargeService *billingapp.ChargeService
}

// NewCycleHandler creates a new CycleHandler
func NewCycleHandler(cycleService *billingapp.CycleService, chargeService *billingapp.ChargeService) *CycleHandler {
	return &CycleHandler{
		cycleService:  cycleService,
		chargeService: chargeService,
	}
}

// RegisterRoutes registers cycle, cost item and charge routes
func (h *CycleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/buildings/:id/cycles", h.ListCycles)
	rg.GET("/buildings/:id/cycles/:year/:month", h.GetOrCreateCycle)

	cycles := rg.Group("/cycles")
	{
		cycles.GET("/:id", h.GetCycle)
		cycles.GET("/:id/items", h.ListCostItems)
		cycles.POST("/:id/items", h.AddCostItem)
		cycles.DELETE("/:id/items/:itemID", h.RemoveCostItem)
		cycles.POST("/:id/recompute", h.Recompute)
		cycles.GET("/:id/charges", h.GetCharges)
	}
}

// ListCycles godoc
// @Summary      List the billing cycles of a building, newest first
// @Tags         cycles
// @Produce      json
// @Param        id path string true "Building ID"
// @Success      200 {object} dto.Response{data=[]CycleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /buildings/{id}/cycles [get]
func (h *CycleHandler) ListCycles(c *gin.Context) {
	buildingID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid building ID")
		return
	}

	cycles, err := h.cycleService.ListCycles(c.Request.Context(), buildingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCycleResponses(cycles))
}

// cyclePeriodRequest binds the year/month path parameters
type cyclePeriodRequest struct {
	Year  int `uri:"year" binding:"required,min=2000,max=2200"`
	Month int `uri:"month" binding:"required,min=1,max=12"`
}

// GetOrCreateCycle godoc
// @Summary      Get a building's cycle for a month, creating the draft lazily
// @Tags         cycles
// @Produce      json
// @Param        id path string true "Building ID"
// @Param        year path int true "Year"
// @Param        month path int true "Month (1-12)"
// @Success      200 {object} dto.Response{data=CycleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /buildings/{id}/cycles/{year}/{month} [get]
func (h *CycleHandler) GetOrCreateCycle(c *gin.Context) {
	buildingID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid building ID")
		return
	}

	var period cyclePeriodRequest
	if err := c.ShouldBindUri(&period); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cycle, err := h.cycleService.GetOrCreateCycle(c.Request.Context(), buildingID, period.Year, period.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCycleResponse(cycle))
}

// GetCycle godoc
// @Summary      Get a billing cycle
// @Tags         cycles
// @Produce      json
// @Param        id path string true "Cycle ID"
// @Success      200 {object} dto.Response{data=CycleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cycles/{id} [get]
func (h *CycleHandler) GetCycle(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cycle ID")
		return
	}

	cycle, err := h.cycleService.GetCycle(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCycleResponse(cycle))
}

// ListCostItems godoc
// @Summary      List a cycle's cost items in position order
// @Tags         cost-items
// @Produce      json
// @Param        id path string true "Cycle ID"
// @Success      200 {object} dto.Response{data=[]CostItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cycles/{id}/items [get]
func (h *CycleHandler) ListCostItems(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cycle ID")
		return
	}

	items, err := h.cycleService.ListCostItems(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCostItemResponses(items))
}

// AddCostItemRequest represents a request to add a cost item to a cycle.
// Shared items may override the building's allocation method; per-unit items
// carry either a target unit set split equally or an explicit amount map.
type AddCostItemRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=100"`
	Category         string           `json:"category" binding:"max=50"`
	TotalAmount      int64            `json:"total_amount" binding:"min=0"`
	Scope            string           `json:"scope" binding:"required,oneof=SHARED PER_UNIT"`
	AllocationMethod string           `json:"allocation_method" binding:"omitempty,oneof=EQUAL SHARE_RATIO"`
	TargetUnitIDs    []uuid.UUID      `json:"target_unit_ids"`
	UnitAmounts      map[string]int64 `json:"unit_amounts"`
	Position         int              `json:"position" binding:"min=0"`
}

// AddCostItem godoc
// @Summary      Add a cost item to a draft cycle
// @Tags         cost-items
// @Accept       json
// @Produce      json
// @Param        id path string true "Cycle ID"
// @Param        request body AddCostItemRequest true "Cost item"
// @Success      201 {object} dto.Response{data=CostItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cycles/{id}/items [post]
func (h *CycleHandler) AddCostItem(c *gin.Context) {
	cycleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cycle ID")
		return
	}

	var req AddCostItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.buildCostItem(cycleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.cycleService.AddCostItem(c.Request.Context(), item); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCostItemResponse(item))
}

// buildCostItem constructs the domain cost item from the request
func (h *CycleHandler) buildCostItem(cycleID uuid.UUID, req AddCostItemRequest) (*billing.CostItem, error) {
	if billing.ItemScope(req.Scope) == billing.ScopeShared {
		method := billing.AllocationMethod(req.AllocationMethod)
		return billing.NewSharedCostItem(cycleID, req.Name, req.Category, req.TotalAmount, method, req.Position)
	}

	amounts := make(billing.UnitAmountMap, len(req.UnitAmounts))
	for key, amount := range req.UnitAmounts {
		unitID, err := uuid.Parse(key)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_TARGETS", "Unit amount keys must be unit IDs")
		}
		amounts[unitID] = amount
	}
	return billing.NewPerUnitCostItem(cycleID, req.Name, req.Category, req.TotalAmount,
		billing.UnitIDList(req.TargetUnitIDs), amounts, req.Position)
}

// RemoveCostItem godoc
// @Summary      Remove a cost item from a draft cycle
// @Tags         cost-items
// @Param        id path string true "Cycle ID"
// @Param        itemID path string true "Cost item ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cycles/{id}/items/{itemID} [delete]
func (h *CycleHandler) RemoveCostItem(c *gin.Context) {
	itemID, err := parseUUIDParam(c, "itemID")
	if err != nil {
		h.BadRequest(c, "Invalid cost item ID")
		return
	}

	if err := h.cycleService.RemoveCostItem(c.Request.Context(), itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Recompute godoc
// @Summary      Delete and rebuild every unit charge of a draft cycle
// @Tags         charges
// @Produce      json
// @Param        id path string true "Cycle ID"
// @Success      200 {object} dto.Response{data=billingapp.RecomputeResult}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cycles/{id}/recompute [post]
func (h *CycleHandler) Recompute(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cycle ID")
		return
	}

	result, err := h.chargeService.Recompute(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetCharges godoc
// @Summary      List the computed charges of a cycle
// @Tags         charges
// @Produce      json
// @Param        id path string true "Cycle ID"
// @Success      200 {object} dto.Response{data=[]ChargeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cycles/{id}/charges [get]
func (h *CycleHandler) GetCharges(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cycle ID")
		return
	}

	charges, err := h.chargeService.GetCharges(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toChargeResponses(charges))
}
