package handler

import (
	billingapp "github.com/cohaus/backend/internal/application/billing"
	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BuildingHandler handles building and unit API endpoints
type BuildingHandler struct {
	BaseHandler
	buildingService *billingapp.BuildingService
}

// NewBuildingHandler creates a new BuildingHandler
func NewBuildingHandler(buildingService *billingapp.BuildingService) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService}
}

// RegisterRoutes registers building and unit routes
func (h *BuildingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	buildings := rg.Group("/buildings")
	{
		buildings.POST("", h.Create)
		buildings.GET("", h.List)
		buildings.GET("/:id", h.Get)
		buildings.PUT("/:id/bank-details", h.SetBankDetails)
		buildings.GET("/:id/share-ratios", h.CheckShareRatios)
		buildings.POST("/:id/units", h.CreateUnit)
		buildings.GET("/:id/units", h.ListUnits)
	}

	units := rg.Group("/units")
	{
		units.PUT("/:id/tenant", h.SetTenant)
		units.POST("/:id/deactivate", h.DeactivateUnit)
	}
}

// CreateBuildingRequest represents a request to create a new building
type CreateBuildingRequest struct {
	Name                  string  `json:"name" binding:"required,min=1,max=100"`
	Address               string  `json:"address" binding:"max=500"`
	AllocationMethod      string  `json:"allocation_method" binding:"required,oneof=EQUAL SHARE_RATIO"`
	BillingPeriodStartDay int     `json:"billing_period_start_day" binding:"required,min=1,max=31"`
	BillingPeriodEndDay   int     `json:"billing_period_end_day" binding:"required,min=1,max=31"`
	DueDay                int     `json:"due_day" binding:"required,min=1,max=31"`
	LateFeeRatePercent    float64 `json:"late_fee_rate_percent" binding:"min=0"`
}

// Create godoc
// @Summary      Create a building
// @Tags         buildings
// @Accept       json
// @Produce      json
// @Param        request body CreateBuildingRequest true "Building creation request"
// @Success      201 {object} dto.Response{data=BuildingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /buildings [post]
func (h *BuildingHandler) Create(c *gin.Context) {
	var req CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	building, err := billing.NewBuilding(
		req.Name,
		req.Address,
		billing.AllocationMethod(req.AllocationMethod),
		req.BillingPeriodStartDay,
		req.BillingPeriodEndDay,
		req.DueDay,
		decimal.NewFromFloat(req.LateFeeRatePercent),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.buildingService.CreateBuilding(c.Request.Context(), building); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBuildingResponse(building))
}

// List godoc
// @Summary      List buildings
// @Tags         buildings
// @Produce      json
// @Success      200 {object} dto.Response{data=[]BuildingResponse}
// @Router       /buildings [get]
func (h *BuildingHandler) List(c *gin.Context) {
	buildings, err := h.buildingService.ListBuildings(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBuildingResponses(buildings))
}

// Get godoc
// @Summary      Get a building
// @Tags         buildings
// @Produce      json
// @Param        id path string true "Building ID"
// @Success      200 {object} dto.Response{data=BuildingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /buildings/{id} [get]
func (h *BuildingHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid building ID")
		return
	}

	building, err := h.buildingService.GetBuilding(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBuildingResponse(building))
}

// SetBankDetailsRequest represents a request to set a building's bank details
type SetBankDetailsRequest struct {
	BankName      string `json:"bank_name" binding:"required,max=100"`
	BankAccount   string `json:"bank_account" binding:"required,max=100"`
	AccountHolder string `json:"account_holder" binding:"required,max=100"`
}

// SetBankDetails godoc
// @Summary      Set the bank transfer details shown on invoices
// @Tags         buildings
// @Accept       json
// @Produce      json
// @Param        id path string true "Building ID"
// @Param        request body SetBankDetailsRequest true "Bank details"
// @Success      200 {object} dto.Response{data=BuildingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /buildings/{id}/bank-details [put]
func (h *BuildingHandler) SetBankDetails(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid building ID")
		return
	}

	var req SetBankDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	building, err := h.buildingService.GetBuilding(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	building.SetBankDetails(req.BankName, req.BankAccount, req.AccountHolder)

	if err := h.buildingService.UpdateBuilding(c.Request.Context(), building); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBuildingResponse(building))
}

// CheckShareRatios godoc
// @Summary      Check whether active unit share ratios sum to 100%
// @Tags         buildings
// @Produce      json
// @Param        id path string true "Building ID"
// @Success      200 {object} dto.Response{data=billingapp.ShareRatioStatus}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /buildings/{id}/share-ratios [get]
func (h *BuildingHandler) CheckShareRatios(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid building ID")
		return
	}

	status, err := h.buildingService.CheckShareRatios(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// CreateUnitRequest represents a request to create a new unit
type CreateUnitRequest struct {
	DisplayName       string   `json:"display_name" binding:"required,min=1,max=100"`
	ShareRatioPercent *float64 `json:"share_ratio_percent" binding:"omitempty,min=0,max=100"`
	TenantName        string   `json:"tenant_name" binding:"max=100"`
	TenantPhone       string   `json:"tenant_phone" binding:"omitempty,phone"`
}

// CreateUnit godoc
// @Summary      Create a unit in a building
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id path string true "Building ID"
// @Param        request body CreateUnitRequest true "Unit creation request"
// @Success      201 {object} dto.Response{data=UnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /buildings/{id}/units [post]
func (h *BuildingHandler) CreateUnit(c *gin.Context) {
	buildingID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid building ID")
		return
	}

	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var ratio *decimal.Decimal
	if req.ShareRatioPercent != nil {
		d := decimal.NewFromFloat(*req.ShareRatioPercent)
		ratio = &d
	}

	unit, err := billing.NewUnit(buildingID, req.DisplayName, ratio)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if req.TenantName != "" || req.TenantPhone != "" {
		unit.SetTenant(req.TenantName, req.TenantPhone)
	}

	if err := h.buildingService.CreateUnit(c.Request.Context(), unit); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toUnitResponse(unit))
}

// ListUnits godoc
// @Summary      List the units of a building
// @Tags         units
// @Produce      json
// @Param        id path string true "Building ID"
// @Success      200 {object} dto.Response{data=[]UnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /buildings/{id}/units [get]
func (h *BuildingHandler) ListUnits(c *gin.Context) {
	buildingID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid building ID")
		return
	}

	units, err := h.buildingService.ListUnits(c.Request.Context(), buildingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toUnitResponses(units))
}

// SetTenantRequest represents a request to set a unit's tenant contact
type SetTenantRequest struct {
	TenantName  string `json:"tenant_name" binding:"required,max=100"`
	TenantPhone string `json:"tenant_phone" binding:"required,phone"`
}

// SetTenant godoc
// @Summary      Set the tenant contact of a unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id path string true "Unit ID"
// @Param        request body SetTenantRequest true "Tenant contact"
// @Success      200 {object} dto.Response{data=UnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /units/{id}/tenant [put]
func (h *BuildingHandler) SetTenant(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	var req SetTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unit, err := h.buildingService.GetUnit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	unit.SetTenant(req.TenantName, req.TenantPhone)

	if err := h.buildingService.UpdateUnit(c.Request.Context(), unit); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toUnitResponse(unit))
}

// DeactivateUnit godoc
// @Summary      Deactivate a unit, excluding it from future allocation
// @Tags         units
// @Produce      json
// @Param        id path string true "Unit ID"
// @Success      200 {object} dto.Response{data=UnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /units/{id}/deactivate [post]
func (h *BuildingHandler) DeactivateUnit(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	unit, err := h.buildingService.GetUnit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	unit.Deactivate()

	if err := h.buildingService.UpdateUnit(c.Request.Context(), unit); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toUnitResponse(unit))
}
