package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	billingapp "github.com/cohaus/backend/internal/application/billing"
	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBuildingRepo struct {
	mock.Mock
}

func (m *mockBuildingRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Building), args.Error(1)
}

func (m *mockBuildingRepo) FindAll(ctx context.Context) ([]billing.Building, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Building), args.Error(1)
}

func (m *mockBuildingRepo) Save(ctx context.Context, building *billing.Building) error {
	return m.Called(ctx, building).Error(0)
}

func (m *mockBuildingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockUnitRepo struct {
	mock.Mock
}

func (m *mockUnitRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Unit), args.Error(1)
}

func (m *mockUnitRepo) FindActiveByBuilding(ctx context.Context, buildingID uuid.UUID) ([]billing.Unit, error) {
	args := m.Called(ctx, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Unit), args.Error(1)
}

func (m *mockUnitRepo) FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]billing.Unit, error) {
	args := m.Called(ctx, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Unit), args.Error(1)
}

func (m *mockUnitRepo) Save(ctx context.Context, unit *billing.Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *mockUnitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newBuildingRouter(buildingRepo *mockBuildingRepo, unitRepo *mockUnitRepo) *gin.Engine {
	service := billingapp.NewBuildingService(buildingRepo, unitRepo)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewBuildingHandler(service).RegisterRoutes(api)
	return engine
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestBuildingHandler_Create(t *testing.T) {
	t.Run("creates a building", func(t *testing.T) {
		buildingRepo := new(mockBuildingRepo)
		unitRepo := new(mockUnitRepo)
		buildingRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Building")).Return(nil)

		engine := newBuildingRouter(buildingRepo, unitRepo)
		w := performJSON(t, engine, http.MethodPost, "/api/v1/buildings", gin.H{
			"name":                     "Maple House",
			"address":                  "12 Maple Street",
			"allocation_method":        "EQUAL",
			"billing_period_start_day": 1,
			"billing_period_end_day":   31,
			"due_day":                  10,
			"late_fee_rate_percent":    2.5,
		})

		require.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "Maple House", data["name"])
		assert.Equal(t, "EQUAL", data["allocation_method"])
		assert.Equal(t, "2.5", data["late_fee_rate_percent"])
		buildingRepo.AssertExpectations(t)
	})

	t.Run("rejects an unknown allocation method", func(t *testing.T) {
		engine := newBuildingRouter(new(mockBuildingRepo), new(mockUnitRepo))
		w := performJSON(t, engine, http.MethodPost, "/api/v1/buildings", gin.H{
			"name":                     "Maple House",
			"allocation_method":        "RANDOM",
			"billing_period_start_day": 1,
			"billing_period_end_day":   31,
			"due_day":                  10,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBuildingHandler_Get(t *testing.T) {
	t.Run("returns 404 for an unknown building", func(t *testing.T) {
		buildingRepo := new(mockBuildingRepo)
		buildingRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		engine := newBuildingRouter(buildingRepo, new(mockUnitRepo))
		w := performJSON(t, engine, http.MethodGet, "/api/v1/buildings/"+uuid.NewString(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "ERR_NOT_FOUND", resp.Error.Code)
	})

	t.Run("rejects a malformed ID", func(t *testing.T) {
		engine := newBuildingRouter(new(mockBuildingRepo), new(mockUnitRepo))
		w := performJSON(t, engine, http.MethodGet, "/api/v1/buildings/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBuildingHandler_CreateUnit(t *testing.T) {
	buildingID := uuid.New()
	ratio := decimal.NewFromInt(40)
	building, err := billing.NewBuilding("Maple House", "", billing.AllocationShareRatio, 1, 31, 10, decimal.Zero)
	require.NoError(t, err)
	building.ID = buildingID

	buildingRepo := new(mockBuildingRepo)
	unitRepo := new(mockUnitRepo)
	buildingRepo.On("FindByID", mock.Anything, buildingID).Return(building, nil)
	unitRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Unit")).Return(nil)

	engine := newBuildingRouter(buildingRepo, unitRepo)
	w := performJSON(t, engine, http.MethodPost, "/api/v1/buildings/"+buildingID.String()+"/units", gin.H{
		"display_name":        "201",
		"share_ratio_percent": 40.0,
		"tenant_name":         "Kim",
		"tenant_phone":        "010-1111-2222",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "201", data["display_name"])
	assert.Equal(t, ratio.String(), data["share_ratio_percent"])
	assert.Equal(t, true, data["active"])
	unitRepo.AssertExpectations(t)
}

func TestBuildingHandler_CheckShareRatios(t *testing.T) {
	buildingID := uuid.New()
	building, err := billing.NewBuilding("Maple House", "", billing.AllocationShareRatio, 1, 31, 10, decimal.Zero)
	require.NoError(t, err)
	building.ID = buildingID

	half := decimal.NewFromInt(50)
	u1, err := billing.NewUnit(buildingID, "101", &half)
	require.NoError(t, err)
	u2, err := billing.NewUnit(buildingID, "102", &half)
	require.NoError(t, err)

	buildingRepo := new(mockBuildingRepo)
	unitRepo := new(mockUnitRepo)
	buildingRepo.On("FindByID", mock.Anything, buildingID).Return(building, nil)
	unitRepo.On("FindActiveByBuilding", mock.Anything, buildingID).Return([]billing.Unit{*u1, *u2}, nil)

	engine := newBuildingRouter(buildingRepo, unitRepo)
	w := performJSON(t, engine, http.MethodGet, "/api/v1/buildings/"+buildingID.String()+"/share-ratios", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["balanced"])
	assert.Equal(t, true, data["required"])
	assert.Equal(t, "100", data["sum"])
}
