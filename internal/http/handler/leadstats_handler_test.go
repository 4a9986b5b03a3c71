package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/http/handler"
	"github.com/brightsales/leadtrack-api/internal/repository"
	"github.com/brightsales/leadtrack-api/internal/service"
	"github.com/brightsales/leadtrack-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newLeadStatsHandler(db *gorm.DB) *handler.LeadStatsHandler {
	logger := zap.NewNop()
	leadRepo := repository.NewLeadRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)

	return handler.NewLeadStatsHandler(
		service.NewLeadStatsService(leadRepo, employeeRepo, departmentRepo, logger),
		service.NewEmployeeService(employeeRepo, departmentRepo, logger),
		service.NewPerformanceService(logger),
		logger,
	)
}

func TestGetStats_ReturnsDailyBuckets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newLeadStatsHandler(db)
	emp := testutil.CreateTestEmployee(t, db, "Alice", "alice@example.com", nil)
	testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusHot, time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC))
	testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusCold, time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lead-stats", nil)
	h.GetStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats []domain.DailyLeadStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	require.Len(t, stats, 2)
	assert.Equal(t, "2024-05-11", stats[0].Date)
	assert.Equal(t, "2024-05-10", stats[1].Date)
}

func TestGetStats_BadDateIsBadRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newLeadStatsHandler(db)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lead-stats?startDate=05/10/2024&endDate=2024-05-11", nil)
	h.GetStats(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStats_BadEmployeeIDIsBadRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newLeadStatsHandler(db)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lead-stats?employeeId=not-a-uuid", nil)
	h.GetStats(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPerformance_RosterIncludesEmployeesWithoutLeads(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newLeadStatsHandler(db)
	active := testutil.CreateTestEmployee(t, db, "Alice", "alice@example.com", nil)
	idle := testutil.CreateTestEmployee(t, db, "Bob", "bob@example.com", nil)
	testutil.CreateTestLead(t, db, active.ID, domain.LeadStatusHot, time.Now().UTC())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lead-stats/performance", nil)
	h.GetPerformance(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var performance []domain.EmployeePerformance
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&performance))
	require.Len(t, performance, 2)

	byID := map[string]domain.EmployeePerformance{}
	for _, p := range performance {
		byID[p.ID.String()] = p
	}
	assert.Equal(t, domain.PerformanceGreen, byID[active.ID.String()].Status)
	assert.Equal(t, domain.PerformanceRed, byID[idle.ID.String()].Status)
	assert.Zero(t, byID[idle.ID.String()].TotalLeads)
}
