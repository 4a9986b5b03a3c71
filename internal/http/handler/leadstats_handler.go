package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/service"
	"go.uber.org/zap"
)

type LeadStatsHandler struct {
	statsService       *service.LeadStatsService
	employeeService    *service.EmployeeService
	performanceService *service.PerformanceService
	logger             *zap.Logger
}

func NewLeadStatsHandler(
	statsService *service.LeadStatsService,
	employeeService *service.EmployeeService,
	performanceService *service.PerformanceService,
	logger *zap.Logger,
) *LeadStatsHandler {
	return &LeadStatsHandler{
		statsService:       statsService,
		employeeService:    employeeService,
		performanceService: performanceService,
		logger:             logger,
	}
}

// @Summary Get daily lead statistics
// @Description Aggregates leads into per-day buckets, most recent day first.
// @Description
// @Description Filters combine as follows:
// @Description - `employeeId`/`departmentId`: omit or pass `all` for no restriction
// @Description - A department filter resolves to that department's employees; an empty department yields an empty result
// @Description - An employee filter combined with a department it does not belong to yields an empty result
// @Description - `startDate`/`endDate` (YYYY-MM-DD) are inclusive day bounds in UTC and only apply when both are present
// @Description
// @Description Each day carries its leads, per-status counts (always all five statuses) and the sold total.
// @Tags Lead Stats
// @Produce json
// @Param employeeId query string false "Employee ID or 'all'"
// @Param departmentId query string false "Department ID or 'all'"
// @Param startDate query string false "Window start (YYYY-MM-DD)"
// @Param endDate query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} domain.DailyLeadStats
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /lead-stats [get]
func (h *LeadStatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters, err := service.BuildFilters(
		query.Get("employeeId"),
		query.Get("departmentId"),
		query.Get("startDate"),
		query.Get("endDate"),
	)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.statsService.Aggregate(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to aggregate lead stats", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load lead statistics")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// @Summary Get employee performance summary
// @Description Scores every employee in scope on lead recency. Employees with a
// @Description lead up to one day old are green, up to three days old yellow,
// @Description anything older (or no lead at all) red. The roster defines who
// @Description appears: employees without leads in the window are included as red.
// @Tags Lead Stats
// @Produce json
// @Param employeeId query string false "Employee ID or 'all'"
// @Param departmentId query string false "Department ID or 'all'"
// @Param startDate query string false "Window start (YYYY-MM-DD)"
// @Param endDate query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} domain.EmployeePerformance
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /lead-stats/performance [get]
func (h *LeadStatsHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters, err := service.BuildFilters(
		query.Get("employeeId"),
		query.Get("departmentId"),
		query.Get("startDate"),
		query.Get("endDate"),
	)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.statsService.Aggregate(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to aggregate lead stats for performance", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load lead statistics")
		return
	}

	roster, err := h.employeeService.Roster(r.Context(), filters.DepartmentID)
	if err != nil {
		h.logger.Error("failed to load employee roster", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load employees")
		return
	}

	performance := h.performanceService.Score(stats, roster, time.Now().UTC())
	respondJSON(w, http.StatusOK, performance)
}

// statusForError maps aggregation errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
