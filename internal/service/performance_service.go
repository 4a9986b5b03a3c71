package service

import (
	"time"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/mapper"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PerformanceService computes per-employee activity summaries from aggregated
// daily lead stats. It is a pure computation over its inputs; the roster, not
// the lead set, defines which employees appear in the output.
type PerformanceService struct {
	logger *zap.Logger
}

func NewPerformanceService(logger *zap.Logger) *PerformanceService {
	return &PerformanceService{logger: logger}
}

// Score produces one EmployeePerformance per roster member. Leads owned by
// employees outside the roster are ignored. The status thresholds work on
// whole calendar days between now and the employee's most recent lead:
// no lead ever means red, up to one day old is green, up to three days old is
// yellow, anything older is red.
func (s *PerformanceService) Score(stats []domain.DailyLeadStats, roster []domain.Employee, now time.Time) []domain.EmployeePerformance {
	byID := make(map[uuid.UUID]*domain.EmployeePerformance, len(roster))
	order := make([]uuid.UUID, 0, len(roster))

	for i := range roster {
		emp := &roster[i]
		byID[emp.ID] = &domain.EmployeePerformance{
			ID:         emp.ID,
			Name:       emp.Name,
			Email:      emp.Email,
			Role:       emp.Role,
			Department: mapper.ToDepartmentDTO(emp.Department),
			TotalLeads: 0,
			Status:     domain.PerformanceRed,
		}
		order = append(order, emp.ID)
	}

	for di := range stats {
		for li := range stats[di].Leads {
			lead := &stats[di].Leads[li]

			perf, ok := byID[lead.Employee.ID]
			if !ok {
				continue
			}
			perf.TotalLeads++

			createdAt, err := time.Parse("2006-01-02T15:04:05Z", lead.CreatedAt)
			if err != nil {
				// A malformed timestamp counts the lead but contributes
				// no recency.
				s.logger.Warn("unparseable lead timestamp in performance scoring",
					zap.String("lead_id", lead.ID.String()),
					zap.String("created_at", lead.CreatedAt))
				continue
			}
			if perf.LastLeadDate == nil || createdAt.After(*perf.LastLeadDate) {
				t := createdAt
				perf.LastLeadDate = &t
			}
		}
	}

	for _, perf := range byID {
		perf.Status = statusFor(perf.LastLeadDate, now)
	}

	result := make([]domain.EmployeePerformance, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}
	return result
}

// statusFor maps lead recency to the tri-state health indicator. The delta is
// a whole-day calendar difference in UTC, so a lead from any time yesterday
// is one day old regardless of clock time.
func statusFor(lastLeadDate *time.Time, now time.Time) domain.PerformanceStatus {
	if lastLeadDate == nil || lastLeadDate.IsZero() {
		return domain.PerformanceRed
	}

	days := wholeDaysBetween(*lastLeadDate, now)
	switch {
	case days <= 1:
		return domain.PerformanceGreen
	case days <= 3:
		return domain.PerformanceYellow
	default:
		return domain.PerformanceRed
	}
}

func wholeDaysBetween(from, to time.Time) int {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
