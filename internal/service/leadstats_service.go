package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/mapper"
	"github.com/brightsales/leadtrack-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FilterAll is the query-parameter sentinel meaning "no restriction"
const FilterAll = "all"

const dateLayout = "2006-01-02"

// LeadStatsService aggregates leads into per-day dashboard statistics.
type LeadStatsService struct {
	leadRepo       *repository.LeadRepository
	employeeRepo   *repository.EmployeeRepository
	departmentRepo *repository.DepartmentRepository
	logger         *zap.Logger
}

func NewLeadStatsService(
	leadRepo *repository.LeadRepository,
	employeeRepo *repository.EmployeeRepository,
	departmentRepo *repository.DepartmentRepository,
	logger *zap.Logger,
) *LeadStatsService {
	return &LeadStatsService{
		leadRepo:       leadRepo,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// BuildFilters parses raw query-parameter values into aggregation filters.
// Empty strings and the "all" sentinel mean unrestricted. The date window is
// applied only when both bounds are present, but any malformed non-empty date
// fails with ErrInvalidFilter.
func BuildFilters(employeeID, departmentID, startDate, endDate string) (*domain.LeadStatsFilters, error) {
	filters := &domain.LeadStatsFilters{}

	if employeeID != "" && employeeID != FilterAll {
		id, err := uuid.Parse(employeeID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid employeeId %q", domain.ErrInvalidFilter, employeeID)
		}
		filters.EmployeeID = &id
	}

	if departmentID != "" && departmentID != FilterAll {
		id, err := uuid.Parse(departmentID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid departmentId %q", domain.ErrInvalidFilter, departmentID)
		}
		filters.DepartmentID = &id
	}

	var start, end *time.Time
	if startDate != "" {
		d, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid startDate %q, expected YYYY-MM-DD", domain.ErrInvalidFilter, startDate)
		}
		t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		start = &t
	}
	if endDate != "" {
		d, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid endDate %q, expected YYYY-MM-DD", domain.ErrInvalidFilter, endDate)
		}
		t := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999999999, time.UTC)
		end = &t
	}

	// The window is inclusive day bounds; a half-open request falls back to
	// all history, matching the tracker frontend which always sends both.
	if start != nil && end != nil {
		filters.StartDate = start
		filters.EndDate = end
	}

	return filters, nil
}

// Aggregate retrieves leads matching the filters and groups them by UTC
// calendar day, newest day first. An empty result is an empty slice, never an
// error. Store failures surface as ErrStoreUnavailable.
func (s *LeadStatsService) Aggregate(ctx context.Context, filters *domain.LeadStatsFilters) ([]domain.DailyLeadStats, error) {
	if filters == nil {
		filters = &domain.LeadStatsFilters{}
	}

	employeeIDs, empty, err := s.resolveEmployeeScope(ctx, filters)
	if err != nil {
		return nil, err
	}
	if empty {
		return []domain.DailyLeadStats{}, nil
	}

	leads, err := s.leadRepo.FindForStats(ctx, filters, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	departments := s.resolveDepartments(ctx, leads)

	return s.groupByDay(leads, departments), nil
}

// resolveEmployeeScope turns the employee/department filters into a concrete
// id restriction. The second return value is true when the combination can
// match nothing (empty department, or an employee outside the requested
// department) and the lead query should be skipped entirely.
func (s *LeadStatsService) resolveEmployeeScope(ctx context.Context, filters *domain.LeadStatsFilters) ([]uuid.UUID, bool, error) {
	if filters.DepartmentID == nil {
		if filters.EmployeeID != nil {
			return []uuid.UUID{*filters.EmployeeID}, false, nil
		}
		return nil, false, nil
	}

	ids, err := s.employeeRepo.IDsByDepartment(ctx, *filters.DepartmentID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if len(ids) == 0 {
		return nil, true, nil
	}

	if filters.EmployeeID != nil {
		for _, id := range ids {
			if id == *filters.EmployeeID {
				// A specific employee inside the department narrows the
				// restriction to that one id.
				return []uuid.UUID{*filters.EmployeeID}, false, nil
			}
		}
		// Contradictory combination: defined to yield empty, not an error.
		return nil, true, nil
	}

	return ids, false, nil
}

// resolveDepartments looks up the department of every lead's employee. The
// lookups are read-only and mutually independent, so they run concurrently,
// one per distinct department. An individual failure degrades that
// department to nil for the affected leads and is logged, never fatal.
func (s *LeadStatsService) resolveDepartments(ctx context.Context, leads []domain.Lead) map[uuid.UUID]*domain.Department {
	wanted := make(map[uuid.UUID]struct{})
	for i := range leads {
		if emp := leads[i].Employee; emp != nil && emp.DepartmentID != nil {
			wanted[*emp.DepartmentID] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		resolved = make(map[uuid.UUID]*domain.Department, len(wanted))
	)
	for id := range wanted {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			department, err := s.departmentRepo.GetByID(ctx, id)
			if err != nil {
				s.logger.Warn("department lookup failed during stats enrichment",
					zap.String("department_id", id.String()),
					zap.Error(err))
				return
			}
			mu.Lock()
			resolved[id] = department
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return resolved
}

func (s *LeadStatsService) groupByDay(leads []domain.Lead, departments map[uuid.UUID]*domain.Department) []domain.DailyLeadStats {
	byDay := make(map[string]*domain.DailyLeadStats)

	for i := range leads {
		lead := &leads[i]
		day := lead.CreatedAt.UTC().Format(dateLayout)

		stats, ok := byDay[day]
		if !ok {
			statuses := make(map[domain.LeadStatus]int, len(domain.AllLeadStatuses))
			for _, status := range domain.AllLeadStatuses {
				statuses[status] = 0
			}
			stats = &domain.DailyLeadStats{
				Date:     day,
				Leads:    []domain.LeadDTO{},
				Statuses: statuses,
			}
			byDay[day] = stats
		}

		var department *domain.Department
		if emp := lead.Employee; emp != nil && emp.DepartmentID != nil {
			department = departments[*emp.DepartmentID]
		}

		stats.Leads = append(stats.Leads, mapper.ToLeadDTO(lead, department))
		stats.TotalLeads++
		stats.Statuses[lead.Status]++

		if lead.Status == domain.LeadStatusSold && lead.SoldAmount != nil {
			stats.TotalSoldAmount += *lead.SoldAmount
		}
	}

	result := make([]domain.DailyLeadStats, 0, len(byDay))
	for _, stats := range byDay {
		result = append(result, *stats)
	}

	// Most recent day first; the YYYY-MM-DD key sorts lexicographically.
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})

	return result
}
