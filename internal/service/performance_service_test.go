package service_test

import (
	"testing"
	"time"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const leadTimeLayout = "2006-01-02T15:04:05Z"

func rosterMember(name string) domain.Employee {
	emp := domain.Employee{
		Name:  name,
		Email: name + "@example.com",
		Role:  domain.RoleEmployee,
	}
	emp.ID = uuid.New()
	return emp
}

func statsWithLead(employeeID uuid.UUID, createdAt time.Time) []domain.DailyLeadStats {
	return []domain.DailyLeadStats{
		{
			Date:       createdAt.UTC().Format("2006-01-02"),
			TotalLeads: 1,
			Leads: []domain.LeadDTO{
				{
					ID:         uuid.New(),
					Name:       "Lead",
					Company:    "Co",
					City:       "Oslo",
					Status:     domain.LeadStatusHot,
					EmployeeID: employeeID,
					Employee:   domain.LeadEmployeeDTO{ID: employeeID},
					CreatedAt:  createdAt.UTC().Format(leadTimeLayout),
				},
			},
			Statuses: map[domain.LeadStatus]int{domain.LeadStatusHot: 1},
		},
	}
}

func TestScore_NoLeadsIsRed(t *testing.T) {
	svc := service.NewPerformanceService(zap.NewNop())
	alice := rosterMember("alice")

	result := svc.Score(nil, []domain.Employee{alice}, time.Now().UTC())
	require.Len(t, result, 1)
	assert.Equal(t, alice.ID, result[0].ID)
	assert.Equal(t, 0, result[0].TotalLeads)
	assert.Nil(t, result[0].LastLeadDate)
	assert.Equal(t, domain.PerformanceRed, result[0].Status)
}

func TestScore_RecencyThresholds(t *testing.T) {
	svc := service.NewPerformanceService(zap.NewNop())
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		lead     time.Time
		expected domain.PerformanceStatus
	}{
		{"same day", now.Add(-2 * time.Hour), domain.PerformanceGreen},
		{"one day ago", now.AddDate(0, 0, -1), domain.PerformanceGreen},
		{"two days ago", now.AddDate(0, 0, -2), domain.PerformanceYellow},
		{"three days ago", now.AddDate(0, 0, -3), domain.PerformanceYellow},
		{"four days ago", now.AddDate(0, 0, -4), domain.PerformanceRed},
		{"a month ago", now.AddDate(0, -1, 0), domain.PerformanceRed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			emp := rosterMember("emp")
			result := svc.Score(statsWithLead(emp.ID, tc.lead), []domain.Employee{emp}, now)
			require.Len(t, result, 1)
			assert.Equal(t, tc.expected, result[0].Status)
			assert.Equal(t, 1, result[0].TotalLeads)
			require.NotNil(t, result[0].LastLeadDate)
		})
	}
}

func TestScore_CalendarDayNotElapsedHours(t *testing.T) {
	svc := service.NewPerformanceService(zap.NewNop())

	// A lead late yesterday evening is one calendar day old even though
	// fewer than 24 hours have elapsed.
	now := time.Date(2024, 5, 10, 1, 0, 0, 0, time.UTC)
	lead := time.Date(2024, 5, 9, 23, 0, 0, 0, time.UTC)

	emp := rosterMember("nightowl")
	result := svc.Score(statsWithLead(emp.ID, lead), []domain.Employee{emp}, now)
	require.Len(t, result, 1)
	assert.Equal(t, domain.PerformanceGreen, result[0].Status)
}

func TestScore_OffRosterLeadsIgnored(t *testing.T) {
	svc := service.NewPerformanceService(zap.NewNop())
	now := time.Now().UTC()

	onRoster := rosterMember("alice")
	offRoster := uuid.New()

	stats := statsWithLead(offRoster, now)
	result := svc.Score(stats, []domain.Employee{onRoster}, now)

	require.Len(t, result, 1)
	assert.Equal(t, onRoster.ID, result[0].ID)
	assert.Equal(t, 0, result[0].TotalLeads)
	assert.Equal(t, domain.PerformanceRed, result[0].Status)
}

func TestScore_UsesMostRecentLead(t *testing.T) {
	svc := service.NewPerformanceService(zap.NewNop())
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	emp := rosterMember("bob")

	old := statsWithLead(emp.ID, now.AddDate(0, 0, -10))
	recent := statsWithLead(emp.ID, now.AddDate(0, 0, -1))
	stats := append(recent, old...)

	result := svc.Score(stats, []domain.Employee{emp}, now)
	require.Len(t, result, 1)
	assert.Equal(t, 2, result[0].TotalLeads)
	assert.Equal(t, domain.PerformanceGreen, result[0].Status)
	require.NotNil(t, result[0].LastLeadDate)
	assert.Equal(t, now.AddDate(0, 0, -1), result[0].LastLeadDate.UTC())
}

func TestScore_MalformedTimestampCountsWithoutRecency(t *testing.T) {
	svc := service.NewPerformanceService(zap.NewNop())
	now := time.Now().UTC()
	emp := rosterMember("carol")

	stats := statsWithLead(emp.ID, now)
	stats[0].Leads[0].CreatedAt = "not-a-timestamp"

	result := svc.Score(stats, []domain.Employee{emp}, now)
	require.Len(t, result, 1)
	assert.Equal(t, 1, result[0].TotalLeads)
	assert.Nil(t, result[0].LastLeadDate)
	assert.Equal(t, domain.PerformanceRed, result[0].Status)
}

func TestScore_PreservesRosterOrder(t *testing.T) {
	svc := service.NewPerformanceService(zap.NewNop())
	now := time.Now().UTC()

	roster := []domain.Employee{
		rosterMember("zoe"),
		rosterMember("adam"),
		rosterMember("mia"),
	}

	// Only the middle roster member has activity
	stats := statsWithLead(roster[1].ID, now)

	result := svc.Score(stats, roster, now)
	require.Len(t, result, 3)
	assert.Equal(t, roster[0].ID, result[0].ID)
	assert.Equal(t, roster[1].ID, result[1].ID)
	assert.Equal(t, roster[2].ID, result[2].ID)

	assert.Equal(t, domain.PerformanceRed, result[0].Status)
	assert.Equal(t, domain.PerformanceGreen, result[1].Status)
	assert.Equal(t, domain.PerformanceRed, result[2].Status)
}

func TestScore_DepartmentCarriedFromRoster(t *testing.T) {
	svc := service.NewPerformanceService(zap.NewNop())
	now := time.Now().UTC()

	dept := domain.Department{Name: "Sales"}
	dept.ID = uuid.New()
	emp := rosterMember("dana")
	emp.DepartmentID = &dept.ID
	emp.Department = &dept

	result := svc.Score(nil, []domain.Employee{emp}, now)
	require.Len(t, result, 1)
	require.NotNil(t, result[0].Department)
	assert.Equal(t, "Sales", result[0].Department.Name)
}
