package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/repository"
	"github.com/brightsales/leadtrack-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func TestLeadRepository_GetByIDPreloadsEmployee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)

	dept := testutil.CreateTestDepartment(t, db, "Sales")
	emp := testutil.CreateTestEmployee(t, db, "Alice", "alice@example.com", &dept.ID)
	lead := testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusHot, time.Now().UTC())

	found, err := repo.GetByID(context.Background(), lead.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Employee)
	assert.Equal(t, "Alice", found.Employee.Name)
	require.NotNil(t, found.Employee.Department)
	assert.Equal(t, "Sales", found.Employee.Department.Name)
}

func TestLeadRepository_GetByIDMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeadRepository_DeleteMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeadRepository_ListSearchIsCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	emp := testutil.CreateTestEmployee(t, db, "Bob", "bob@example.com", nil)

	now := time.Now().UTC()
	matching := testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusCold, now)
	matching.Name = "Nordic Steel"
	require.NoError(t, db.Omit(clause.Associations).Save(matching).Error)

	other := testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusCold, now)
	other.Name = "Baltic Timber"
	require.NoError(t, db.Omit(clause.Associations).Save(other).Error)

	leads, total, err := repo.List(context.Background(), &domain.LeadFilters{Search: "nordic"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, leads, 1)
	assert.Equal(t, "Nordic Steel", leads[0].Name)
}

func TestLeadRepository_ListFiltersByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	emp := testutil.CreateTestEmployee(t, db, "Carol", "carol@example.com", nil)

	now := time.Now().UTC()
	testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusHot, now)
	testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusCold, now)

	hot := domain.LeadStatusHot
	leads, total, err := repo.List(context.Background(), &domain.LeadFilters{Status: &hot}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, leads, 1)
	assert.Equal(t, domain.LeadStatusHot, leads[0].Status)
}

func TestLeadRepository_CreateBatchCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	emp := testutil.CreateTestEmployee(t, db, "Dana", "dana@example.com", nil)

	leads := make([]domain.Lead, 7)
	for i := range leads {
		leads[i] = domain.Lead{
			Name:       "Batch Lead",
			Company:    "Batch Co",
			City:       "Oslo",
			Status:     domain.LeadStatusCold,
			EmployeeID: emp.ID,
		}
		leads[i].ID = uuid.New()
	}

	count, err := repo.CreateBatch(context.Background(), leads, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	empty, err := repo.CreateBatch(context.Background(), nil, 3)
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestLeadRepository_FindForStatsWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	emp := testutil.CreateTestEmployee(t, db, "Eve", "eve@example.com", nil)

	inWindow := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	outside := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusHot, inWindow)
	testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusHot, outside)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	leads, err := repo.FindForStats(context.Background(), &domain.LeadStatsFilters{
		StartDate: &start,
		EndDate:   &end,
	}, nil)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.NotNil(t, leads[0].Employee)
	assert.Equal(t, "Eve", leads[0].Employee.Name)
}

func TestLeadRepository_FindDueCallbacks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	emp := testutil.CreateTestEmployee(t, db, "Frank", "frank@example.com", nil)

	now := time.Now().UTC()

	due := testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusCallBack, now.Add(-48*time.Hour))
	past := now.Add(-time.Hour)
	due.CallBackTime = &past
	require.NoError(t, db.Omit(clause.Associations).Save(due).Error)

	pending := testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusCallBack, now)
	future := now.Add(24 * time.Hour)
	pending.CallBackTime = &future
	require.NoError(t, db.Omit(clause.Associations).Save(pending).Error)

	// Right status but no callback time set
	testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusCallBack, now)
	// Past time but wrong status
	cold := testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusCold, now)
	cold.CallBackTime = &past
	require.NoError(t, db.Omit(clause.Associations).Save(cold).Error)

	leads, err := repo.FindDueCallbacks(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, due.ID, leads[0].ID)
}

func TestEmployeeRepository_IDsByDepartment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEmployeeRepository(db)

	sales := testutil.CreateTestDepartment(t, db, "Sales")
	a := testutil.CreateTestEmployee(t, db, "Alice", "alice@example.com", &sales.ID)
	b := testutil.CreateTestEmployee(t, db, "Bob", "bob@example.com", &sales.ID)
	testutil.CreateTestEmployee(t, db, "Carol", "carol@example.com", nil)

	ids, err := repo.IDsByDepartment(context.Background(), sales.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, ids)

	// An unknown department resolves to an empty set, not an error
	none, err := repo.IDsByDepartment(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}
