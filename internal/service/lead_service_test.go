package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/repository"
	"github.com/brightsales/leadtrack-api/internal/service"
	"github.com/brightsales/leadtrack-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newLeadService(db *gorm.DB) *service.LeadService {
	logger := zap.NewNop()
	return service.NewLeadService(
		repository.NewLeadRepository(db),
		repository.NewEmployeeRepository(db),
		logger,
	)
}

func strPtr(s string) *string { return &s }

func TestLeadService_CreateDefaultsToCold(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newLeadService(db)
	emp := testutil.CreateTestEmployee(t, db, "Alice", "alice@example.com", nil)

	lead, err := svc.Create(context.Background(), &domain.CreateLeadRequest{
		Name:       "Acme Contact",
		Company:    "Acme",
		City:       "Bergen",
		EmployeeID: emp.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusCold, lead.Status)
	assert.Equal(t, emp.ID, lead.EmployeeID)
	assert.Equal(t, "Alice", lead.Employee.Name)
}

func TestLeadService_CreateRejectsUnknownEmployee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newLeadService(db)

	_, err := svc.Create(context.Background(), &domain.CreateLeadRequest{
		Name:       "Orphan",
		Company:    "Nowhere",
		City:       "Oslo",
		EmployeeID: uuid.New(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeadService_UpdatePartial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newLeadService(db)
	emp := testutil.CreateTestEmployee(t, db, "Bob", "bob@example.com", nil)
	lead := testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusCold, time.Now().UTC())

	sold := domain.LeadStatusSold
	amount := 4200.0
	updated, err := svc.Update(context.Background(), lead.ID, &domain.UpdateLeadRequest{
		Status:     &sold,
		SoldAmount: &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusSold, updated.Status)
	require.NotNil(t, updated.SoldAmount)
	assert.Equal(t, 4200.0, *updated.SoldAmount)
	// Untouched fields survive
	assert.Equal(t, "Test Lead", updated.Name)
}

func TestLeadService_DeleteMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newLeadService(db)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeadService_ListPaginates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newLeadService(db)
	emp := testutil.CreateTestEmployee(t, db, "Carol", "carol@example.com", nil)

	base := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		testutil.CreateTestLead(t, db, emp.ID, domain.LeadStatusCold, base.Add(time.Duration(i)*time.Hour))
	}

	page, err := svc.List(context.Background(), nil, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	leads, ok := page.Data.([]domain.LeadDTO)
	require.True(t, ok)
	assert.Len(t, leads, 2)
}

func TestLeadService_ImportCleansesRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newLeadService(db)
	emp := testutil.CreateTestEmployee(t, db, "Dana", "dana@example.com", nil)

	rows := []domain.ImportLeadRow{
		{
			Name:       "Clean",
			Company:    "A",
			City:       "Oslo",
			Status:     "  hot ",
			SoldAmount: nil,
			EmployeeID: &emp.ID,
		},
		{
			Name:       "Unknown status",
			Company:    "B",
			City:       "Oslo",
			Status:     "LUKEWARM",
			EmployeeID: &emp.ID,
		},
		{
			Name:       "String amount",
			Company:    "C",
			City:       "Oslo",
			Status:     "sold",
			SoldAmount: "1234.50",
			EmployeeID: &emp.ID,
		},
		{
			Name:       "Numeric amount",
			Company:    "D",
			City:       "Oslo",
			Status:     "SOLD",
			SoldAmount: 99.0,
			EmployeeID: &emp.ID,
		},
		{
			// No owning employee, skipped
			Name:    "Orphan",
			Company: "E",
			City:    "Oslo",
			Status:  "HOT",
		},
	}

	result, err := svc.Import(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Count)

	var leads []domain.Lead
	require.NoError(t, db.Order("company ASC").Find(&leads).Error)
	require.Len(t, leads, 4)

	assert.Equal(t, domain.LeadStatusHot, leads[0].Status)
	assert.Equal(t, domain.LeadStatusCold, leads[1].Status) // unknown defaults to COLD
	assert.Equal(t, domain.LeadStatusSold, leads[2].Status)
	require.NotNil(t, leads[2].SoldAmount)
	assert.InDelta(t, 1234.50, *leads[2].SoldAmount, 0.001)
	require.NotNil(t, leads[3].SoldAmount)
	assert.InDelta(t, 99.0, *leads[3].SoldAmount, 0.001)
}

func TestLeadService_ImportParsesCallbackTimes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newLeadService(db)
	emp := testutil.CreateTestEmployee(t, db, "Eve", "eve@example.com", nil)

	rows := []domain.ImportLeadRow{
		{
			Name:         "RFC 3339",
			Company:      "A",
			City:         "Oslo",
			Status:       "CALL_BACK",
			CallBackTime: strPtr("2024-06-01T10:30:00Z"),
			EmployeeID:   &emp.ID,
		},
		{
			Name:         "Date only",
			Company:      "B",
			City:         "Oslo",
			Status:       "CALL_BACK",
			CallBackTime: strPtr("2024-06-02"),
			EmployeeID:   &emp.ID,
		},
		{
			Name:         "Garbage dropped",
			Company:      "C",
			City:         "Oslo",
			Status:       "CALL_BACK",
			CallBackTime: strPtr("next tuesday"),
			EmployeeID:   &emp.ID,
		},
	}

	result, err := svc.Import(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)

	var leads []domain.Lead
	require.NoError(t, db.Order("company ASC").Find(&leads).Error)
	require.Len(t, leads, 3)
	require.NotNil(t, leads[0].CallBackTime)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), leads[0].CallBackTime.UTC())
	require.NotNil(t, leads[1].CallBackTime)
	assert.Nil(t, leads[2].CallBackTime)
}

func TestLeadService_ImportEmptyPayload(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newLeadService(db)

	_, err := svc.Import(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}
