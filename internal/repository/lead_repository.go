package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeadRepository handles database operations for leads.
//
// Index recommendations for optimal query performance:
// - CREATE INDEX idx_leads_employee_id ON leads(employee_id);
// - CREATE INDEX idx_leads_created_at ON leads(created_at);
// - CREATE INDEX idx_leads_status ON leads(status);
// - CREATE INDEX idx_leads_call_back_time ON leads(call_back_time) WHERE call_back_time IS NOT NULL;
type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(lead).Error
}

// CreateBatch inserts leads in batches of batchSize and returns the number of
// rows inserted
func (r *LeadRepository) CreateBatch(ctx context.Context, leads []domain.Lead, batchSize int) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(leads, batchSize)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Department").
		First(&lead, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// Update saves a modified lead, preserving its creation timestamp
func (r *LeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	existing, err := r.GetByID(ctx, lead.ID)
	if err != nil {
		return fmt.Errorf("lead not found: %w", err)
	}
	lead.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(lead).Error
}

func (r *LeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Lead{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LeadRepository) List(ctx context.Context, filters *domain.LeadFilters, page, pageSize int) ([]domain.Lead, int64, error) {
	var leads []domain.Lead
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Lead{})

	if filters != nil {
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.EmployeeID != nil {
			query = query.Where("employee_id = ?", *filters.EmployeeID)
		}
		if filters.City != "" {
			query = query.Where("LOWER(city) = LOWER(?)", filters.City)
		}
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(company) LIKE LOWER(?)", pattern, pattern)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting leads: %w", err)
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Preload("Employee").
		Order("created_at DESC").
		Find(&leads).Error
	if err != nil {
		return nil, 0, fmt.Errorf("fetching leads: %w", err)
	}

	return leads, total, nil
}

// FindForStats retrieves leads matching the aggregation filters, newest
// first, with the owning employee preloaded. Department enrichment is done
// separately by the stats service so that a single failed lookup cannot fail
// the whole query.
func (r *LeadRepository) FindForStats(ctx context.Context, window *domain.LeadStatsFilters, employeeIDs []uuid.UUID) ([]domain.Lead, error) {
	var leads []domain.Lead

	query := r.db.WithContext(ctx).Model(&domain.Lead{})

	if window != nil {
		if window.StartDate != nil {
			query = query.Where("created_at >= ?", *window.StartDate)
		}
		if window.EndDate != nil {
			query = query.Where("created_at <= ?", *window.EndDate)
		}
	}
	if len(employeeIDs) == 1 {
		query = query.Where("employee_id = ?", employeeIDs[0])
	} else if len(employeeIDs) > 1 {
		query = query.Where("employee_id IN ?", employeeIDs)
	}

	err := query.Preload("Employee").
		Order("created_at DESC").
		Find(&leads).Error
	if err != nil {
		return nil, fmt.Errorf("fetching leads for stats: %w", err)
	}

	return leads, nil
}

// FindDueCallbacks returns CALL_BACK leads whose callback time has passed
func (r *LeadRepository) FindDueCallbacks(ctx context.Context, limit int) ([]domain.Lead, error) {
	var leads []domain.Lead
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.LeadStatusCallBack).
		Where("call_back_time IS NOT NULL AND call_back_time <= CURRENT_TIMESTAMP").
		Preload("Employee").
		Order("call_back_time ASC").
		Limit(limit).
		Find(&leads).Error
	if err != nil {
		return nil, fmt.Errorf("fetching due callbacks: %w", err)
	}
	return leads, nil
}
