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

// EmployeeRepository handles database operations for employees
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(employee).Error
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&employee, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	existing, err := r.GetByID(ctx, employee.ID)
	if err != nil {
		return fmt.Errorf("employee not found: %w", err)
	}
	employee.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(employee).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all employees ordered by name with their department preloaded
func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Order("name ASC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("fetching employees: %w", err)
	}
	return employees, nil
}

// ListByDepartment returns employees belonging to a department, name-ordered
func (r *EmployeeRepository) ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("department_id = ?", departmentID).
		Order("name ASC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("fetching department employees: %w", err)
	}
	return employees, nil
}

// IDsByDepartment returns the ids of all employees in a department. The stats
// aggregation uses this for its department-filter resolution; an empty result
// is meaningful (short-circuits to an empty stats sequence) and not an error.
func (r *EmployeeRepository) IDsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("department_id = ?", departmentID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("resolving department employees: %w", err)
	}
	return ids, nil
}
