package service

import (
	"context"
	"fmt"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/mapper"
	"github.com/brightsales/leadtrack-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DepartmentService handles department CRUD
type DepartmentService struct {
	departmentRepo *repository.DepartmentRepository
	logger         *zap.Logger
}

func NewDepartmentService(departmentRepo *repository.DepartmentRepository, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

func (s *DepartmentService) Create(ctx context.Context, req *domain.CreateDepartmentRequest) (*domain.DepartmentDTO, error) {
	department := &domain.Department{Name: req.Name}
	department.ID = uuid.New()

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return mapper.ToDepartmentDTO(department), nil
}

func (s *DepartmentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.DepartmentDTO, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapper.ToDepartmentDTO(department), nil
}

func (s *DepartmentService) Update(ctx context.Context, id uuid.UUID, req *domain.CreateDepartmentRequest) (*domain.DepartmentDTO, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	department.Name = req.Name

	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}
	return mapper.ToDepartmentDTO(department), nil
}

func (s *DepartmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.departmentRepo.Delete(ctx, id)
}

func (s *DepartmentService) List(ctx context.Context) ([]domain.DepartmentDTO, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	dtos := make([]domain.DepartmentDTO, len(departments))
	for i := range departments {
		dtos[i] = *mapper.ToDepartmentDTO(&departments[i])
	}
	return dtos, nil
}
