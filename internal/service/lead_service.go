package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/mapper"
	"github.com/brightsales/leadtrack-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// importBatchSize bounds each insert statement during bulk import
const importBatchSize = 100

// LeadService handles lead CRUD and bulk import
type LeadService struct {
	leadRepo     *repository.LeadRepository
	employeeRepo *repository.EmployeeRepository
	logger       *zap.Logger
}

func NewLeadService(
	leadRepo *repository.LeadRepository,
	employeeRepo *repository.EmployeeRepository,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		leadRepo:     leadRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

func (s *LeadService) Create(ctx context.Context, req *domain.CreateLeadRequest) (*domain.LeadDTO, error) {
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, fmt.Errorf("employee lookup failed: %w", err)
	}

	status := req.Status
	if status == "" {
		status = domain.LeadStatusCold
	}

	lead := &domain.Lead{
		Name:         req.Name,
		Email:        req.Email,
		Company:      req.Company,
		Phone:        req.Phone,
		City:         req.City,
		Title:        req.Title,
		Message:      req.Message,
		Status:       status,
		SoldAmount:   req.SoldAmount,
		CallBackTime: req.CallBackTime,
		EmployeeID:   req.EmployeeID,
	}
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	created, err := s.leadRepo.GetByID(ctx, lead.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}

	dto := mapper.ToLeadDTOPreloaded(created)
	return &dto, nil
}

func (s *LeadService) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeadDTO, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToLeadDTOPreloaded(lead)
	return &dto, nil
}

func (s *LeadService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateLeadRequest) (*domain.LeadDTO, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Email != nil {
		lead.Email = req.Email
	}
	if req.Company != nil {
		lead.Company = *req.Company
	}
	if req.Phone != nil {
		lead.Phone = req.Phone
	}
	if req.City != nil {
		lead.City = *req.City
	}
	if req.Title != nil {
		lead.Title = req.Title
	}
	if req.Message != nil {
		lead.Message = req.Message
	}
	if req.Status != nil {
		lead.Status = *req.Status
	}
	if req.SoldAmount != nil {
		lead.SoldAmount = req.SoldAmount
	}
	if req.CallBackTime != nil {
		lead.CallBackTime = req.CallBackTime
	}
	if req.EmployeeID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.EmployeeID); err != nil {
			return nil, fmt.Errorf("employee lookup failed: %w", err)
		}
		lead.EmployeeID = *req.EmployeeID
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	updated, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}
	dto := mapper.ToLeadDTOPreloaded(updated)
	return &dto, nil
}

func (s *LeadService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.leadRepo.Delete(ctx, id)
}

func (s *LeadService) List(ctx context.Context, filters *domain.LeadFilters, page, pageSize int) (*domain.PaginatedResponse, error) {
	leads, total, err := s.leadRepo.List(ctx, filters, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	dtos := make([]domain.LeadDTO, len(leads))
	for i := range leads {
		dtos[i] = mapper.ToLeadDTOPreloaded(&leads[i])
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Import cleanses and inserts a batch of raw lead rows. Rows arrive from
// spreadsheet exports: unknown or empty statuses default to COLD, sold
// amounts are coerced to numbers or dropped, and callback times accept
// RFC 3339 or date-only values. Rows without an owning employee are rejected
// before insert so the store never holds orphaned leads.
func (s *LeadService) Import(ctx context.Context, rows []domain.ImportLeadRow) (*domain.ImportResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty import payload", domain.ErrInvalidFilter)
	}

	leads := make([]domain.Lead, 0, len(rows))
	skipped := 0
	for i := range rows {
		row := &rows[i]

		if row.EmployeeID == nil || *row.EmployeeID == uuid.Nil {
			skipped++
			continue
		}

		lead := domain.Lead{
			Name:       row.Name,
			Email:      row.Email,
			Company:    row.Company,
			Phone:      row.Phone,
			City:       row.City,
			Title:      row.Title,
			Message:    row.Message,
			Status:     cleanseStatus(row.Status, s.logger),
			SoldAmount: coerceAmount(row.SoldAmount),
			EmployeeID: *row.EmployeeID,
		}
		lead.ID = uuid.New()

		if row.CallBackTime != nil {
			if t, ok := parseCallbackTime(*row.CallBackTime); ok {
				lead.CallBackTime = &t
			}
		}

		leads = append(leads, lead)
	}

	count, err := s.leadRepo.CreateBatch(ctx, leads, importBatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to import leads: %w", err)
	}

	s.logger.Info("lead import completed",
		zap.Int("received", len(rows)),
		zap.Int("inserted", count),
		zap.Int("skipped", skipped))

	return &domain.ImportResult{
		Message: "Leads imported successfully",
		Count:   count,
	}, nil
}

// cleanseStatus normalises raw status strings, defaulting unknown values to
// COLD rather than rejecting the row
func cleanseStatus(raw string, logger *zap.Logger) domain.LeadStatus {
	status := domain.LeadStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if status.IsValid() {
		return status
	}
	if raw != "" {
		logger.Warn("invalid lead status in import, defaulting to COLD",
			zap.String("status", raw))
	}
	return domain.LeadStatusCold
}

// coerceAmount accepts numbers or numeric strings; anything else is dropped
func coerceAmount(raw interface{}) *float64 {
	switch v := raw.(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &f
		}
	}
	return nil
}

func parseCallbackTime(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
