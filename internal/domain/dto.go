package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs for API responses. Field names match the tracker frontend contract.

type DepartmentDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type EmployeeDTO struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         UserRole       `json:"role"`
	DepartmentID *uuid.UUID     `json:"departmentId"`
	Department   *DepartmentDTO `json:"department"`
	CreatedAt    string         `json:"createdAt"` // ISO 8601
}

// LeadEmployeeDTO is the employee projection embedded in lead responses
type LeadEmployeeDTO struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Department *DepartmentDTO `json:"department"`
}

type LeadDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        *string         `json:"email"`
	Company      string          `json:"company"`
	Phone        *string         `json:"phone"`
	City         string          `json:"city"`
	Title        *string         `json:"title,omitempty"`
	Message      *string         `json:"message,omitempty"`
	Status       LeadStatus      `json:"status"`
	SoldAmount   *float64        `json:"soldAmount"`
	CallBackTime *string         `json:"callBackTime"` // ISO 8601
	EmployeeID   uuid.UUID       `json:"employeeId"`
	Employee     LeadEmployeeDTO `json:"employee"`
	CreatedAt    string          `json:"createdAt"` // ISO 8601
}

// DailyLeadStats is one aggregated calendar day of lead activity.
// Invariant: TotalLeads == len(Leads) == sum of Statuses values.
type DailyLeadStats struct {
	Date            string             `json:"date"` // YYYY-MM-DD, UTC
	TotalLeads      int                `json:"totalLeads"`
	Leads           []LeadDTO          `json:"leads"`
	Statuses        map[LeadStatus]int `json:"statuses"`
	TotalSoldAmount float64            `json:"totalSoldAmount"`
}

// PerformanceStatus is the tri-state recency health indicator
type PerformanceStatus string

const (
	PerformanceGreen  PerformanceStatus = "green"
	PerformanceYellow PerformanceStatus = "yellow"
	PerformanceRed    PerformanceStatus = "red"
)

// EmployeePerformance is the per-employee activity summary for a filter window
type EmployeePerformance struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Role         UserRole          `json:"role"`
	Department   *DepartmentDTO    `json:"department"`
	TotalLeads   int               `json:"totalLeads"`
	LastLeadDate *time.Time        `json:"lastLeadDate"`
	Status       PerformanceStatus `json:"status"`
}

// LeadStatsFilters carries the resolved aggregation filter criteria.
// Nil fields mean unrestricted; the "all" sentinel is resolved at the handler.
type LeadStatsFilters struct {
	EmployeeID   *uuid.UUID
	DepartmentID *uuid.UUID
	StartDate    *time.Time // inclusive, start of day UTC
	EndDate      *time.Time // inclusive, end of day UTC
}

// LeadFilters carries the list-endpoint filter criteria
type LeadFilters struct {
	Status     *LeadStatus
	EmployeeID *uuid.UUID
	City       string
	Search     string
}

// CreateLeadRequest is the payload for manual lead entry
type CreateLeadRequest struct {
	Name         string     `json:"name" validate:"required,max=200"`
	Email        *string    `json:"email" validate:"omitempty,email"`
	Company      string     `json:"company" validate:"required,max=200"`
	Phone        *string    `json:"phone" validate:"omitempty,max=50"`
	City         string     `json:"city" validate:"required,max=100"`
	Title        *string    `json:"title" validate:"omitempty,max=100"`
	Message      *string    `json:"message"`
	Status       LeadStatus `json:"status" validate:"omitempty,oneof=HOT WARM COLD SOLD CALL_BACK"`
	SoldAmount   *float64   `json:"soldAmount" validate:"omitempty,gte=0"`
	CallBackTime *time.Time `json:"callBackTime"`
	EmployeeID   uuid.UUID  `json:"employeeId" validate:"required"`
}

// UpdateLeadRequest is the payload for lead updates; nil fields are unchanged
type UpdateLeadRequest struct {
	Name         *string     `json:"name" validate:"omitempty,max=200"`
	Email        *string     `json:"email" validate:"omitempty,email"`
	Company      *string     `json:"company" validate:"omitempty,max=200"`
	Phone        *string     `json:"phone" validate:"omitempty,max=50"`
	City         *string     `json:"city" validate:"omitempty,max=100"`
	Title        *string     `json:"title" validate:"omitempty,max=100"`
	Message      *string     `json:"message"`
	Status       *LeadStatus `json:"status" validate:"omitempty,oneof=HOT WARM COLD SOLD CALL_BACK"`
	SoldAmount   *float64    `json:"soldAmount" validate:"omitempty,gte=0"`
	CallBackTime *time.Time  `json:"callBackTime"`
	EmployeeID   *uuid.UUID  `json:"employeeId"`
}

// ImportLeadRow is one row of a bulk import. Fields are loosely typed on
// purpose: imports arrive from spreadsheet exports and are cleansed before
// insert rather than rejected wholesale.
type ImportLeadRow struct {
	Name         string      `json:"name"`
	Email        *string     `json:"email"`
	Company      string      `json:"company"`
	Phone        *string     `json:"phone"`
	City         string      `json:"city"`
	Title        *string     `json:"title"`
	Message      *string     `json:"message"`
	Status       string      `json:"status"`
	SoldAmount   interface{} `json:"soldAmount"`
	CallBackTime *string     `json:"callBackTime"`
	EmployeeID   *uuid.UUID  `json:"employeeId"`
}

// ImportResult summarises a bulk import
type ImportResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type CreateEmployeeRequest struct {
	Name         string     `json:"name" validate:"required,max=200"`
	Email        string     `json:"email" validate:"required,email"`
	Role         UserRole   `json:"role" validate:"omitempty,oneof=admin manager employee"`
	DepartmentID *uuid.UUID `json:"departmentId"`
}

type UpdateEmployeeRequest struct {
	Name         *string    `json:"name" validate:"omitempty,max=200"`
	Email        *string    `json:"email" validate:"omitempty,email"`
	Role         *UserRole  `json:"role" validate:"omitempty,oneof=admin manager employee"`
	DepartmentID *uuid.UUID `json:"departmentId"`
}

type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token,omitempty"`
	Role    UserRole `json:"role,omitempty"`
}

type MeResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  UserRole  `json:"role"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}
