package domain

import (
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// LeadStatus represents the disposition of a lead
type LeadStatus string

const (
	LeadStatusHot      LeadStatus = "HOT"
	LeadStatusWarm     LeadStatus = "WARM"
	LeadStatusCold     LeadStatus = "COLD"
	LeadStatusSold     LeadStatus = "SOLD"
	LeadStatusCallBack LeadStatus = "CALL_BACK"
)

// AllLeadStatuses lists every status in a stable order. Aggregation relies on
// this to keep all five keys present in every per-day statuses map.
var AllLeadStatuses = []LeadStatus{
	LeadStatusHot,
	LeadStatusCold,
	LeadStatusWarm,
	LeadStatusSold,
	LeadStatusCallBack,
}

// IsValid checks if the LeadStatus is a valid enum value
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusHot, LeadStatusWarm, LeadStatusCold, LeadStatusSold, LeadStatusCallBack:
		return true
	}
	return false
}

// UserRole represents the access level of an account
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

// IsValid checks if the UserRole is a valid enum value
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Department is an organizational grouping of employees
type Department struct {
	BaseModel
	Name      string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Employees []Employee `gorm:"foreignKey:DepartmentID"`
}

// Employee represents a salesperson who owns leads
type Employee struct {
	BaseModel
	Name         string      `gorm:"type:varchar(200);not null;index"`
	Email        string      `gorm:"type:varchar(255);not null;uniqueIndex"`
	Role         UserRole    `gorm:"type:varchar(50);not null;default:'employee'"`
	DepartmentID *uuid.UUID  `gorm:"type:uuid;column:department_id;index"`
	Department   *Department `gorm:"foreignKey:DepartmentID"`
	Leads        []Lead      `gorm:"foreignKey:EmployeeID"`
}

// Lead represents a sales inquiry record.
//
// CreatedAt is authoritative for day-bucketing in the stats aggregation.
// SoldAmount is meaningful only when Status is SOLD.
type Lead struct {
	BaseModel
	Name         string     `gorm:"type:varchar(200);not null"`
	Email        *string    `gorm:"type:varchar(255)"`
	Company      string     `gorm:"type:varchar(200);not null"`
	Phone        *string    `gorm:"type:varchar(50)"`
	City         string     `gorm:"type:varchar(100);not null"`
	Title        *string    `gorm:"type:varchar(100)"`
	Message      *string    `gorm:"type:text"`
	Status       LeadStatus `gorm:"type:varchar(20);not null;default:'COLD';index"`
	SoldAmount   *float64   `gorm:"column:sold_amount"`
	CallBackTime *time.Time `gorm:"column:call_back_time;index"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;column:employee_id;index"`
	Employee     *Employee  `gorm:"foreignKey:EmployeeID"`
}

// User is a login account. The lead tracker scopes dashboards by the role
// carried here; employees are linked to accounts by email.
type User struct {
	BaseModel
	Email        string   `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name         string   `gorm:"type:varchar(200);not null"`
	PasswordHash string   `gorm:"type:varchar(255);not null;column:password_hash"`
	Role         UserRole `gorm:"type:varchar(50);not null;default:'employee';index"`
}
