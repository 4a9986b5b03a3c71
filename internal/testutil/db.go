// Package testutil provides shared helpers for package-level tests. Tests run
// against an isolated in-memory SQLite database so no external services are
// needed.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// The schema mirrors the Postgres migrations in SQLite dialect. Tables are
// created per test database, so tests never share state.
var schema = []string{
	`CREATE TABLE departments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'employee',
		department_id TEXT REFERENCES departments(id),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'employee',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE leads (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		company TEXT NOT NULL,
		phone TEXT,
		city TEXT NOT NULL,
		title TEXT,
		message TEXT,
		status TEXT NOT NULL DEFAULT 'COLD',
		sold_amount REAL,
		call_back_time DATETIME,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// SetupTestDB opens a fresh in-memory database and creates the schema
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One named memory database per test; a single connection keeps the
	// shared cache alive for the test's lifetime.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, ddl := range schema {
		require.NoError(t, db.Exec(ddl).Error)
	}

	return db
}

// CreateTestDepartment inserts a department and returns it
func CreateTestDepartment(t *testing.T, db *gorm.DB, name string) *domain.Department {
	t.Helper()
	department := &domain.Department{Name: name}
	department.ID = uuid.New()
	require.NoError(t, db.Omit(clause.Associations).Create(department).Error)
	return department
}

// CreateTestEmployee inserts an employee, optionally assigned to a department
func CreateTestEmployee(t *testing.T, db *gorm.DB, name, email string, departmentID *uuid.UUID) *domain.Employee {
	t.Helper()
	employee := &domain.Employee{
		Name:         name,
		Email:        email,
		Role:         domain.RoleEmployee,
		DepartmentID: departmentID,
	}
	employee.ID = uuid.New()
	require.NoError(t, db.Omit(clause.Associations).Create(employee).Error)
	return employee
}

// CreateTestLead inserts a lead with a controlled creation time. CreatedAt
// drives day-bucketing, so tests set it explicitly.
func CreateTestLead(t *testing.T, db *gorm.DB, employeeID uuid.UUID, status domain.LeadStatus, createdAt time.Time) *domain.Lead {
	t.Helper()
	lead := &domain.Lead{
		Name:       "Test Lead",
		Company:    "Test Company",
		City:       "Oslo",
		Status:     status,
		EmployeeID: employeeID,
	}
	lead.ID = uuid.New()
	lead.CreatedAt = createdAt
	lead.UpdatedAt = createdAt
	require.NoError(t, db.Omit(clause.Associations).Create(lead).Error)
	return lead
}

// CreateTestUser inserts a login account with the given bcrypt hash
func CreateTestUser(t *testing.T, db *gorm.DB, email, passwordHash string, role domain.UserRole) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: passwordHash,
		Role:         role,
	}
	user.ID = uuid.New()
	require.NoError(t, db.Omit(clause.Associations).Create(user).Error)
	return user
}
