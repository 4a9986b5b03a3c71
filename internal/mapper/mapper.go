package mapper

import (
	"github.com/brightsales/leadtrack-api/internal/domain"
)

const timeLayout = "2006-01-02T15:04:05Z"

// ToDepartmentDTO converts Department to DepartmentDTO
func ToDepartmentDTO(department *domain.Department) *domain.DepartmentDTO {
	if department == nil {
		return nil
	}
	return &domain.DepartmentDTO{
		ID:   department.ID,
		Name: department.Name,
	}
}

// ToEmployeeDTO converts Employee to EmployeeDTO
func ToEmployeeDTO(employee *domain.Employee) domain.EmployeeDTO {
	return domain.EmployeeDTO{
		ID:           employee.ID,
		Name:         employee.Name,
		Email:        employee.Email,
		Role:         employee.Role,
		DepartmentID: employee.DepartmentID,
		Department:   ToDepartmentDTO(employee.Department),
		CreatedAt:    employee.CreatedAt.UTC().Format(timeLayout),
	}
}

// ToLeadDTO converts Lead to LeadDTO. The department is passed separately:
// the stats aggregation resolves it per lead and substitutes nil when an
// individual lookup failed.
func ToLeadDTO(lead *domain.Lead, department *domain.Department) domain.LeadDTO {
	dto := domain.LeadDTO{
		ID:         lead.ID,
		Name:       lead.Name,
		Email:      lead.Email,
		Company:    lead.Company,
		Phone:      lead.Phone,
		City:       lead.City,
		Title:      lead.Title,
		Message:    lead.Message,
		Status:     lead.Status,
		SoldAmount: lead.SoldAmount,
		EmployeeID: lead.EmployeeID,
		CreatedAt:  lead.CreatedAt.UTC().Format(timeLayout),
	}

	if lead.CallBackTime != nil {
		s := lead.CallBackTime.UTC().Format(timeLayout)
		dto.CallBackTime = &s
	}

	dto.Employee = domain.LeadEmployeeDTO{
		ID:         lead.EmployeeID,
		Department: ToDepartmentDTO(department),
	}
	if lead.Employee != nil {
		dto.Employee.Name = lead.Employee.Name
	}

	return dto
}

// ToLeadDTOPreloaded converts a Lead using its preloaded employee/department
// associations. Used by the CRUD endpoints where the join already happened.
func ToLeadDTOPreloaded(lead *domain.Lead) domain.LeadDTO {
	var department *domain.Department
	if lead.Employee != nil {
		department = lead.Employee.Department
	}
	return ToLeadDTO(lead, department)
}
