package employee

import (
	"github.com/shopspring/decimal"

	"github.com/kayaops/backoffice-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName         string           `json:"full_name"`
	Position         string           `json:"position"`
	BaseSalary       *decimal.Decimal `json:"base_salary,omitempty"`
	EmploymentStatus string           `json:"employment_status,omitempty"`
	HireDate         string           `json:"hire_date"`
	Email            *string          `json:"email,omitempty"`
	PhoneNumber      *string          `json:"phone_number,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "is required"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.EmploymentStatus != "" && !validator.IsInSlice(r.EmploymentStatus, []string{"active", "resigned", "terminated"}) {
		errs = append(errs, validator.ValidationError{Field: "employment_status", Message: "must be 'active', 'resigned' or 'terminated'"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID               string           `json:"-"`
	FullName         *string          `json:"full_name,omitempty"`
	Position         *string          `json:"position,omitempty"`
	BaseSalary       *decimal.Decimal `json:"base_salary,omitempty"`
	EmploymentStatus *string          `json:"employment_status,omitempty"`
	Email            *string          `json:"email,omitempty"`
	PhoneNumber      *string          `json:"phone_number,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.EmploymentStatus != nil && !validator.IsInSlice(*r.EmploymentStatus, []string{"active", "resigned", "terminated"}) {
		errs = append(errs, validator.ValidationError{Field: "employment_status", Message: "must be 'active', 'resigned' or 'terminated'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string           `json:"id"`
	FullName         string           `json:"full_name"`
	Position         string           `json:"position"`
	BaseSalary       *decimal.Decimal `json:"base_salary,omitempty"`
	EmploymentStatus string           `json:"employment_status"`
	HireDate         string           `json:"hire_date"`
	Email            *string          `json:"email,omitempty"`
	PhoneNumber      *string          `json:"phone_number,omitempty"`
}
