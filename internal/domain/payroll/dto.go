package payroll

import (
	"github.com/kayaops/backoffice-backend-go/internal/pkg/validator"
)

type GeneratePayrollRequest struct {
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
	IssueDate   string   `json:"issue_date,omitempty"`
	EmployeeIDs []string `json:"employee_ids"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}
	if r.IssueDate != "" {
		if _, ok := validator.IsValidDate(r.IssueDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "issue_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GeneratePayrollResponse struct {
	Generated  int      `json:"generated"`
	PayslipIDs []string `json:"payslip_ids"`
	Skipped    []string `json:"skipped,omitempty"` // employee ids without base salary
}
