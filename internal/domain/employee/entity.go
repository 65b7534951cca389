package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	FullName         string
	Position         string
	BaseSalary       *decimal.Decimal
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	Email            *string
	PhoneNumber      *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
