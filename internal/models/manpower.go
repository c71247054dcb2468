package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EmployeeStatusActive     = "Active"
	EmployeeStatusInactive   = "Inactive"
	EmployeeStatusOnLeave    = "On Leave"
	EmployeeStatusTerminated = "Terminated"

	SalaryMonthly = "Monthly"
	SalaryDaily   = "Daily"
	SalaryHourly  = "Hourly"
)

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// EmployeeDocument references an uploaded file. Only the URL is stored.
type EmployeeDocument struct {
	Type       string    `json:"type" validate:"omitempty,oneof=Aadhar PAN Photo Resume Certificate Other"`
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Employee is a contract worker. EmployeeID is issued once at creation and
// never changes afterwards.
type Employee struct {
	ID               int64              `json:"id"`
	EmployeeID       string             `json:"employeeId"`
	FirstName        string             `json:"firstName"`
	LastName         string             `json:"lastName"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	AlternatePhone   string             `json:"alternatePhone"`
	DateOfBirth      *time.Time         `json:"dateOfBirth,omitempty"`
	Gender           string             `json:"gender"`
	Address          Address            `json:"address"`
	AadharNumber     string             `json:"aadharNumber"`
	PANNumber        string             `json:"panNumber"`
	Designation      string             `json:"designation"`
	Department       string             `json:"department"`
	AssignedClient   *int64             `json:"assignedClient,omitempty"`
	JoiningDate      time.Time          `json:"joiningDate"`
	Salary           decimal.Decimal    `json:"salary"`
	SalaryType       string             `json:"salaryType"`
	BankDetails      BankDetails        `json:"bankDetails"`
	EmergencyContact EmergencyContact   `json:"emergencyContact"`
	Documents        []EmployeeDocument `json:"documents"`
	Status           string             `json:"status"`
	Notes            string             `json:"notes"`
	CreatedBy        int64              `json:"createdBy"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// ManpowerRequest creates or replaces an employee. Any employeeId in the
// body is ignored.
type ManpowerRequest struct {
	FirstName        string             `json:"firstName" validate:"required"`
	LastName         string             `json:"lastName" validate:"required"`
	Email            string             `json:"email" validate:"omitempty,email"`
	Phone            string             `json:"phone" validate:"required"`
	AlternatePhone   string             `json:"alternatePhone"`
	DateOfBirth      string             `json:"dateOfBirth"`
	Gender           string             `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address          Address            `json:"address"`
	AadharNumber     string             `json:"aadharNumber"`
	PANNumber        string             `json:"panNumber"`
	Designation      string             `json:"designation" validate:"required,oneof=Housekeeper 'Security Guard' Supervisor Technician Driver Cook Gardener Other"`
	Department       string             `json:"department"`
	AssignedClient   *int64             `json:"assignedClient"`
	JoiningDate      string             `json:"joiningDate"`
	Salary           decimal.Decimal    `json:"salary" validate:"gt=0"`
	SalaryType       string             `json:"salaryType" validate:"omitempty,oneof=Monthly Daily Hourly"`
	BankDetails      BankDetails        `json:"bankDetails"`
	EmergencyContact EmergencyContact   `json:"emergencyContact"`
	Documents        []EmployeeDocument `json:"documents" validate:"dive"`
	Status           string             `json:"status" validate:"omitempty,oneof=Active Inactive 'On Leave' Terminated"`
	Notes            string             `json:"notes"`
}

// StatusRequest moves an employee between lifecycle states
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Active Inactive 'On Leave' Terminated"`
}

type ManpowerFilter struct {
	Status      string
	Designation string
	ClientID    *int64
	Search      string
}

type ManpowerStats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Inactive   int `json:"inactive"`
	OnLeave    int `json:"onLeave"`
	Terminated int `json:"terminated"`
}
