package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"asf-backend/internal/logger"
	"asf-backend/internal/metrics"
	"asf-backend/internal/models"
	"asf-backend/internal/numbering"
	"asf-backend/internal/timeutil"
)

type ManpowerStore interface {
	numbering.RecentIDReader
	Create(ctx context.Context, e *models.Employee) error
	Update(ctx context.Context, e *models.Employee) error
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Employee, error)
	Get(ctx context.Context, id int64) (*models.Employee, error)
	List(ctx context.Context, f models.ManpowerFilter) ([]*models.Employee, error)
	Stats(ctx context.Context) (models.ManpowerStats, error)
	Delete(ctx context.Context, id int64) error
}

type ManpowerService struct {
	Repo     ManpowerStore
	Clients  ClientReader
	Pattern  numbering.Pattern
	Attempts int

	now func() time.Time
}

func NewManpowerService(repo ManpowerStore, clients ClientReader, pattern numbering.Pattern, attempts int) *ManpowerService {
	if attempts < 1 {
		attempts = 1
	}
	return &ManpowerService{
		Repo:     repo,
		Clients:  clients,
		Pattern:  pattern,
		Attempts: attempts,
		now:      timeutil.Now,
	}
}

// applyManpowerRequest copies editable fields onto e. employeeId is not
// part of the request and is never touched here.
func (s *ManpowerService) applyManpowerRequest(ctx context.Context, e *models.Employee, req *models.ManpowerRequest) error {
	if req.AssignedClient != nil {
		if _, err := s.Clients.Get(ctx, *req.AssignedClient); err != nil {
			return missing("Assigned client", err)
		}
	}
	if !req.Salary.IsPositive() {
		return invalid("salary must be positive")
	}

	e.FirstName = strings.TrimSpace(req.FirstName)
	e.LastName = strings.TrimSpace(req.LastName)
	e.Email = strings.ToLower(strings.TrimSpace(req.Email))
	e.Phone = strings.TrimSpace(req.Phone)
	e.AlternatePhone = strings.TrimSpace(req.AlternatePhone)
	e.Gender = req.Gender
	e.Address = req.Address
	e.AadharNumber = strings.TrimSpace(req.AadharNumber)
	e.PANNumber = strings.ToUpper(strings.TrimSpace(req.PANNumber))
	e.Designation = req.Designation
	e.Department = strings.TrimSpace(req.Department)
	e.AssignedClient = req.AssignedClient
	e.Salary = req.Salary
	e.BankDetails = req.BankDetails
	e.BankDetails.IFSCCode = strings.ToUpper(strings.TrimSpace(e.BankDetails.IFSCCode))
	e.EmergencyContact = req.EmergencyContact
	e.Notes = req.Notes

	if req.SalaryType != "" {
		e.SalaryType = req.SalaryType
	} else if e.SalaryType == "" {
		e.SalaryType = models.SalaryMonthly
	}
	if req.Status != "" {
		e.Status = req.Status
	} else if e.Status == "" {
		e.Status = models.EmployeeStatusActive
	}

	e.DateOfBirth = nil
	if req.DateOfBirth != "" {
		dob, err := timeutil.ParseDate(req.DateOfBirth)
		if err != nil {
			return invalid("dateOfBirth: %v", err)
		}
		e.DateOfBirth = &dob
	}
	if req.JoiningDate != "" {
		jd, err := timeutil.ParseDate(req.JoiningDate)
		if err != nil {
			return invalid("joiningDate: %v", err)
		}
		e.JoiningDate = jd
	} else if e.JoiningDate.IsZero() {
		e.JoiningDate = s.now()
	}

	e.Documents = make([]models.EmployeeDocument, len(req.Documents))
	for i, doc := range req.Documents {
		if doc.UploadedAt.IsZero() {
			doc.UploadedAt = s.now()
		}
		e.Documents[i] = doc
	}

	if e.FirstName == "" || e.LastName == "" || e.Phone == "" || e.Designation == "" {
		return invalid("firstName, lastName, phone and designation are required")
	}
	return nil
}

// CreateEmployee stores a new employee under the next EMP number,
// re-allocating when a concurrent writer took it first.
func (s *ManpowerService) CreateEmployee(ctx context.Context, req *models.ManpowerRequest, createdBy int64) (*models.Employee, error) {
	e := &models.Employee{CreatedBy: createdBy}
	if err := s.applyManpowerRequest(ctx, e, req); err != nil {
		return nil, err
	}

	var err error
	for attempt := 1; attempt <= s.Attempts; attempt++ {
		e.EmployeeID, err = numbering.Allocate(ctx, s.Repo, s.Pattern)
		if err != nil {
			return nil, err
		}

		err = s.Repo.Create(ctx, e)
		if err == nil {
			break
		}
		if !errors.Is(err, numbering.ErrUniquenessConflict) {
			return nil, clientGone("Assigned client", err)
		}
		metrics.AllocationConflicts.WithLabelValues(s.Pattern.Collection).Inc()
		logger.WithContext(ctx).Warn().
			Str("employee_id", e.EmployeeID).
			Int("attempt", attempt).
			Msg("employee id taken, allocating again")
	}
	if err != nil {
		return nil, err
	}

	metrics.DocumentsCreated.WithLabelValues(s.Pattern.Collection).Inc()
	logger.WithContext(ctx).Info().Str("employee_id", e.EmployeeID).Msg("employee created")
	return e, nil
}

func (s *ManpowerService) UpdateEmployee(ctx context.Context, id int64, req *models.ManpowerRequest) (*models.Employee, error) {
	e, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, missing("Employee", err)
	}
	if err := s.applyManpowerRequest(ctx, e, req); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, missing("Employee", clientGone("Assigned client", err))
	}
	return e, nil
}

// ChangeStatus moves an employee between Active, Inactive, On Leave and
// Terminated. Employees are never removed by a status change.
func (s *ManpowerService) ChangeStatus(ctx context.Context, id int64, status string) (*models.Employee, error) {
	switch status {
	case models.EmployeeStatusActive, models.EmployeeStatusInactive,
		models.EmployeeStatusOnLeave, models.EmployeeStatusTerminated:
	default:
		return nil, invalid("unknown status %q", status)
	}
	e, err := s.Repo.UpdateStatus(ctx, id, status)
	return e, missing("Employee", err)
}

func (s *ManpowerService) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	e, err := s.Repo.Get(ctx, id)
	return e, missing("Employee", err)
}

// ListEmployees returns the filtered employees and whole-table status counts
func (s *ManpowerService) ListEmployees(ctx context.Context, f models.ManpowerFilter) ([]*models.Employee, models.ManpowerStats, error) {
	if f.Status == "all" {
		f.Status = ""
	}
	if f.Designation == "all" {
		f.Designation = ""
	}
	f.Search = strings.TrimSpace(f.Search)

	list, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, models.ManpowerStats{}, err
	}
	stats, err := s.Repo.Stats(ctx)
	if err != nil {
		return nil, models.ManpowerStats{}, err
	}
	return list, stats, nil
}

// DeleteEmployee hard-deletes the record
func (s *ManpowerService) DeleteEmployee(ctx context.Context, id int64) error {
	return missing("Employee", s.Repo.Delete(ctx, id))
}
