package repositories

import (
	"context"
	"fmt"
	"strings"

	"asf-backend/internal/models"
	"asf-backend/internal/numbering"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const manpowerColumns = `id, employee_id, first_name, last_name, email, phone, alternate_phone, date_of_birth,
	gender, address, aadhar_number, pan_number, designation, department, assigned_client, joining_date,
	salary, salary_type, bank_details, emergency_contact, documents, status, notes,
	COALESCE(created_by, 0), created_at, updated_at`

type ManpowerRepository struct {
	DB *pgxpool.Pool
}

func NewManpowerRepository(db *pgxpool.Pool) *ManpowerRepository {
	return &ManpowerRepository{DB: db}
}

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.EmployeeID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.AlternatePhone,
		&e.DateOfBirth, &e.Gender, &e.Address, &e.AadharNumber, &e.PANNumber, &e.Designation, &e.Department,
		&e.AssignedClient, &e.JoiningDate, &e.Salary, &e.SalaryType, &e.BankDetails, &e.EmergencyContact,
		&e.Documents, &e.Status, &e.Notes, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	if e.Documents == nil {
		e.Documents = []models.EmployeeDocument{}
	}
	return &e, nil
}

// RecentExternalIDs lists employee ids, newest record first.
func (r *ManpowerRepository) RecentExternalIDs(ctx context.Context, offset, limit int) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT employee_id FROM manpower
         WHERE employee_id <> ''
         ORDER BY created_at DESC, id DESC
         OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0, limit)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create inserts e. A taken employee id surfaces as *numbering.ConflictError.
func (r *ManpowerRepository) Create(ctx context.Context, e *models.Employee) error {
	var createdBy interface{}
	if e.CreatedBy != 0 {
		createdBy = e.CreatedBy
	}

	err := r.DB.QueryRow(ctx,
		`INSERT INTO manpower(employee_id, first_name, last_name, email, phone, alternate_phone, date_of_birth,
             gender, address, aadhar_number, pan_number, designation, department, assigned_client, joining_date,
             salary, salary_type, bank_details, emergency_contact, documents, status, notes, created_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
         RETURNING id, created_at, updated_at`,
		e.EmployeeID, e.FirstName, e.LastName, e.Email, e.Phone, e.AlternatePhone, e.DateOfBirth,
		e.Gender, e.Address, e.AadharNumber, e.PANNumber, e.Designation, e.Department, e.AssignedClient, e.JoiningDate,
		e.Salary, e.SalaryType, e.BankDetails, e.EmergencyContact, e.Documents, e.Status, e.Notes, createdBy,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	if uniqueViolation(err, "manpower_employee_id_key") {
		return &numbering.ConflictError{Collection: "manpower", Value: e.EmployeeID}
	}
	if foreignKeyViolationOn(err, "manpower_assigned_client_fkey") {
		return ErrMissingClient
	}
	return err
}

// Update rewrites the editable fields. employee_id is never touched.
func (r *ManpowerRepository) Update(ctx context.Context, e *models.Employee) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE manpower SET first_name=$1, last_name=$2, email=$3, phone=$4, alternate_phone=$5, date_of_birth=$6,
             gender=$7, address=$8, aadhar_number=$9, pan_number=$10, designation=$11, department=$12,
             assigned_client=$13, joining_date=$14, salary=$15, salary_type=$16, bank_details=$17,
             emergency_contact=$18, documents=$19, status=$20, notes=$21, updated_at=CURRENT_TIMESTAMP
         WHERE id=$22
         RETURNING employee_id, COALESCE(created_by, 0), created_at, updated_at`,
		e.FirstName, e.LastName, e.Email, e.Phone, e.AlternatePhone, e.DateOfBirth,
		e.Gender, e.Address, e.AadharNumber, e.PANNumber, e.Designation, e.Department,
		e.AssignedClient, e.JoiningDate, e.Salary, e.SalaryType, e.BankDetails,
		e.EmergencyContact, e.Documents, e.Status, e.Notes, e.ID,
	).Scan(&e.EmployeeID, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if foreignKeyViolationOn(err, "manpower_assigned_client_fkey") {
		return ErrMissingClient
	}
	return notFound(err)
}

func (r *ManpowerRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Employee, error) {
	return scanEmployee(r.DB.QueryRow(ctx,
		`UPDATE manpower SET status=$1, updated_at=CURRENT_TIMESTAMP
         WHERE id=$2
         RETURNING `+manpowerColumns,
		status, id))
}

func (r *ManpowerRepository) Get(ctx context.Context, id int64) (*models.Employee, error) {
	return scanEmployee(r.DB.QueryRow(ctx, `SELECT `+manpowerColumns+` FROM manpower WHERE id=$1`, id))
}

// List returns matching employees, newest first
func (r *ManpowerRepository) List(ctx context.Context, f models.ManpowerFilter) ([]*models.Employee, error) {
	var conds []string
	var args []interface{}

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Designation != "" {
		args = append(args, f.Designation)
		conds = append(conds, fmt.Sprintf("designation = $%d", len(args)))
	}
	if f.ClientID != nil {
		args = append(args, *f.ClientID)
		conds = append(conds, fmt.Sprintf("assigned_client = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR employee_id ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)",
			n, n, n, n, n))
	}

	query := `SELECT ` + manpowerColumns + ` FROM manpower`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []*models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Stats counts employees per status across the whole table
func (r *ManpowerRepository) Stats(ctx context.Context) (models.ManpowerStats, error) {
	var s models.ManpowerStats
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*),
                COUNT(*) FILTER (WHERE status = 'Active'),
                COUNT(*) FILTER (WHERE status = 'Inactive'),
                COUNT(*) FILTER (WHERE status = 'On Leave'),
                COUNT(*) FILTER (WHERE status = 'Terminated')
         FROM manpower`,
	).Scan(&s.Total, &s.Active, &s.Inactive, &s.OnLeave, &s.Terminated)
	return s, err
}

func (r *ManpowerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM manpower WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
