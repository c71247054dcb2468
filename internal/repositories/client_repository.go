package repositories

import (
	"context"
	"fmt"
	"strings"

	"asf-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `id, company_name, contact_person, email, phone, address, gstin, pan, notes, is_active, created_at, updated_at`

type ClientRepository struct {
	DB *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{DB: db}
}

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.CompanyName, &c.ContactPerson, &c.Email, &c.Phone, &c.Address,
		&c.GSTIN, &c.PAN, &c.Notes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO clients(company_name, contact_person, email, phone, address, gstin, pan, notes, is_active)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at, updated_at`,
		c.CompanyName, c.ContactPerson, c.Email, c.Phone, c.Address, c.GSTIN, c.PAN, c.Notes, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClientRepository) Get(ctx context.Context, id int64) (*models.Client, error) {
	return scanClient(r.DB.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=$1`, id))
}

// List returns clients ordered by company name
func (r *ClientRepository) List(ctx context.Context, f models.ClientFilter) ([]*models.Client, error) {
	var conds []string
	var args []interface{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(company_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}

	query := `SELECT ` + clientColumns + ` FROM clients`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY company_name ASC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []*models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE clients SET company_name=$1, contact_person=$2, email=$3, phone=$4, address=$5,
             gstin=$6, pan=$7, notes=$8, is_active=$9, updated_at=CURRENT_TIMESTAMP
         WHERE id=$10
         RETURNING created_at, updated_at`,
		c.CompanyName, c.ContactPerson, c.Email, c.Phone, c.Address, c.GSTIN, c.PAN, c.Notes, c.IsActive, c.ID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return notFound(err)
}

// Delete removes a client. Clients that still have invoices cannot be removed.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if foreignKeyViolation(err) {
		return ErrReferenced
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
