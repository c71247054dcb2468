package repositories

import (
	"context"

	"asf-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CompanyRepository stores the single company_settings row
type CompanyRepository struct {
	DB *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) Get(ctx context.Context) (*models.Company, error) {
	var c models.Company
	err := r.DB.QueryRow(ctx,
		`SELECT id, company_name, address, contact, gstin, cin_no, bank_details, payment_terms, logo, created_at, updated_at
         FROM company_settings ORDER BY id LIMIT 1`,
	).Scan(&c.ID, &c.CompanyName, &c.Address, &c.Contact, &c.GSTIN, &c.CINNo,
		&c.BankDetails, &c.PaymentTerms, &c.Logo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// Save inserts the settings row when c.ID is zero and updates it otherwise
func (r *CompanyRepository) Save(ctx context.Context, c *models.Company) error {
	if c.ID == 0 {
		return r.DB.QueryRow(ctx,
			`INSERT INTO company_settings(company_name, address, contact, gstin, cin_no, bank_details, payment_terms, logo)
             VALUES($1, $2, $3, $4, $5, $6, $7, $8)
             RETURNING id, created_at, updated_at`,
			c.CompanyName, c.Address, c.Contact, c.GSTIN, c.CINNo, c.BankDetails, c.PaymentTerms, c.Logo,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	}

	err := r.DB.QueryRow(ctx,
		`UPDATE company_settings SET company_name=$1, address=$2, contact=$3, gstin=$4, cin_no=$5,
             bank_details=$6, payment_terms=$7, logo=$8, updated_at=CURRENT_TIMESTAMP
         WHERE id=$9
         RETURNING created_at, updated_at`,
		c.CompanyName, c.Address, c.Contact, c.GSTIN, c.CINNo, c.BankDetails, c.PaymentTerms, c.Logo, c.ID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return notFound(err)
}
