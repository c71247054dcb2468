package services

import (
	"context"
	"errors"
	"strings"

	"asf-backend/internal/models"
)

type CompanyStore interface {
	Get(ctx context.Context) (*models.Company, error)
	Save(ctx context.Context, c *models.Company) error
}

type CompanyService struct {
	Repo CompanyStore
}

func NewCompanyService(repo CompanyStore) *CompanyService {
	return &CompanyService{Repo: repo}
}

func defaultCompany() *models.Company {
	return &models.Company{
		CompanyName:  "Your Company Name",
		PaymentTerms: models.DefaultPaymentTerms,
	}
}

// GetSettings returns the company settings, storing defaults on first use
func (s *CompanyService) GetSettings(ctx context.Context) (*models.Company, error) {
	c, err := s.Repo.Get(ctx)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	c = defaultCompany()
	if err := s.Repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateSettings replaces the settings, creating the row if needed
func (s *CompanyService) UpdateSettings(ctx context.Context, req *models.CompanyRequest) (*models.Company, error) {
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, invalid("companyName is required")
	}

	c, err := s.Repo.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		c = &models.Company{}
	} else if err != nil {
		return nil, err
	}

	c.CompanyName = strings.TrimSpace(req.CompanyName)
	c.Address = req.Address
	c.Contact = req.Contact
	c.GSTIN = strings.ToUpper(strings.TrimSpace(req.GSTIN))
	c.CINNo = strings.ToUpper(strings.TrimSpace(req.CINNo))
	c.BankDetails = req.BankDetails
	c.BankDetails.IFSCCode = strings.ToUpper(c.BankDetails.IFSCCode)
	c.PaymentTerms = req.PaymentTerms
	if c.PaymentTerms == "" {
		c.PaymentTerms = models.DefaultPaymentTerms
	}
	c.Logo = req.Logo

	if err := s.Repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
