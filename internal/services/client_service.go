package services

import (
	"context"
	"strings"

	"asf-backend/internal/models"
)

type ClientStore interface {
	Create(ctx context.Context, c *models.Client) error
	Get(ctx context.Context, id int64) (*models.Client, error)
	List(ctx context.Context, f models.ClientFilter) ([]*models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id int64) error
}

type ClientService struct {
	Repo ClientStore
}

func NewClientService(repo ClientStore) *ClientService {
	return &ClientService{Repo: repo}
}

// applyClientRequest normalizes the request onto c the way clients are stored:
// trimmed, email lowercased, tax ids uppercased.
func applyClientRequest(c *models.Client, req *models.ClientRequest) error {
	c.CompanyName = strings.TrimSpace(req.CompanyName)
	c.ContactPerson = strings.TrimSpace(req.ContactPerson)
	c.Email = strings.ToLower(strings.TrimSpace(req.Email))
	c.Phone = strings.TrimSpace(req.Phone)
	c.Address = req.Address
	c.GSTIN = strings.ToUpper(strings.TrimSpace(req.GSTIN))
	c.PAN = strings.ToUpper(strings.TrimSpace(req.PAN))
	c.Notes = req.Notes
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if c.CompanyName == "" || c.Email == "" || c.Phone == "" {
		return invalid("companyName, email and phone are required")
	}
	return nil
}

func (s *ClientService) CreateClient(ctx context.Context, req *models.ClientRequest) (*models.Client, error) {
	c := &models.Client{IsActive: true}
	if err := applyClientRequest(c, req); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	c, err := s.Repo.Get(ctx, id)
	return c, missing("Client", err)
}

func (s *ClientService) ListClients(ctx context.Context, f models.ClientFilter) ([]*models.Client, error) {
	f.Search = strings.TrimSpace(f.Search)
	return s.Repo.List(ctx, f)
}

func (s *ClientService) UpdateClient(ctx context.Context, id int64, req *models.ClientRequest) (*models.Client, error) {
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, missing("Client", err)
	}
	if err := applyClientRequest(c, req); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, missing("Client", err)
	}
	return c, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id int64) error {
	return missing("Client", s.Repo.Delete(ctx, id))
}
