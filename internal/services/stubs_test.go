package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"asf-backend/internal/models"
	"asf-backend/internal/numbering"
	"asf-backend/internal/repositories"
)

// fixedNow is 10 Apr 2025, 15:30 IST
var fixedNow = time.Date(2025, 4, 10, 10, 0, 0, 0, time.UTC)

type memClients struct {
	mu   sync.Mutex
	rows map[int64]*models.Client
	next int64
}

func newMemClients(clients ...*models.Client) *memClients {
	m := &memClients{rows: map[int64]*models.Client{}}
	for _, c := range clients {
		_ = m.Create(context.Background(), c)
	}
	return m
}

func (m *memClients) Create(_ context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	c.ID = m.next
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memClients) Get(_ context.Context, id int64) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memClients) List(_ context.Context, f models.ClientFilter) ([]*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Client
	for _, c := range m.rows {
		if f.Search != "" && !strings.Contains(strings.ToLower(c.CompanyName), strings.ToLower(f.Search)) {
			continue
		}
		if f.IsActive != nil && c.IsActive != *f.IsActive {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memClients) Update(_ context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[c.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memClients) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// memInvoices keeps rows in insertion order and enforces unique numbers.
type memInvoices struct {
	rows []*models.Invoice
	// beforeCreate runs inside Create before the uniqueness check, standing
	// in for a concurrent writer.
	beforeCreate func(inv *models.Invoice)
	// writeErr, when set, fails Create and Update the way the database does.
	writeErr       error
	createCalls    int
	summariesCalls int
}

func (m *memInvoices) RecentExternalIDs(_ context.Context, offset, limit int) ([]string, error) {
	var ids []string
	for i := len(m.rows) - 1 - offset; i >= 0 && len(ids) < limit; i-- {
		if m.rows[i].InvoiceNumber != "" {
			ids = append(ids, m.rows[i].InvoiceNumber)
		}
	}
	return ids, nil
}

func (m *memInvoices) Create(_ context.Context, inv *models.Invoice) error {
	m.createCalls++
	if m.writeErr != nil {
		return m.writeErr
	}
	if m.beforeCreate != nil {
		m.beforeCreate(inv)
	}
	for _, r := range m.rows {
		if r.InvoiceNumber == inv.InvoiceNumber {
			return &numbering.ConflictError{Collection: "invoices", Value: inv.InvoiceNumber}
		}
	}
	inv.ID = int64(len(m.rows) + 1)
	cp := *inv
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memInvoices) find(id int64) (int, bool) {
	for i, r := range m.rows {
		if r.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (m *memInvoices) Update(_ context.Context, inv *models.Invoice) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	i, ok := m.find(inv.ID)
	if !ok {
		return repositories.ErrNotFound
	}
	inv.InvoiceNumber = m.rows[i].InvoiceNumber
	cp := *inv
	m.rows[i] = &cp
	return nil
}

func (m *memInvoices) Get(_ context.Context, id int64) (*models.Invoice, error) {
	i, ok := m.find(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *m.rows[i]
	return &cp, nil
}

func (m *memInvoices) GetByNumber(_ context.Context, number string) (*models.Invoice, error) {
	for _, r := range m.rows {
		if r.InvoiceNumber == number {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memInvoices) List(_ context.Context, f models.InvoiceFilter) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, r := range m.rows {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memInvoices) Summaries(_ context.Context) ([]models.InvoiceSummary, error) {
	m.summariesCalls++
	var out []models.InvoiceSummary
	for _, r := range m.rows {
		out = append(out, models.InvoiceSummary{Status: r.Status, DueDate: r.DueDate, Total: r.Total})
	}
	return out, nil
}

func (m *memInvoices) Delete(_ context.Context, id int64) error {
	i, ok := m.find(id)
	if !ok {
		return repositories.ErrNotFound
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return nil
}

type memCache struct {
	data        []byte
	invalidated int
}

func (c *memCache) GetInvoiceStats(context.Context) ([]byte, bool) {
	return c.data, c.data != nil
}

func (c *memCache) SetInvoiceStats(_ context.Context, data []byte) { c.data = data }

func (c *memCache) InvalidateInvoiceStats(context.Context) {
	c.data = nil
	c.invalidated++
}

type memManpower struct {
	rows         []*models.Employee
	beforeCreate func(e *models.Employee)
	writeErr     error
}

func (m *memManpower) RecentExternalIDs(_ context.Context, offset, limit int) ([]string, error) {
	var ids []string
	for i := len(m.rows) - 1 - offset; i >= 0 && len(ids) < limit; i-- {
		ids = append(ids, m.rows[i].EmployeeID)
	}
	return ids, nil
}

func (m *memManpower) Create(_ context.Context, e *models.Employee) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if m.beforeCreate != nil {
		m.beforeCreate(e)
	}
	for _, r := range m.rows {
		if r.EmployeeID == e.EmployeeID {
			return &numbering.ConflictError{Collection: "manpower", Value: e.EmployeeID}
		}
	}
	e.ID = int64(len(m.rows) + 1)
	cp := *e
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memManpower) find(id int64) (int, bool) {
	for i, r := range m.rows {
		if r.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (m *memManpower) Update(_ context.Context, e *models.Employee) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	i, ok := m.find(e.ID)
	if !ok {
		return repositories.ErrNotFound
	}
	e.EmployeeID = m.rows[i].EmployeeID
	cp := *e
	m.rows[i] = &cp
	return nil
}

func (m *memManpower) UpdateStatus(_ context.Context, id int64, status string) (*models.Employee, error) {
	i, ok := m.find(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	m.rows[i].Status = status
	cp := *m.rows[i]
	return &cp, nil
}

func (m *memManpower) Get(_ context.Context, id int64) (*models.Employee, error) {
	i, ok := m.find(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *m.rows[i]
	return &cp, nil
}

func (m *memManpower) List(_ context.Context, f models.ManpowerFilter) ([]*models.Employee, error) {
	var out []*models.Employee
	for _, r := range m.rows {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Designation != "" && r.Designation != f.Designation {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memManpower) Stats(_ context.Context) (models.ManpowerStats, error) {
	var s models.ManpowerStats
	for _, r := range m.rows {
		s.Total++
		switch r.Status {
		case models.EmployeeStatusActive:
			s.Active++
		case models.EmployeeStatusInactive:
			s.Inactive++
		case models.EmployeeStatusOnLeave:
			s.OnLeave++
		case models.EmployeeStatusTerminated:
			s.Terminated++
		}
	}
	return s, nil
}

func (m *memManpower) Delete(_ context.Context, id int64) error {
	i, ok := m.find(id)
	if !ok {
		return repositories.ErrNotFound
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return nil
}

type memUsers struct {
	rows []*models.User
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	for _, r := range m.rows {
		if r.Email == u.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	u.ID = int64(len(m.rows) + 1)
	cp := *u
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memUsers) Get(_ context.Context, id int64) (*models.User, error) {
	for _, r := range m.rows {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, r := range m.rows {
		if r.Email == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) List(context.Context) ([]*models.User, error) {
	return m.rows, nil
}

func (m *memUsers) UpdateRole(_ context.Context, id int64, role string) (*models.User, error) {
	for _, r := range m.rows {
		if r.ID == id {
			r.Role = role
			cp := *r
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type memCompany struct {
	row   *models.Company
	saves int
}

func (m *memCompany) Get(context.Context) (*models.Company, error) {
	if m.row == nil {
		return nil, repositories.ErrNotFound
	}
	cp := *m.row
	return &cp, nil
}

func (m *memCompany) Save(_ context.Context, c *models.Company) error {
	m.saves++
	if c.ID == 0 {
		c.ID = 1
	}
	cp := *c
	m.row = &cp
	return nil
}
