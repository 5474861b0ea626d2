// Package stub is an in-memory stand-in for the ERP backend, good enough
// for local development of the console and for integration tests. It speaks
// the same wire contract (routes, field names, error envelopes) but owns no
// real persistence; state dies with the process.
package stub

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hollpacas/erp-console/internal/core/domain"
)

type account struct {
	profile      domain.Profile
	passwordHash []byte
}

// State is the whole backend dataset behind one mutex. Handlers copy data
// on the way out so callers never see live slices.
type State struct {
	mu sync.Mutex

	accounts []account
	lines    []domain.Line
	segments []domain.Segment
	products []domain.Product

	nextLineID    int
	nextSegmentID int
	nextProductID int
}

// NewState seeds the dataset with the bootstrap administrator and a couple
// of demo catalogs so the console has something to show on first run.
func NewState(adminEmail, adminPassword string) (*State, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s := &State{
		accounts: []account{{
			profile: domain.Profile{
				ID:       1,
				Email:    adminEmail,
				FullName: "Administrador",
				Active:   true,
				Roles:    []domain.Role{{ID: 1, Name: domain.RoleAdmin}},
				Branches: []domain.Branch{
					{ID: 1, Code: "C01", Name: "Casa matriz"},
					{ID: 2, Code: "C02", Name: "Sucursal norte"},
				},
			},
			passwordHash: hash,
		}},
		lines: []domain.Line{
			{ID: 1, Code: "L01", Name: "Calzado", Active: true},
			{ID: 2, Code: "L02", Name: "Ropa", Active: true},
		},
		segments: []domain.Segment{
			{ID: 1, Name: "Dama"},
			{ID: 2, Name: "Caballero"},
		},
		nextLineID:    3,
		nextSegmentID: 3,
		nextProductID: 1,
	}
	return s, nil
}

// Authenticate verifies the credentials and returns the matching profile.
func (s *State) Authenticate(email, password string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].profile.Email == email {
			if bcrypt.CompareHashAndPassword(s.accounts[i].passwordHash, []byte(password)) != nil {
				return nil, errWrongPassword
			}
			p := s.accounts[i].profile
			return &p, nil
		}
	}
	return nil, errUserNotFound
}

// ProfileByEmail resolves the profile behind a token subject.
func (s *State) ProfileByEmail(email string) (*domain.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].profile.Email == email && s.accounts[i].profile.Active {
			p := s.accounts[i].profile
			return &p, true
		}
	}
	return nil, false
}

// Catalogs returns copies of both reference lists.
func (s *State) Catalogs() ([]domain.Line, []domain.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Line(nil), s.lines...), append([]domain.Segment(nil), s.segments...)
}

// CreateLine appends a line, rejecting duplicate codes.
func (s *State) CreateLine(code, name string, active bool) (*domain.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Code == code {
			return nil, errLineExists
		}
	}
	line := domain.Line{ID: s.nextLineID, Code: code, Name: name, Active: active}
	s.nextLineID++
	s.lines = append(s.lines, line)
	return &line, nil
}

// DeactivateLine flips the active flag off.
func (s *State) DeactivateLine(id int) (*domain.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Active = false
			line := s.lines[i]
			return &line, nil
		}
	}
	return nil, errLineNotFound
}

// CreateSegment appends a segment, rejecting duplicate names.
func (s *State) CreateSegment(name string) (*domain.Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.segments {
		if strings.EqualFold(s.segments[i].Name, name) {
			return nil, errSegmentExists
		}
	}
	segment := domain.Segment{ID: s.nextSegmentID, Name: name}
	s.nextSegmentID++
	s.segments = append(s.segments, segment)
	return &segment, nil
}

// ListProducts returns a copy of the collection, filtered to active records
// unless includeInactive is set.
func (s *State) ListProducts(includeInactive bool) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if includeInactive || p.Active {
			out = append(out, p)
		}
	}
	return out
}

// CreateProduct appends a product, rejecting duplicate codes, and wires up
// the nested balance and catalog records the way the real backend embeds
// them in responses.
func (s *State) CreateProduct(p domain.Product, stock float64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].Code == p.Code {
			return nil, errProductExists
		}
	}

	now := time.Now().UTC()
	p.ID = s.nextProductID
	s.nextProductID++
	p.CreatedAt = &now
	p.Saldo = &domain.Stock{Quantity: stock}
	s.embedReferences(&p)

	s.products = append(s.products, p)
	out := p
	return &out, nil
}

// UpdateProduct replaces the mutable fields of an existing product. The
// code is left untouched: it is immutable after creation.
func (s *State) UpdateProduct(id int, changes domain.Product, stock float64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		now := time.Now().UTC()
		p := &s.products[i]
		p.Description = changes.Description
		p.LineID = changes.LineID
		p.SegmentID = changes.SegmentID
		p.Brand = changes.Brand
		p.Reference = changes.Reference
		p.SalePrice1 = changes.SalePrice1
		p.SalePrice2 = changes.SalePrice2
		p.SalePrice3 = changes.SalePrice3
		p.Cost = changes.Cost
		p.Active = changes.Active
		p.IsService = changes.IsService
		p.UpdatedAt = &now
		p.Saldo = &domain.Stock{Quantity: stock}
		s.embedReferences(p)
		out := *p
		return &out, nil
	}
	return nil, errProductNotFound
}

// DeactivateProduct soft-deletes a product.
func (s *State) DeactivateProduct(id int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			now := time.Now().UTC()
			s.products[i].Active = false
			s.products[i].UpdatedAt = &now
			out := s.products[i]
			return &out, nil
		}
	}
	return nil, errProductNotFound
}

// embedReferences fills the nested line/segment records from the catalogs.
// Callers hold the mutex.
func (s *State) embedReferences(p *domain.Product) {
	p.Line = nil
	p.Segment = nil
	if p.LineID != nil {
		for i := range s.lines {
			if s.lines[i].ID == *p.LineID {
				line := s.lines[i]
				p.Line = &line
				break
			}
		}
	}
	if p.SegmentID != nil {
		for i := range s.segments {
			if s.segments[i].ID == *p.SegmentID {
				segment := s.segments[i]
				p.Segment = &segment
				break
			}
		}
	}
}
