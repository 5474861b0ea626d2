package ports

import (
	"context"

	"github.com/hollpacas/erp-console/internal/core/domain"
)

// ProductInput carries the full create payload. RegisteredBy and Machine
// record who captured the product and from where.
type ProductInput struct {
	Code         string
	Description  string
	LineID       *int
	SegmentID    *int
	Brand        string
	Reference    string
	SalePrice1   float64
	SalePrice2   float64
	SalePrice3   float64
	Cost         float64
	Stock        float64
	Active       bool
	IsService    bool
	RegisteredBy string
	Machine      string
}

// ProductChanges carries the update payload. The immutable product code is
// deliberately absent.
type ProductChanges struct {
	Description string
	LineID      *int
	SegmentID   *int
	Brand       string
	Reference   string
	SalePrice1  float64
	SalePrice2  float64
	SalePrice3  float64
	Cost        float64
	Stock       float64
	Active      bool
	IsService   bool
}

// LineInput carries the line catalog create payload.
type LineInput struct {
	Code   string
	Name   string
	Active bool
}

// InventoryGateway is the remote inventory API as seen by the frontend.
// All calls require a valid session token on the wire.
type InventoryGateway interface {
	Catalogs(ctx context.Context) (*domain.Catalogs, error)
	ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int, changes ProductChanges) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateLine(ctx context.Context, input LineInput) (*domain.Line, error)
	DeactivateLine(ctx context.Context, id int) (*domain.Line, error)
	CreateSegment(ctx context.Context, name string) (*domain.Segment, error)
}
