package rest

import (
	"time"

	"github.com/hollpacas/erp-console/internal/core/domain"
)

// DTOs mirror the backend's wire shapes. Validate tags encode the minimum
// the frontend relies on; anything the backend may legitimately omit is a
// pointer.

type lineDTO struct {
	ID     int    `json:"id" validate:"required"`
	Code   string `json:"cod_linea" validate:"required"`
	Name   string `json:"linea" validate:"required"`
	Active bool   `json:"activo"`
}

type segmentDTO struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"segmento" validate:"required"`
}

type catalogsDTO struct {
	Lines    []lineDTO    `json:"lineas"`
	Segments []segmentDTO `json:"segmentos"`
}

type stockDTO struct {
	Quantity float64 `json:"existencia"`
}

type productDTO struct {
	ID          int         `json:"id" validate:"required"`
	Code        string      `json:"cod_producto" validate:"required"`
	Description string      `json:"descripcion" validate:"required"`
	LineID      *int        `json:"linea_id"`
	SegmentID   *int        `json:"segmento_id"`
	Brand       *string     `json:"marca"`
	Reference   *string     `json:"referencia_producto"`
	SalePrice1  float64     `json:"precio_venta1"`
	SalePrice2  float64     `json:"precio_venta2"`
	SalePrice3  float64     `json:"precio_venta3"`
	Cost        float64     `json:"costo_producto"`
	Active      bool        `json:"activo"`
	IsService   bool        `json:"servicio_producto"`
	CreatedAt   *time.Time  `json:"registro"`
	UpdatedAt   *time.Time  `json:"ultima_modificacion"`
	Saldo       *stockDTO   `json:"saldo"`
	Line        *lineDTO    `json:"linea"`
	Segment     *segmentDTO `json:"segmento"`
}

type roleDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required"`
}

type branchDTO struct {
	ID   int    `json:"id"`
	Code string `json:"code" validate:"required"`
	Name string `json:"name"`
}

type permissionDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type profileDTO struct {
	ID          int             `json:"id" validate:"required"`
	Email       string          `json:"email" validate:"required,email"`
	FullName    *string         `json:"full_name"`
	Active      bool            `json:"is_active"`
	Roles       []roleDTO       `json:"roles"`
	Branches    []branchDTO     `json:"branches"`
	Permissions []permissionDTO `json:"permissions"`
}

type loginResponse struct {
	AccessToken string `json:"access_token" validate:"required"`
	TokenType   string `json:"token_type"`
}

func (d *lineDTO) toDomain() domain.Line {
	return domain.Line{ID: d.ID, Code: d.Code, Name: d.Name, Active: d.Active}
}

func (d *segmentDTO) toDomain() domain.Segment {
	return domain.Segment{ID: d.ID, Name: d.Name}
}

func (d *catalogsDTO) toDomain() *domain.Catalogs {
	out := &domain.Catalogs{
		Lines:    make([]domain.Line, 0, len(d.Lines)),
		Segments: make([]domain.Segment, 0, len(d.Segments)),
	}
	for i := range d.Lines {
		out.Lines = append(out.Lines, d.Lines[i].toDomain())
	}
	for i := range d.Segments {
		out.Segments = append(out.Segments, d.Segments[i].toDomain())
	}
	return out
}

func (d *productDTO) toDomain() domain.Product {
	p := domain.Product{
		ID:          d.ID,
		Code:        d.Code,
		Description: d.Description,
		LineID:      d.LineID,
		SegmentID:   d.SegmentID,
		Brand:       deref(d.Brand),
		Reference:   deref(d.Reference),
		SalePrice1:  d.SalePrice1,
		SalePrice2:  d.SalePrice2,
		SalePrice3:  d.SalePrice3,
		Cost:        d.Cost,
		Active:      d.Active,
		IsService:   d.IsService,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.Saldo != nil {
		p.Saldo = &domain.Stock{Quantity: d.Saldo.Quantity}
	}
	if d.Line != nil {
		line := d.Line.toDomain()
		p.Line = &line
	}
	if d.Segment != nil {
		segment := d.Segment.toDomain()
		p.Segment = &segment
	}
	return p
}

func (d *profileDTO) toDomain() *domain.Profile {
	p := &domain.Profile{
		ID:       d.ID,
		Email:    d.Email,
		FullName: deref(d.FullName),
		Active:   d.Active,
	}
	for _, r := range d.Roles {
		p.Roles = append(p.Roles, domain.Role{ID: r.ID, Name: r.Name})
	}
	for _, b := range d.Branches {
		p.Branches = append(p.Branches, domain.Branch{ID: b.ID, Code: b.Code, Name: b.Name})
	}
	for _, perm := range d.Permissions {
		p.Permissions = append(p.Permissions, domain.Permission{ID: perm.ID, Name: perm.Name})
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
