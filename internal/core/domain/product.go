package domain

import (
	"strings"
	"time"
)

// Stock is the quantity-on-hand record nested in a product response.
type Stock struct {
	Quantity float64 `json:"existencia"`
}

// Product is a record from the product master. Field names follow the wire
// contract of the ERP backend. Code is immutable once created; update
// payloads never carry it.
type Product struct {
	ID          int        `json:"id"`
	Code        string     `json:"cod_producto"`
	Description string     `json:"descripcion"`
	LineID      *int       `json:"linea_id"`
	SegmentID   *int       `json:"segmento_id"`
	Brand       string     `json:"marca"`
	Reference   string     `json:"referencia_producto"`
	SalePrice1  float64    `json:"precio_venta1"`
	SalePrice2  float64    `json:"precio_venta2"`
	SalePrice3  float64    `json:"precio_venta3"`
	Cost        float64    `json:"costo_producto"`
	Active      bool       `json:"activo"`
	IsService   bool       `json:"servicio_producto"`
	CreatedAt   *time.Time `json:"registro"`
	UpdatedAt   *time.Time `json:"ultima_modificacion"`
	Saldo       *Stock     `json:"saldo"`
	Line        *Line      `json:"linea"`
	Segment     *Segment   `json:"segmento"`
}

// StockQuantity returns the quantity on hand, zero when the balance record
// is missing.
func (p *Product) StockQuantity() float64 {
	if p.Saldo == nil {
		return 0
	}
	return p.Saldo.Quantity
}

// LineName returns the embedded line name, empty when unset.
func (p *Product) LineName() string {
	if p.Line == nil {
		return ""
	}
	return p.Line.Name
}

// SegmentName returns the embedded segment name, empty when unset.
func (p *Product) SegmentName() string {
	if p.Segment == nil {
		return ""
	}
	return p.Segment.Name
}

// FilterProducts returns the products matching query. An empty query returns
// the input untouched. Matching is a case-insensitive substring test across
// code, description, brand, line name and segment name; it never touches the
// backend.
func FilterProducts(products []Product, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if containsFold(p.Code, q) ||
			containsFold(p.Description, q) ||
			containsFold(p.Brand, q) ||
			containsFold(p.LineName(), q) ||
			containsFold(p.SegmentName(), q) {
			matched = append(matched, p)
		}
	}
	return matched
}

func containsFold(s, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(s), loweredQuery)
}
