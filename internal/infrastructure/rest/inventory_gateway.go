package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hollpacas/erp-console/internal/core/domain"
	"github.com/hollpacas/erp-console/internal/core/ports"
)

// InventoryGateway implements ports.InventoryGateway over the backend's
// inventory routes. Every call is authenticated.
type InventoryGateway struct {
	client *Client
}

func NewInventoryGateway(client *Client) *InventoryGateway {
	return &InventoryGateway{client: client}
}

type productCreateRequest struct {
	Code         string  `json:"cod_producto"`
	Description  string  `json:"descripcion"`
	LineID       *int    `json:"linea_id,omitempty"`
	SegmentID    *int    `json:"segmento_id,omitempty"`
	Brand        string  `json:"marca,omitempty"`
	Reference    string  `json:"referencia_producto,omitempty"`
	SalePrice1   float64 `json:"precio_venta1"`
	SalePrice2   float64 `json:"precio_venta2"`
	SalePrice3   float64 `json:"precio_venta3"`
	Cost         float64 `json:"costo_producto"`
	Stock        float64 `json:"existencia"`
	Active       bool    `json:"activo"`
	IsService    bool    `json:"servicio_producto"`
	RegisteredBy string  `json:"usuario_registro,omitempty"`
	Machine      string  `json:"maquina_registro,omitempty"`
}

// productUpdateRequest deliberately has no product code field: the code is
// immutable after creation and the backend would reject it anyway.
type productUpdateRequest struct {
	Description string  `json:"descripcion"`
	LineID      *int    `json:"linea_id"`
	SegmentID   *int    `json:"segmento_id"`
	Brand       string  `json:"marca"`
	Reference   string  `json:"referencia_producto"`
	SalePrice1  float64 `json:"precio_venta1"`
	SalePrice2  float64 `json:"precio_venta2"`
	SalePrice3  float64 `json:"precio_venta3"`
	Cost        float64 `json:"costo_producto"`
	Stock       float64 `json:"existencia"`
	Active      bool    `json:"activo"`
	IsService   bool    `json:"servicio_producto"`
}

type lineCreateRequest struct {
	Code   string `json:"cod_linea"`
	Name   string `json:"linea"`
	Active bool   `json:"activo"`
}

type segmentCreateRequest struct {
	Name string `json:"segmento"`
}

func (g *InventoryGateway) Catalogs(ctx context.Context) (*domain.Catalogs, error) {
	var resp catalogsDTO
	if err := g.client.doJSON(ctx, http.MethodGet, "/inventory/catalogs", nil, &resp, true); err != nil {
		return nil, mapAuthedError(err)
	}
	if err := checkSlice(g.client, resp.Lines); err != nil {
		return nil, err
	}
	if err := checkSlice(g.client, resp.Segments); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

func (g *InventoryGateway) ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	path := "/inventory/products"
	if includeInactive {
		path += "?include_inactive=true"
	}

	var resp []productDTO
	if err := g.client.doJSON(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return nil, mapAuthedError(err)
	}
	if err := checkSlice(g.client, resp); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(resp))
	for i := range resp {
		products = append(products, resp[i].toDomain())
	}
	return products, nil
}

func (g *InventoryGateway) CreateProduct(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	body := productCreateRequest{
		Code:         input.Code,
		Description:  input.Description,
		LineID:       input.LineID,
		SegmentID:    input.SegmentID,
		Brand:        input.Brand,
		Reference:    input.Reference,
		SalePrice1:   input.SalePrice1,
		SalePrice2:   input.SalePrice2,
		SalePrice3:   input.SalePrice3,
		Cost:         input.Cost,
		Stock:        input.Stock,
		Active:       input.Active,
		IsService:    input.IsService,
		RegisteredBy: input.RegisteredBy,
		Machine:      input.Machine,
	}
	return g.productCall(ctx, http.MethodPost, "/inventory/products", body)
}

func (g *InventoryGateway) UpdateProduct(ctx context.Context, id int, changes ports.ProductChanges) (*domain.Product, error) {
	body := productUpdateRequest{
		Description: changes.Description,
		LineID:      changes.LineID,
		SegmentID:   changes.SegmentID,
		Brand:       changes.Brand,
		Reference:   changes.Reference,
		SalePrice1:  changes.SalePrice1,
		SalePrice2:  changes.SalePrice2,
		SalePrice3:  changes.SalePrice3,
		Cost:        changes.Cost,
		Stock:       changes.Stock,
		Active:      changes.Active,
		IsService:   changes.IsService,
	}
	return g.productCall(ctx, http.MethodPut, fmt.Sprintf("/inventory/products/%d", id), body)
}

func (g *InventoryGateway) DeactivateProduct(ctx context.Context, id int) (*domain.Product, error) {
	return g.productCall(ctx, http.MethodPatch, fmt.Sprintf("/inventory/products/%d/deactivate", id), nil)
}

func (g *InventoryGateway) productCall(ctx context.Context, method, path string, body any) (*domain.Product, error) {
	var resp productDTO
	if err := g.client.doJSON(ctx, method, path, body, &resp, true); err != nil {
		return nil, mapMutationError(err)
	}
	if err := g.client.check(&resp); err != nil {
		return nil, err
	}
	product := resp.toDomain()
	return &product, nil
}

func (g *InventoryGateway) CreateLine(ctx context.Context, input ports.LineInput) (*domain.Line, error) {
	var resp lineDTO
	body := lineCreateRequest{Code: input.Code, Name: input.Name, Active: input.Active}
	if err := g.client.doJSON(ctx, http.MethodPost, "/inventory/lineas", body, &resp, true); err != nil {
		return nil, mapMutationError(err)
	}
	if err := g.client.check(&resp); err != nil {
		return nil, err
	}
	line := resp.toDomain()
	return &line, nil
}

func (g *InventoryGateway) DeactivateLine(ctx context.Context, id int) (*domain.Line, error) {
	var resp lineDTO
	path := fmt.Sprintf("/inventory/lineas/%d/deactivate", id)
	if err := g.client.doJSON(ctx, http.MethodPatch, path, nil, &resp, true); err != nil {
		return nil, mapMutationError(err)
	}
	if err := g.client.check(&resp); err != nil {
		return nil, err
	}
	line := resp.toDomain()
	return &line, nil
}

func (g *InventoryGateway) CreateSegment(ctx context.Context, name string) (*domain.Segment, error) {
	var resp segmentDTO
	if err := g.client.doJSON(ctx, http.MethodPost, "/inventory/segmentos", segmentCreateRequest{Name: name}, &resp, true); err != nil {
		return nil, mapMutationError(err)
	}
	if err := g.client.check(&resp); err != nil {
		return nil, err
	}
	segment := resp.toDomain()
	return &segment, nil
}

// mapMutationError extends the authed mapping with the backend's 400-with-
// "ya existe" convention for duplicate codes.
func mapMutationError(err error) error {
	var se *statusError
	if errors.As(err, &se) && se.status == http.StatusBadRequest &&
		strings.Contains(strings.ToLower(se.detail), "existe") {
		return domain.ErrDuplicateCode
	}
	return mapAuthedError(err)
}
