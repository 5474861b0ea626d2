package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hollpacas/erp-console/internal/core/domain"
	"github.com/hollpacas/erp-console/internal/core/ports"
)

// ErrIncompleteForm is returned by Submit when the form is missing the
// fields the backend requires.
var ErrIncompleteForm = errors.New("code and description are required")

// ErrUnknownProduct is returned by BeginEdit when the id is not in the
// currently loaded collection.
var ErrUnknownProduct = errors.New("product not in loaded collection")

// Mode is the reconciler's form mode.
type Mode int

const (
	// ModeCreate is the initial mode: Submit posts a new product.
	ModeCreate Mode = iota
	// ModeEdit is entered through BeginEdit: Submit updates the selected
	// product, leaving its immutable code untouched.
	ModeEdit
)

// ProductForm is the mutable local form state. Views fill it in before
// calling Submit.
type ProductForm struct {
	Code        string
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
	IsService   bool
}

// Reconciler runs the fetch-mutate-refetch loop behind the inventory view.
// The product list it exposes is always a server-truth snapshot: every
// successful mutation triggers a refetch, never a local patch. It is not
// safe for concurrent use; the console drives it from a single goroutine.
type Reconciler struct {
	gateway ports.InventoryGateway
	log     zerolog.Logger

	mode            Mode
	editID          int
	editActive      bool
	form            ProductForm
	catalogs        domain.Catalogs
	products        []domain.Product
	includeInactive bool

	operator string
	machine  string
}

func NewReconciler(gateway ports.InventoryGateway, log zerolog.Logger) *Reconciler {
	return &Reconciler{gateway: gateway, log: log}
}

// SetOperator records who is driving the form and from which machine; both
// are stamped onto create payloads for the backend's audit columns.
func (r *Reconciler) SetOperator(email, machine string) {
	r.operator = email
	r.machine = machine
}

// Load fetches the catalogs and the product collection. Called on view
// activation.
func (r *Reconciler) Load(ctx context.Context) error {
	catalogs, err := r.gateway.Catalogs(ctx)
	if err != nil {
		return err
	}
	r.catalogs = *catalogs
	return r.refetchProducts(ctx)
}

// Refresh refetches the product collection with the current
// include-inactive setting.
func (r *Reconciler) Refresh(ctx context.Context) error {
	return r.refetchProducts(ctx)
}

// SetIncludeInactive toggles the query flag and refetches immediately.
func (r *Reconciler) SetIncludeInactive(ctx context.Context, include bool) error {
	r.includeInactive = include
	return r.refetchProducts(ctx)
}

func (r *Reconciler) refetchProducts(ctx context.Context) error {
	products, err := r.gateway.ListProducts(ctx, r.includeInactive)
	if err != nil {
		return err
	}
	r.products = products
	return nil
}

// Mode reports whether the form would create or update on Submit.
func (r *Reconciler) Mode() Mode { return r.mode }

// IncludeInactive reports the current state of the list query flag.
func (r *Reconciler) IncludeInactive() bool { return r.includeInactive }

// Products returns the last fetched collection.
func (r *Reconciler) Products() []domain.Product { return r.products }

// Catalogs returns the last fetched reference catalogs.
func (r *Reconciler) Catalogs() domain.Catalogs { return r.catalogs }

// Form exposes the mutable form state to the view.
func (r *Reconciler) Form() *ProductForm { return &r.form }

// Search filters the already-fetched collection locally; it never issues a
// network call.
func (r *Reconciler) Search(query string) []domain.Product {
	return domain.FilterProducts(r.products, query)
}

// BeginEdit populates the form from the selected record and switches to
// edit mode. Numeric fields are coerced from the nested balance record and
// missing optional fields default to empty/zero.
func (r *Reconciler) BeginEdit(id int) error {
	var selected *domain.Product
	for i := range r.products {
		if r.products[i].ID == id {
			selected = &r.products[i]
			break
		}
	}
	if selected == nil {
		return ErrUnknownProduct
	}

	r.form = ProductForm{
		Code:        selected.Code,
		Description: selected.Description,
		LineID:      copyID(selected.LineID),
		SegmentID:   copyID(selected.SegmentID),
		Brand:       selected.Brand,
		Reference:   selected.Reference,
		SalePrice1:  selected.SalePrice1,
		SalePrice2:  selected.SalePrice2,
		SalePrice3:  selected.SalePrice3,
		Cost:        selected.Cost,
		Stock:       selected.StockQuantity(),
		IsService:   selected.IsService,
	}
	r.mode = ModeEdit
	r.editID = id
	r.editActive = selected.Active
	return nil
}

// Reset returns the form to create mode with every field at its zero value.
// Cancelling an edit this way never issues a network call.
func (r *Reconciler) Reset() {
	r.form = ProductForm{}
	r.mode = ModeCreate
	r.editID = 0
	r.editActive = false
}

// Submit sends the form to the backend: POST of the full payload in create
// mode, PUT without the immutable code in edit mode. On success the
// collection is refetched and the form resets to create mode. Failures are
// returned to the caller for user-visible feedback.
func (r *Reconciler) Submit(ctx context.Context) error {
	if r.form.Code == "" || r.form.Description == "" {
		return ErrIncompleteForm
	}

	var err error
	switch r.mode {
	case ModeEdit:
		_, err = r.gateway.UpdateProduct(ctx, r.editID, ports.ProductChanges{
			Description: r.form.Description,
			LineID:      r.form.LineID,
			SegmentID:   r.form.SegmentID,
			Brand:       r.form.Brand,
			Reference:   r.form.Reference,
			SalePrice1:  r.form.SalePrice1,
			SalePrice2:  r.form.SalePrice2,
			SalePrice3:  r.form.SalePrice3,
			Cost:        r.form.Cost,
			Stock:       r.form.Stock,
			// The active flag only changes through Deactivate; an edit
			// carries the record's current value unchanged.
			Active:    r.editActive,
			IsService: r.form.IsService,
		})
	default:
		_, err = r.gateway.CreateProduct(ctx, ports.ProductInput{
			Code:         r.form.Code,
			Description:  r.form.Description,
			LineID:       r.form.LineID,
			SegmentID:    r.form.SegmentID,
			Brand:        r.form.Brand,
			Reference:    r.form.Reference,
			SalePrice1:   r.form.SalePrice1,
			SalePrice2:   r.form.SalePrice2,
			SalePrice3:   r.form.SalePrice3,
			Cost:        r.form.Cost,
			Stock:       r.form.Stock,
			// New products always start active.
			Active:       true,
			IsService:    r.form.IsService,
			RegisteredBy: r.operator,
			Machine:      r.machine,
		})
	}
	if err != nil {
		r.log.Error().Err(err).Str("code", r.form.Code).Msg("product submit failed")
		return err
	}

	r.log.Info().Str("code", r.form.Code).Msg("product saved")
	r.Reset()
	return r.refetchProducts(ctx)
}

// Deactivate soft-deletes the record, resets the form to create mode and
// refetches the collection. There is no confirmation step and no undo.
func (r *Reconciler) Deactivate(ctx context.Context, id int) error {
	if _, err := r.gateway.DeactivateProduct(ctx, id); err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("product deactivate failed")
		return err
	}
	r.Reset()
	return r.refetchProducts(ctx)
}

// CreateLine creates a line catalog entry and refetches the catalogs so the
// new entry shows up in form selectors right away.
func (r *Reconciler) CreateLine(ctx context.Context, input ports.LineInput) error {
	if _, err := r.gateway.CreateLine(ctx, input); err != nil {
		return err
	}
	return r.refetchCatalogs(ctx)
}

// DeactivateLine soft-deletes a line catalog entry and refetches the catalogs.
func (r *Reconciler) DeactivateLine(ctx context.Context, id int) error {
	if _, err := r.gateway.DeactivateLine(ctx, id); err != nil {
		return err
	}
	return r.refetchCatalogs(ctx)
}

// CreateSegment creates a segment catalog entry and refetches the catalogs.
func (r *Reconciler) CreateSegment(ctx context.Context, name string) error {
	if _, err := r.gateway.CreateSegment(ctx, name); err != nil {
		return err
	}
	return r.refetchCatalogs(ctx)
}

func (r *Reconciler) refetchCatalogs(ctx context.Context) error {
	catalogs, err := r.gateway.Catalogs(ctx)
	if err != nil {
		return err
	}
	r.catalogs = *catalogs
	return nil
}

func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
