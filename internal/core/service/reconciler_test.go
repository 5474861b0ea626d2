package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hollpacas/erp-console/internal/core/domain"
	"github.com/hollpacas/erp-console/internal/core/ports"
)

// fakeInventoryGateway serves canned data and counts every call so tests can
// assert on the fetch-mutate-refetch discipline.
type fakeInventoryGateway struct {
	catalogs domain.Catalogs
	products []domain.Product

	catalogCalls    int
	listCalls       int
	lastInactive    bool
	createCalls     int
	lastCreate      ports.ProductInput
	updateCalls     int
	lastUpdateID    int
	lastChanges     ports.ProductChanges
	deactivateCalls int

	mutationErr error
}

func (f *fakeInventoryGateway) Catalogs(ctx context.Context) (*domain.Catalogs, error) {
	f.catalogCalls++
	c := f.catalogs
	return &c, nil
}

func (f *fakeInventoryGateway) ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	f.listCalls++
	f.lastInactive = includeInactive
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeInventoryGateway) CreateProduct(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	f.createCalls++
	f.lastCreate = input
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	now := time.Now()
	p := domain.Product{ID: 100, Code: input.Code, Description: input.Description, Active: true, CreatedAt: &now}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeInventoryGateway) UpdateProduct(ctx context.Context, id int, changes ports.ProductChanges) (*domain.Product, error) {
	f.updateCalls++
	f.lastUpdateID = id
	f.lastChanges = changes
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Description = changes.Description
			return &f.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInventoryGateway) DeactivateProduct(ctx context.Context, id int) (*domain.Product, error) {
	f.deactivateCalls++
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Active = false
			return &f.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInventoryGateway) CreateLine(ctx context.Context, input ports.LineInput) (*domain.Line, error) {
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	line := domain.Line{ID: len(f.catalogs.Lines) + 1, Code: input.Code, Name: input.Name, Active: input.Active}
	f.catalogs.Lines = append(f.catalogs.Lines, line)
	return &line, nil
}

func (f *fakeInventoryGateway) DeactivateLine(ctx context.Context, id int) (*domain.Line, error) {
	for i := range f.catalogs.Lines {
		if f.catalogs.Lines[i].ID == id {
			f.catalogs.Lines[i].Active = false
			return &f.catalogs.Lines[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInventoryGateway) CreateSegment(ctx context.Context, name string) (*domain.Segment, error) {
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	seg := domain.Segment{ID: len(f.catalogs.Segments) + 1, Name: name}
	f.catalogs.Segments = append(f.catalogs.Segments, seg)
	return &seg, nil
}

func seededGateway() *fakeInventoryGateway {
	lineID := 1
	qty := 12.0
	return &fakeInventoryGateway{
		catalogs: domain.Catalogs{
			Lines:    []domain.Line{{ID: 1, Code: "L01", Name: "Calzado", Active: true}},
			Segments: []domain.Segment{{ID: 1, Name: "Dama"}},
		},
		products: []domain.Product{
			{
				ID: 1, Code: "P001", Description: "Bota industrial", Brand: "Acme",
				LineID: &lineID, SalePrice1: 150, Cost: 90, Active: true,
				Saldo: &domain.Stock{Quantity: qty},
				Line:  &domain.Line{ID: 1, Code: "L01", Name: "Calzado", Active: true},
			},
			{ID: 2, Code: "P002", Description: "Sandalia", Brand: "Rivera", Active: true},
		},
	}
}

func TestReconciler_Load(t *testing.T) {
	gw := seededGateway()
	rec := NewReconciler(gw, zerolog.Nop())

	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(rec.Products()) != 2 {
		t.Fatalf("expected 2 products, got %d", len(rec.Products()))
	}
	if len(rec.Catalogs().Lines) != 1 || len(rec.Catalogs().Segments) != 1 {
		t.Fatalf("catalogs not loaded: %+v", rec.Catalogs())
	}
	if rec.Mode() != ModeCreate {
		t.Fatalf("initial mode must be create")
	}
}

func TestReconciler_IncludeInactiveRefetches(t *testing.T) {
	gw := seededGateway()
	rec := NewReconciler(gw, zerolog.Nop())
	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	listCalls := gw.listCalls
	if err := rec.SetIncludeInactive(context.Background(), true); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if gw.listCalls != listCalls+1 {
		t.Fatalf("toggle must refetch the collection")
	}
	if !gw.lastInactive {
		t.Fatalf("include_inactive flag not forwarded")
	}
}

func TestReconciler_CreateRefetchesAndResets(t *testing.T) {
	gw := seededGateway()
	rec := NewReconciler(gw, zerolog.Nop())
	rec.SetOperator("admin@example.com", "caja-01")
	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	form := rec.Form()
	form.Code = "P003"
	form.Description = "Tenis deportivo"
	form.SalePrice1 = 80
	form.Stock = 5

	listCalls := gw.listCalls
	if err := rec.Submit(context.Background()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if gw.createCalls != 1 {
		t.Fatalf("expected one create call, got %d", gw.createCalls)
	}
	if gw.lastCreate.RegisteredBy != "admin@example.com" || gw.lastCreate.Machine != "caja-01" {
		t.Fatalf("audit fields not stamped: %+v", gw.lastCreate)
	}
	if gw.listCalls != listCalls+1 {
		t.Fatalf("successful create must refetch the collection")
	}
	if len(rec.Products()) != 3 {
		t.Fatalf("refetched list should contain the new product")
	}
	if rec.Mode() != ModeCreate || *rec.Form() != (ProductForm{}) {
		t.Fatalf("form should be back at create mode with zero values")
	}
}

func TestReconciler_EditStripsImmutableCode(t *testing.T) {
	gw := seededGateway()
	rec := NewReconciler(gw, zerolog.Nop())
	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := rec.BeginEdit(1); err != nil {
		t.Fatalf("begin edit failed: %v", err)
	}
	if rec.Mode() != ModeEdit {
		t.Fatalf("expected edit mode")
	}
	form := rec.Form()
	if form.Code != "P001" || form.Stock != 12 {
		t.Fatalf("form not populated from record: %+v", form)
	}

	form.Description = "Bota industrial reforzada"
	if err := rec.Submit(context.Background()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if gw.updateCalls != 1 || gw.lastUpdateID != 1 {
		t.Fatalf("expected PUT against id 1, got %d calls on id %d", gw.updateCalls, gw.lastUpdateID)
	}
	if gw.lastChanges.Description != "Bota industrial reforzada" {
		t.Fatalf("changes not forwarded: %+v", gw.lastChanges)
	}
	if rec.Mode() != ModeCreate {
		t.Fatalf("successful save must reset to create mode")
	}
}

func TestReconciler_EditMissingOptionalsDefault(t *testing.T) {
	gw := seededGateway()
	rec := NewReconciler(gw, zerolog.Nop())
	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// Product 2 has no line, segment or balance record.
	if err := rec.BeginEdit(2); err != nil {
		t.Fatalf("begin edit failed: %v", err)
	}
	form := rec.Form()
	if form.LineID != nil || form.SegmentID != nil {
		t.Fatalf("missing references must default to nil")
	}
	if form.Stock != 0 {
		t.Fatalf("missing balance must coerce to zero, got %v", form.Stock)
	}
}

func TestReconciler_ResetIssuesNoNetworkCall(t *testing.T) {
	gw := seededGateway()
	rec := NewReconciler(gw, zerolog.Nop())
	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	catalogCalls, listCalls := gw.catalogCalls, gw.listCalls
	if err := rec.BeginEdit(1); err != nil {
		t.Fatalf("begin edit failed: %v", err)
	}
	rec.Reset()

	if gw.catalogCalls != catalogCalls || gw.listCalls != listCalls {
		t.Fatalf("edit+reset must not touch the network")
	}
	if rec.Mode() != ModeCreate {
		t.Fatalf("reset must return to create mode")
	}
}

func TestReconciler_MutationFailurePropagates(t *testing.T) {
	gw := seededGateway()
	gw.mutationErr = domain.ErrDuplicateCode
	rec := NewReconciler(gw, zerolog.Nop())
	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	form := rec.Form()
	form.Code = "P001"
	form.Description = "duplicate"

	err := rec.Submit(context.Background())
	if !errors.Is(err, domain.ErrDuplicateCode) {
		t.Fatalf("mutation failure must surface to the caller, got %v", err)
	}
	// The failed form stays as typed so the user can correct it.
	if rec.Form().Code != "P001" {
		t.Fatalf("form must not reset on failure")
	}
}

func TestReconciler_DeactivateRefetches(t *testing.T) {
	gw := seededGateway()
	rec := NewReconciler(gw, zerolog.Nop())
	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	listCalls := gw.listCalls
	if err := rec.Deactivate(context.Background(), 1); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if gw.deactivateCalls != 1 {
		t.Fatalf("expected one deactivate call")
	}
	if gw.listCalls != listCalls+1 {
		t.Fatalf("deactivate must refetch the collection")
	}
}

func TestReconciler_DeactivateResetsEditForm(t *testing.T) {
	gw := seededGateway()
	rec := NewReconciler(gw, zerolog.Nop())
	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// Leave a pending edit form behind a failed save, as a user would after
	// correcting nothing and deleting the record instead.
	if err := rec.BeginEdit(1); err != nil {
		t.Fatalf("begin edit failed: %v", err)
	}
	gw.mutationErr = domain.ErrDuplicateCode
	if err := rec.Submit(context.Background()); !errors.Is(err, domain.ErrDuplicateCode) {
		t.Fatalf("expected failed submit, got %v", err)
	}
	gw.mutationErr = nil

	if err := rec.Deactivate(context.Background(), 2); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if rec.Mode() != ModeCreate {
		t.Fatalf("deactivate must return to create mode, got %v", rec.Mode())
	}
	if *rec.Form() != (ProductForm{}) {
		t.Fatalf("deactivate must zero the form, got %+v", rec.Form())
	}
}

func TestReconciler_EditPreservesActiveFlag(t *testing.T) {
	gw := seededGateway()
	gw.products[1].Active = false
	rec := NewReconciler(gw, zerolog.Nop())
	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := rec.SetIncludeInactive(context.Background(), true); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	// Editing an inactive product must not re-activate it on save.
	if err := rec.BeginEdit(2); err != nil {
		t.Fatalf("begin edit failed: %v", err)
	}
	rec.Form().Description = "Sandalia corregida"
	if err := rec.Submit(context.Background()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if gw.lastChanges.Active {
		t.Fatalf("update payload re-activates an inactive product: %+v", gw.lastChanges)
	}

	if err := rec.BeginEdit(1); err != nil {
		t.Fatalf("begin edit failed: %v", err)
	}
	rec.Form().Description = "Bota reforzada"
	if err := rec.Submit(context.Background()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !gw.lastChanges.Active {
		t.Fatalf("update payload must keep an active product active: %+v", gw.lastChanges)
	}
}

func TestReconciler_IncompleteForm(t *testing.T) {
	rec := NewReconciler(seededGateway(), zerolog.Nop())
	if err := rec.Submit(context.Background()); !errors.Is(err, ErrIncompleteForm) {
		t.Fatalf("expected ErrIncompleteForm, got %v", err)
	}
}

func TestReconciler_CatalogCreateRefetchesCatalogs(t *testing.T) {
	gw := seededGateway()
	rec := NewReconciler(gw, zerolog.Nop())
	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := rec.CreateLine(context.Background(), ports.LineInput{Code: "L02", Name: "Ropa", Active: true}); err != nil {
		t.Fatalf("create line failed: %v", err)
	}
	if len(rec.Catalogs().Lines) != 2 {
		t.Fatalf("new line must appear after refetch, got %d", len(rec.Catalogs().Lines))
	}

	if err := rec.CreateSegment(context.Background(), "Caballero"); err != nil {
		t.Fatalf("create segment failed: %v", err)
	}
	if len(rec.Catalogs().Segments) != 2 {
		t.Fatalf("new segment must appear after refetch, got %d", len(rec.Catalogs().Segments))
	}
}

func TestReconciler_SearchIsLocal(t *testing.T) {
	gw := seededGateway()
	rec := NewReconciler(gw, zerolog.Nop())
	if err := rec.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	listCalls := gw.listCalls
	if got := rec.Search(""); len(got) != 2 {
		t.Fatalf("empty query must return the full list, got %d", len(got))
	}
	if got := rec.Search("CALZADO"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected case-insensitive line match, got %+v", got)
	}
	if got := rec.Search("zzz"); len(got) != 0 {
		t.Fatalf("non-matching query must return empty, got %d", len(got))
	}
	if gw.listCalls != listCalls {
		t.Fatalf("search must never hit the backend")
	}
}

func TestReconciler_BeginEditUnknownID(t *testing.T) {
	rec := NewReconciler(seededGateway(), zerolog.Nop())
	if err := rec.BeginEdit(99); !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}
}
