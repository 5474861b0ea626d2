package console

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/hollpacas/erp-console/internal/core/domain"
	"github.com/hollpacas/erp-console/internal/core/ports"
	"github.com/hollpacas/erp-console/internal/core/service"
)

// InventoryView drives the product reconciler: list, local search, the
// create/edit form, soft deletes and the line/segment sub-forms. Every
// mutation outcome is reported to the user; nothing fails silently.
type InventoryView struct {
	console *Console
	guard   *service.SessionGuard
	rec     *service.Reconciler
}

func NewInventoryView(console *Console, guard *service.SessionGuard, rec *service.Reconciler) *InventoryView {
	return &InventoryView{console: console, guard: guard, rec: rec}
}

func (v *InventoryView) Run(ctx context.Context) Route {
	profile, err := v.guard.Require(ctx, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			v.console.Println("Acceso denegado.")
		}
		return RouteLogin
	}

	host, _ := os.Hostname()
	v.rec.SetOperator(profile.Email, host)

	if err := v.rec.Load(ctx); err != nil {
		v.reportError(err)
		return RouteHome
	}

	v.console.Println()
	v.console.Println("=== Inventario ===")
	v.printProducts(v.rec.Products())

	for {
		v.console.Println()
		v.console.Println("[l]istar  [b]uscar <texto>  [i]nactivas  [n]uevo  [e]ditar <id>  [d]esactivar <id>")
		v.console.Println("[nl] nueva línea  [dl] desactivar línea <id>  [ns] nuevo segmento  [c]ancelar  [v]olver")

		input := v.console.Prompt("Inventario")
		cmd, arg, _ := strings.Cut(input, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "l":
			v.printProducts(v.rec.Products())
		case "b":
			v.printProducts(v.rec.Search(arg))
		case "i":
			if err := v.rec.SetIncludeInactive(ctx, !v.rec.IncludeInactive()); err != nil {
				v.reportError(err)
				continue
			}
			v.console.Printf("Mostrar inactivas: %v\n", v.rec.IncludeInactive())
			v.printProducts(v.rec.Products())
		case "n":
			v.rec.Reset()
			v.submitForm(ctx)
		case "e":
			id, err := strconv.Atoi(arg)
			if err != nil {
				v.console.Println("Uso: e <id>")
				continue
			}
			if err := v.rec.BeginEdit(id); err != nil {
				v.reportError(err)
				continue
			}
			v.submitForm(ctx)
		case "d":
			id, err := strconv.Atoi(arg)
			if err != nil {
				v.console.Println("Uso: d <id>")
				continue
			}
			if err := v.rec.Deactivate(ctx, id); err != nil {
				v.reportError(err)
				continue
			}
			v.console.Println("Producto desactivado.")
			v.printProducts(v.rec.Products())
		case "nl":
			v.createLine(ctx)
		case "dl":
			id, err := strconv.Atoi(arg)
			if err != nil {
				v.console.Println("Uso: dl <id>")
				continue
			}
			if err := v.rec.DeactivateLine(ctx, id); err != nil {
				v.reportError(err)
				continue
			}
			v.console.Println("Línea desactivada.")
		case "ns":
			v.createSegment(ctx)
		case "c":
			v.rec.Reset()
			v.console.Println("Formulario restablecido.")
		case "v", "":
			return RouteHome
		default:
			v.console.Println("Comando no reconocido.")
		}
	}
}

// submitForm walks the user through the form fields and submits. In edit
// mode the code is shown but not editable.
func (v *InventoryView) submitForm(ctx context.Context) {
	form := v.rec.Form()
	catalogs := v.rec.Catalogs()

	if v.rec.Mode() == service.ModeEdit {
		v.console.Printf("Editando producto %s (el código no se puede cambiar)\n", form.Code)
	} else {
		form.Code = v.console.PromptDefault("Código", form.Code)
	}
	form.Description = v.console.PromptDefault("Descripción", form.Description)

	if len(catalogs.Lines) > 0 {
		v.console.Println("Líneas:")
		for _, l := range catalogs.Lines {
			v.console.Printf("  %d - %s\n", l.ID, l.Name)
		}
		form.LineID = v.console.PromptOptionalInt("Línea (id, vacío = ninguna)", form.LineID)
	}
	if len(catalogs.Segments) > 0 {
		v.console.Println("Segmentos:")
		for _, s := range catalogs.Segments {
			v.console.Printf("  %d - %s\n", s.ID, s.Name)
		}
		form.SegmentID = v.console.PromptOptionalInt("Segmento (id, vacío = ninguno)", form.SegmentID)
	}

	form.Brand = v.console.PromptDefault("Marca", form.Brand)
	form.Reference = v.console.PromptDefault("Referencia", form.Reference)
	form.SalePrice1 = v.console.PromptFloat("Precio venta 1", form.SalePrice1)
	form.SalePrice2 = v.console.PromptFloat("Precio venta 2", form.SalePrice2)
	form.SalePrice3 = v.console.PromptFloat("Precio venta 3", form.SalePrice3)
	form.Cost = v.console.PromptFloat("Costo", form.Cost)
	form.Stock = v.console.PromptFloat("Existencia", form.Stock)
	form.IsService = v.console.PromptBool("¿Es servicio?", form.IsService)

	if !v.console.PromptBool("¿Guardar?", true) {
		v.rec.Reset()
		v.console.Println("Cambios descartados.")
		return
	}

	if err := v.rec.Submit(ctx); err != nil {
		v.reportError(err)
		return
	}
	v.console.Println("Producto guardado.")
	v.printProducts(v.rec.Products())
}

func (v *InventoryView) createLine(ctx context.Context) {
	input := ports.LineInput{
		Code:   v.console.Prompt("Código de línea"),
		Name:   v.console.Prompt("Nombre de línea"),
		Active: true,
	}
	if input.Code == "" || input.Name == "" {
		v.console.Println("Código y nombre son obligatorios.")
		return
	}
	if err := v.rec.CreateLine(ctx, input); err != nil {
		v.reportError(err)
		return
	}
	v.console.Println("Línea creada.")
}

func (v *InventoryView) createSegment(ctx context.Context) {
	name := v.console.Prompt("Nombre de segmento")
	if name == "" {
		v.console.Println("El nombre es obligatorio.")
		return
	}
	if err := v.rec.CreateSegment(ctx, name); err != nil {
		v.reportError(err)
		return
	}
	v.console.Println("Segmento creado.")
}

func (v *InventoryView) printProducts(products []domain.Product) {
	if len(products) == 0 {
		v.console.Println("(sin productos)")
		return
	}
	v.console.Printf("%-5s %-12s %-30s %-12s %10s %10s %7s\n",
		"ID", "Código", "Descripción", "Línea", "Precio 1", "Exist.", "Activo")
	for _, p := range products {
		active := "sí"
		if !p.Active {
			active = "no"
		}
		v.console.Printf("%-5d %-12s %-30s %-12s %10.2f %10.2f %7s\n",
			p.ID, p.Code, truncate(p.Description, 30), truncate(p.LineName(), 12),
			p.SalePrice1, p.StockQuantity(), active)
	}
}

func (v *InventoryView) reportError(err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateCode):
		v.console.Println("Ese código ya existe.")
	case errors.Is(err, domain.ErrNotFound):
		v.console.Println("Registro no encontrado.")
	case errors.Is(err, domain.ErrBackendUnavailable):
		v.console.Println("Error de conexión con el servidor.")
	case errors.Is(err, service.ErrIncompleteForm):
		v.console.Println("Código y descripción son obligatorios.")
	case errors.Is(err, service.ErrUnknownProduct):
		v.console.Println("Ese producto no está en la lista cargada.")
	default:
		v.console.Printf("La operación falló: %v\n", err)
	}
}

// truncate shortens s to n runes; slicing by bytes would split multibyte
// characters in Spanish text.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
