package console

import (
	"context"
	"errors"

	"github.com/hollpacas/erp-console/internal/core/domain"
	"github.com/hollpacas/erp-console/internal/core/service"
)

// HomeView is the main landing view. It refetches the profile on every
// activation, derives the role label from the first role and renders the
// menu accordingly: only "administrador" stays, and only administrators get
// the branch-switch control.
type HomeView struct {
	console *Console
	guard   *service.SessionGuard
	auth    *service.AuthService
	app     *App
}

func NewHomeView(console *Console, guard *service.SessionGuard, auth *service.AuthService, app *App) *HomeView {
	return &HomeView{console: console, guard: guard, auth: auth, app: app}
}

func (v *HomeView) Run(ctx context.Context) Route {
	profile, err := v.guard.Require(ctx, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			v.console.Println("Acceso denegado.")
		}
		return RouteLogin
	}

	v.console.Println()
	v.console.Printf("Bienvenido, %s (%s)\n", profile.FullName, profile.RoleLabel())
	if branch := v.app.ActiveBranch(); branch != "" {
		v.console.Printf("Sucursal activa: %s\n", branch)
	}

	v.console.Println("  1) Inventario")
	v.console.Println("  2) Cambiar sucursal")
	v.console.Println("  3) Cerrar sesión")
	v.console.Println("  4) Salir")

	switch v.console.Prompt("Opción") {
	case "1":
		return RouteInventory
	case "2":
		v.switchBranch(profile)
		return RouteHome
	case "3":
		_ = v.auth.Logout()
		return RouteLogin
	case "4":
		return RouteQuit
	default:
		return RouteHome
	}
}

func (v *HomeView) switchBranch(profile *domain.Profile) {
	codes := profile.BranchCodes()
	if len(codes) == 0 {
		v.console.Println("No hay sucursales asignadas.")
		return
	}

	v.console.Println("Sucursales disponibles:")
	for _, b := range profile.Branches {
		v.console.Printf("  %s - %s\n", b.Code, b.Name)
	}

	choice := v.console.Prompt("Código de sucursal")
	for _, code := range codes {
		if code == choice {
			v.app.SetActiveBranch(code)
			v.console.Printf("Sucursal cambiada a %s.\n", code)
			return
		}
	}
	v.console.Println("Código de sucursal no válido.")
}
