package console

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hollpacas/erp-console/internal/core/service"
)

// Route names the view the application should activate next.
type Route int

const (
	RouteLogin Route = iota
	RouteHome
	RouteInventory
	RouteQuit
)

// App wires the views together and owns cross-view state (the selected
// branch). Navigation mirrors the original frontend: login is the only
// entry point, every protected view re-runs the guard on activation.
type App struct {
	console *Console
	auth    *service.AuthService
	guard   *service.SessionGuard
	rec     *service.Reconciler
	log     zerolog.Logger

	activeBranch string
}

func NewApp(console *Console, auth *service.AuthService, guard *service.SessionGuard, rec *service.Reconciler, log zerolog.Logger) *App {
	return &App{console: console, auth: auth, guard: guard, rec: rec, log: log}
}

// Run drives the view loop until the user quits.
func (a *App) Run(ctx context.Context) {
	route := RouteHome // try the stored session first; the guard redirects
	for route != RouteQuit {
		switch route {
		case RouteLogin:
			route = NewLoginView(a.console, a.auth).Run(ctx)
		case RouteInventory:
			route = NewInventoryView(a.console, a.guard, a.rec).Run(ctx)
		default:
			route = NewHomeView(a.console, a.guard, a.auth, a).Run(ctx)
		}
	}
	a.console.Println("Hasta luego.")
}

// ActiveBranch returns the branch code selected on the home view, empty
// when none has been chosen yet.
func (a *App) ActiveBranch() string { return a.activeBranch }

// SetActiveBranch records the branch the user switched to.
func (a *App) SetActiveBranch(code string) { a.activeBranch = code }
