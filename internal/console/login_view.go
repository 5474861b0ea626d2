package console

import (
	"context"
	"errors"

	"github.com/hollpacas/erp-console/internal/core/domain"
	"github.com/hollpacas/erp-console/internal/core/service"
)

// LoginView collects credentials and performs a single login attempt per
// submit. A rejected attempt and a connection failure get distinct
// messages; neither navigates anywhere, the user just tries again.
type LoginView struct {
	console *Console
	auth    *service.AuthService
}

func NewLoginView(console *Console, auth *service.AuthService) *LoginView {
	return &LoginView{console: console, auth: auth}
}

func (v *LoginView) Run(ctx context.Context) Route {
	v.console.Println()
	v.console.Println("=== Iniciar sesión ===")

	email := v.console.Prompt("Correo")
	if email == "salir" {
		return RouteQuit
	}
	password := v.console.PromptPassword("Contraseña")
	remember := v.console.PromptBool("Recordar sesión", false)

	err := v.auth.Login(ctx, email, password, remember)
	switch {
	case err == nil:
		return RouteHome
	case errors.Is(err, domain.ErrInvalidCredentials):
		v.console.Println("Credenciales inválidas.")
	case errors.Is(err, domain.ErrBackendUnavailable):
		v.console.Println("Error de conexión con el servidor.")
	default:
		v.console.Printf("Error inesperado: %v\n", err)
	}
	return RouteLogin
}
