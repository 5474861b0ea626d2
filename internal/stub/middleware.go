package stub

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/hollpacas/erp-console/internal/core/domain"
)

const profileKey = "profile"

// Auth validates the bearer token and injects the matching profile into the
// request context. The token's subject is the account email, mirroring the
// real backend's claims.
func Auth(secret string, state *State) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token invalido")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token invalido")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token invalido")
			}

			email, _ := claims["sub"].(string)
			profile, ok := state.ProfileByEmail(email)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Usuario no valido")
			}

			c.Set(profileKey, profile)
			return next(c)
		}
	}
}

// RequireAdmin rejects any session whose profile lacks the administrator
// role. Runs after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			profile, _ := c.Get(profileKey).(*domain.Profile)
			if profile == nil || !profile.HasRole(domain.RoleAdmin) {
				return echo.NewHTTPError(http.StatusForbidden, "Acceso denegado")
			}
			return next(c)
		}
	}
}
