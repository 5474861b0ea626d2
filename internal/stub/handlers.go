package stub

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/hollpacas/erp-console/internal/core/domain"
)

// AuthHandler serves /auth/login and /auth/me.
type AuthHandler struct {
	state    *State
	secret   string
	tokenTTL time.Duration
}

func NewAuthHandler(state *State, secret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{state: state, secret: secret, tokenTTL: tokenTTL}
}

// The backend accepts any string as the login identifier and answers
// "Usuario no encontrado" for unknown ones, so no email-format check here.
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginUser struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        loginUser `json:"user"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.state.Authenticate(req.Email, req.Password)
	if err != nil {
		LoginsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	claims := jwt.MapClaims{
		"sub": profile.Email,
		"exp": time.Now().Add(h.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.secret))
	if err != nil {
		return err
	}

	LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        loginUser{ID: profile.ID, Email: profile.Email, FullName: profile.FullName},
	})
}

// Me returns the profile injected by the Auth middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	profile, _ := c.Get(profileKey).(*domain.Profile)
	if profile == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token invalido")
	}
	return c.JSON(http.StatusOK, profile)
}

// InventoryHandler serves the /inventory routes.
type InventoryHandler struct {
	state *State
}

func NewInventoryHandler(state *State) *InventoryHandler {
	return &InventoryHandler{state: state}
}

type catalogsResponse struct {
	Lines    []domain.Line    `json:"lineas"`
	Segments []domain.Segment `json:"segmentos"`
}

func (h *InventoryHandler) Catalogs(c echo.Context) error {
	lines, segments := h.state.Catalogs()
	return c.JSON(http.StatusOK, catalogsResponse{Lines: lines, Segments: segments})
}

type lineCreateRequest struct {
	Code   string `json:"cod_linea" validate:"required"`
	Name   string `json:"linea" validate:"required"`
	Active *bool  `json:"activo"`
}

func (h *InventoryHandler) CreateLine(c echo.Context) error {
	var req lineCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	line, err := h.state.CreateLine(req.Code, req.Name, active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, line)
}

func (h *InventoryHandler) DeactivateLine(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	line, err := h.state.DeactivateLine(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, line)
}

type segmentCreateRequest struct {
	Name string `json:"segmento" validate:"required"`
}

func (h *InventoryHandler) CreateSegment(c echo.Context) error {
	var req segmentCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	segment, err := h.state.CreateSegment(req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, segment)
}

func (h *InventoryHandler) ListProducts(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"
	return c.JSON(http.StatusOK, h.state.ListProducts(includeInactive))
}

type productCreateRequest struct {
	Code         string  `json:"cod_producto" validate:"required"`
	Description  string  `json:"descripcion" validate:"required"`
	LineID       *int    `json:"linea_id"`
	SegmentID    *int    `json:"segmento_id"`
	Brand        string  `json:"marca"`
	Reference    string  `json:"referencia_producto"`
	SalePrice1   float64 `json:"precio_venta1"`
	SalePrice2   float64 `json:"precio_venta2"`
	SalePrice3   float64 `json:"precio_venta3"`
	Cost         float64 `json:"costo_producto"`
	Stock        float64 `json:"existencia"`
	Active       *bool   `json:"activo"`
	IsService    bool    `json:"servicio_producto"`
	RegisteredBy string  `json:"usuario_registro"`
	Machine      string  `json:"maquina_registro"`
}

func (h *InventoryHandler) CreateProduct(c echo.Context) error {
	var req productCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	product, err := h.state.CreateProduct(domain.Product{
		Code:        req.Code,
		Description: req.Description,
		LineID:      req.LineID,
		SegmentID:   req.SegmentID,
		Brand:       req.Brand,
		Reference:   req.Reference,
		SalePrice1:  req.SalePrice1,
		SalePrice2:  req.SalePrice2,
		SalePrice3:  req.SalePrice3,
		Cost:        req.Cost,
		Active:      active,
		IsService:   req.IsService,
	}, req.Stock)
	if err != nil {
		return err
	}

	ProductMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusOK, product)
}

type productUpdateRequest struct {
	Description string  `json:"descripcion" validate:"required"`
	LineID      *int    `json:"linea_id"`
	SegmentID   *int    `json:"segmento_id"`
	Brand       string  `json:"marca"`
	Reference   string  `json:"referencia_producto"`
	SalePrice1  float64 `json:"precio_venta1"`
	SalePrice2  float64 `json:"precio_venta2"`
	SalePrice3  float64 `json:"precio_venta3"`
	Cost        float64 `json:"costo_producto"`
	Stock       float64 `json:"existencia"`
	Active      *bool   `json:"activo"`
	IsService   bool    `json:"servicio_producto"`
}

func (h *InventoryHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req productUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	product, err := h.state.UpdateProduct(id, domain.Product{
		Description: req.Description,
		LineID:      req.LineID,
		SegmentID:   req.SegmentID,
		Brand:       req.Brand,
		Reference:   req.Reference,
		SalePrice1:  req.SalePrice1,
		SalePrice2:  req.SalePrice2,
		SalePrice3:  req.SalePrice3,
		Cost:        req.Cost,
		Active:      active,
		IsService:   req.IsService,
	}, req.Stock)
	if err != nil {
		return err
	}

	ProductMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, product)
}

func (h *InventoryHandler) DeactivateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	product, err := h.state.DeactivateProduct(id)
	if err != nil {
		return err
	}

	ProductMutationsTotal.WithLabelValues("deactivate").Inc()
	return c.JSON(http.StatusOK, product)
}
