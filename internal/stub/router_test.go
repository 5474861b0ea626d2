package stub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	testEmail    = "admin@hollpacas.test"
	testPassword = "020416"
	testSecret   = "test-secret"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	state, err := NewState(testEmail, testPassword)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return NewRouter(state, testSecret, time.Hour, zerolog.Nop())
}

func doRequest(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := doRequest(e, http.MethodPost, "/auth/login",
		`{"email":"`+testEmail+`","password":"`+testPassword+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
	return resp.AccessToken
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v (body %s)", err, rec.Body.String())
	}
	return envelope.Detail
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(e, http.MethodPost, "/auth/login",
		`{"email":"`+testEmail+`","password":"nope"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := detailOf(t, rec); got != "Contraseña incorrecta" {
		t.Errorf("detail = %q", got)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(e, http.MethodPost, "/auth/login",
		`{"email":"nobody@hollpacas.test","password":"x"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := detailOf(t, rec); got != "Usuario no encontrado" {
		t.Errorf("detail = %q", got)
	}
}

func TestMe_ReturnsProfile(t *testing.T) {
	e := newTestRouter(t)
	token := loginToken(t, e)

	rec := doRequest(e, http.MethodGet, "/auth/me", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var profile struct {
		Email string `json:"email"`
		Roles []struct {
			Name string `json:"name"`
		} `json:"roles"`
		Branches []struct {
			Code string `json:"code"`
		} `json:"branches"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Email != testEmail {
		t.Errorf("email = %q", profile.Email)
	}
	if len(profile.Roles) != 1 || profile.Roles[0].Name != "administrador" {
		t.Errorf("roles = %+v", profile.Roles)
	}
	if len(profile.Branches) != 2 {
		t.Errorf("branches = %+v", profile.Branches)
	}
}

func TestLogin_NonEmailIdentifier(t *testing.T) {
	e := newTestRouter(t)

	// A plain username is a valid login identifier on the wire; it just does
	// not match any account.
	rec := doRequest(e, http.MethodPost, "/auth/login",
		`{"email":"mostrador1","password":"x"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := detailOf(t, rec); got != "Usuario no encontrado" {
		t.Errorf("detail = %q", got)
	}
}

func TestMe_RejectsMissingAndForgedTokens(t *testing.T) {
	e := newTestRouter(t)

	if rec := doRequest(e, http.MethodGet, "/auth/me", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}
	if rec := doRequest(e, http.MethodGet, "/auth/me", "", "not-a-jwt"); rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", rec.Code)
	}
}

func TestInventory_RequiresSession(t *testing.T) {
	e := newTestRouter(t)

	rec := doRequest(e, http.MethodGet, "/inventory/catalogs", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCatalogs_ReturnsSeededLists(t *testing.T) {
	e := newTestRouter(t)
	token := loginToken(t, e)

	rec := doRequest(e, http.MethodGet, "/inventory/catalogs", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Lines    []json.RawMessage `json:"lineas"`
		Segments []json.RawMessage `json:"segmentos"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode catalogs: %v", err)
	}
	if len(resp.Lines) != 2 || len(resp.Segments) != 2 {
		t.Errorf("got %d lines, %d segments", len(resp.Lines), len(resp.Segments))
	}
}

func TestCreateProduct_DuplicateCode(t *testing.T) {
	e := newTestRouter(t)
	token := loginToken(t, e)

	payload := `{"cod_producto":"P001","descripcion":"Bota vaquera","existencia":4}`
	if rec := doRequest(e, http.MethodPost, "/inventory/products", payload, token); rec.Code != http.StatusOK {
		t.Fatalf("first create: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec := doRequest(e, http.MethodPost, "/inventory/products", payload, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create: status = %d, want 400", rec.Code)
	}
	if got := detailOf(t, rec); got != "Codigo de producto ya existe" {
		t.Errorf("detail = %q", got)
	}
}

func TestListProducts_IncludeInactiveFlag(t *testing.T) {
	e := newTestRouter(t)
	token := loginToken(t, e)

	create := doRequest(e, http.MethodPost, "/inventory/products",
		`{"cod_producto":"P001","descripcion":"Bota vaquera"}`, token)
	if create.Code != http.StatusOK {
		t.Fatalf("create: status = %d", create.Code)
	}
	var created struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(create.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	rec := doRequest(e, http.MethodPatch, "/inventory/products/1/deactivate", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate: status = %d, body %s", rec.Code, rec.Body.String())
	}

	var active []json.RawMessage
	rec = doRequest(e, http.MethodGet, "/inventory/products", "", token)
	if err := json.Unmarshal(rec.Body.Bytes(), &active); err != nil {
		t.Fatalf("decode active list: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active list has %d items, want 0", len(active))
	}

	var all []json.RawMessage
	rec = doRequest(e, http.MethodGet, "/inventory/products?include_inactive=true", "", token)
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode full list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("full list has %d items, want 1", len(all))
	}
}

func TestDeactivateProduct_NotFound(t *testing.T) {
	e := newTestRouter(t)
	token := loginToken(t, e)

	rec := doRequest(e, http.MethodPatch, "/inventory/products/99/deactivate", "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := detailOf(t, rec); got != "Producto no encontrado" {
		t.Errorf("detail = %q", got)
	}
}

func TestUpdateProduct_KeepsCode(t *testing.T) {
	e := newTestRouter(t)
	token := loginToken(t, e)

	create := doRequest(e, http.MethodPost, "/inventory/products",
		`{"cod_producto":"P001","descripcion":"Bota vaquera"}`, token)
	if create.Code != http.StatusOK {
		t.Fatalf("create: status = %d", create.Code)
	}

	rec := doRequest(e, http.MethodPut, "/inventory/products/1",
		`{"descripcion":"Bota texana","existencia":9}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		Code        string `json:"cod_producto"`
		Description string `json:"descripcion"`
		Saldo       struct {
			Quantity float64 `json:"existencia"`
		} `json:"saldo"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Code != "P001" {
		t.Errorf("code = %q, want unchanged P001", updated.Code)
	}
	if updated.Description != "Bota texana" {
		t.Errorf("description = %q", updated.Description)
	}
	if updated.Saldo.Quantity != 9 {
		t.Errorf("stock = %v, want 9", updated.Saldo.Quantity)
	}
}

func TestCreateLine_Duplicate(t *testing.T) {
	e := newTestRouter(t)
	token := loginToken(t, e)

	rec := doRequest(e, http.MethodPost, "/inventory/lineas",
		`{"cod_linea":"L01","linea":"Calzado"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := detailOf(t, rec); got != "Codigo de linea ya existe" {
		t.Errorf("detail = %q", got)
	}
}
