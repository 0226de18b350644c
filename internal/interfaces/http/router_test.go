package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/Confecciones-api/internal/application/analytics"
	"github.com/jhoicas/Confecciones-api/internal/application/apptest"
	"github.com/jhoicas/Confecciones-api/internal/application/assignments"
	"github.com/jhoicas/Confecciones-api/internal/application/auth"
	"github.com/jhoicas/Confecciones-api/internal/application/orders"
	"github.com/jhoicas/Confecciones-api/internal/application/reports"
	"github.com/jhoicas/Confecciones-api/internal/application/usecase"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/infrastructure/excel"
	"github.com/jhoicas/Confecciones-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Confecciones-api/internal/interfaces/http"
)

const testPassword = "secreto123"

// newRouterApp monta el router completo sobre repositorios en memoria.
func newRouterApp(t *testing.T) (*fiber.App, *apptest.Store) {
	t.Helper()
	s := apptest.NewStore()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	s.Users["u1"] = entity.User{ID: "u1", Username: "operario", Email: "op@taller.co", PasswordHash: string(hash), Roles: []string{"User"}, Active: true}
	s.Users["u2"] = entity.User{ID: "u2", Username: "costurera", Email: "cos@taller.co", PasswordHash: string(hash), Roles: []string{"User"}, Active: true}
	s.Customers["c1"] = entity.Customer{ID: "c1", Name: "Ana Gómez", DocumentType: "CC", DocumentNumber: "100", Email: "ana@correo.co"}
	s.Products["p1"] = entity.Product{ID: "p1", Code: "CAM-01", Name: "Camisa", BasePrice: decimal.NewFromInt(30000)}
	s.Tasks["t1"] = entity.Task{ID: "t1", Name: "Corte"}

	tx := apptest.NewTxRunner(s)
	orderUC := orders.NewOrderUseCase(s.OrderRepo(), s.CustomerRepo(), s.ProductRepo(), s.AssignmentRepo(), tx)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(s.UserRepo(),
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
			auth.LockoutPolicy{MaxFailedAttempts: 3, Lockout: 15 * time.Minute}),
		UserUC:       usecase.NewUserUseCase(s.UserRepo()),
		CustomerUC:   usecase.NewCustomerUseCase(s.CustomerRepo()),
		CatalogUC:    usecase.NewCatalogUseCase(s.CatalogRepo()),
		MaterialUC:   usecase.NewMaterialUseCase(s.MaterialRepo(), s.CatalogRepo()),
		ProductUC:    usecase.NewProductUseCase(s.ProductRepo(), s.CatalogRepo(), s.MaterialRepo()),
		TaskUC:       usecase.NewTaskUseCase(s.TaskRepo(), s.AssignmentRepo()),
		OrderUC:      orderUC,
		AssignmentUC: assignments.NewAssignmentUseCase(s.AssignmentRepo(), s.UserRepo(), s.ProductRepo(), s.TaskRepo(), tx),
		DashboardUC:  appanalytics.NewDashboardUseCase(s.AnalyticsRepo()),
		ReportUC: reports.NewReportUseCase(s.OrderRepo(), s.CustomerRepo(), s.AssignmentRepo(),
			pdf.NewMarotoOrderSheetGenerator("Confecciones de prueba"), excel.NewOrdersExporter()),
		JWTSecret: testJWTSecret,
	})
	return app, s
}

// call envía una petición JSON y decodifica la respuesta como mapa.
func call(t *testing.T, app *fiber.App, method, path, auth string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	resp := rawCall(t, app, method, path, auth, body)
	defer resp.Body.Close()
	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func rawCall(t *testing.T, app *fiber.App, method, path, auth string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "la respuesta debe traer data: %v", body)
	return data
}

func createOrder(t *testing.T, app *fiber.App, token string) string {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/orders", token, map[string]interface{}{
		"customer_id": "c1",
		"due_date":    time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"items":       []map[string]interface{}{{"product_id": "p1", "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, true, body["success"])
	return dataOf(t, body)["id"].(string)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenYPerfil(t *testing.T) {
	app, _ := newRouterApp(t)

	status, body := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"login": "OP@taller.co", "password": testPassword})
	require.Equal(t, http.StatusOK, status, body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	status, body = call(t, app, http.MethodGet, "/api/auth/me", "Bearer "+token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "operario", body["username"])
}

func TestLogin_BloqueoTrasIntentosFallidos(t *testing.T) {
	app, s := newRouterApp(t)
	wrong := map[string]string{"login": "operario", "password": "equivocado"}

	for i := 0; i < 2; i++ {
		status, body := call(t, app, http.MethodPost, "/api/auth/login", "", wrong)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "UNAUTHORIZED", body["code"])
	}
	status, body := call(t, app, http.MethodPost, "/api/auth/login", "", wrong)
	assert.Equal(t, http.StatusLocked, status)
	assert.Equal(t, "ACCOUNT_LOCKED", body["code"])

	// Bloqueada aun con el password correcto.
	status, _ = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"login": "operario", "password": testPassword})
	assert.Equal(t, http.StatusLocked, status)
	assert.NotNil(t, s.Users["u1"].LockoutEnd)
}

func TestUsers_SoloAdmin(t *testing.T) {
	app, _ := newRouterApp(t)

	status, _ := call(t, app, http.MethodGet, "/api/users", tokenFor(t, "u1", "User"), nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := call(t, app, http.MethodPost, "/api/users", tokenFor(t, "admin", "Admin"), map[string]interface{}{
		"username": "jefe", "email": "jefe@taller.co", "password": "clave-segura", "full_name": "Jefe", "roles": []string{"Manager"},
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, []interface{}{"Manager"}, dataOf(t, body)["roles"])
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_SobreYCodigos(t *testing.T) {
	app, _ := newRouterApp(t)
	token := tokenFor(t, "u1", "User")
	in := map[string]string{"name": "Luis", "document_type": "NIT", "document_number": "900", "email": "luis@correo.co"}

	status, body := call(t, app, http.MethodPost, "/api/customers", token, in)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "900", dataOf(t, body)["document_number"])

	status, body = call(t, app, http.MethodPost, "/api/customers", token, in)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "DUPLICATE", body["code"])

	status, body = call(t, app, http.MethodGet, "/api/customers/by-document/900", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Luis", body["name"])

	status, body = call(t, app, http.MethodGet, "/api/customers/by-email/nadie@correo.co", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/customers", token, map[string]string{"name": "X", "document_type": "RUT", "document_number": "1", "email": "x@y.co"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestCatalogs_TipoDesconocido(t *testing.T) {
	app, _ := newRouterApp(t)
	token := tokenFor(t, "u1", "User")

	status, _ := call(t, app, http.MethodGet, "/api/catalogs/sabores", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := call(t, app, http.MethodPost, "/api/catalogs/colores", token, map[string]string{"description": "Azul"})
	require.Equal(t, http.StatusCreated, status, body)
	status, _ = call(t, app, http.MethodPost, "/api/catalogs/colores", token, map[string]string{"description": "AZUL"})
	assert.Equal(t, http.StatusConflict, status)
}

func TestCustomers_EliminarConPedidos(t *testing.T) {
	app, _ := newRouterApp(t)
	token := tokenFor(t, "u1", "User")
	createOrder(t, app, token)

	status, body := call(t, app, http.MethodDelete, "/api/customers/c1", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "IN_USE", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_TransicionesDeEstado(t *testing.T) {
	app, s := newRouterApp(t)
	token := tokenFor(t, "u1", "User")
	id := createOrder(t, app, token)

	status, body := call(t, app, http.MethodPatch, "/api/orders/"+id+"/produce", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "INVALID_TRANSITION", body["code"])
	assert.Equal(t, entity.OrderPending, s.Orders[id].Status, "un rechazo no modifica el pedido")

	status, body = call(t, app, http.MethodPatch, "/api/orders/"+id+"/start", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(entity.OrderInProgress), dataOf(t, body)["status"])

	status, _ = call(t, app, http.MethodPatch, "/api/orders/"+id+"/status", token, map[string]int{"status": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, status, "no hay retrocesos")

	status, body = call(t, app, http.MethodPatch, "/api/orders/"+id+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cancelado", dataOf(t, body)["status_label"])

	status, _ = call(t, app, http.MethodPatch, "/api/orders/"+id+"/start", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status, "Cancelado es terminal")
}

func TestOrders_AvanceSinAsignaciones(t *testing.T) {
	app, _ := newRouterApp(t)
	token := tokenFor(t, "u1", "User")
	id := createOrder(t, app, token)

	status, body := call(t, app, http.MethodGet, "/api/orders/"+id+"/progress", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["total_assignments"])
	assert.Equal(t, "0", body["percent_complete"])
	assert.Equal(t, false, body["is_overdue"])

	status, _ = call(t, app, http.MethodGet, "/api/dashboard/progress/"+id, token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodGet, "/api/orders/no-existe/progress", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOrders_FiltroEstadoInvalido(t *testing.T) {
	app, _ := newRouterApp(t)
	status, body := call(t, app, http.MethodGet, "/api/orders?status=99", tokenFor(t, "u1", "User"), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestOrders_Documentos(t *testing.T) {
	app, _ := newRouterApp(t)
	token := tokenFor(t, "u1", "User")
	id := createOrder(t, app, token)

	resp := rawCall(t, app, http.MethodGet, "/api/orders/export.xlsx", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	xlsx, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(xlsx, []byte("PK")), "un xlsx es un zip")

	resp = rawCall(t, app, http.MethodGet, "/api/orders/"+id+"/pdf", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	doc, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAssignments_Autorizacion(t *testing.T) {
	app, s := newRouterApp(t)
	operario := tokenFor(t, "u1", "User")
	otro := tokenFor(t, "u2", "User")
	jefe := tokenFor(t, "m1", "Manager")
	in := map[string]string{"user_id": "u1", "product_id": "p1", "task_id": "t1"}

	status, _ := call(t, app, http.MethodPost, "/api/assignments", operario, in)
	assert.Equal(t, http.StatusForbidden, status, "solo supervisores asignan")

	status, body := call(t, app, http.MethodPost, "/api/assignments", jefe, in)
	require.Equal(t, http.StatusCreated, status, body)
	id := dataOf(t, body)["id"].(string)

	status, body = call(t, app, http.MethodPost, "/api/assignments", jefe, in)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", body["code"])

	status, body = call(t, app, http.MethodPatch, "/api/assignments/"+id+"/start", otro, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Equal(t, entity.AssignmentPending, s.Assignments[id].Status)

	status, body = call(t, app, http.MethodPatch, "/api/assignments/"+id+"/start", operario, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "En progreso", dataOf(t, body)["status_label"])

	status, _ = call(t, app, http.MethodPatch, "/api/assignments/"+id+"/status", operario, map[string]int{"status": 5})
	assert.Equal(t, http.StatusForbidden, status, "el cambio genérico es de supervisores")

	status, _ = call(t, app, http.MethodPatch, "/api/assignments/"+id+"/complete", operario, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, s.Assignments[id].EndAt)

	status, body = call(t, app, http.MethodPatch, "/api/assignments/"+id+"/status", jefe, map[string]int{"status": 2})
	assert.Equal(t, http.StatusUnprocessableEntity, status, "Completada es terminal")

	status, body = call(t, app, http.MethodDelete, "/api/assignments/"+id, jefe, nil)
	assert.Equal(t, http.StatusConflict, status, body)
}

func TestAssignments_BulkYListadoPropio(t *testing.T) {
	app, _ := newRouterApp(t)
	jefe := tokenFor(t, "m1", "Manager")

	status, body := call(t, app, http.MethodPost, "/api/assignments/bulk", jefe, map[string][]string{
		"user_ids": {"u1", "u2"}, "product_ids": {"p1"}, "task_ids": {"t1", "t1"},
	})
	require.Equal(t, http.StatusCreated, status, body)
	data := dataOf(t, body)
	assert.Equal(t, float64(2), data["created"])
	assert.Equal(t, float64(2), data["skipped"])

	// Un operario no puede listar las asignaciones de otro.
	status, body = call(t, app, http.MethodGet, "/api/assignments?user_id=u2", tokenFor(t, "u1", "User"), nil)
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "u1", items[0].(map[string]interface{})["user_id"])

	status, body = call(t, app, http.MethodGet, "/api/assignments?user_id=u2", jefe, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_Semestres(t *testing.T) {
	app, _ := newRouterApp(t)
	status, body := call(t, app, http.MethodGet, "/api/dashboard/semesters?year=2026", tokenFor(t, "u1", "User"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body, 6)
	assert.Contains(t, body, "2026-1")
	assert.Contains(t, body, "2024-2")

	status, _ = call(t, app, http.MethodGet, "/api/dashboard/semesters?year=-1", tokenFor(t, "u1", "User"), nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDashboard_Resumen(t *testing.T) {
	app, _ := newRouterApp(t)
	token := tokenFor(t, "u1", "User")
	createOrder(t, app, token)

	status, body := call(t, app, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Nil(t, body["next_order"], "un pedido Pendiente no es el próximo en curso")
	assert.Len(t, body["pending_orders"], 1)
	assert.Equal(t, float64(0), body["overdue_orders"])
}
