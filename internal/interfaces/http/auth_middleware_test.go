package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-prueba"

func newProtectedApp(t *testing.T, roles ...string) *fiber.App {
	t.Helper()
	app := fiber.New()
	handlers := []fiber.Handler{AuthMiddleware(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	app.Get("/protegida", handlers...)
	return app
}

func bearerToken(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, userID, role, "salon-pos", 60)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware_SinHeaderDevuelve401(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protegida", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalidoDevuelve401(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalidoDevuelve401(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer token-basura")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpiradoDevuelve401(t *testing.T) {
	app := newProtectedApp(t)
	expired, err := jwt.Generate(testSecret, "user-1", entity.RoleStaff, "salon-pos", -5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValidoPasaYPropagaLocals(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-1", entity.RoleStaff))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_AdminPuedeEntrar(t *testing.T) {
	app := newProtectedApp(t, entity.RoleAdmin)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-1", entity.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_StaffEnRutaAdminDevuelve403(t *testing.T) {
	app := newProtectedApp(t, entity.RoleAdmin)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-2", entity.RoleStaff))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := newProtectedApp(t, entity.RoleAdmin, entity.RoleStaff)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-2", entity.RoleStaff))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
