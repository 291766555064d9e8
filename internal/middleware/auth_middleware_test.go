package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtPkg "github.com/celebra-app/celebra-backend/pkg/jwt"
)

func newTestApp(tokens *jwtPkg.Manager, policy Policy) *fiber.App {
	app := fiber.New()
	app.Get("/protected", Authenticate(tokens, policy), func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		return c.JSON(fiber.Map{"userId": p.UserID, "admin": p.Admin})
	})
	app.Get("/admin", Authenticate(tokens, policy), RequireAdmin(policy), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	app := newTestApp(jwtPkg.NewManager("test-secret"), Policy{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	app := newTestApp(jwtPkg.NewManager("test-secret"), Policy{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	app := newTestApp(jwtPkg.NewManager("test-secret"), Policy{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateRejectsForeignToken(t *testing.T) {
	app := newTestApp(jwtPkg.NewManager("test-secret"), Policy{})

	// Signed with a different secret.
	token, err := jwtPkg.NewManager("other-secret").GenerateToken("user-1", "user@example.com", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	tokens := jwtPkg.NewManager("test-secret")
	app := newTestApp(tokens, Policy{})

	token, err := tokens.GenerateToken("user-1", "user@example.com", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthenticateBypass(t *testing.T) {
	app := newTestApp(jwtPkg.NewManager("test-secret"), Policy{Bypass: true})

	// No header at all; the bypass principal carries the request.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	tokens := jwtPkg.NewManager("test-secret")
	app := newTestApp(tokens, Policy{})

	userToken, err := tokens.GenerateToken("user-1", "user@example.com", false)
	require.NoError(t, err)
	adminToken, err := tokens.GenerateToken("admin-1", "admin@example.com", true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
