package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/pkg/jwt"
)

const (
	testJWTSecret = "test-secret"
	testUserID    = "user-42"
	testFullName  = "Sam Carter"
	testIssuer    = "kristalball-test"
)

func buildTestApp(roles ...string) *fiber.App {
	app := fiber.New()
	grp := app.Group("/", AuthMiddleware(testJWTSecret))
	handlers := []fiber.Handler{}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   GetUserID(c),
			"full_name": GetFullName(c),
			"role":      GetRole(c),
		})
	})
	grp.Get("/protected", handlers...)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testJWTSecret, testUserID, testFullName, role, testIssuer, 15)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, token string) (*http.Response, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]string
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &out))
	}
	return resp, out
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testFullName, body["full_name"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "not.a.jwt")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	app := buildTestApp()

	token, err := jwt.Generate(testJWTSecret, testUserID, testFullName, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	resp, body := doRequest(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := buildTestApp()

	token, err := jwt.Generate("other-secret", testUserID, testFullName, entity.RoleAdmin, testIssuer, 15)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_Allowed(t *testing.T) {
	app := buildTestApp(entity.RoleLogisticsOfficer)

	resp, _ := doRequest(t, app, tokenForRole(t, entity.RoleLogisticsOfficer))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_AnyOfSeveral(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleBaseCommander)

	resp, _ := doRequest(t, app, tokenForRole(t, entity.RoleBaseCommander))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_WrongRole(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doRequest(t, app, tokenForRole(t, entity.RoleBaseCommander))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRole_EmptyRoleClaim(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doRequest(t, app, tokenForRole(t, ""))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}

func TestJWT_GenerateParseRoundTrip(t *testing.T) {
	token, err := jwt.Generate(testJWTSecret, testUserID, testFullName, entity.RoleAdmin, testIssuer, 15)
	require.NoError(t, err)

	userID, fullName, role, err := jwt.Parse(testJWTSecret, token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testFullName, fullName)
	assert.Equal(t, entity.RoleAdmin, role)
}
