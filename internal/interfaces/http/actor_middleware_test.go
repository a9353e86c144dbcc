package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/resto-inventario/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/resto-inventario/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testActorID   = "00000000-0000-0000-0000-000000000001"
	testActorName = "Chef Ana"
	testIssuer    = "resto-inventario-test"
	testExpMin    = 60
)

// buildTestApp aplicación Fiber mínima: ActorMiddleware más un handler que
// expone la identidad extraída a locals.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", apphttp.ActorMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"actor_id":   apphttp.GetActorID(c),
			"actor_name": apphttp.GetActorName(c),
		})
	})
	return app
}

func actorToken(t *testing.T, actorID, actorName string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, actorID, actorName, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ActorMiddleware — extracción de identidad para la pista de auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestActorMiddleware_ExtraeIdentidad(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, actorToken(t, testActorID, testActorName))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testActorID, body["actor_id"])
	assert.Equal(t, testActorName, body["actor_name"])
}

func TestActorMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestActorMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Token abc123") // esquema distinto de Bearer
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestActorMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestActorMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-distinto", testActorID, testActorName, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp()
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testActorID, testActorName, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	actorID, actorName, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testActorID, actorID)
	assert.Equal(t, testActorName, actorName)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testActorID, testActorName, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}
