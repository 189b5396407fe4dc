package jwt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp() *fiber.App {
	app := fiber.New()
	app.Use(NewAuthMiddleware("secret", "hr-service"))
	app.Get("/me", func(c *fiber.Ctx) error {
		id, admin := Principal(c)
		return c.JSON(fiber.Map{"id": id.String(), "admin": admin})
	})
	return app
}

func call(t *testing.T, app *fiber.App, header string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestMiddleware_AcceptsValidToken(t *testing.T) {
	sub := uuid.New()
	token, err := NewGenerator("secret", "hr-service", time.Hour).Generate(context.Background(), sub, true)
	require.NoError(t, err)
	app := testApp()

	for _, h := range []string{"Bearer " + token, "bearer " + token, token} {
		code, body := call(t, app, h)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, sub.String(), body["id"])
		assert.Equal(t, true, body["admin"])
	}
}

func TestMiddleware_Rejects(t *testing.T) {
	sub := uuid.New()
	wrongIssuer, _ := NewGenerator("secret", "other", time.Hour).Generate(context.Background(), sub, false)
	wrongKey, _ := NewGenerator("nope", "hr-service", time.Hour).Generate(context.Background(), sub, false)
	expired, _ := NewGenerator("secret", "hr-service", -time.Minute).Generate(context.Background(), sub, false)

	tests := []struct {
		name   string
		header string
		msg    string
	}{
		{name: "missing", header: "", msg: "missing Authorization header"},
		{name: "empty bearer", header: "Bearer   ", msg: "empty token"},
		{name: "garbage", header: "Bearer abc.def.ghi", msg: ErrInvalidToken.Error()},
		{name: "wrong issuer", header: "Bearer " + wrongIssuer, msg: ErrInvalidIssuer.Error()},
		{name: "wrong key", header: "Bearer " + wrongKey, msg: ErrInvalidToken.Error()},
		{name: "expired", header: "Bearer " + expired, msg: ErrInvalidToken.Error()},
	}
	app := testApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := call(t, app, tt.header)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, tt.msg, body["message"])
		})
	}
}
