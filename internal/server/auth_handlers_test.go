package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	app, _ := newTestApp(t)

	var adaToken string

	t.Run("returns id and a long opaque token", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
			"username": "ada",
			"password": "password123",
		})
		require.Equal(t, http.StatusCreated, status)
		assert.NotZero(t, body["id"])

		adaToken, _ = body["accessToken"].(string)
		assert.GreaterOrEqual(t, len(adaToken), 32)
		assert.NotContains(t, body, "password")
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
			"username": "ada",
			"password": "different",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["message"])

		// the original registration's token still works
		status, _ = doJSON(t, app, http.MethodGet, "/secrets", adaToken, nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
			"username": "no-password",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, false, body["success"])
	})
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)
	_, registrationToken := registerUser(t, app, "lin")

	t.Run("valid credentials return the registration token", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/login", "", map[string]string{
			"username": "lin",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, registrationToken, body["accessToken"],
			"login must hand back the token issued at registration")
	})

	t.Run("wrong password", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/login", "", map[string]string{
			"username": "lin",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, false, body["success"])
	})

	t.Run("unknown user gets the same generic failure", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/login", "", map[string]string{
			"username": "ghost",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, false, body["success"])
	})
}

func TestSecretsRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)
	_, token := registerUser(t, app, "keeper")

	t.Run("valid token", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/secrets", token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "keeper", body["username"])
	})

	t.Run("missing token", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/secrets", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "UNAUTHENTICATED", body["code"])
	})

	t.Run("garbage token", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodGet, "/secrets", "not-a-real-token", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
