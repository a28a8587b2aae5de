package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginFlow(t *testing.T) {
	router, _ := setupRouter(t, "http://unused.local")
	registerUser(t, router)

	w := doJSON(router, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	w = doJSON(router, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router, _ := setupRouter(t, "http://unused.local")
	registerUser(t, router)

	w := doJSON(router, "POST", "/api/v1/auth/register", "", map[string]string{
		"name":     "Other",
		"username": "other",
		"email":    "test@example.com",
		"password": "password456",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_InvalidPayload(t *testing.T) {
	router, _ := setupRouter(t, "http://unused.local")

	w := doJSON(router, "POST", "/api/v1/auth/register", "", map[string]string{
		"name": "No Email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
