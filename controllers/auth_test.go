package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	router, st := newTestEnv(t)

	token, id := registerUser(t, router, "Alice", "a@x.com", "Secret123", "")
	assert.NotEmpty(t, token)

	// The stored password must be a hash, never the plaintext.
	user, err := st.Users.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", user.Password)
	assert.Equal(t, "User", user.Role)
	assert.Equal(t, id, user.ID.Hex())

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "Secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataField(t, decodeBody(t, rec))
	assert.NotEmpty(t, data["token"])

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "Wrong1234",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newTestEnv(t)

	registerUser(t, router, "Alice", "dup@x.com", "Secret123", "")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Other Alice",
		"email":    "dup@x.com",
		"password": "Secret456",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterWeakPassword(t *testing.T) {
	router, _ := newTestEnv(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Bob",
		"email":    "bob@x.com",
		"password": "alllowercase1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	router, _ := newTestEnv(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "Secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfile(t *testing.T) {
	router, _ := newTestEnv(t)

	token, id := registerUser(t, router, "Alice", "profile@x.com", "Secret123", "")
	propertyID := createProperty(t, router, token, "Profile House", 100000)
	bookProperty(t, router, token, propertyID)

	rec := doJSON(t, router, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := dataField(t, decodeBody(t, rec))
	assert.Equal(t, id, data["id"])
	assert.Equal(t, "profile@x.com", data["email"])
	assert.NotContains(t, data, "password")

	bookings, ok := data["bookings"].([]interface{})
	require.True(t, ok, "expected bookings in profile: %v", data)
	assert.Len(t, bookings, 1)
}

func TestProfileRequiresToken(t *testing.T) {
	router, _ := newTestEnv(t)

	rec := doJSON(t, router, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := doJSON(t, router, http.MethodGet, "/api/auth/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, req.Code)
}
