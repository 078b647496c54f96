package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsLifecycle(t *testing.T) {
	router, _ := newTestEnv(t)

	userToken, _ := registerUser(t, router, "User", "stuser@x.com", "Secret123", "")
	adminToken, _ := registerUser(t, router, "Admin", "stadmin@x.com", "Secret123", "Admin")

	// Nothing configured yet.
	rec := doJSON(t, router, http.MethodGet, "/api/settings", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Only admins may write settings.
	rec = doJSON(t, router, http.MethodPut, "/api/settings", userToken, map[string]interface{}{
		"siteName": "Not Allowed",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// First update creates the record, filling defaults for absent fields.
	rec = doJSON(t, router, http.MethodPut, "/api/settings", adminToken, map[string]interface{}{
		"contactEmail":    "hello@example.com",
		"maintenanceMode": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := dataField(t, decodeBody(t, rec))
	assert.Equal(t, "Real Estate Hub", data["siteName"])
	assert.Equal(t, "hello@example.com", data["contactEmail"])
	assert.Equal(t, true, data["maintenanceMode"])

	// Partial update keeps what it does not mention.
	rec = doJSON(t, router, http.MethodPut, "/api/settings", adminToken, map[string]interface{}{
		"siteName": "Hub Deluxe",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data = dataField(t, decodeBody(t, rec))
	assert.Equal(t, "Hub Deluxe", data["siteName"])
	assert.Equal(t, "hello@example.com", data["contactEmail"])
	assert.Equal(t, true, data["maintenanceMode"])

	// Explicit false is not treated as absent.
	rec = doJSON(t, router, http.MethodPut, "/api/settings", adminToken, map[string]interface{}{
		"maintenanceMode": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data = dataField(t, decodeBody(t, rec))
	assert.Equal(t, false, data["maintenanceMode"])
	assert.Equal(t, "Hub Deluxe", data["siteName"])

	// Anyone can read.
	rec = doJSON(t, router, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = dataField(t, decodeBody(t, rec))
	assert.Equal(t, "Hub Deluxe", data["siteName"])

	// Reset removes the record entirely.
	rec = doJSON(t, router, http.MethodDelete, "/api/settings", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Settings reset to default", decodeBody(t, rec)["message"])

	rec = doJSON(t, router, http.MethodGet, "/api/settings", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateSettingsValidation(t *testing.T) {
	router, _ := newTestEnv(t)

	adminToken, _ := registerUser(t, router, "Admin", "stvadmin@x.com", "Secret123", "Admin")

	rec := doJSON(t, router, http.MethodPut, "/api/settings", adminToken, map[string]interface{}{
		"contactEmail": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
