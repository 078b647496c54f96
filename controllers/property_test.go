package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreatePropertyRequiresAuth(t *testing.T) {
	router, _ := newTestEnv(t)

	rec := doJSON(t, router, http.MethodPost, "/api/properties", "", map[string]string{
		"title": "No Auth House",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndGetProperty(t *testing.T) {
	router, _ := newTestEnv(t)

	token, ownerID := registerUser(t, router, "Owner", "owner@x.com", "Secret123", "Agent")
	id := createProperty(t, router, token, "Sea View House", 250000)

	rec := doJSON(t, router, http.MethodGet, "/api/properties/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := dataField(t, decodeBody(t, rec))
	assert.Equal(t, "Sea View House", data["title"])
	assert.Equal(t, "Available", data["status"])
	assert.Equal(t, ownerID, data["owner"])
}

func TestGetPropertyNotFound(t *testing.T) {
	router, _ := newTestEnv(t)

	rec := doJSON(t, router, http.MethodGet, "/api/properties/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/properties/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPropertiesPagination(t *testing.T) {
	router, _ := newTestEnv(t)

	token, _ := registerUser(t, router, "Owner", "pages@x.com", "Secret123", "")
	for i := 0; i < 5; i++ {
		createProperty(t, router, token, fmt.Sprintf("House %d", i), float64(100000+i))
	}

	rec := doJSON(t, router, http.MethodGet, "/api/properties?page=1&limit=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, float64(5), body["totalCount"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(3), body["pages"])

	// Newest first: the last house created leads the first page.
	list, ok := body["data"].([]interface{})
	require.True(t, ok)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "House 4", first["title"])
}

func TestUpdatePropertyOwnership(t *testing.T) {
	router, _ := newTestEnv(t)

	ownerToken, _ := registerUser(t, router, "Owner", "own@x.com", "Secret123", "")
	otherToken, _ := registerUser(t, router, "Other", "other@x.com", "Secret123", "")
	adminToken, _ := registerUser(t, router, "Admin", "admin@x.com", "Secret123", "Admin")

	id := createProperty(t, router, ownerToken, "Family Home", 300000)

	// Non-owner, non-admin is forbidden.
	rec := doJSON(t, router, http.MethodPut, "/api/properties/"+id, otherToken, map[string]interface{}{
		"price": 1.0,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Owner may update.
	rec = doJSON(t, router, http.MethodPut, "/api/properties/"+id, ownerToken, map[string]interface{}{
		"price":  350000.0,
		"status": "Pending",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataField(t, decodeBody(t, rec))
	assert.Equal(t, float64(350000), data["price"])
	assert.Equal(t, "Pending", data["status"])

	// Admin may update anyone's listing.
	rec = doJSON(t, router, http.MethodPut, "/api/properties/"+id, adminToken, map[string]interface{}{
		"status": "Sold",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeletePropertyOwnership(t *testing.T) {
	router, _ := newTestEnv(t)

	ownerToken, _ := registerUser(t, router, "Owner", "delown@x.com", "Secret123", "")
	otherToken, _ := registerUser(t, router, "Other", "delother@x.com", "Secret123", "")

	id := createProperty(t, router, ownerToken, "Doomed House", 100000)

	rec := doJSON(t, router, http.MethodDelete, "/api/properties/"+id, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/properties/"+id, ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/properties/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchProperties(t *testing.T) {
	router, _ := newTestEnv(t)

	token, _ := registerUser(t, router, "Owner", "search@x.com", "Secret123", "")
	createProperty(t, router, token, "Cheap Cottage", 50000)
	createProperty(t, router, token, "Mid Range Home", 150000)
	createProperty(t, router, token, "Luxury Palace", 900000)

	// No filters returns everything, newest first.
	rec := doJSON(t, router, http.MethodGet, "/api/search", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["totalCount"])
	list := body["data"].([]interface{})
	assert.Equal(t, "Luxury Palace", list[0].(map[string]interface{})["title"])

	// Price range is inclusive on both ends.
	rec = doJSON(t, router, http.MethodGet, "/api/search?minPrice=50000&maxPrice=150000", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, float64(2), body["totalCount"])

	// Keyword matches title or description, case-insensitive.
	rec = doJSON(t, router, http.MethodGet, "/api/search?keyword=luxury", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, float64(1), body["totalCount"])

	// Unknown type matches nothing, absent filters are not false-matched.
	rec = doJSON(t, router, http.MethodGet, "/api/search?propertyType=apartment", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, float64(0), body["totalCount"])

	rec = doJSON(t, router, http.MethodGet, "/api/search?propertyType=house&city=mum", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, float64(3), body["totalCount"])

	rec = doJSON(t, router, http.MethodGet, "/api/search?minPrice=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
