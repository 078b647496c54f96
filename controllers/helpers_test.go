package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/realestatehub/backend/routes"
	"github.com/realestatehub/backend/store"
	"github.com/realestatehub/backend/utils"
)

// newTestEnv wires the real router to the in-memory store, no Redis.
func newTestEnv(t *testing.T) (*mux.Router, *store.Store) {
	t.Helper()
	utils.InitJWT("test-secret", time.Hour)

	st := store.NewMemoryStore()
	router := mux.NewRouter()
	routes.Routes(router, st, nil)
	return router, st
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// dataField returns body["data"] as an object.
func dataField(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "expected data object in response, got %v", body)
	return data
}

// registerUser registers through the API and returns the token and user id.
func registerUser(t *testing.T, router *mux.Router, name, email, password, role string) (string, string) {
	t.Helper()

	payload := map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
	}
	if role != "" {
		payload["role"] = role
	}

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code, "register failed: %s", rec.Body.String())

	data := dataField(t, decodeBody(t, rec))
	token, _ := data["token"].(string)
	user, _ := data["user"].(map[string]interface{})
	id, _ := user["id"].(string)
	require.NotEmpty(t, token)
	require.NotEmpty(t, id)
	return token, id
}

// createProperty creates a listing owned by the token's user, returning its id.
func createProperty(t *testing.T, router *mux.Router, token, title string, price float64) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/properties", token, map[string]interface{}{
		"title":        title,
		"description":  "A lovely place with plenty of room and light.",
		"price":        price,
		"propertyType": "House",
		"location": map[string]string{
			"address": "12 Test Lane",
			"city":    "Mumbai",
			"state":   "Maharashtra",
			"pincode": "400001",
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, "create property failed: %s", rec.Body.String())

	data := dataField(t, decodeBody(t, rec))
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func futureVisitDate() string {
	return time.Now().Add(48 * time.Hour).Format(time.RFC3339)
}

// bookProperty files a booking inquiry and returns its id.
func bookProperty(t *testing.T, router *mux.Router, token, propertyID string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/bookings", token, map[string]interface{}{
		"property":  propertyID,
		"fullName":  "Test Visitor",
		"email":     "visitor@example.com",
		"phone":     "9876543210",
		"message":   "I would like to schedule a visit please.",
		"visitDate": futureVisitDate(),
	})
	require.Equal(t, http.StatusCreated, rec.Code, "book property failed: %s", rec.Body.String())

	data := dataField(t, decodeBody(t, rec))
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}
