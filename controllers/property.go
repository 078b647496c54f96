package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/realestatehub/backend/models"
	"github.com/realestatehub/backend/store"
	"github.com/realestatehub/backend/utils"
)

const propertyCacheTTL = 10 * time.Minute

type PropertyRequest struct {
	Title        string          `json:"title" validate:"required,min=3"`
	Description  string          `json:"description" validate:"required,min=10"`
	Price        *float64        `json:"price" validate:"required,gte=0"`
	PropertyType string          `json:"propertyType" validate:"required,oneof=House Apartment Villa Plot"`
	Location     LocationRequest `json:"location"`
	Images       []string        `json:"images"`
	Status       string          `json:"status" validate:"omitempty,oneof=Available Sold Pending"`
}

type LocationRequest struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required,numeric,min=5,max=6"`
}

type UpdatePropertyRequest struct {
	Title        *string          `json:"title" validate:"omitempty,min=3"`
	Description  *string          `json:"description" validate:"omitempty,min=10"`
	Price        *float64         `json:"price" validate:"omitempty,gte=0"`
	PropertyType *string          `json:"propertyType" validate:"omitempty,oneof=House Apartment Villa Plot"`
	Location     *LocationRequest `json:"location"`
	Images       *[]string        `json:"images"`
	Status       *string          `json:"status" validate:"omitempty,oneof=Available Sold Pending"`
}

func CreateProperty(properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req PropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}

		status := req.Status
		if status == "" {
			status = models.PropertyStatusAvailable
		}

		property := &models.Property{
			Title:        req.Title,
			Description:  req.Description,
			Price:        *req.Price,
			PropertyType: req.PropertyType,
			Location: models.Location{
				Address: req.Location.Address,
				City:    req.Location.City,
				State:   req.Location.State,
				Pincode: req.Location.Pincode,
			},
			Images:    req.Images,
			Owner:     caller.ID,
			Status:    status,
			CreatedAt: time.Now(),
		}

		if err := properties.Insert(r.Context(), property); err != nil {
			respondError(w, http.StatusInternalServerError, "Error creating property", err)
			return
		}

		go deletePropertyCache(redisClient)

		respondData(w, http.StatusCreated, "Property added successfully", property)
	}
}

func GetAllProperties(properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cacheKey := propertyCacheKey("list", r.URL.Query())
		if writeCached(w, r.Context(), redisClient, cacheKey) {
			return
		}

		page := parsePage(r, 10)
		list, total, err := properties.List(r.Context(), page)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error fetching properties", err)
			return
		}

		writeAndCache(w, r.Context(), redisClient, cacheKey, pageResponse(list, len(list), total, page))
	}
}

func GetPropertyByID(properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseObjectID(mux.Vars(r)["id"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		property, err := properties.FindByID(r.Context(), id)
		if err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "Property not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error fetching property", err)
			return
		}

		respondData(w, http.StatusOK, "", property)
	}
}

func UpdateProperty(properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id, ok := parseObjectID(mux.Vars(r)["id"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		var req UpdatePropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}

		property, err := properties.FindByID(r.Context(), id)
		if err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "Property not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error updating property", err)
			return
		}

		if property.Owner != caller.ID && !caller.IsAdmin() {
			respondError(w, http.StatusForbidden, "You don't have permission to update this property")
			return
		}

		update := models.PropertyUpdate{
			Title:        req.Title,
			Description:  req.Description,
			Price:        req.Price,
			PropertyType: req.PropertyType,
			Images:       req.Images,
			Status:       req.Status,
		}
		if req.Location != nil {
			update.Location = &models.Location{
				Address: req.Location.Address,
				City:    req.Location.City,
				State:   req.Location.State,
				Pincode: req.Location.Pincode,
			}
		}

		updated, err := properties.Update(r.Context(), id, update)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error updating property", err)
			return
		}

		go deletePropertyCache(redisClient)

		respondData(w, http.StatusOK, "Property updated successfully", updated)
	}
}

func DeleteProperty(properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id, ok := parseObjectID(mux.Vars(r)["id"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		property, err := properties.FindByID(r.Context(), id)
		if err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "Property not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error deleting property", err)
			return
		}

		if property.Owner != caller.ID && !caller.IsAdmin() {
			respondError(w, http.StatusForbidden, "You don't have permission to delete this property")
			return
		}

		if err := properties.Delete(r.Context(), id); err != nil {
			respondError(w, http.StatusInternalServerError, "Error deleting property", err)
			return
		}

		go deletePropertyCache(redisClient)

		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Property deleted successfully"})
	}
}

// SearchProperties builds a conjunctive filter from the optional query
// parameters; unspecified filters are omitted entirely.
func SearchProperties(properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filter := models.PropertyFilter{
			Keyword:      query.Get("keyword"),
			PropertyType: query.Get("propertyType"),
			City:         query.Get("city"),
			State:        query.Get("state"),
			Status:       query.Get("status"),
		}
		if raw := query.Get("minPrice"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid minPrice")
				return
			}
			filter.MinPrice = &v
		}
		if raw := query.Get("maxPrice"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid maxPrice")
				return
			}
			filter.MaxPrice = &v
		}

		cacheKey := propertyCacheKey("search", query)
		if writeCached(w, r.Context(), redisClient, cacheKey) {
			return
		}

		page := parsePage(r, 10)
		list, total, err := properties.Search(r.Context(), filter, page)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error searching properties", err)
			return
		}

		writeAndCache(w, r.Context(), redisClient, cacheKey, pageResponse(list, len(list), total, page))
	}
}

// propertyCacheKey hashes the sorted query string so equivalent requests
// share a cache entry.
func propertyCacheKey(kind string, queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(kind)
	sb.WriteString(":")
	for _, key := range keys {
		values := queryParams[key]
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return "property:" + hex.EncodeToString(sum[:])
}

// writeCached serves the response from Redis when present. A nil client
// always misses.
func writeCached(w http.ResponseWriter, ctx context.Context, redisClient *redis.Client, cacheKey string) bool {
	if redisClient == nil {
		return false
	}

	cached, err := redisClient.Get(ctx, cacheKey).Result()
	if err == nil {
		utils.Logger.Debugf("Cache hit for key %s", cacheKey)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return true
	}
	if err != redis.Nil {
		utils.Logger.Warnf("Redis GET error for key %s: %v", cacheKey, err)
	}
	return false
}

func writeAndCache(w http.ResponseWriter, ctx context.Context, redisClient *redis.Client, cacheKey string, resp Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to encode response", err)
		return
	}

	if redisClient != nil {
		if err := redisClient.Set(ctx, cacheKey, body, propertyCacheTTL).Err(); err != nil {
			utils.Logger.Warnf("Failed to cache response for key %s: %v", cacheKey, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// deletePropertyCache drops every cached property listing after a mutation.
func deletePropertyCache(redisClient *redis.Client) {
	if redisClient == nil {
		return
	}

	ctx := context.Background()
	const scanPattern = "property:*"
	const scanCount = 100

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = redisClient.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			utils.Logger.Warnf("Redis SCAN error for pattern %s: %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := redisClient.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		utils.Logger.Warnf("Failed deleting %d property cache keys: %v", len(keysToDelete), err)
		return
	}
	utils.Logger.Debugf("Property cache invalidated, %d keys deleted", len(keysToDelete))
}
