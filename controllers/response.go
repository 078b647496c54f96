package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/realestatehub/backend/models"
	"github.com/realestatehub/backend/store"
	"github.com/realestatehub/backend/utils"
)

type ContextKey string

// CallerKey carries the authenticated models.Caller through the request
// context, set once by the auth middleware.
const CallerKey = ContextKey("caller")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Mirrors the registration rule: at least one uppercase letter,
	// one lowercase letter and one digit.
	_ = v.RegisterValidation("strongpw", func(fl validator.FieldLevel) bool {
		var upper, lower, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return upper && lower && digit
	})
	return v
}

// Response is the uniform JSON envelope every endpoint writes.
type Response struct {
	Success       bool        `json:"success"`
	Message       string      `json:"message,omitempty"`
	Data          interface{} `json:"data,omitempty"`
	Token         string      `json:"token,omitempty"`
	Count         *int        `json:"count,omitempty"`
	TotalCount    *int64      `json:"totalCount,omitempty"`
	Page          *int        `json:"page,omitempty"`
	Pages         *int        `json:"pages,omitempty"`
	AverageRating *float64    `json:"averageRating,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// respondError writes the failure envelope with a public message. The
// optional internal error is logged, never surfaced.
func respondError(w http.ResponseWriter, status int, message string, devErrs ...error) {
	if len(devErrs) > 0 && devErrs[0] != nil {
		utils.Logger.WithFields(logrus.Fields{
			"status": status,
			"error":  devErrs[0].Error(),
		}).Error(message)
	}
	respondJSON(w, status, Response{Success: false, Message: message})
}

func respondData(w http.ResponseWriter, status int, message string, data interface{}) {
	respondJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// pageResponse builds the envelope for a paginated result set.
func pageResponse(data interface{}, count int, total int64, page store.Page) Response {
	pages := page.Pages(total)
	return Response{
		Success:    true,
		Data:       data,
		Count:      &count,
		TotalCount: &total,
		Page:       &page.Number,
		Pages:      &pages,
	}
}

// callerFrom extracts the authenticated caller placed by the middleware.
func callerFrom(r *http.Request) (models.Caller, bool) {
	caller, ok := r.Context().Value(CallerKey).(models.Caller)
	return caller, ok
}

// parsePage reads the page/limit query parameters, 1-based, defaulting to
// page 1 with the given limit.
func parsePage(r *http.Request, defaultLimit int) store.Page {
	page := store.Page{Number: 1, Limit: defaultLimit}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page.Number = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		page.Limit = v
	}
	return page
}

func parseObjectID(raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	return id, err == nil
}
