package controllers

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/realestatehub/backend/models"
	"github.com/realestatehub/backend/store"
)

type ReviewRequest struct {
	Property string `json:"property" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"required,min=5"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,min=5"`
}

func CreateReview(reviews store.ReviewStore, properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req ReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}

		propertyID, ok := parseObjectID(req.Property)
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		if _, err := properties.FindByID(r.Context(), propertyID); err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "Property not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error creating review", err)
			return
		}

		exists, err := reviews.Exists(r.Context(), propertyID, caller.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error creating review", err)
			return
		}
		if exists {
			respondError(w, http.StatusBadRequest, "You have already reviewed this property")
			return
		}

		review := &models.Review{
			Property:  propertyID,
			User:      caller.ID,
			Rating:    req.Rating,
			Comment:   req.Comment,
			CreatedAt: time.Now(),
		}

		if err := reviews.Insert(r.Context(), review); err != nil {
			respondError(w, http.StatusInternalServerError, "Error creating review", err)
			return
		}

		respondData(w, http.StatusCreated, "Review created successfully", review)
	}
}

func GetAllReviews(reviews store.ReviewStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var property *primitive.ObjectID
		if raw := r.URL.Query().Get("property"); raw != "" {
			id, ok := parseObjectID(raw)
			if !ok {
				respondError(w, http.StatusBadRequest, "Invalid property ID")
				return
			}
			property = &id
		}

		page := parsePage(r, 10)
		list, total, err := reviews.List(r.Context(), property, page)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error fetching reviews", err)
			return
		}

		resp := pageResponse(list, len(list), total, page)
		avg := averageRating(list)
		resp.AverageRating = &avg
		respondJSON(w, http.StatusOK, resp)
	}
}

func GetReviewByID(reviews store.ReviewStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseObjectID(mux.Vars(r)["id"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid review ID")
			return
		}

		review, err := reviews.FindByID(r.Context(), id)
		if err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "Review not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error fetching review", err)
			return
		}

		respondData(w, http.StatusOK, "", review)
	}
}

func UpdateReview(reviews store.ReviewStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id, ok := parseObjectID(mux.Vars(r)["id"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid review ID")
			return
		}

		var req UpdateReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}

		review, err := reviews.FindByID(r.Context(), id)
		if err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "Review not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error updating review", err)
			return
		}

		if review.User != caller.ID && !caller.IsAdmin() {
			respondError(w, http.StatusForbidden, "You don't have permission to update this review")
			return
		}

		updated, err := reviews.Update(r.Context(), id, models.ReviewUpdate{
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error updating review", err)
			return
		}

		respondData(w, http.StatusOK, "Review updated successfully", updated)
	}
}

func DeleteReview(reviews store.ReviewStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id, ok := parseObjectID(mux.Vars(r)["id"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid review ID")
			return
		}

		review, err := reviews.FindByID(r.Context(), id)
		if err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "Review not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error deleting review", err)
			return
		}

		if review.User != caller.ID && !caller.IsAdmin() {
			respondError(w, http.StatusForbidden, "You don't have permission to delete this review")
			return
		}

		if err := reviews.Delete(r.Context(), id); err != nil {
			respondError(w, http.StatusInternalServerError, "Error deleting review", err)
			return
		}

		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Review deleted successfully"})
	}
}

// GetReviewsByProperty returns a page of reviews for one property plus the
// mean rating over that page, rounded to one decimal.
func GetReviewsByProperty(reviews store.ReviewStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID, ok := parseObjectID(mux.Vars(r)["propertyId"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		page := parsePage(r, 5)
		list, total, err := reviews.List(r.Context(), &propertyID, page)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error fetching reviews", err)
			return
		}

		resp := pageResponse(list, len(list), total, page)
		avg := averageRating(list)
		resp.AverageRating = &avg
		respondJSON(w, http.StatusOK, resp)
	}
}

// averageRating is the arithmetic mean over the given page of reviews,
// rounded to one decimal; 0 when the page is empty.
func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}
