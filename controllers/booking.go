package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/realestatehub/backend/models"
	"github.com/realestatehub/backend/store"
)

type BookingRequest struct {
	Property  string `json:"property" validate:"required"`
	FullName  string `json:"fullName" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,len=10,numeric"`
	Message   string `json:"message" validate:"required,min=10"`
	VisitDate string `json:"visitDate" validate:"required"`
}

func BookProperty(bookings store.BookingStore, properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req BookingRequest
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

		visitDate, err := time.Parse(time.RFC3339, req.VisitDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Valid date format required")
			return
		}
		if !visitDate.After(time.Now()) {
			respondError(w, http.StatusBadRequest, "Visit date must be in the future")
			return
		}

		if _, err := properties.FindByID(r.Context(), propertyID); err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "Property not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error creating booking", err)
			return
		}

		pending, err := bookings.HasPending(r.Context(), propertyID, caller.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error creating booking", err)
			return
		}
		if pending {
			respondError(w, http.StatusConflict, "You already have a pending booking for this property")
			return
		}

		booking := &models.BookingInquiry{
			Property:  propertyID,
			User:      caller.ID,
			FullName:  req.FullName,
			Email:     req.Email,
			Phone:     req.Phone,
			Message:   req.Message,
			VisitDate: visitDate,
			Status:    models.BookingStatusPending,
			CreatedAt: time.Now(),
		}

		if err := bookings.Insert(r.Context(), booking); err != nil {
			respondError(w, http.StatusInternalServerError, "Error creating booking", err)
			return
		}

		respondData(w, http.StatusCreated, "Booking created successfully", booking)
	}
}

// GetBookings lists booking inquiries. Non-Admin callers always see only
// their own, regardless of the requested filter; Admins see everything,
// optionally filtered by status.
func GetBookings(bookings store.BookingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		filter := models.BookingFilter{}
		if caller.IsAdmin() {
			filter.Status = r.URL.Query().Get("status")
		} else {
			filter.User = &caller.ID
		}

		page := parsePage(r, 10)
		list, total, err := bookings.List(r.Context(), filter, page)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error fetching bookings", err)
			return
		}

		respondJSON(w, http.StatusOK, pageResponse(list, len(list), total, page))
	}
}

// ApproveBooking transitions a Pending inquiry to Approved. Admin only,
// enforced by the route middleware.
func ApproveBooking(bookings store.BookingStore) http.HandlerFunc {
	return transitionBooking(bookings, models.BookingStatusApproved)
}

// RejectBooking transitions a Pending inquiry to Rejected. Admin only,
// enforced by the route middleware.
func RejectBooking(bookings store.BookingStore) http.HandlerFunc {
	return transitionBooking(bookings, models.BookingStatusRejected)
}

// transitionBooking applies a terminal Pending -> target transition. Any
// other source status is rejected, so no inquiry ever moves backward.
func transitionBooking(bookings store.BookingStore, target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseObjectID(mux.Vars(r)["id"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid booking ID")
			return
		}

		booking, err := bookings.FindByID(r.Context(), id)
		if err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "Booking not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error updating booking", err)
			return
		}

		if booking.Status != models.BookingStatusPending {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Booking already %s", booking.Status))
			return
		}

		updated, err := bookings.UpdateStatus(r.Context(), id, target)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error updating booking", err)
			return
		}

		respondData(w, http.StatusOK, fmt.Sprintf("Booking %s successfully", strings.ToLower(target)), updated)
	}
}
