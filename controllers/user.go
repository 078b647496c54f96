package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/realestatehub/backend/store"
	"github.com/realestatehub/backend/utils"
)

type UpdateUserRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty,oneof=Admin User Agent"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword" validate:"required,min=6,strongpw"`
}

// GetAllUsers is Admin only, enforced by the route middleware.
func GetAllUsers(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parsePage(r, 10)
		role := r.URL.Query().Get("role")

		list, total, err := users.List(r.Context(), role, page)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error fetching users", err)
			return
		}

		respondJSON(w, http.StatusOK, pageResponse(list, len(list), total, page))
	}
}

func GetUserByID(users store.UserStore, bookings store.BookingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseObjectID(mux.Vars(r)["id"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		user, err := users.FindByID(r.Context(), id)
		if err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "User not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error fetching user", err)
			return
		}

		userBookings, err := bookings.ListByUser(r.Context(), user.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error fetching user", err)
			return
		}
		user.Bookings = userBookings

		respondData(w, http.StatusOK, "", user)
	}
}

// UpdateUser lets a user edit themselves; Admins can edit anyone and are
// the only ones allowed to change roles.
func UpdateUser(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id, ok := parseObjectID(mux.Vars(r)["id"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}

		if _, err := users.FindByID(r.Context(), id); err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "User not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error updating user", err)
			return
		}

		if caller.ID != id && !caller.IsAdmin() {
			respondError(w, http.StatusForbidden, "You don't have permission to update this user")
			return
		}

		update := store.UserUpdate{}
		if req.Name != "" {
			update.Name = &req.Name
		}
		if req.Email != "" {
			taken, err := users.EmailTaken(r.Context(), req.Email, id)
			if err != nil {
				respondError(w, http.StatusInternalServerError, "Error updating user", err)
				return
			}
			if taken {
				respondError(w, http.StatusBadRequest, "Email already in use")
				return
			}
			update.Email = &req.Email
		}
		if req.Role != "" && caller.IsAdmin() {
			update.Role = &req.Role
		}

		user, err := users.Update(r.Context(), id, update)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error updating user", err)
			return
		}

		respondData(w, http.StatusOK, "User updated successfully", user)
	}
}

func ChangePassword(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id, ok := parseObjectID(mux.Vars(r)["id"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}

		user, err := users.FindByID(r.Context(), id)
		if err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "User not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error changing password", err)
			return
		}

		if caller.ID != id && !caller.IsAdmin() {
			respondError(w, http.StatusForbidden, "You don't have permission to change this password")
			return
		}

		// Admins may reset someone else's password without the old one.
		if caller.ID == id && !utils.CheckPasswordHash(req.OldPassword, user.Password) {
			respondError(w, http.StatusUnauthorized, "Old password is incorrect")
			return
		}

		hashed, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error changing password", err)
			return
		}

		if err := users.UpdatePassword(r.Context(), id, hashed); err != nil {
			respondError(w, http.StatusInternalServerError, "Error changing password", err)
			return
		}

		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Password changed successfully"})
	}
}

// DeleteUser is Admin only, enforced by the route middleware.
func DeleteUser(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseObjectID(mux.Vars(r)["id"])
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		if err := users.Delete(r.Context(), id); err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "User not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error deleting user", err)
			return
		}

		respondJSON(w, http.StatusOK, Response{Success: true, Message: "User deleted successfully"})
	}
}
