package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/realestatehub/backend/models"
	"github.com/realestatehub/backend/store"
	"github.com/realestatehub/backend/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,strongpw"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin User Agent"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type authPayload struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func RegisterUser(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}

		if _, err := users.FindByEmail(r.Context(), req.Email); err == nil {
			respondError(w, http.StatusConflict, "Email already exists")
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error creating user", err)
			return
		}

		role := req.Role
		if role == "" {
			role = models.RoleUser
		}

		user := &models.User{
			Name:      req.Name,
			Email:     req.Email,
			Password:  hashed,
			Role:      role,
			CreatedAt: time.Now(),
		}

		if err := users.Insert(r.Context(), user); err != nil {
			if err == store.ErrDuplicate {
				respondError(w, http.StatusConflict, "Email already exists")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error creating user", err)
			return
		}

		token, err := utils.GenerateJWT(user)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error generating token", err)
			return
		}

		respondJSON(w, http.StatusCreated, Response{
			Success: true,
			Message: "User registered successfully",
			Data:    authPayload{User: user, Token: token},
		})
	}
}

func LoginUser(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}

		user, err := users.FindByEmail(r.Context(), req.Email)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid Credentials")
			return
		}

		if !utils.CheckPasswordHash(req.Password, user.Password) {
			respondError(w, http.StatusUnauthorized, "Invalid Credentials")
			return
		}

		token, err := utils.GenerateJWT(user)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error generating token", err)
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Login successful",
			Data:    authPayload{User: user, Token: token},
		})
	}
}

// GetProfile returns the caller's own record enriched with their bookings.
func GetProfile(users store.UserStore, bookings store.BookingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := users.FindByID(r.Context(), caller.ID)
		if err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "User not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error fetching profile", err)
			return
		}

		userBookings, err := bookings.ListByUser(r.Context(), user.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error fetching profile", err)
			return
		}
		user.Bookings = userBookings

		respondData(w, http.StatusOK, "", user)
	}
}
