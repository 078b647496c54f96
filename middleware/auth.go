package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/realestatehub/backend/controllers"
	"github.com/realestatehub/backend/models"
	"github.com/realestatehub/backend/utils"
)

// RequireAuth verifies the bearer token and attaches the caller identity
// to the request context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			utils.Logger.Debugf("Missing Authorization header from request %s %s", r.Method, r.URL)
			unauthorized(w, "Missing Authorization header")
			return
		}

		tokenParts := strings.Split(tokenHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			utils.Logger.Debugf("Invalid Authorization header format from request %s %s", r.Method, r.URL)
			unauthorized(w, "Invalid Authorization header format")
			return
		}

		claims, err := utils.ValidateJWT(tokenParts[1])
		if err != nil {
			utils.Logger.Debugf("Invalid or expired token: %v", err)
			unauthorized(w, "Invalid or expired token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			unauthorized(w, "Invalid token")
			return
		}

		caller := models.Caller{ID: userID, Email: claims.Email, Role: claims.Role}
		ctx := context.WithValue(r.Context(), controllers.CallerKey, caller)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route to the given roles. Must run after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := r.Context().Value(controllers.CallerKey).(models.Caller)
			if !ok {
				unauthorized(w, "Unauthorized - No token provided")
				return
			}

			for _, role := range roles {
				if caller.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeJSON(w, http.StatusForbidden, "Access Denied. Required role: "+strings.Join(roles, " or "))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, message)
}

func writeJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(controllers.Response{Success: false, Message: message})
}
