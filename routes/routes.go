package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/realestatehub/backend/controllers"
	"github.com/realestatehub/backend/middleware"
	"github.com/realestatehub/backend/models"
	"github.com/realestatehub/backend/store"
)

func Routes(router *mux.Router, st *store.Store, redisClient *redis.Client) {
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Real Estate Hub API Running..."))
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	auth := middleware.RequireAuth
	admin := func(h http.Handler) http.Handler {
		return auth(middleware.RequireRole(models.RoleAdmin)(h))
	}

	// Auth routes
	api.HandleFunc("/auth/register", controllers.RegisterUser(st.Users)).Methods("POST")
	api.HandleFunc("/auth/login", controllers.LoginUser(st.Users)).Methods("POST")
	api.Handle("/auth/profile", auth(controllers.GetProfile(st.Users, st.Bookings))).Methods("GET")

	// User routes
	api.Handle("/users", admin(controllers.GetAllUsers(st.Users))).Methods("GET")
	api.Handle("/users/{id}", auth(controllers.GetUserByID(st.Users, st.Bookings))).Methods("GET")
	api.Handle("/users/{id}", auth(controllers.UpdateUser(st.Users))).Methods("PUT")
	api.Handle("/users/{id}/change-password", auth(controllers.ChangePassword(st.Users))).Methods("PUT")
	api.Handle("/users/{id}", admin(controllers.DeleteUser(st.Users))).Methods("DELETE")

	// Property routes
	api.HandleFunc("/properties", controllers.GetAllProperties(st.Properties, redisClient)).Methods("GET")
	api.HandleFunc("/properties/{id}", controllers.GetPropertyByID(st.Properties)).Methods("GET")
	api.HandleFunc("/search", controllers.SearchProperties(st.Properties, redisClient)).Methods("GET")
	api.Handle("/properties", auth(controllers.CreateProperty(st.Properties, redisClient))).Methods("POST")
	api.Handle("/properties/{id}", auth(controllers.UpdateProperty(st.Properties, redisClient))).Methods("PUT")
	api.Handle("/properties/{id}", auth(controllers.DeleteProperty(st.Properties, redisClient))).Methods("DELETE")

	// Booking routes
	api.Handle("/bookings", auth(controllers.BookProperty(st.Bookings, st.Properties))).Methods("POST")
	api.Handle("/bookings", auth(controllers.GetBookings(st.Bookings))).Methods("GET")
	api.Handle("/bookings/{id}/approve", admin(controllers.ApproveBooking(st.Bookings))).Methods("PATCH")
	api.Handle("/bookings/{id}/reject", admin(controllers.RejectBooking(st.Bookings))).Methods("PATCH")

	// Review routes
	api.HandleFunc("/reviews", controllers.GetAllReviews(st.Reviews)).Methods("GET")
	api.HandleFunc("/reviews/property/{propertyId}", controllers.GetReviewsByProperty(st.Reviews)).Methods("GET")
	api.HandleFunc("/reviews/{id}", controllers.GetReviewByID(st.Reviews)).Methods("GET")
	api.Handle("/reviews", auth(controllers.CreateReview(st.Reviews, st.Properties))).Methods("POST")
	api.Handle("/reviews/{id}", auth(controllers.UpdateReview(st.Reviews))).Methods("PUT")
	api.Handle("/reviews/{id}", auth(controllers.DeleteReview(st.Reviews))).Methods("DELETE")

	// Settings routes
	api.HandleFunc("/settings", controllers.GetSettings(st.Settings)).Methods("GET")
	api.Handle("/settings", admin(controllers.UpdateSettings(st.Settings))).Methods("PUT")
	api.Handle("/settings", admin(controllers.ResetSettings(st.Settings))).Methods("DELETE")
}
