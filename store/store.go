// Package store defines the persistence interfaces for the marketplace and
// provides a MongoDB implementation plus an in-memory one used in tests.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/realestatehub/backend/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Skip() int64 {
	return int64((p.Number - 1) * p.Limit)
}

// Pages returns the total page count for a result set of the given size.
func (p Page) Pages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return pages
}

type UserStore interface {
	// Insert stores a new user. Returns ErrDuplicate when the email is taken.
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// List returns users newest-first, optionally filtered by role.
	List(ctx context.Context, role string, page Page) ([]models.User, int64, error)
	// EmailTaken reports whether email belongs to a user other than exclude.
	EmailTaken(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error)
	Update(ctx context.Context, id primitive.ObjectID, update UserUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserUpdate carries a partial user update. Nil fields are left untouched.
type UserUpdate struct {
	Name  *string
	Email *string
	Role  *string
}

type PropertyStore interface {
	Insert(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	// List returns properties newest-first.
	List(ctx context.Context, page Page) ([]models.Property, int64, error)
	// Search applies the conjunctive filter, newest-first.
	Search(ctx context.Context, filter models.PropertyFilter, page Page) ([]models.Property, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.PropertyUpdate) (*models.Property, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) error
}

type BookingStore interface {
	Insert(ctx context.Context, booking *models.BookingInquiry) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.BookingInquiry, error)
	// HasPending reports whether user already has a Pending inquiry on property.
	HasPending(ctx context.Context, property, user primitive.ObjectID) (bool, error)
	// List returns inquiries newest-first, scoped by the filter.
	List(ctx context.Context, filter models.BookingFilter, page Page) ([]models.BookingInquiry, int64, error)
	// ListByUser returns every inquiry made by user, newest-first.
	ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.BookingInquiry, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.BookingInquiry, error)
}

type ReviewStore interface {
	Insert(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	// Exists reports whether user already reviewed property.
	Exists(ctx context.Context, property, user primitive.ObjectID) (bool, error)
	// List returns reviews newest-first, optionally scoped to a property.
	List(ctx context.Context, property *primitive.ObjectID, page Page) ([]models.Review, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SettingStore interface {
	// Get returns the singleton settings record, ErrNotFound when absent.
	Get(ctx context.Context) (*models.Setting, error)
	// Save upserts the singleton.
	Save(ctx context.Context, setting *models.Setting) error
	// Delete removes the singleton entirely.
	Delete(ctx context.Context) error
}

// Store bundles the per-entity stores handed to the controllers.
type Store struct {
	Users      UserStore
	Properties PropertyStore
	Bookings   BookingStore
	Reviews    ReviewStore
	Settings   SettingStore
}
