package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/realestatehub/backend/models"
)

func TestPagePages(t *testing.T) {
	p := Page{Number: 1, Limit: 10}
	assert.Equal(t, 0, p.Pages(0))
	assert.Equal(t, 1, p.Pages(1))
	assert.Equal(t, 1, p.Pages(10))
	assert.Equal(t, 2, p.Pages(11))
	assert.Equal(t, 3, p.Pages(25))

	assert.Equal(t, int64(0), Page{Number: 1, Limit: 10}.Skip())
	assert.Equal(t, int64(20), Page{Number: 3, Limit: 10}.Skip())
}

func TestMemoryUserStoreUniqueEmail(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	u := &models.User{Name: "A", Email: "a@x.com", Role: models.RoleUser}
	require.NoError(t, st.Users.Insert(ctx, u))
	require.False(t, u.ID.IsZero())

	dup := &models.User{Name: "B", Email: "a@x.com", Role: models.RoleUser}
	assert.Equal(t, ErrDuplicate, st.Users.Insert(ctx, dup))

	got, err := st.Users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = st.Users.FindByEmail(ctx, "missing@x.com")
	assert.Equal(t, ErrNotFound, err)

	taken, err := st.Users.EmailTaken(ctx, "a@x.com", primitive.NewObjectID())
	require.NoError(t, err)
	assert.True(t, taken)

	// A user's own email does not count against them.
	taken, err = st.Users.EmailTaken(ctx, "a@x.com", u.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestMemoryUserStoreListOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	roles := []string{models.RoleUser, models.RoleAgent, models.RoleUser}
	for i, role := range roles {
		require.NoError(t, st.Users.Insert(ctx, &models.User{
			Name:  fmt.Sprintf("U%d", i),
			Email: fmt.Sprintf("u%d@x.com", i),
			Role:  role,
		}))
	}

	list, total, err := st.Users.List(ctx, "", Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 3)
	assert.Equal(t, "U2", list[0].Name)
	assert.Equal(t, "U0", list[2].Name)

	list, total, err = st.Users.List(ctx, models.RoleAgent, Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "U1", list[0].Name)
}

func TestMemoryPropertySearch(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	seed := []models.Property{
		{Title: "Beach Villa", Description: "Ocean views", PropertyType: models.PropertyTypeVilla, Price: 900000,
			Location: models.Location{City: "Goa", State: "Goa"}, Status: models.PropertyStatusAvailable},
		{Title: "City Flat", Description: "Close to transit", PropertyType: models.PropertyTypeApartment, Price: 150000,
			Location: models.Location{City: "Mumbai", State: "Maharashtra"}, Status: models.PropertyStatusAvailable},
		{Title: "Suburban House", Description: "Quiet street", PropertyType: models.PropertyTypeHouse, Price: 300000,
			Location: models.Location{City: "Pune", State: "Maharashtra"}, Status: models.PropertyStatusSold},
	}
	for i := range seed {
		p := seed[i]
		require.NoError(t, st.Properties.Insert(ctx, &p))
	}

	page := Page{Number: 1, Limit: 10}

	list, total, err := st.Properties.Search(ctx, models.PropertyFilter{Keyword: "OCEAN"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Beach Villa", list[0].Title)

	_, total, err = st.Properties.Search(ctx, models.PropertyFilter{State: "maha"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	min, max := 100000.0, 400000.0
	_, total, err = st.Properties.Search(ctx, models.PropertyFilter{MinPrice: &min, MaxPrice: &max}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = st.Properties.Search(ctx, models.PropertyFilter{
		PropertyType: "apartment",
		Status:       models.PropertyStatusAvailable,
	}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Zero price bound is a real bound, not an absent filter.
	zero := 0.0
	_, total, err = st.Properties.Search(ctx, models.PropertyFilter{MaxPrice: &zero}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestMemoryPropertyPagination(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	for i := 0; i < 7; i++ {
		require.NoError(t, st.Properties.Insert(ctx, &models.Property{
			Title: fmt.Sprintf("P%d", i),
		}))
	}

	list, total, err := st.Properties.List(ctx, Page{Number: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, list, 3)
	// Newest first, so page two starts at the fourth-newest.
	assert.Equal(t, "P3", list[0].Title)

	list, _, err = st.Properties.List(ctx, Page{Number: 3, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, _, err = st.Properties.List(ctx, Page{Number: 4, Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryBookingStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	property := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	b1 := &models.BookingInquiry{Property: property, User: alice, Status: models.BookingStatusPending}
	require.NoError(t, st.Bookings.Insert(ctx, b1))
	require.NoError(t, st.Bookings.Insert(ctx, &models.BookingInquiry{
		Property: property, User: bob, Status: models.BookingStatusPending,
	}))

	pending, err := st.Bookings.HasPending(ctx, property, alice)
	require.NoError(t, err)
	assert.True(t, pending)

	pending, err = st.Bookings.HasPending(ctx, primitive.NewObjectID(), alice)
	require.NoError(t, err)
	assert.False(t, pending)

	updated, err := st.Bookings.UpdateStatus(ctx, b1.ID, models.BookingStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, updated.Status)

	// No longer pending once approved.
	pending, err = st.Bookings.HasPending(ctx, property, alice)
	require.NoError(t, err)
	assert.False(t, pending)

	list, total, err := st.Bookings.List(ctx, models.BookingFilter{User: &alice}, Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, alice, list[0].User)

	_, total, err = st.Bookings.List(ctx, models.BookingFilter{Status: models.BookingStatusPending}, Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	byUser, err := st.Bookings.ListByUser(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	_, err = st.Bookings.UpdateStatus(ctx, primitive.NewObjectID(), models.BookingStatusApproved)
	assert.Equal(t, ErrNotFound, err)
}

func TestMemoryReviewStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	property := primitive.NewObjectID()
	user := primitive.NewObjectID()

	review := &models.Review{Property: property, User: user, Rating: 4, Comment: "Good"}
	require.NoError(t, st.Reviews.Insert(ctx, review))

	exists, err := st.Reviews.Exists(ctx, property, user)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = st.Reviews.Exists(ctx, property, primitive.NewObjectID())
	require.NoError(t, err)
	assert.False(t, exists)

	rating := 2
	updated, err := st.Reviews.Update(ctx, review.ID, models.ReviewUpdate{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
	assert.Equal(t, "Good", updated.Comment)

	list, total, err := st.Reviews.List(ctx, &property, Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	require.NoError(t, st.Reviews.Delete(ctx, review.ID))
	_, err = st.Reviews.FindByID(ctx, review.ID)
	assert.Equal(t, ErrNotFound, err)
}

func TestMemorySettingStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	_, err := st.Settings.Get(ctx)
	assert.Equal(t, ErrNotFound, err)

	setting := &models.Setting{SiteName: "Hub", MaintenanceMode: true}
	require.NoError(t, st.Settings.Save(ctx, setting))
	require.False(t, setting.ID.IsZero())

	got, err := st.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hub", got.SiteName)
	assert.True(t, got.MaintenanceMode)

	// Saving again keeps the singleton identity.
	got.SiteName = "Hub Two"
	require.NoError(t, st.Settings.Save(ctx, got))
	again, err := st.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, setting.ID, again.ID)
	assert.Equal(t, "Hub Two", again.SiteName)

	require.NoError(t, st.Settings.Delete(ctx))
	_, err = st.Settings.Get(ctx)
	assert.Equal(t, ErrNotFound, err)
}
