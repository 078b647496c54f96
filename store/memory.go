package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/realestatehub/backend/models"
)

// NewMemoryStore returns a Store backed by in-process maps. It mirrors the
// Mongo implementation's semantics (newest-first ordering, unique email)
// and backs the controller tests.
func NewMemoryStore() *Store {
	m := &memory{
		users:      map[primitive.ObjectID]models.User{},
		properties: map[primitive.ObjectID]models.Property{},
		bookings:   map[primitive.ObjectID]models.BookingInquiry{},
		reviews:    map[primitive.ObjectID]models.Review{},
		seq:        map[primitive.ObjectID]int{},
	}
	return &Store{
		Users:      (*memUserStore)(m),
		Properties: (*memPropertyStore)(m),
		Bookings:   (*memBookingStore)(m),
		Reviews:    (*memReviewStore)(m),
		Settings:   (*memSettingStore)(m),
	}
}

type memory struct {
	mu         sync.Mutex
	users      map[primitive.ObjectID]models.User
	properties map[primitive.ObjectID]models.Property
	bookings   map[primitive.ObjectID]models.BookingInquiry
	reviews    map[primitive.ObjectID]models.Review
	setting    *models.Setting

	// seq records insertion order so newest-first sorts stay stable
	// when records share a creation timestamp.
	seq  map[primitive.ObjectID]int
	next int
}

func (m *memory) track(id primitive.ObjectID) {
	m.next++
	m.seq[id] = m.next
}

func paginate[T any](items []T, page Page) ([]T, int64) {
	total := int64(len(items))
	start := int(page.Skip())
	if start >= len(items) {
		return []T{}, total
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

type memUserStore memory

func (s *memUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	s.users[user.ID] = *user
	(*memory)(s).track(user.ID)
	return nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memUserStore) List(_ context.Context, role string, page Page) ([]models.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []models.User
	for _, u := range s.users {
		if role == "" || u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return s.seq[users[i].ID] > s.seq[users[j].ID]
	})
	out, total := paginate(users, page)
	return out, total, nil
}

func (s *memUserStore) EmailTaken(_ context.Context, email string, exclude primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Email == email && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (s *memUserStore) Update(_ context.Context, id primitive.ObjectID, update UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	s.users[id] = u
	return &u, nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Password = hash
	s.users[id] = u
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type memPropertyStore memory

func (s *memPropertyStore) Insert(_ context.Context, property *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	property.ID = primitive.NewObjectID()
	s.properties[property.ID] = *property
	(*memory)(s).track(property.ID)
	return nil
}

func (s *memPropertyStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *memPropertyStore) List(ctx context.Context, page Page) ([]models.Property, int64, error) {
	return s.Search(ctx, models.PropertyFilter{}, page)
}

func (s *memPropertyStore) Search(_ context.Context, filter models.PropertyFilter, page Page) ([]models.Property, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var properties []models.Property
	for _, p := range s.properties {
		if matchesProperty(p, filter) {
			properties = append(properties, p)
		}
	}
	sort.Slice(properties, func(i, j int) bool {
		return s.seq[properties[i].ID] > s.seq[properties[j].ID]
	})
	out, total := paginate(properties, page)
	return out, total, nil
}

func matchesProperty(p models.Property, f models.PropertyFilter) bool {
	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		if !strings.Contains(strings.ToLower(p.Title), kw) &&
			!strings.Contains(strings.ToLower(p.Description), kw) {
			return false
		}
	}
	if f.PropertyType != "" && !strings.EqualFold(p.PropertyType, f.PropertyType) {
		return false
	}
	if f.City != "" && !strings.Contains(strings.ToLower(p.Location.City), strings.ToLower(f.City)) {
		return false
	}
	if f.State != "" && !strings.Contains(strings.ToLower(p.Location.State), strings.ToLower(f.State)) {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

func (s *memPropertyStore) Update(_ context.Context, id primitive.ObjectID, update models.PropertyUpdate) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.PropertyType != nil {
		p.PropertyType = *update.PropertyType
	}
	if update.Location != nil {
		p.Location = *update.Location
	}
	if update.Images != nil {
		p.Images = *update.Images
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	s.properties[id] = p
	return &p, nil
}

func (s *memPropertyStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[id]; !ok {
		return ErrNotFound
	}
	delete(s.properties, id)
	return nil
}

func (s *memPropertyStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties = map[primitive.ObjectID]models.Property{}
	return nil
}

type memBookingStore memory

func (s *memBookingStore) Insert(_ context.Context, booking *models.BookingInquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	s.bookings[booking.ID] = *booking
	(*memory)(s).track(booking.ID)
	return nil
}

func (s *memBookingStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.BookingInquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (s *memBookingStore) HasPending(_ context.Context, property, user primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.Property == property && b.User == user && b.Status == models.BookingStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (s *memBookingStore) List(_ context.Context, filter models.BookingFilter, page Page) ([]models.BookingInquiry, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var bookings []models.BookingInquiry
	for _, b := range s.bookings {
		if filter.User != nil && b.User != *filter.User {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool {
		return s.seq[bookings[i].ID] > s.seq[bookings[j].ID]
	})
	out, total := paginate(bookings, page)
	return out, total, nil
}

func (s *memBookingStore) ListByUser(_ context.Context, user primitive.ObjectID) ([]models.BookingInquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings := []models.BookingInquiry{}
	for _, b := range s.bookings {
		if b.User == user {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return s.seq[bookings[i].ID] > s.seq[bookings[j].ID]
	})
	return bookings, nil
}

func (s *memBookingStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.BookingInquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.Status = status
	s.bookings[id] = b
	return &b, nil
}

type memReviewStore memory

func (s *memReviewStore) Insert(_ context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	review.ID = primitive.NewObjectID()
	s.reviews[review.ID] = *review
	(*memory)(s).track(review.ID)
	return nil
}

func (s *memReviewStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *memReviewStore) Exists(_ context.Context, property, user primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.Property == property && r.User == user {
			return true, nil
		}
	}
	return false, nil
}

func (s *memReviewStore) List(_ context.Context, property *primitive.ObjectID, page Page) ([]models.Review, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var reviews []models.Review
	for _, r := range s.reviews {
		if property != nil && r.Property != *property {
			continue
		}
		reviews = append(reviews, r)
	}
	sort.Slice(reviews, func(i, j int) bool {
		return s.seq[reviews[i].ID] > s.seq[reviews[j].ID]
	})
	out, total := paginate(reviews, page)
	return out, total, nil
}

func (s *memReviewStore) Update(_ context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Rating != nil {
		r.Rating = *update.Rating
	}
	if update.Comment != nil {
		r.Comment = *update.Comment
	}
	s.reviews[id] = r
	return &r, nil
}

func (s *memReviewStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

type memSettingStore memory

func (s *memSettingStore) Get(_ context.Context) (*models.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setting == nil {
		return nil, ErrNotFound
	}
	setting := *s.setting
	return &setting, nil
}

func (s *memSettingStore) Save(_ context.Context, setting *models.Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if setting.ID.IsZero() {
		setting.ID = primitive.NewObjectID()
	}
	copied := *setting
	s.setting = &copied
	return nil
}

func (s *memSettingStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setting = nil
	return nil
}
