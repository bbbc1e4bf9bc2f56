package notifier

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/repository"
	"github.com/hotelops/hotel-api/pkg/logger"
	"github.com/hotelops/hotel-api/pkg/metrics"
)

// Shared in-memory fakes for the pipeline tests.

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type memStore struct {
	mu        sync.Mutex
	records   map[uuid.UUID]*model.Notification
	delivered map[uuid.UUID][]string

	failUpdateStatus map[uuid.UUID]error
	failAppend       error
}

func newMemStore() *memStore {
	return &memStore{
		records:          make(map[uuid.UUID]*model.Notification),
		delivered:        make(map[uuid.UUID][]string),
		failUpdateStatus: make(map[uuid.UUID]error),
	}
}

func (s *memStore) Create(ctx context.Context, n *model.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.Status = model.NotificationStatusPending
	clone := *n
	s.records[n.ID] = &clone
	return nil
}

func (s *memStore) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *n
	return &clone, nil
}

func (s *memStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus, sentAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failUpdateStatus[id]; ok {
		return err
	}
	n, ok := s.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !n.Status.CanTransitionTo(status) {
		return repository.ErrIllegalTransition
	}
	n.Status = status
	if sentAt != nil {
		n.SentAt = sentAt
	}
	return nil
}

func (s *memStore) AppendToMessage(ctx context.Context, id uuid.UUID, suffix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAppend != nil {
		return s.failAppend
	}
	n, ok := s.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	if n.Status != model.NotificationStatusPending && n.Status != model.NotificationStatusSent {
		return repository.ErrIllegalTransition
	}
	n.Message = coalesceSuffixRe.ReplaceAllString(n.Message, "") + suffix
	return nil
}

func (s *memStore) QueryRecent(ctx context.Context, key model.SuppressionKey, since time.Time) ([]*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Notification
	for _, n := range s.records {
		if n.Key() != key {
			continue
		}
		if n.CreatedAt.Before(since) {
			continue
		}
		if n.Status != model.NotificationStatusPending && n.Status != model.NotificationStatusSent {
			continue
		}
		clone := *n
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) QueryDue(ctx context.Context, before time.Time, limit int) ([]*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Notification
	for _, n := range s.records {
		if n.Status != model.NotificationStatusPending || n.ScheduledFor == nil {
			continue
		}
		if n.ScheduledFor.After(before) {
			continue
		}
		clone := *n
		out = append(out, &clone)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *memStore) MarkDelivered(ctx context.Context, id uuid.UUID, channel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered[id] = append(s.delivered[id], channel)
	if n, ok := s.records[id]; ok {
		delete(n.Failures, channel)
	}
	return nil
}

func (s *memStore) MarkFailed(ctx context.Context, id uuid.UUID, channel, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	if n.Failures == nil {
		n.Failures = model.ChannelFailures{}
	}
	n.Failures[channel] = reason
	return nil
}

func (s *memStore) MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.records[id]
	if !ok || n.UserID != userID {
		return repository.ErrNotFound
	}
	n.ReadAt = &at
	return nil
}

func (s *memStore) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Notification
	for _, n := range s.records {
		if n.UserID == userID {
			clone := *n
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, n := range s.records {
		if n.UserID == userID && n.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (s *memStore) List(ctx context.Context, filter *model.NotificationFilter) ([]*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Notification
	for _, n := range s.records {
		clone := *n
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memStore) DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, n := range s.records {
		if n.Status == model.NotificationStatusPending {
			continue
		}
		if n.CreatedAt.Before(cutoff) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *memStore) all() []*model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Notification
	for _, n := range s.records {
		clone := *n
		out = append(out, &clone)
	}
	return out
}

type sentPush struct {
	Target   uuid.UUID
	Topic    string
	Envelope model.Envelope
}

type fakeTransport struct {
	mu         sync.Mutex
	userSends  []sentPush
	hotelSends []sentPush
	err        error
}

func (t *fakeTransport) SendToUser(ctx context.Context, userID uuid.UUID, topic string, envelope model.Envelope) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.userSends = append(t.userSends, sentPush{Target: userID, Topic: topic, Envelope: envelope})
	return nil
}

func (t *fakeTransport) SendToHotel(ctx context.Context, hotelID uuid.UUID, topic string, envelope model.Envelope) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.hotelSends = append(t.hotelSends, sentPush{Target: hotelID, Topic: topic, Envelope: envelope})
	return nil
}

type fakeUsers struct {
	users []*model.User
}

func (f *fakeUsers) Create(ctx context.Context, user *model.User) error { return nil }

func (f *fakeUsers) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) Update(ctx context.Context, user *model.User) error { return nil }
func (f *fakeUsers) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakeUsers) List(ctx context.Context, filter *model.UserFilter) ([]*model.User, error) {
	return f.users, nil
}

func (f *fakeUsers) ListByRoles(ctx context.Context, hotelID uuid.UUID, roles []string) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.users {
		if u.HotelID != hotelID || u.Status != model.UserStatusActive {
			continue
		}
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUsers) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type fakeHotels struct {
	hotel *model.Hotel
}

func (f *fakeHotels) Create(ctx context.Context, hotel *model.Hotel) error { return nil }

func (f *fakeHotels) Get(ctx context.Context, id uuid.UUID) (*model.Hotel, error) {
	if f.hotel == nil || f.hotel.ID != id {
		return nil, repository.ErrNotFound
	}
	return f.hotel, nil
}

func (f *fakeHotels) Update(ctx context.Context, hotel *model.Hotel) error { return nil }
func (f *fakeHotels) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (f *fakeHotels) List(ctx context.Context) ([]*model.Hotel, error) {
	if f.hotel == nil {
		return nil, nil
	}
	return []*model.Hotel{f.hotel}, nil
}

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func staffUser(hotelID uuid.UUID, role string) *model.User {
	u := &model.User{
		HotelID: hotelID,
		Role:    role,
		Status:  model.UserStatusActive,
	}
	u.ID = uuid.New()
	return u
}

type pipeline struct {
	dispatcher *Dispatcher
	store      *memStore
	transport  *fakeTransport
	clock      *fakeClock
	users      *fakeUsers
	hotels     *fakeHotels
	hotel      *model.Hotel
}

func newPipeline(now time.Time, users ...*model.User) *pipeline {
	hotel := &model.Hotel{Timezone: "UTC", Status: "active"}
	hotel.ID = uuid.New()
	for _, u := range users {
		if u.HotelID == uuid.Nil {
			u.HotelID = hotel.ID
		}
	}

	store := newMemStore()
	transport := &fakeTransport{}
	clock := newFakeClock(now)
	userRepo := &fakeUsers{users: users}
	hotelRepo := &fakeHotels{hotel: hotel}

	directory := NewDirectory(userRepo)
	resolver := NewResolver(directory)
	suppressor := NewSuppressor(store, hotelRepo, clock)
	dispatcher := NewDispatcher(store, resolver, suppressor, transport, clock, testLogger(), metrics.NewTestMetrics())

	return &pipeline{
		dispatcher: dispatcher,
		store:      store,
		transport:  transport,
		clock:      clock,
		users:      userRepo,
		hotels:     hotelRepo,
		hotel:      hotel,
	}
}
