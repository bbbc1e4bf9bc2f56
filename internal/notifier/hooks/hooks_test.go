package hooks

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/notifier"
	"github.com/hotelops/hotel-api/internal/repository"
	"github.com/hotelops/hotel-api/pkg/logger"
	"github.com/hotelops/hotel-api/pkg/metrics"
)

// The harness runs the real dispatch pipeline over in-memory stores so
// every adapter test asserts on the notification records that actually
// land, not on intermediate intents.

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordStore struct {
	mu      sync.Mutex
	records []*model.Notification
}

func (s *recordStore) Create(ctx context.Context, n *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.Status = model.NotificationStatusPending
	clone := *n
	s.records = append(s.records, &clone)
	return nil
}

func (s *recordStore) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.records {
		if n.ID == id {
			clone := *n
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *recordStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus, sentAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.records {
		if n.ID == id {
			if !n.Status.CanTransitionTo(status) {
				return repository.ErrIllegalTransition
			}
			n.Status = status
			n.SentAt = sentAt
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *recordStore) AppendToMessage(ctx context.Context, id uuid.UUID, suffix string) error {
	return nil
}

// QueryRecent reports an empty bucket so adapter tests observe one
// record per emitted intent.
func (s *recordStore) QueryRecent(ctx context.Context, key model.SuppressionKey, since time.Time) ([]*model.Notification, error) {
	return nil, nil
}

func (s *recordStore) QueryDue(ctx context.Context, before time.Time, limit int) ([]*model.Notification, error) {
	return nil, nil
}

func (s *recordStore) MarkDelivered(ctx context.Context, id uuid.UUID, channel string) error {
	return nil
}

func (s *recordStore) MarkFailed(ctx context.Context, id uuid.UUID, channel, reason string) error {
	return nil
}

func (s *recordStore) MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	return nil
}

func (s *recordStore) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	return nil, nil
}

func (s *recordStore) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *recordStore) List(ctx context.Context, filter *model.NotificationFilter) ([]*model.Notification, error) {
	return nil, nil
}

func (s *recordStore) DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (s *recordStore) byType(kind model.EventKind) []*model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Notification
	for _, n := range s.records {
		if n.Type == string(kind) {
			clone := *n
			out = append(out, &clone)
		}
	}
	return out
}

type stubUsers struct {
	users []*model.User
}

func (f *stubUsers) Create(ctx context.Context, user *model.User) error { return nil }

func (f *stubUsers) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *stubUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (f *stubUsers) Update(ctx context.Context, user *model.User) error { return nil }
func (f *stubUsers) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *stubUsers) List(ctx context.Context, filter *model.UserFilter) ([]*model.User, error) {
	return f.users, nil
}

func (f *stubUsers) ListByRoles(ctx context.Context, hotelID uuid.UUID, roles []string) ([]*model.User, error) {
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

func (f *stubUsers) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type stubHotels struct {
	hotel *model.Hotel
}

func (f *stubHotels) Create(ctx context.Context, hotel *model.Hotel) error { return nil }

func (f *stubHotels) Get(ctx context.Context, id uuid.UUID) (*model.Hotel, error) {
	if f.hotel == nil || f.hotel.ID != id {
		return nil, repository.ErrNotFound
	}
	return f.hotel, nil
}

func (f *stubHotels) Update(ctx context.Context, hotel *model.Hotel) error { return nil }
func (f *stubHotels) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (f *stubHotels) List(ctx context.Context) ([]*model.Hotel, error)     { return nil, nil }

type nullTransport struct{}

func (nullTransport) SendToUser(ctx context.Context, userID uuid.UUID, topic string, envelope model.Envelope) error {
	return nil
}

func (nullTransport) SendToHotel(ctx context.Context, hotelID uuid.UUID, topic string, envelope model.Envelope) error {
	return nil
}

type harness struct {
	emitter *Emitter
	store   *recordStore
	hotel   *model.Hotel
	users   *stubUsers

	admin       *model.User
	manager     *model.User
	housekeeper *model.User
	technician  *model.User
}

func newHarness(users ...*model.User) *harness {
	hotel := &model.Hotel{Timezone: "UTC", Status: "active"}
	hotel.ID = uuid.New()

	newUser := func(role string) *model.User {
		u := &model.User{HotelID: hotel.ID, Role: role, Status: model.UserStatusActive}
		u.ID = uuid.New()
		return u
	}
	h := &harness{
		store:       &recordStore{},
		hotel:       hotel,
		admin:       newUser(model.RoleAdmin),
		manager:     newUser(model.RoleManager),
		housekeeper: newUser(model.RoleHousekeeping),
		technician:  newUser(model.RoleMaintenance),
	}

	all := append([]*model.User{h.admin, h.manager, h.housekeeper, h.technician}, users...)
	for _, u := range all {
		if u.HotelID == uuid.Nil {
			u.HotelID = hotel.ID
		}
	}
	h.users = &stubUsers{users: all}

	hotelRepo := &stubHotels{hotel: hotel}
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	clock := fixedClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}

	directory := notifier.NewDirectory(h.users)
	resolver := notifier.NewResolver(directory)
	suppressor := notifier.NewSuppressor(h.store, hotelRepo, clock)
	dispatcher := notifier.NewDispatcher(h.store, resolver, suppressor, nullTransport{}, clock, log, metrics.NewTestMetrics())

	h.emitter = NewEmitter(dispatcher, directory, hotelRepo, log)
	return h
}
