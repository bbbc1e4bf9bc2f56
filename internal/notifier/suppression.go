package notifier

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/repository"
)

const (
	quietHoursStart = 22
	quietHoursEnd   = 6
	releaseHour     = 7

	tenantCacheTTL = 5 * time.Minute
)

var coalesceSuffixRe = regexp.MustCompile(`\s\(\+(\d+) more\)$`)

// Suppressor applies the anti-spam rules: quiet-hours deferral for
// low-priority records and burst coalescing within the tenant's window.
type Suppressor struct {
	store  repository.NotificationRepository
	hotels repository.HotelRepository
	clock  Clock
	cache  *cache.Cache
}

// NewSuppressor creates the suppression and coalescing engine.
func NewSuppressor(store repository.NotificationRepository, hotels repository.HotelRepository, clock Clock) *Suppressor {
	return &Suppressor{
		store:  store,
		hotels: hotels,
		clock:  clock,
		cache:  cache.New(tenantCacheTTL, 2*tenantCacheTTL),
	}
}

func (s *Suppressor) hotel(ctx context.Context, id uuid.UUID) (*model.Hotel, error) {
	if cached, ok := s.cache.Get(id.String()); ok {
		return cached.(*model.Hotel), nil
	}
	hotel, err := s.hotels.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(id.String(), hotel, cache.DefaultExpiration)
	return hotel, nil
}

func (s *Suppressor) location(ctx context.Context, hotelID uuid.UUID) *time.Location {
	hotel, err := s.hotel(ctx, hotelID)
	if err != nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(hotel.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ApplyQuietHours sets scheduled_for to the next 07:00 tenant-local on
// low-priority records created during [22:00, 06:00) local. All other
// records pass through untouched. Returns true when the record was
// deferred.
func (s *Suppressor) ApplyQuietHours(ctx context.Context, n *model.Notification) bool {
	if n.Priority != model.PriorityLow {
		return false
	}

	loc := s.location(ctx, n.HotelID)
	local := s.clock.Now().In(loc)
	hour := local.Hour()
	if hour < quietHoursStart && hour >= quietHoursEnd {
		return false
	}

	release := time.Date(local.Year(), local.Month(), local.Day(), releaseHour, 0, 0, 0, loc)
	if !release.After(local) {
		release = release.AddDate(0, 0, 1)
	}
	releaseUTC := release.UTC()
	n.ScheduledFor = &releaseUTC
	return true
}

// CoalesceDecision tells the dispatcher whether to create a fresh
// record or fold the candidate into an existing one.
type CoalesceDecision struct {
	Merge    bool
	TargetID uuid.UUID
	// Suffix replaces any previous coalescing suffix on the target.
	Suffix string
}

// Coalesce checks the candidate's suppression bucket for live records
// inside the tenant's coalescing window. When one exists the decision
// is to append a " (+N more)" suffix to the most recent record instead
// of creating a duplicate.
func (s *Suppressor) Coalesce(ctx context.Context, candidate *model.Notification) (CoalesceDecision, error) {
	window := time.Duration(model.DefaultCoalesceWindowMinutes) * time.Minute
	if hotel, err := s.hotel(ctx, candidate.HotelID); err == nil {
		window = time.Duration(hotel.Settings.WithDefaults().CoalesceWindowMinutes) * time.Minute
	}

	since := s.clock.Now().Add(-window)
	recent, err := s.store.QueryRecent(ctx, candidate.Key(), since)
	if err != nil {
		return CoalesceDecision{}, fmt.Errorf("failed to query suppression bucket: %w", err)
	}
	if len(recent) == 0 {
		return CoalesceDecision{}, nil
	}

	target := recent[0]
	count := 1
	if m := coalesceSuffixRe.FindStringSubmatch(target.Message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			count = n + 1
		}
	}

	return CoalesceDecision{
		Merge:    true,
		TargetID: target.ID,
		Suffix:   fmt.Sprintf(" (+%d more)", count),
	}, nil
}
