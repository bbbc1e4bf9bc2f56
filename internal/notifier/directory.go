package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/hotelops/hotel-api/internal/repository"
)

const (
	directoryCacheTTL     = 30 * time.Second
	directoryCacheCleanup = 5 * time.Minute
)

// Directory is the read-only identity view the pipeline resolves
// recipients against. Role-set lookups are cached briefly since a burst
// of events for one hotel tends to hit the same role groups.
type Directory struct {
	users repository.UserRepository
	cache *cache.Cache
}

// NewDirectory creates a directory over the user repository.
func NewDirectory(users repository.UserRepository) *Directory {
	return &Directory{
		users: users,
		cache: cache.New(directoryCacheTTL, directoryCacheCleanup),
	}
}

// FindByRoles returns the IDs of all active users in the hotel whose
// role is in the given set. A hotel with no matching users yields an
// empty slice, not an error.
func (d *Directory) FindByRoles(ctx context.Context, hotelID uuid.UUID, roles []string) ([]uuid.UUID, error) {
	key := hotelID.String() + ":" + strings.Join(roles, ",")
	if cached, ok := d.cache.Get(key); ok {
		return cached.([]uuid.UUID), nil
	}

	users, err := d.users.ListByRoles(ctx, hotelID, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role group: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	d.cache.Set(key, ids, cache.DefaultExpiration)
	return ids, nil
}

// Assignment describes a user's role and department membership.
type Assignment struct {
	Role         string
	DepartmentID *uuid.UUID
}

// FindAssignment validates that the user exists and returns its role
// and department.
func (d *Directory) FindAssignment(ctx context.Context, userID uuid.UUID) (*Assignment, error) {
	user, err := d.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Assignment{Role: user.Role, DepartmentID: user.DepartmentID}, nil
}

// IsVIP reports whether the user's loyalty tier is platinum or diamond.
// Unknown users are not VIPs.
func (d *Directory) IsVIP(ctx context.Context, userID uuid.UUID) bool {
	user, err := d.users.Get(ctx, userID)
	if err != nil {
		return false
	}
	return user.IsVIP()
}
