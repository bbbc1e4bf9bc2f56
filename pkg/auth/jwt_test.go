package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/hotel-api/internal/model"
)

func testUser() *model.User {
	u := &model.User{
		HotelID: uuid.New(),
		Email:   "staff@example.com",
		Role:    model.RoleManager,
	}
	u.ID = uuid.New()
	return u
}

func newTestService() JWTService {
	return NewJWTService(JWTConfig{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.HotelID, claims.HotelID)
	assert.Equal(t, model.RoleManager, claims.Role)
	assert.Equal(t, "hotel-api", claims.Issuer)
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	svc := newTestService()

	refresh, err := svc.GenerateRefreshToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		Secret:       "access-secret",
		AccessExpiry: -time.Minute,
	})

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestDifferentSecretRejected(t *testing.T) {
	token, err := newTestService().GenerateAccessToken(testUser())
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{Secret: "some-other-secret"})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestUnsignedTokenRejected(t *testing.T) {
	svc := newTestService()

	// alg=none token with an empty signature.
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiJ4In0."
	_, err := svc.ValidateToken(unsigned)
	assert.Error(t, err)
}
