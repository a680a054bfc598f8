package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, h.Compare(hash, "s3cret-pass"))
	assert.ErrorIs(t, h.Compare(hash, "wrong-pass"), ErrPasswordMismatch)
	assert.ErrorIs(t, h.Compare("not-a-hash", "s3cret-pass"), ErrPasswordMismatch)
}

func TestNewPasswordHasher_DefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(100).cost)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", "parking", time.Hour)

	tests := []struct {
		name      string
		principal domain.Principal
	}{
		{"user", domain.Principal{Kind: domain.PrincipalUser, ID: 42}},
		{"admin", domain.Principal{Kind: domain.PrincipalAdmin, ID: 3, Role: domain.RoleFinanceOfficer}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, expiresAt, err := m.Issue(tt.principal)
			require.NoError(t, err)
			assert.True(t, expiresAt.After(time.Now()))

			got, err := m.Parse(token)
			require.NoError(t, err)
			assert.Equal(t, tt.principal, *got)
		})
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", "parking", time.Hour)
	token, _, err := m.Issue(domain.Principal{Kind: domain.PrincipalUser, ID: 1})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other", "parking", time.Hour)
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenManager("secret", "someone-else", time.Hour)
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokenManager("secret", "parking", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		_, err := m.Parse(parts[0] + "." + parts[1] + ".AAAA")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("admin without role", func(t *testing.T) {
		claims := Claims{
			Kind: domain.PrincipalAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "5",
				Issuer:    "parking",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = m.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
