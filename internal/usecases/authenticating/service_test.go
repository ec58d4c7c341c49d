package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/alokyadav9045/travellr-sub002/internal/config"
	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewService(config.Auth{SecretKey: testSecret})

	token, err := svc.GenerateToken(domain.Claims{
		UserID:     7,
		UserName:   "Vendor Ops",
		UserRoleID: domain.RoleVendor,
		VendorID:   "vnd_1",
	}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, domain.RoleVendor, claims.UserRoleID)
	assert.Equal(t, "vnd_1", claims.VendorID)
	assert.True(t, claims.IsVendor())
}

func TestGenerateTokenValidation(t *testing.T) {
	svc := NewService(config.Auth{SecretKey: testSecret})

	_, err := svc.GenerateToken(domain.Claims{UserRoleID: domain.RoleVendor}, time.Hour)
	assert.True(t, errors.Is(err, ErrVendorIDRequired))

	_, err = svc.GenerateToken(domain.Claims{UserRoleID: 42}, time.Hour)
	assert.True(t, errors.Is(err, ErrInvalidRole))

	_, err = NewService(config.Auth{}).GenerateToken(domain.Claims{UserRoleID: domain.RoleAdmin}, time.Hour)
	assert.True(t, errors.Is(err, ErrMissingSecretKey))
}

func TestValidateTokenRejects(t *testing.T) {
	svc := NewService(config.Auth{SecretKey: testSecret})

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
		UserID:     1,
		UserRoleID: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredToken, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	otherSecret, err := NewService(config.Auth{SecretKey: "other"}).GenerateToken(domain.Claims{UserRoleID: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"expirado", expiredToken, ErrExpiredToken},
		{"assinatura diferente", otherSecret, ErrInvalidToken},
		{"malformado", "not.a.token", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.True(t, errors.Is(err, tt.wantErr), err)
		})
	}
}

func TestValidateTokenWithoutSecretKey(t *testing.T) {
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
		UserID:     99,
		UserRoleID: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte{})
	require.NoError(t, err)

	claims, err := NewService(config.Auth{}).ValidateToken(forged)

	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, ErrMissingSecretKey), err)
}

func TestValidateTokenRequiresExpiration(t *testing.T) {
	svc := NewService(config.Auth{SecretKey: testSecret})

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
		UserID:     99,
		UserRoleID: domain.RoleAdmin,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(noExp)

	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, ErrInvalidToken), err)
}

func TestValidateAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("svc-key"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewService(config.Auth{SecretKey: testSecret, ServiceAPIKeyHash: string(hash)})

	claims, err := svc.ValidateAPIKey("svc-key")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.UserRoleID)
	assert.Equal(t, domain.ServiceUserID, claims.UserID)

	_, err = svc.ValidateAPIKey("wrong")
	assert.True(t, errors.Is(err, ErrInvalidAPIKey))

	_, err = svc.ValidateAPIKey("")
	assert.True(t, errors.Is(err, ErrInvalidAPIKey))

	_, err = NewService(config.Auth{SecretKey: testSecret}).ValidateAPIKey("svc-key")
	assert.True(t, errors.Is(err, ErrAPIKeyNotEnabled))
}

func TestHashAPIKey(t *testing.T) {
	hash, err := HashAPIKey("svc-key")
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("svc-key")))
}
