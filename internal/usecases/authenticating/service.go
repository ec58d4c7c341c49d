package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/alokyadav9045/travellr-sub002/internal/config"
	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/pkg/apiErrors"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	ValidateAPIKey(apiKey string) (*domain.Claims, error)
	GenerateToken(claims domain.Claims, ttl time.Duration) (string, error)
}

type Service struct {
	cfg config.Auth
}

func NewService(cfg config.Auth) Authenticator {
	return &Service{
		cfg: cfg,
	}
}

// GenerateToken emite um JWT HS256; usado pela CLI para credenciais de operação
func (s *Service) GenerateToken(claims domain.Claims, ttl time.Duration) (string, error) {
	if s.cfg.SecretKey == "" {
		return "", NewAuthError(ErrMissingSecretKey, apiErrors.ErrInternalServer, "")
	}

	switch claims.UserRoleID {
	case domain.RoleAdmin, domain.RoleStaff:
	case domain.RoleVendor:
		if claims.VendorID == "" {
			return "", NewAuthError(ErrVendorIDRequired, apiErrors.ErrMissingRequiredData, "")
		}
	default:
		return "", NewAuthError(ErrInvalidRole, apiErrors.ErrInvalidRequest, fmt.Sprintf("role_id %d", claims.UserRoleID))
	}

	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", NewAuthError(ErrTokenSigningFailed, apiErrors.ErrInternalServer, err.Error())
	}

	return signed, nil
}

// ValidateToken exige AUTH_SECRET_KEY configurada e a claim exp
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if s.cfg.SecretKey == "" {
		return nil, NewAuthError(ErrMissingSecretKey, apiErrors.ErrInvalidToken, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

// ValidateAPIKey autentica chamadas serviço-a-serviço comparando com o hash bcrypt configurado
func (s *Service) ValidateAPIKey(apiKey string) (*domain.Claims, error) {
	if s.cfg.ServiceAPIKeyHash == "" {
		return nil, NewAuthError(ErrAPIKeyNotEnabled, apiErrors.ErrInvalidAPIKey, "")
	}

	if apiKey == "" {
		return nil, NewAuthError(ErrInvalidAPIKey, apiErrors.ErrInvalidAPIKey, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.ServiceAPIKeyHash), []byte(apiKey)); err != nil {
		return nil, NewAuthError(ErrInvalidAPIKey, apiErrors.ErrInvalidAPIKey, "")
	}

	return domain.ServiceClaims(), nil
}

// HashAPIKey gera o valor para AUTH_SERVICE_API_KEY_HASH
func HashAPIKey(apiKey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
