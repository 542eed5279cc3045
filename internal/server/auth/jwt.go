// Package auth implements the session core: minting and verifying the
// signed access/refresh tokens and hashing credentials.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nikonik/mediavault/internal/common"
)

// Token kinds. Access tokens are presented on every protected request;
// refresh tokens are only accepted by the refresh endpoint.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims carries the standard registered claims plus the MediaVault
// identity fields: subject user id, role, and token kind.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Role   string
	Kind   string
}

// TokenManager mints and validates HS256-signed tokens. Validity is purely
// a function of signature and expiry: no per-token server state exists, so
// a logout cannot force-invalidate an already issued token.
type TokenManager struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	// now is the clock used both when stamping and when validating
	// claims; tests pin it to exercise the expiry boundary exactly.
	now func() time.Time
}

func NewTokenManager(secretKey string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secretKey:  []byte(secretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssueAccessToken signs a short-lived token with Kind=access.
func (m *TokenManager) IssueAccessToken(userID, role string) (string, error) {
	return m.issue(userID, role, KindAccess, m.accessTTL)
}

// IssueRefreshToken signs a long-lived token with Kind=refresh.
func (m *TokenManager) IssueRefreshToken(userID, role string) (string, error) {
	return m.issue(userID, role, KindRefresh, m.refreshTTL)
}

func (m *TokenManager) issue(userID, role, kind string, ttl time.Duration) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Role:   role,
		Kind:   kind,
	})

	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks the signature and then the expiry of tokenString and
// returns its claims. Expiry comparison is strict (a token whose expiry
// equals the current instant is already expired) and no clock-skew leeway
// is applied. Returns common.ErrTokenExpired for well-signed but expired
// tokens and common.ErrInvalidToken for everything else.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return m.secretKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// VerifyKind verifies tokenString and additionally rejects tokens of the
// wrong kind with common.ErrWrongTokenKind.
func (m *TokenManager) VerifyKind(tokenString, kind string) (*Claims, error) {
	claims, err := m.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, common.ErrWrongTokenKind
	}
	return claims, nil
}
