package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/list-manager/internal/domain"
)

// Verification failure reasons. Each is joined with domain.ErrInvalidCredential.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenClaims    = errors.New("token claims invalid")
)

const defaultTokenTTL = 4 * time.Hour

// TokenManager issues and verifies signed credentials that carry only a subject id.
// It is immutable after construction and safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the manager reading time from now.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	clone := *tm
	clone.now = now
	return &clone
}

// TTL returns the lifetime of issued credentials.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs a credential for subjectID.
func (tm *TokenManager) Issue(subjectID string) (domain.Credential, error) {
	if subjectID == "" {
		return domain.Credential{}, errors.New("issue token: empty subject")
	}
	issuedAt := tm.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(tm.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("sign token: %w", err)
	}
	return domain.Credential{Token: signed, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

// Verify checks signature, structure and expiry and returns the subject id.
func (tm *TokenManager) Verify(tokenStr string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return "", invalid(classify(err))
	}
	if !parsed.Valid {
		return "", invalid(ErrTokenClaims)
	}
	if claims.Subject == "" {
		return "", invalid(ErrTokenClaims)
	}
	return claims.Subject, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return ErrTokenClaims
	}
}

func invalid(reason error) error {
	return fmt.Errorf("%w: %w", domain.ErrInvalidCredential, reason)
}

// FailureReason returns a short label for a guard failure, suitable for metrics.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenSignature):
		return "token_signature"
	case errors.Is(err, ErrTokenMalformed):
		return "token_malformed"
	case errors.Is(err, ErrTokenClaims):
		return "token_claims"
	case errors.Is(err, domain.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrUserInactive):
		return "user_inactive"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "internal"
	}
}
