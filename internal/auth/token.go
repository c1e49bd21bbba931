package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken indicates a token that could not be parsed at all,
// independent of signature validity.
var ErrMalformedToken = errors.New("malformed token")

// TokenService issues and validates signed session tokens. Tokens are
// self-contained: there is no server-side session table, so a token stays
// usable until its natural expiry even after logout.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a new service with the given validity window.
func NewTokenService(secret string, ttlHours int) *TokenService {
	if ttlHours <= 0 {
		ttlHours = 10
	}
	return &TokenService{secret: []byte(secret), ttl: time.Duration(ttlHours) * time.Hour}
}

// Claims describes the JWT payload.
type Claims struct {
	Cedula   string `json:"cedula"`
	Username string `json:"username"`
	RoleID   int    `json:"rol"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject.
func (ts *TokenService) Issue(cedula, username string, roleID int) (string, time.Time, error) {
	expiresAt := time.Now().Add(ts.ttl)
	claims := &Claims{
		Cedula:   cedula,
		Username: username,
		RoleID:   roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cedula,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse verifies the signature and expiry and returns the claims.
func (ts *TokenService) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return ts.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Validate reports whether the token is well formed, signed, unexpired and
// bound to the expected cedula. It fails closed: any defect yields false.
func (ts *TokenService) Validate(tokenStr, cedula string) bool {
	claims, err := ts.Parse(tokenStr)
	if err != nil {
		return false
	}
	return claims.Cedula == cedula
}

// ExtractCedula reads the subject key without verifying the signature. The
// logout path needs the identity before deciding whether the token is valid.
func (ts *TokenService) ExtractCedula(tokenStr string) (string, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return "", ErrMalformedToken
	}
	return claims.Cedula, nil
}
