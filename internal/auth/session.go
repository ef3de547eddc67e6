package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("invalid session")

// SessionManager signs and verifies the session tokens stored in the
// browser cookie. A token only carries the user id.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, issuer: "stocksim"}
}

type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (sm *SessionManager) TTL() time.Duration { return sm.ttl }

// Issue returns a signed token for userID and its expiry.
func (sm *SessionManager) Issue(userID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(sm.ttl)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// Parse validates a token and returns the user id it was issued for.
func (sm *SessionManager) Parse(token string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return sm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sm.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.UserID == "" {
		return "", ErrInvalidSession
	}
	return claims.UserID, nil
}
