package utils // package utils provides helper functions for hashing and token issuance

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken represents a signed HS256 access token along with its expiry.
// The Token field contains the serialized JWT string; Exp stores the UTC
// expiration time. Clients send the token in the Authorization header when
// calling protected endpoints. There is no refresh flow: once a token
// expires the user logs in again.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned for any token that fails validation. Callers
// must not distinguish between a missing, tampered, or expired token in
// anything surfaced to the client.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. The JWT carries
// the standard claims: subject (sub = user id), expiration (exp) and issued
// at (iat). The TTL is expressed in minutes and must be positive; token
// lifetime is a deliberate configuration decision, never open-ended.
func NewAccessToken(secret string, userID uint64, ttlMin int) (AccessToken, error) {
	if ttlMin <= 0 {
		return AccessToken{}, errors.New("token ttl must be positive")
	}
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates the raw token string against the signing
// secret and returns the subject user id. Signature, algorithm and expiry
// are all checked; every failure collapses into ErrInvalidToken so the
// caller cannot leak which check rejected the token.
func ParseAccessToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject anything but HMAC: a token re-signed with "none" or an
		// asymmetric method must not get past here.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// Numeric JSON claims decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, ErrInvalidToken
	}
	return uint64(sub), nil
}
