package security

import (
	"time"

	"github.com/sheory/smart-room/internal/domain"

	"github.com/golang-jwt/jwt"
)

// Используется SigningMethodHS256
type TokenSigner struct {
	secret    []byte
	issuer    string
	ttl       time.Duration
	clockSkew time.Duration
}

func NewTokenSigner(secret, issuer string, ttl, clockSkew time.Duration) *TokenSigner {
	return &TokenSigner{
		secret:    []byte(secret),
		issuer:    issuer,
		ttl:       ttl,
		clockSkew: clockSkew,
	}
}

func (s *TokenSigner) TTL() time.Duration {
	return s.ttl
}

type AccessClaims struct {
	jwt.StandardClaims // включает поля Issuer, ExpiresAt, NotBefore, IssuedAt, Subject
}

// Valid отключает встроенную проверку временных клеймов: ParseAndValidate
// проверяет nbf/exp сам, с допуском clockSkew.
func (c *AccessClaims) Valid() error { return nil }

// SignAccessToken выпускает JWT с sub=username и exp=now+ttl
func (s *TokenSigner) SignAccessToken(username string, now time.Time) (string, error) {
	claims := AccessClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   username,
			Issuer:    s.issuer,
			IssuedAt:  now.Unix(),
			NotBefore: now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)

	return token.SignedString(s.secret)
}

// ParseAndValidate проверяет подпись и временные клеймы, возвращает subject.
func (s *TokenSigner) ParseAndValidate(tokenStr string) (string, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, domain.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	if !token.Valid {
		return "", domain.ErrInvalidToken
	}

	if !claims.VerifyIssuer(s.issuer, s.issuer != "") {
		return "", domain.ErrInvalidToken
	}

	// временные клеймы с допуском clockSkew; допуск применяется только здесь,
	// SignAccessToken пишет клеймы без поправок
	now := time.Now()
	nbf := time.Unix(claims.NotBefore, 0).Add(-s.clockSkew)
	exp := time.Unix(claims.ExpiresAt, 0).Add(s.clockSkew)
	if now.Before(nbf) || now.After(exp) {
		return "", domain.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}

	return claims.Subject, nil
}
