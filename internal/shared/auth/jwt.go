package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// JWTClaims carries the identity of an authenticated user.
type JWTClaims struct {
	UserID int64  `json:"-"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// JWT issues and verifies HS256 bearer tokens.
type JWT struct {
	secret     []byte
	issuer     string
	audience   string
	expiration time.Duration
	now        func() time.Time
}

func NewJWT(secret, issuer, audience string, expiration time.Duration) *JWT {
	return &JWT{
		secret:     []byte(secret),
		issuer:     issuer,
		audience:   audience,
		expiration: expiration,
		now:        time.Now,
	}
}

// Expiration returns the lifetime of newly issued tokens.
func (j *JWT) Expiration() time.Duration {
	return j.expiration
}

func (j *JWT) Generate(userID int64, email, name string) (string, error) {
	now := j.now()
	claims := JWTClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (j *JWT) Validate(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.VerifyIssuer(j.issuer, true) || !claims.VerifyAudience(j.audience, true) {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrInvalidToken
	}
	claims.UserID = userID

	return claims, nil
}
