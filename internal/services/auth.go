package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const AdminSubject = "admin"

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

type TokenService struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Issue signs an admin assertion valid for TTL.
func (t TokenService) Issue() (string, int64, error) {
	now := time.Now().UTC()
	exp := now.Add(t.TTL)
	claims := jwt.MapClaims{
		"iss": t.Issuer,
		"sub": AdminSubject,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.Secret)
	return signed, exp.Unix(), err
}

func (t TokenService) Verify(tokenStr string) (Claims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.Secret, nil
	}, jwt.WithIssuer(t.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return Claims{}, ErrTokenInvalid
	}
	sub, _ := claims.GetSubject()
	if sub != AdminSubject {
		return Claims{}, fmt.Errorf("%w: unexpected subject", ErrTokenInvalid)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrTokenInvalid
	}
	return Claims{Subject: sub, ExpiresAt: exp.Time.UTC()}, nil
}

func HashPassword(raw string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(raw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}
