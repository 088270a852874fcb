package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	audienceUser  = "user"
	audienceAdmin = "admin"
)

var errInvalidToken = errors.New("invalid token")

type accessClaims struct {
	UserID uint `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

func (handler *Handler) issueUserToken(userID uint) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Audience:  jwt.ClaimStrings{audienceUser},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(handler.cfg.JWTTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(handler.cfg.JWTSecret))
}

func (handler *Handler) issueAdminToken() (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   audienceAdmin,
			Audience:  jwt.ClaimStrings{audienceAdmin},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(12 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(handler.cfg.JWTSecret))
}

func (handler *Handler) parseToken(raw string, wantAudience string) (accessClaims, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(handler.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return accessClaims{}, errInvalidToken
	}

	for _, audience := range claims.Audience {
		if audience == wantAudience {
			return claims, nil
		}
	}
	return accessClaims{}, errInvalidToken
}
