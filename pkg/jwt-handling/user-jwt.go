package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserClaims is the information a session token encodes.
type UserClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateNewUserToken(
	expiresIn time.Duration,
	id string,
	role string,
	secretKey string,
) (tokenString string, err error) {
	claims := UserClaims{
		role,
		jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   id,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateUserToken(tokenString string, secretKey string) (claims *UserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*UserClaims)
	valid = valid && token.Valid
	return
}
