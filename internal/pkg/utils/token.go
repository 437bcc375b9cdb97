package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt"
	"github.com/ougirez/coviddash/internal/pkg/constants"
	"github.com/spf13/viper"
)

type AuthTokenWrapper struct {
	Secret string `json:"secret,omitempty"`
	jwt.StandardClaims
}

func GenerateAuthToken(wrapper *AuthTokenWrapper) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wrapper)
	return token.SignedString([]byte(viper.GetString(constants.ViperSigningKey)))
}

func ParseAuthToken(raw string) (*AuthTokenWrapper, error) {
	wrapper := &AuthTokenWrapper{}
	_, err := jwt.ParseWithClaims(raw, wrapper, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(viper.GetString(constants.ViperSigningKey)), nil
	})
	if err != nil {
		return nil, constants.ErrUnauthorized
	}

	return wrapper, nil
}
