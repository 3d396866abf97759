package api

import (
	"crypto/subtle"
	"errors"
)

const apiClient = "operator"

var errInvalidKey = errors.New("invalid api key")

// keyAuth accepts the single operator key from the listen config.
type keyAuth struct {
	key string
}

func (a keyAuth) AuthenticateByToken(token string) (string, error) {
	if a.key == "" || subtle.ConstantTimeCompare([]byte(a.key), []byte(token)) != 1 {
		return "", errInvalidKey
	}
	return apiClient, nil
}

func (a keyAuth) ValidateToken(token string) (string, error) {
	return a.AuthenticateByToken(token)
}
