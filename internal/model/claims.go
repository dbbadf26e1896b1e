package model

import "github.com/golang-jwt/jwt/v5"

// AccountClaims - claims токена диспетчера. Subject - ID счёта
type AccountClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}
