package domain

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of a bearer token issued at login.
// No expiry is set, a token stays valid for as long as the signing secret does.
type Claims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}
