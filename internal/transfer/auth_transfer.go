package transfer

import "github.com/golang-jwt/jwt/v5"

// CustomClaims carries the user id in the registered subject claim.
type CustomClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
