package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the verified identity placed on the request by the auth
// middleware. Downstream code reads only UserID and Role from it.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
}

func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
