package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = 1
	RoleStaff  = 2
	RoleVendor = 3
)

// ServiceUserID identifica chamadas serviço-a-serviço autenticadas por API key
const ServiceUserID = 0

type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserRoleID int
	VendorID   string
	jwt.RegisteredClaims
}

func (c *Claims) IsVendor() bool {
	return c.UserRoleID == RoleVendor
}

// ServiceClaims são as claims atribuídas a uma chamada autenticada por API key
func ServiceClaims() *Claims {
	return &Claims{
		UserID:     ServiceUserID,
		UserName:   "service",
		UserRoleID: RoleAdmin,
	}
}
