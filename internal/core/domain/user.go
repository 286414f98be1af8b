package domain

import "strings"

// Role is one of the three recognized client roles.
type Role string

const (
	RoleCustomer      Role = "customer"
	RoleAdmin         Role = "admin"
	RoleDeliveryAgent Role = "delivery_agent"
)

// backendRoles maps the backend's free-form role strings onto client roles.
// Lookup is case-insensitive with customer as the default.
var backendRoles = map[string]Role{
	"CUSTOMER":       RoleCustomer,
	"USER":           RoleCustomer,
	"ADMIN":          RoleAdmin,
	"DELIVERY_AGENT": RoleDeliveryAgent,
}

// RoleFromBackend normalizes a backend role string.
func RoleFromBackend(s string) Role {
	if r, ok := backendRoles[strings.ToUpper(s)]; ok {
		return r
	}
	return RoleCustomer
}

type (
	User struct {
		UserID string
		Email  string
		Name   string
		Phone  string
		Role   Role
	}

	// Session is the authenticated identity plus its opaque bearer token.
	Session struct {
		User  User
		Token string
	}

	Credentials struct {
		Email    string
		Password string
	}

	SignupData struct {
		Email    string
		Password string
		Name     string
		Phone    string
	}
)

// Valid reports whether the session carries a usable identity.
func (s Session) Valid() bool {
	return s.Token != "" && s.User.UserID != ""
}
