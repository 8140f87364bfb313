package models

import "fmt"

// AppRole is the marketplace persona stored on a profile.
type AppRole string

const (
	AppRoleAdmin    AppRole = "admin"
	AppRoleCustomer AppRole = "customer"
	AppRoleStaff    AppRole = "staff"
)

func (r AppRole) Valid() bool {
	switch r {
	case AppRoleAdmin, AppRoleCustomer, AppRoleStaff:
		return true
	}
	return false
}

// UserRole is the access-control role assigned by the actor.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
	UserRoleGuest UserRole = "guest"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleUser, UserRoleGuest:
		return true
	}
	return false
}

// UserProfile is the caller's saved profile.
type UserProfile struct {
	AppRole      AppRole `json:"appRole"`
	Name         string  `json:"name"`
	Zone         string  `json:"zone"`
	MobileNumber string  `json:"mobileNumber"`
	IsVerified   bool    `json:"isVerified"`
}

// Validate applies the form rules the profile setup screen enforces.
func (p UserProfile) Validate() error {
	if isBlank(p.Name) {
		return fmt.Errorf("name is required")
	}
	if isBlank(p.MobileNumber) {
		return fmt.Errorf("mobile number is required")
	}
	if !p.AppRole.Valid() {
		return fmt.Errorf("unknown app role %q", p.AppRole)
	}
	return nil
}
