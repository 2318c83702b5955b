package types

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser       Role = "ROLE_USER"
	RoleAdvertiser Role = "ROLE_ADVERTISER"
	RoleAdmin      Role = "ROLE_ADMIN"
)

// Valid reports whether r is one of the known authorities.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdvertiser, RoleAdmin:
		return true
	}
	return false
}

// VerificationStatus is the state of a user's employment claim towards a company.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationAccepted VerificationStatus = "ACCEPTED"
	VerificationDeclined VerificationStatus = "DECLINED"
)

// User is the persisted account. Email is the login and the token subject.
type User struct {
	ID              uuid.UUID           `json:"id"`
	Email           string              `json:"email"`
	FirstName       string              `json:"first_name"`
	LastName        string              `json:"last_name"`
	PhoneNumber     string              `json:"phone_number,omitempty"`
	Role            Role                `json:"role"`
	PasswordHash    string              `json:"-"`
	CompanyID       *uuid.UUID          `json:"company_id,omitempty"`
	CompanyName     string              `json:"company_name,omitempty"`
	CompanyVerified *VerificationStatus `json:"company_verified,omitempty"`
	Deleted         bool                `json:"-"`
	CreatedAt       time.Time           `json:"created_at"`
}

// Identity is what the identity store returns for a token subject.
type Identity struct {
	ID              uuid.UUID
	Subject         string
	Role            Role
	PasswordHash    string
	CompanyVerified *VerificationStatus
	Deleted         bool
}
