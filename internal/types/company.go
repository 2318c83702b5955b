package types

import "github.com/google/uuid"

type Company struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Location    Location  `json:"location"`
	Deleted     bool      `json:"-"`
}
