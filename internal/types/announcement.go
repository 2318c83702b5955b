package types

import (
	"time"

	"github.com/google/uuid"
)

type AnnouncementType string

const (
	AnnouncementSale AnnouncementType = "SALE"
	AnnouncementRent AnnouncementType = "RENT"
)

// Location is shared by real estates and companies.
type Location struct {
	ID      uuid.UUID `json:"id"`
	Country string    `json:"country"`
	City    string    `json:"city"`
	Street  string    `json:"street"`
	Number  string    `json:"number,omitempty"`
}

// RealEstate is the property an announcement advertises.
type RealEstate struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Area            float64   `json:"area"`
	HeatingType     string    `json:"heating_type"`
	Parking         bool      `json:"parking"`
	Balcony         bool      `json:"balcony"`
	Furnished       bool      `json:"furnished"`
	AirConditioning bool      `json:"air_conditioning"`
	Location        Location  `json:"location"`
}

// Author is the subset of the posting user exposed with an announcement.
type Author struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type Announcement struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Price       float64          `json:"price"`
	Type        AnnouncementType `json:"type"`
	PhoneNumber string           `json:"phone_number,omitempty"`
	Author      Author           `json:"author"`
	RealEstate  RealEstate       `json:"real_estate"`
	Deleted     bool             `json:"-"`
	CreatedAt   time.Time        `json:"created_at"`
}

type Report struct {
	ID             uuid.UUID `json:"id"`
	AnnouncementID uuid.UUID `json:"announcement_id"`
	ReporterID     uuid.UUID `json:"reporter_id"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateReportRequest struct {
	Reason string `json:"reason" example:"Listing is a duplicate"`
}

type Image struct {
	ID             uuid.UUID `json:"id"`
	AnnouncementID uuid.UUID `json:"announcement_id"`
	ObjectKey      string    `json:"object_key"`
	URL            string    `json:"url"`
	CreatedAt      time.Time `json:"created_at"`
}
