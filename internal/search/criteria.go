package search

// Every criteria field is optional; nil means no constraint on that attribute.
// Start/End pairs bound a closed range, open-ended when one side is nil.

type AnnouncementCriteria struct {
	StartPrice *float64
	EndPrice   *float64
	StartArea  *float64
	EndArea    *float64

	PhoneNumber   *string
	Type          *string
	AuthorName    *string
	AuthorSurname *string
	HeatingType   *string
	PropertyName  *string
	Country       *string
	City          *string
	Street        *string

	Parking         *bool
	Balcony         *bool
	Furnished       *bool
	AirConditioning *bool
}

type CompanyCriteria struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Country     *string
	City        *string
}

type UserCriteria struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	// CompanyName also restricts matches to members whose company
	// verification was accepted.
	CompanyName *string
}

// Ptr returns a pointer to v, for building criteria literals.
func Ptr[T any](v T) *T {
	return &v
}
