package search

import (
	"fmt"
	"math"
	"strings"

	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

type Operator string

const (
	OpEq       Operator = "="
	OpGte      Operator = ">="
	OpLte      Operator = "<="
	OpContains Operator = "contains"
)

// Condition is one conjunct of a Predicate.
type Condition struct {
	Field Field
	Op    Operator
	Value any
}

func (c Condition) String() string {
	if s, ok := c.Value.(string); ok {
		return fmt.Sprintf("%s %s %q", c.Field.Path(), c.Op, s)
	}
	return fmt.Sprintf("%s %s %v", c.Field.Path(), c.Op, c.Value)
}

// Predicate is the AND of its conditions. The zero value of a family
// predicate still carries its baseline conjuncts.
type Predicate struct {
	family     Family
	conditions []Condition
}

func (p Predicate) Family() Family { return p.family }

func (p Predicate) Len() int { return len(p.conditions) }

// Conditions returns a copy of the conjuncts in build order.
func (p Predicate) Conditions() []Condition {
	out := make([]Condition, len(p.conditions))
	copy(out, p.conditions)
	return out
}

func (p Predicate) String() string {
	parts := make([]string, len(p.conditions))
	for i, c := range p.conditions {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}

// RangeError reports a range whose start lies after its end.
type RangeError struct {
	Field      string
	Start, End float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s range start %v is greater than end %v", e.Field, e.Start, e.End)
}

func (e *RangeError) Unwrap() error { return api.ErrValidation }

type builder struct {
	p   Predicate
	err error
}

func newBuilder(family Family) *builder {
	return &builder{p: Predicate{family: family}}
}

func (b *builder) add(f Field, op Operator, v any) {
	b.p.conditions = append(b.p.conditions, Condition{Field: f, Op: op, Value: v})
}

// between adds one conjunct per present bound.
func (b *builder) between(f Field, start, end *float64) {
	for _, v := range []*float64{start, end} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			if b.err == nil {
				b.err = fmt.Errorf("%w: %s bound must be finite, got %v", api.ErrValidation, f.Name, *v)
			}
			return
		}
	}
	if start != nil && end != nil && *start > *end {
		if b.err == nil {
			b.err = &RangeError{Field: f.Name, Start: *start, End: *end}
		}
		return
	}
	if start != nil {
		b.add(f, OpGte, *start)
	}
	if end != nil {
		b.add(f, OpLte, *end)
	}
}

// contains treats a blank fragment as absent so it never produces a
// match-everything conjunct.
func (b *builder) contains(f Field, v *string) bool {
	if v == nil {
		return false
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return false
	}
	b.add(f, OpContains, s)
	return true
}

func (b *builder) equals(f Field, v *bool) {
	if v != nil {
		b.add(f, OpEq, *v)
	}
}

func (b *builder) build() (Predicate, error) {
	if b.err != nil {
		return Predicate{}, b.err
	}
	return b.p, nil
}

// ForAnnouncements compiles announcement criteria. Soft-deleted
// announcements are always excluded.
func ForAnnouncements(c AnnouncementCriteria) (Predicate, error) {
	b := newBuilder(FamilyAnnouncement)
	b.add(annDeleted, OpEq, false)

	b.between(annPrice, c.StartPrice, c.EndPrice)
	b.between(annArea, c.StartArea, c.EndArea)
	b.contains(annPhoneNumber, c.PhoneNumber)
	b.contains(annType, c.Type)
	b.contains(annAuthorName, c.AuthorName)
	b.contains(annAuthorSurname, c.AuthorSurname)
	b.contains(annHeatingType, c.HeatingType)
	b.contains(annPropertyName, c.PropertyName)
	b.contains(annCountry, c.Country)
	b.contains(annCity, c.City)
	b.contains(annStreet, c.Street)
	b.equals(annParking, c.Parking)
	b.equals(annBalcony, c.Balcony)
	b.equals(annFurnished, c.Furnished)
	b.equals(annAirConditioning, c.AirConditioning)

	return b.build()
}

func ForCompanies(c CompanyCriteria) (Predicate, error) {
	b := newBuilder(FamilyCompany)
	b.add(compDeleted, OpEq, false)

	b.contains(compName, c.Name)
	b.contains(compEmail, c.Email)
	b.contains(compPhoneNumber, c.PhoneNumber)
	b.contains(compCountry, c.Country)
	b.contains(compCity, c.City)

	return b.build()
}

// ForUsers compiles user criteria. Deleted users are always excluded and a
// company name filter only matches members with an accepted verification.
func ForUsers(c UserCriteria) (Predicate, error) {
	b := newBuilder(FamilyUser)
	b.add(userDeleted, OpEq, false)

	b.contains(userFirstName, c.FirstName)
	b.contains(userLastName, c.LastName)
	b.contains(userEmail, c.Email)
	b.contains(userPhoneNumber, c.PhoneNumber)
	if b.contains(userCompanyName, c.CompanyName) {
		b.add(userCompanyVerified, OpEq, string(types.VerificationAccepted))
	}

	return b.build()
}
