package search

import (
	"strings"

	"github.com/FACorreiaa/realestate-ads/internal/types"
)

// Record exposes the attribute stored under a field descriptor. ok is false
// when the record has no value there, such as a user without a company.
type Record interface {
	Value(f Field) (v any, ok bool)
}

// Match evaluates the predicate against a single record with the same
// semantics as the rendered SQL.
func (p Predicate) Match(r Record) bool {
	for _, c := range p.conditions {
		v, ok := r.Value(c.Field)
		if !ok || !c.holds(v) {
			return false
		}
	}
	return true
}

func (c Condition) holds(v any) bool {
	switch c.Op {
	case OpEq:
		return v == c.Value
	case OpGte, OpLte:
		got, ok1 := v.(float64)
		bound, ok2 := c.Value.(float64)
		if !ok1 || !ok2 {
			return false
		}
		if c.Op == OpGte {
			return got >= bound
		}
		return got <= bound
	case OpContains:
		got, ok1 := v.(string)
		frag, ok2 := c.Value.(string)
		if !ok1 || !ok2 {
			return false
		}
		return strings.Contains(strings.ToLower(got), strings.ToLower(frag))
	}
	return false
}

type AnnouncementRecord types.Announcement

func (a AnnouncementRecord) Value(f Field) (any, bool) {
	re := a.RealEstate
	switch f {
	case annDeleted:
		return a.Deleted, true
	case annID:
		return a.ID.String(), true
	case annTitle:
		return a.Title, true
	case annPrice:
		return a.Price, true
	case annPhoneNumber:
		return a.PhoneNumber, true
	case annType:
		return string(a.Type), true
	case annAuthorName:
		return a.Author.FirstName, true
	case annAuthorSurname:
		return a.Author.LastName, true
	case annArea:
		return re.Area, true
	case annHeatingType:
		return re.HeatingType, true
	case annPropertyName:
		return re.Name, true
	case annParking:
		return re.Parking, true
	case annBalcony:
		return re.Balcony, true
	case annFurnished:
		return re.Furnished, true
	case annAirConditioning:
		return re.AirConditioning, true
	case annCountry:
		return re.Location.Country, true
	case annCity:
		return re.Location.City, true
	case annStreet:
		return re.Location.Street, true
	}
	return nil, false
}

type CompanyRecord types.Company

func (c CompanyRecord) Value(f Field) (any, bool) {
	switch f {
	case compDeleted:
		return c.Deleted, true
	case compID:
		return c.ID.String(), true
	case compName:
		return c.Name, true
	case compEmail:
		return c.Email, true
	case compPhoneNumber:
		return c.PhoneNumber, true
	case compCountry:
		return c.Location.Country, true
	case compCity:
		return c.Location.City, true
	}
	return nil, false
}

type UserRecord types.User

func (u UserRecord) Value(f Field) (any, bool) {
	switch f {
	case userDeleted:
		return u.Deleted, true
	case userID:
		return u.ID.String(), true
	case userFirstName:
		return u.FirstName, true
	case userLastName:
		return u.LastName, true
	case userEmail:
		return u.Email, true
	case userPhoneNumber:
		return u.PhoneNumber, true
	case userCompanyName:
		if u.CompanyID == nil {
			return nil, false
		}
		return u.CompanyName, true
	case userCompanyVerified:
		if u.CompanyVerified == nil {
			return nil, false
		}
		return string(*u.CompanyVerified), true
	}
	return nil, false
}

// Filter returns the records of in that satisfy p, preserving order.
func Filter[T any](p Predicate, in []T, record func(T) Record) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if p.Match(record(v)) {
			out = append(out, v)
		}
	}
	return out
}
