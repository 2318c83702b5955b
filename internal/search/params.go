package search

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/FACorreiaa/realestate-ads/internal/api"
)

// The Parse*Criteria functions read criteria from query parameters. Missing
// or blank parameters stay nil.

func ParseAnnouncementCriteria(q url.Values) (AnnouncementCriteria, error) {
	p := paramReader{q: q}
	c := AnnouncementCriteria{
		StartPrice:      p.float("startPrice"),
		EndPrice:        p.float("endPrice"),
		StartArea:       p.float("startArea"),
		EndArea:         p.float("endArea"),
		PhoneNumber:     p.str("phoneNumber"),
		Type:            p.str("type"),
		AuthorName:      p.str("authorName"),
		AuthorSurname:   p.str("authorSurname"),
		HeatingType:     p.str("heatingType"),
		PropertyName:    p.str("propertyName"),
		Country:         p.str("country"),
		City:            p.str("city"),
		Street:          p.str("street"),
		Parking:         p.boolean("parking"),
		Balcony:         p.boolean("balcony"),
		Furnished:       p.boolean("furnished"),
		AirConditioning: p.boolean("airConditioning"),
	}
	return c, p.err
}

func ParseCompanyCriteria(q url.Values) (CompanyCriteria, error) {
	p := paramReader{q: q}
	c := CompanyCriteria{
		Name:        p.str("name"),
		Email:       p.str("email"),
		PhoneNumber: p.str("phoneNumber"),
		Country:     p.str("country"),
		City:        p.str("city"),
	}
	return c, p.err
}

func ParseUserCriteria(q url.Values) (UserCriteria, error) {
	p := paramReader{q: q}
	c := UserCriteria{
		FirstName:   p.str("firstName"),
		LastName:    p.str("lastName"),
		Email:       p.str("email"),
		PhoneNumber: p.str("phoneNumber"),
		CompanyName: p.str("companyName"),
	}
	return c, p.err
}

type paramReader struct {
	q   url.Values
	err error
}

func (p *paramReader) raw(name string) (string, bool) {
	s := strings.TrimSpace(p.q.Get(name))
	return s, s != ""
}

func (p *paramReader) fail(name, want, got string) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s must be %s, got %q", api.ErrValidation, name, want, got)
	}
}

func (p *paramReader) str(name string) *string {
	s, ok := p.raw(name)
	if !ok {
		return nil
	}
	return &s
}

func (p *paramReader) float(name string) *float64 {
	s, ok := p.raw(name)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.fail(name, "a finite number", s)
		return nil
	}
	return &f
}

func (p *paramReader) boolean(name string) *bool {
	s, ok := p.raw(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		p.fail(name, "true or false", s)
		return nil
	}
	return &b
}
