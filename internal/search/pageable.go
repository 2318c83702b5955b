package search

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/FACorreiaa/realestate-ads/internal/api"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Pageable is the page request handed to the repository together with a
// Predicate. Page is zero-based.
type Pageable struct {
	Page      int
	Size      int
	Sort      Field
	Direction Direction
}

// Page is one slice of results plus the total number of matching rows.
type Page[T any] struct {
	Items []T
	Total int64
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// DefaultPageable returns the first page ordered by the family's id.
func DefaultPageable(family Family) Pageable {
	return Pageable{Size: DefaultPageSize, Sort: defaultSort[family], Direction: Asc}
}

// ParsePageable reads page, size and sort ("field" or "field,desc") from q.
// Size is clamped to [1, MaxPageSize] and the resulting offset must fit in an
// int32; unknown sort keys are rejected.
func ParsePageable(q url.Values, family Family) (Pageable, error) {
	p := DefaultPageable(family)

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Pageable{}, fmt.Errorf("%w: page must be a non-negative integer", api.ErrValidation)
		}
		p.Page = n
	}

	if raw := strings.TrimSpace(q.Get("size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Pageable{}, fmt.Errorf("%w: size must be an integer", api.ErrValidation)
		}
		p.Size = min(max(n, 1), MaxPageSize)
	}

	if p.Page > math.MaxInt32/p.Size {
		return Pageable{}, fmt.Errorf("%w: page %d is out of range", api.ErrValidation, p.Page)
	}

	if raw := strings.TrimSpace(q.Get("sort")); raw != "" {
		key, dir, _ := strings.Cut(raw, ",")
		f, ok := sortable[family][strings.TrimSpace(key)]
		if !ok {
			return Pageable{}, fmt.Errorf("%w: cannot sort by %q", api.ErrValidation, key)
		}
		p.Sort = f
		switch strings.ToUpper(strings.TrimSpace(dir)) {
		case "", string(Asc):
			p.Direction = Asc
		case string(Desc):
			p.Direction = Desc
		default:
			return Pageable{}, fmt.Errorf("%w: sort direction %q", api.ErrValidation, dir)
		}
	}

	return p, nil
}

// OrderBy renders the ORDER BY body. The root id is appended as a
// tiebreaker so pages are stable.
func (p Pageable) OrderBy(aliases Aliases) string {
	qb := newQueryBuilder(aliases, 1)
	id, _ := qb.column(Field{Name: "id", Join: JoinRoot, Column: "id"})
	if id == "" {
		id = "id"
	}

	col, err := qb.column(p.Sort)
	if err != nil || p.Sort.Column == "" {
		col = id
	}
	dir := Asc
	if p.Direction == Desc {
		dir = Desc
	}
	if col == id {
		return col + " " + string(dir)
	}
	return col + " " + string(dir) + ", " + id + " ASC"
}
