package search

import (
	"fmt"
	"strings"
)

// Aliases maps each join of a family onto the table alias used in the
// repository's FROM clause.
type Aliases map[Join]string

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type queryBuilder struct {
	aliases    Aliases
	conditions []string
	args       []any
	argID      int
}

func newQueryBuilder(aliases Aliases, firstArg int) *queryBuilder {
	if firstArg < 1 {
		firstArg = 1
	}
	return &queryBuilder{
		aliases: aliases,
		argID:   firstArg,
		args:    make([]any, 0),
	}
}

func (qb *queryBuilder) column(f Field) (string, error) {
	alias, ok := qb.aliases[f.Join]
	if !ok {
		return "", fmt.Errorf("no table alias for join %q of field %s", f.Join, f.Name)
	}
	if alias == "" {
		return f.Column, nil
	}
	return alias + "." + f.Column, nil
}

func (qb *queryBuilder) addCondition(condition string, column string, arg any) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, column, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

func (qb *queryBuilder) apply(c Condition) error {
	col, err := qb.column(c.Field)
	if err != nil {
		return err
	}
	switch c.Op {
	case OpEq:
		qb.addCondition("%s = $%d", col, c.Value)
	case OpGte:
		qb.addCondition("%s >= $%d", col, c.Value)
	case OpLte:
		qb.addCondition("%s <= $%d", col, c.Value)
	case OpContains:
		s, ok := c.Value.(string)
		if !ok {
			return fmt.Errorf("contains on %s needs a string, got %T", c.Field.Name, c.Value)
		}
		qb.addCondition(`%s::text ILIKE $%d ESCAPE '\'`, col, "%"+likeEscaper.Replace(s)+"%")
	default:
		return fmt.Errorf("unsupported operator %q", c.Op)
	}
	return nil
}

// SQL renders the predicate as a WHERE body with positional placeholders
// starting at firstArg. Conjuncts keep their build order.
func (p Predicate) SQL(aliases Aliases, firstArg int) (string, []any, error) {
	qb := newQueryBuilder(aliases, firstArg)
	for _, c := range p.conditions {
		if err := qb.apply(c); err != nil {
			return "", nil, err
		}
	}
	if len(qb.conditions) == 0 {
		return "TRUE", qb.args, nil
	}
	return strings.Join(qb.conditions, " AND "), qb.args, nil
}
