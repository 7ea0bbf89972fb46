package store

import "strings"

// predicates accumulates parameterized filter clauses for a listing query.
// The zero value matches every row.
type predicates struct {
	clauses []string
	args    []any
}

func (p *predicates) add(clause string, args ...any) {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
}

// where assembles the WHERE fragment. The constant base clause keeps the
// statement well formed when no filters are active.
func (p *predicates) where() string {
	clauses := append([]string{"1=1"}, p.clauses...)
	return "WHERE " + strings.Join(clauses, " AND ")
}
