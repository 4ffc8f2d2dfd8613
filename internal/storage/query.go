package storage

import "strings"

// predicate accumulates parameterized WHERE conditions so optional
// filters never touch the SQL text with caller-supplied values.
type predicate struct {
	clauses []string
	args    []any
}

func (p *predicate) add(clause string, args ...any) {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
}

// where renders the accumulated conditions, or "" when there are none.
func (p *predicate) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}
