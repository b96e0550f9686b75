package postgres

import (
	"fmt"
	"strings"
)

// setClause accumulates "column = $n" assignments for a partial UPDATE.
// Columns are added in the order the repository decides, so the generated
// statement is deterministic for a given set of supplied fields.
type setClause struct {
	assignments []string
	args        []interface{}
}

func (s *setClause) Set(column string, value interface{}) {
	s.args = append(s.args, value)
	s.assignments = append(s.assignments, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

// SetRaw appends an assignment that takes no bind argument, e.g.
// "updated_at = CURRENT_TIMESTAMP".
func (s *setClause) SetRaw(assignment string) {
	s.assignments = append(s.assignments, assignment)
}

func (s *setClause) Empty() bool {
	return len(s.args) == 0
}

// Next returns the placeholder index for the next argument appended
// outside the SET list (typically the WHERE id).
func (s *setClause) Next() int {
	return len(s.args) + 1
}

func (s *setClause) Clause() string {
	return strings.Join(s.assignments, ", ")
}

func (s *setClause) Args() []interface{} {
	return s.args
}
