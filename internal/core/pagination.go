// AngelaMos | 2026
// pagination.go

package core

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 100000
)

type PageParams struct {
	Page     int
	PageSize int
}

func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func PageFromRequest(r *http.Request) PageParams {
	p := PageParams{
		Page:     ParseIntQuery(r, "page", 1),
		PageSize: ParseIntQuery(r, "pageSize", DefaultPageSize),
	}
	p.Normalize()
	return p
}

func ParseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

// Filter accumulates positional WHERE conditions for list queries.
type Filter struct {
	conditions []string
	args       []any
}

func (f *Filter) Eq(column string, value string) {
	if value == "" {
		return
	}
	f.args = append(f.args, value)
	f.conditions = append(f.conditions, fmt.Sprintf("%s = $%d", column, len(f.args)))
}

func (f *Filter) Add(condition string, values ...any) {
	placeholders := make([]any, len(values))
	for i, v := range values {
		f.args = append(f.args, v)
		placeholders[i] = len(f.args)
	}
	f.conditions = append(f.conditions, fmt.Sprintf(condition, placeholders...))
}

func (f *Filter) Search(value string, columns ...string) {
	if value == "" {
		return
	}
	f.args = append(f.args, "%"+EscapeLike(value)+"%")
	idx := len(f.args)

	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", c, idx)
	}
	f.conditions = append(f.conditions, "("+strings.Join(parts, " OR ")+")")
}

func (f *Filter) Where() string {
	if len(f.conditions) == 0 {
		return "TRUE"
	}
	return strings.Join(f.conditions, " AND ")
}

func (f *Filter) Args() []any {
	return f.args
}

// PageClause returns the LIMIT/OFFSET suffix and the args extended with
// the page values.
func (f *Filter) PageClause(p PageParams) (string, []any) {
	n := len(f.args)
	args := append(append([]any{}, f.args...), p.PageSize, p.Offset())
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", n+1, n+2), args
}

func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
