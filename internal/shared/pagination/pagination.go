package pagination

import (
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"venuebook/internal/shared/apperrors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Query holds the paging, search and sort parameters shared by every list endpoint.
type Query struct {
	Page      int    `form:"page" json:"page" validate:"omitempty,min=1"`
	Limit     int    `form:"limit" json:"limit" validate:"omitempty,min=1"`
	Search    string `form:"search" json:"search" validate:"omitempty,max=100"`
	SortBy    string `form:"sortBy" json:"sortBy" validate:"omitempty,max=50"`
	SortOrder string `form:"sortOrder" json:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
}

// Normalize applies defaults and caps the limit.
func (q *Query) Normalize() {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.SortOrder = strings.ToLower(q.SortOrder)
	q.Search = strings.TrimSpace(q.Search)
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// SortSpec whitelists the sortable fields of one resource.
type SortSpec struct {
	// API field name -> column name
	Fields       map[string]string
	DefaultField string
	DefaultOrder string
}

// Resolve returns the column and direction for q, rejecting unknown fields.
func (s SortSpec) Resolve(q Query) (column string, desc bool, err error) {
	field := q.SortBy
	if field == "" {
		field = s.DefaultField
	}
	column, ok := s.Fields[field]
	if !ok {
		allowed := make([]string, 0, len(s.Fields))
		for k := range s.Fields {
			allowed = append(allowed, k)
		}
		sort.Strings(allowed)
		return "", false, apperrors.Field("sortBy", "sortBy must be one of: "+strings.Join(allowed, ", "))
	}

	order := q.SortOrder
	if order == "" {
		order = s.DefaultOrder
	}
	return column, strings.EqualFold(order, "desc"), nil
}

// Apply adds ORDER BY (with an id tiebreak), OFFSET and LIMIT to db.
func Apply(db *gorm.DB, q Query, spec SortSpec) (*gorm.DB, error) {
	column, desc, err := spec.Resolve(q)
	if err != nil {
		return nil, err
	}

	db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	if column != "id" {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return db.Offset(q.Offset()).Limit(q.Limit), nil
}

// LikePattern escapes LIKE wildcards in term and wraps it for a substring match.
func LikePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
