package repository

import (
	"strings"

	"gorm.io/gorm"
)

// searchColumns are matched by the free-text q parameter
var searchColumns = []string{"name", "description", "category", "province", "city", "area"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BusinessQuery holds the optional listing filters. Empty fields impose no
// constraint. Values are not checked against known enums, so an unknown
// status simply matches nothing.
type BusinessQuery struct {
	Category string
	Province string
	City     string
	Area     string
	Status   string
	Q        string
}

// Scope turns the query into a gorm scope: exact matches ANDed together,
// plus a case-insensitive substring OR-group when Q is set.
func (q BusinessQuery) Scope() func(*gorm.DB) *gorm.DB {
	exact := []struct {
		column string
		value  string
	}{
		{"category", q.Category},
		{"province", q.Province},
		{"city", q.City},
		{"area", q.Area},
		{"status", q.Status},
	}

	return func(db *gorm.DB) *gorm.DB {
		for _, clause := range exact {
			if v := strings.TrimSpace(clause.value); v != "" {
				db = db.Where(clause.column+" = ?", v)
			}
		}

		term := strings.TrimSpace(q.Q)
		if term == "" {
			return db
		}

		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		parts := make([]string, 0, len(searchColumns))
		args := make([]interface{}, 0, len(searchColumns))
		for _, col := range searchColumns {
			parts = append(parts, "LOWER("+col+`) LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		return db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
}
