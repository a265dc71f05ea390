package repository

import (
	"strings"

	"gorm.io/gorm"
)

// likeTerm lowercases a search term and wraps it for a LIKE match. Queries
// pair it with LOWER(column) so sqlite and postgres behave the same.
func likeTerm(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// orderBy returns a scope that sorts by a whitelisted column.
func orderBy(allowed map[string]string, sortBy, sortOrder, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column, ok := allowed[sortBy]
		if !ok {
			return db.Order(fallback)
		}
		direction := "DESC"
		if strings.EqualFold(sortOrder, "asc") {
			direction = "ASC"
		}
		return db.Order(column + " " + direction)
	}
}
