package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nextstep-app/career-service/internal/repositories"
)

// handleDBError is a package-level helper for wrapping database errors
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}

// applyPage applies whitelisted sorting plus pagination to a query.
// sortColumns maps logical API sort keys to SQL-safe column names.
func applyPage(query *gorm.DB, page repositories.Page, sortColumns map[string]string, defaultColumn string) *gorm.DB {
	column, ok := sortColumns[page.SortBy]
	if !ok {
		column = defaultColumn
	}

	order := "DESC"
	if page.SortOrder == "asc" || page.SortOrder == "ASC" {
		order = "ASC"
	}

	// Only mapped SQL column names and a constant sort order reach the query
	query = query.Order(fmt.Sprintf("%s %s", column, order))

	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}

	return query
}

var defaultSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"id":         "id",
}

func withSortColumns(extra map[string]string) map[string]string {
	columns := make(map[string]string, len(defaultSortColumns)+len(extra))
	for k, v := range defaultSortColumns {
		columns[k] = v
	}
	for k, v := range extra {
		columns[k] = v
	}
	return columns
}
