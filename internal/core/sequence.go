// AngelaMos | 2026
// sequence.go

package core

import (
	"context"
	"fmt"
)

// NextSequence returns one past the highest trailing number among values
// of column matching the LIKE pattern. table and column must be trusted
// identifiers.
func NextSequence(ctx context.Context, db DBTX, table, column, pattern string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(%[2]s FROM '([0-9]+)$') AS INTEGER)), 0) + 1
		FROM %[1]s
		WHERE %[2]s LIKE $1`, table, column)

	var next int
	if err := db.GetContext(ctx, &next, query, pattern); err != nil {
		return 0, fmt.Errorf("next %s.%s sequence: %w", table, column, err)
	}
	return next, nil
}
