package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/fabiodalez-dev/photoCMS-sub001/models"
)

// AssetsWithIncompleteVariants returns the ids of assets whose count of
// variant rows matching the enabled (format, breakpoint) pairs is below
// expected. Detection is a set difference: all asset ids minus those with a
// complete matrix. Stale rows for disabled formats are ignored, not deleted.
func AssetsWithIncompleteVariants(db *sql.DB, formats, breakpoints []string, expected int) ([]string, error) {
	if expected <= 0 || len(formats) == 0 || len(breakpoints) == 0 {
		return nil, nil
	}

	allIDs, err := queryStrings(db, psql.Select("id").From("assets").OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("failed to list asset ids: %w", err)
	}

	completeBuilder := psql.Select("asset_id").
		From("variants").
		Where(sq.Eq{"format": formats}).
		Where(sq.Eq{"breakpoint": breakpoints}).
		GroupBy("asset_id").
		Having("COUNT(*) >= ?", expected)

	complete, err := queryStrings(db, completeBuilder)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets with complete variant sets: %w", err)
	}

	completeSet := make(map[string]bool, len(complete))
	for _, id := range complete {
		completeSet[id] = true
	}

	var incomplete []string
	for _, id := range allIDs {
		if !completeSet[id] {
			incomplete = append(incomplete, id)
		}
	}
	return incomplete, nil
}

// SensitiveAssetsMissingBlur returns the ids of assets in sensitive albums
// that have no blur variant row yet.
func SensitiveAssetsMissingBlur(db *sql.DB) ([]string, error) {
	queryBuilder := psql.Select("assets.id").
		From("assets").
		Join("albums ON albums.id = assets.album_id").
		Where(sq.Eq{"albums.is_sensitive": true}).
		Where("assets.id NOT IN (SELECT asset_id FROM variants WHERE breakpoint = ?)", models.BlurBreakpoint).
		OrderBy("assets.id")

	ids, err := queryStrings(db, queryBuilder)
	if err != nil {
		return nil, fmt.Errorf("failed to list sensitive assets missing blur variants: %w", err)
	}
	return ids, nil
}

func queryStrings(db *sql.DB, builder sq.SelectBuilder) ([]string, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
