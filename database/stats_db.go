package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Stats holds the record totals shown on the UI dashboard.
type Stats struct {
	Clients       int64 `json:"clients"`
	Contacts      int64 `json:"contacts"`
	Relationships int64 `json:"relationships"`
}

// GetStats counts the rows in each of the three tables
func GetStats(db *sql.DB) (Stats, error) {
	var stats Stats

	tables := []struct {
		name string
		dest *int64
	}{
		{"clients", &stats.Clients},
		{"contacts", &stats.Contacts},
		{"client_contacts", &stats.Relationships},
	}

	for _, t := range tables {
		queryBuilder := psql.Select("COUNT(*)").From(t.name)
		sqlStr, args, err := queryBuilder.ToSql()
		if err != nil {
			return Stats{}, fmt.Errorf("failed to build SQL for GetStats (%s): %w", t.name, err)
		}
		if err := db.QueryRow(sqlStr, args...).Scan(t.dest); err != nil {
			return Stats{}, fmt.Errorf("failed to count rows in %s: %w", t.name, err)
		}
	}

	return stats, nil
}
