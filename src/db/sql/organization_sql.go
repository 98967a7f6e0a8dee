package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OrganizationNameToID reads the full organizations table and returns a
// display name -> id mapping, used to turn name filters into id filters.
func OrganizationNameToID(ctx context.Context, pool *pgxpool.Pool) (map[string]int64, error) {
	rows, err := pool.Query(ctx, `SELECT organization_id, name FROM organizations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nameToID := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		nameToID[name] = id
	}
	return nameToID, rows.Err()
}

// OrganizationIDToName returns an id -> display name mapping scoped to the
// given id set. An empty set skips the query entirely.
func OrganizationIDToName(ctx context.Context, pool *pgxpool.Pool, ids []int64) (map[int64]string, error) {
	idToName := make(map[int64]string)
	if len(ids) == 0 {
		return idToName, nil
	}

	rows, err := pool.Query(ctx, `SELECT organization_id, name FROM organizations WHERE organization_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		idToName[id] = name
	}
	return idToName, rows.Err()
}

// DistinctOrganizationNames returns every organization display name, for
// the filter widget.
func DistinctOrganizationNames(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	rows, err := pool.Query(ctx, `SELECT DISTINCT name FROM organizations WHERE name IS NOT NULL ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
