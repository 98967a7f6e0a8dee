package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"conciliations-server/src/db"
	"conciliations-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInvalidStatus is returned by UpdateConciliation before any store access
// when the status is not one of the two conciliation values.
var ErrInvalidStatus = errors.New("status must be 'CONCILIATED' or 'NOT_CONCILIATED'")

// transactionQueryLimit caps result cardinality regardless of filters.
const transactionQueryLimit = 5000

// BuildTransactionQuery assembles the SELECT over the transactions table
// from the optional filter criteria. Each set field contributes exactly one
// predicate, combined with AND; every user value is bound as a statement
// parameter (sets travel as array binds, never interpolated). Ordering and
// the row cap are fixed so reruns of the same criteria stay stable.
func BuildTransactionQuery(f models.TransactionFilter) (string, []any) {
	var wheres []string
	var params []any

	switch {
	case f.DateFrom != nil && f.DateTo != nil:
		params = append(params, *f.DateFrom, *f.DateTo)
		wheres = append(wheres, fmt.Sprintf("t.transaction_date BETWEEN $%d AND $%d", len(params)-1, len(params)))
	case f.DateFrom != nil:
		params = append(params, *f.DateFrom)
		wheres = append(wheres, fmt.Sprintf("t.transaction_date >= $%d", len(params)))
	case f.DateTo != nil:
		params = append(params, *f.DateTo)
		wheres = append(wheres, fmt.Sprintf("t.transaction_date <= $%d", len(params)))
	}

	if len(f.ProductAccounts) > 0 {
		params = append(params, f.ProductAccounts)
		wheres = append(wheres, fmt.Sprintf("t.product_account = ANY($%d)", len(params)))
	}

	if f.DescriptionSearch != "" {
		params = append(params, "%"+f.DescriptionSearch+"%")
		wheres = append(wheres, fmt.Sprintf("t.description ILIKE $%d", len(params)))
	}

	if f.TransactionID != nil {
		params = append(params, *f.TransactionID)
		wheres = append(wheres, fmt.Sprintf("t.id_transactionai = $%d", len(params)))
	}

	// A non-nil empty id set still binds: a filter naming only unknown
	// organizations must match zero rows, not fall away.
	if f.OrganizationIDs != nil {
		params = append(params, f.OrganizationIDs)
		wheres = append(wheres, fmt.Sprintf("t.organization_id = ANY($%d)", len(params)))
	}

	if f.Status != "" {
		params = append(params, string(f.Status))
		wheres = append(wheres, fmt.Sprintf("t.conciliation = $%d", len(params)))
	}

	query := `
		SELECT t.id_transactionai, t.transaction_date, t.product_account, t.amount, t.balance,
		       t.description, t.organization_id, t.conciliation, c.conciliation_status
		FROM transactions t
		LEFT JOIN comun_transaction c ON c.id_transaction = t.id_transactionai
	`
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY t.transaction_date DESC LIMIT %d", transactionQueryLimit)

	return query, params
}

// FetchTransactions resolves organization-name filters to ids, runs the
// built query against the transactions store and annotates each row with
// its organization's display name from the organizations store.
func FetchTransactions(ctx context.Context, reg *db.Registry, f models.TransactionFilter) ([]models.Transaction, error) {
	if len(f.OrganizationNames) > 0 {
		orgPool, err := reg.Acquire(ctx, db.TargetOrganizations)
		if err != nil {
			return nil, err
		}
		nameToID, err := OrganizationNameToID(ctx, orgPool)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve organization names: %w", err)
		}
		ids := make([]int64, 0, len(f.OrganizationNames))
		for _, name := range f.OrganizationNames {
			if id, ok := nameToID[name]; ok {
				ids = append(ids, id)
			}
		}
		f.OrganizationIDs = ids
	}

	pool, err := reg.Acquire(ctx, db.TargetTransactions)
	if err != nil {
		return nil, err
	}

	query, params := BuildTransactionQuery(f)
	rows, err := pool.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.TransactionDate, &t.ProductAccount, &t.Amount, &t.Balance,
			&t.Description, &t.OrganizationID, &t.Conciliation, &t.ConciliationStatus)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := annotateOrganizationNames(ctx, reg, transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func annotateOrganizationNames(ctx context.Context, reg *db.Registry, transactions []models.Transaction) error {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, t := range transactions {
		if t.OrganizationID == nil {
			continue
		}
		if _, ok := seen[*t.OrganizationID]; !ok {
			seen[*t.OrganizationID] = struct{}{}
			ids = append(ids, *t.OrganizationID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	orgPool, err := reg.Acquire(ctx, db.TargetOrganizations)
	if err != nil {
		return err
	}
	idToName, err := OrganizationIDToName(ctx, orgPool, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve organization ids: %w", err)
	}

	for i := range transactions {
		if transactions[i].OrganizationID == nil {
			continue
		}
		if name, ok := idToName[*transactions[i].OrganizationID]; ok {
			n := name
			transactions[i].OrganizationName = &n
		}
	}
	return nil
}

// DistinctProductAccounts returns the product account codes present in the
// transactions table, for the filter widget.
func DistinctProductAccounts(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	rows, err := pool.Query(ctx, `SELECT DISTINCT product_account FROM transactions WHERE product_account IS NOT NULL ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateConciliation bulk-updates the conciliation status of the given
// transactions. The primary transactions row and the denormalized
// comun_transaction row are updated in one transaction so both commit
// together or neither takes effect. Ids with no matching row affect zero
// rows and are not an error. Returns the number of primary rows updated.
func UpdateConciliation(ctx context.Context, reg *db.Registry, transactionIDs []int64, status models.ConciliationStatus) (int64, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidStatus, status)
	}
	if len(transactionIDs) == 0 {
		return 0, nil
	}

	var updated int64
	err := reg.WithTx(ctx, db.TargetTransactions, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx,
			`UPDATE transactions SET conciliation = $1 WHERE id_transactionai = ANY($2)`,
			string(status), transactionIDs)
		if err != nil {
			return fmt.Errorf("failed to update transactions: %w", err)
		}
		updated = cmd.RowsAffected()

		_, err = tx.Exec(ctx,
			`UPDATE comun_transaction SET conciliation = $1, conciliation_status = $2 WHERE id_transaction = ANY($3)`,
			string(status), string(status), transactionIDs)
		if err != nil {
			return fmt.Errorf("failed to update comun_transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
