package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conciliations-server/src/models"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestBuildTransactionQueryNoFilters(t *testing.T) {
	query, params := BuildTransactionQuery(models.TransactionFilter{})

	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, params)
	assert.Contains(t, query, "LEFT JOIN comun_transaction c ON c.id_transaction = t.id_transactionai")
	assert.True(t, strings.HasSuffix(query, "ORDER BY t.transaction_date DESC LIMIT 5000"))
}

func TestBuildTransactionQueryDateRange(t *testing.T) {
	query, params := BuildTransactionQuery(models.TransactionFilter{
		DateFrom: date("2024-01-01"),
		DateTo:   date("2024-01-31"),
	})

	assert.Contains(t, query, "t.transaction_date BETWEEN $1 AND $2")
	require.Len(t, params, 2)
	assert.Equal(t, *date("2024-01-01"), params[0])
	assert.Equal(t, *date("2024-01-31"), params[1])
}

func TestBuildTransactionQueryOneSidedDates(t *testing.T) {
	query, params := BuildTransactionQuery(models.TransactionFilter{DateFrom: date("2024-01-01")})
	assert.Contains(t, query, "t.transaction_date >= $1")
	assert.NotContains(t, query, "BETWEEN")
	assert.Len(t, params, 1)

	query, params = BuildTransactionQuery(models.TransactionFilter{DateTo: date("2024-01-31")})
	assert.Contains(t, query, "t.transaction_date <= $1")
	assert.NotContains(t, query, "BETWEEN")
	assert.Len(t, params, 1)
}

func TestBuildTransactionQueryProductAccounts(t *testing.T) {
	query, params := BuildTransactionQuery(models.TransactionFilter{
		ProductAccounts: []string{"ACC-1", "ACC-2"},
	})

	assert.Contains(t, query, "t.product_account = ANY($1)")
	require.Len(t, params, 1)
	assert.Equal(t, []string{"ACC-1", "ACC-2"}, params[0])
}

func TestBuildTransactionQueryDescriptionSearch(t *testing.T) {
	query, params := BuildTransactionQuery(models.TransactionFilter{
		DescriptionSearch: "transfer",
	})

	assert.Contains(t, query, "t.description ILIKE $1")
	require.Len(t, params, 1)
	assert.Equal(t, "%transfer%", params[0])
}

func TestBuildTransactionQueryTransactionID(t *testing.T) {
	id := int64(42)
	query, params := BuildTransactionQuery(models.TransactionFilter{TransactionID: &id})

	assert.Contains(t, query, "t.id_transactionai = $1")
	require.Len(t, params, 1)
	assert.Equal(t, int64(42), params[0])
}

func TestBuildTransactionQueryStatus(t *testing.T) {
	query, params := BuildTransactionQuery(models.TransactionFilter{Status: models.Conciliated})

	assert.Contains(t, query, "t.conciliation = $1")
	require.Len(t, params, 1)
	assert.Equal(t, "CONCILIATED", params[0])
}

// A filter naming only organizations that do not exist resolves to a non-nil
// empty id set, which must still be bound so the query matches zero rows.
func TestBuildTransactionQueryEmptyOrganizationIDs(t *testing.T) {
	query, params := BuildTransactionQuery(models.TransactionFilter{
		OrganizationIDs: []int64{},
	})

	assert.Contains(t, query, "t.organization_id = ANY($1)")
	require.Len(t, params, 1)
	assert.Equal(t, []int64{}, params[0])
}

func TestBuildTransactionQueryNilOrganizationIDs(t *testing.T) {
	query, _ := BuildTransactionQuery(models.TransactionFilter{})
	assert.NotContains(t, query, "organization_id = ANY")
}

func TestBuildTransactionQueryDateRangeAndOrganization(t *testing.T) {
	query, params := BuildTransactionQuery(models.TransactionFilter{
		DateFrom:        date("2024-01-01"),
		DateTo:          date("2024-01-31"),
		OrganizationIDs: []int64{11},
	})

	assert.Contains(t, query, "t.transaction_date BETWEEN $1 AND $2 AND t.organization_id = ANY($3)")
	require.Len(t, params, 3)
	assert.Equal(t, []int64{11}, params[2])
	assert.True(t, strings.HasSuffix(query, "ORDER BY t.transaction_date DESC LIMIT 5000"))
}

func TestBuildTransactionQueryAllFilters(t *testing.T) {
	id := int64(7)
	query, params := BuildTransactionQuery(models.TransactionFilter{
		DateFrom:          date("2024-01-01"),
		DateTo:            date("2024-06-30"),
		ProductAccounts:   []string{"ACC-1"},
		DescriptionSearch: "fee",
		TransactionID:     &id,
		OrganizationIDs:   []int64{1, 2},
		Status:            models.NotConciliated,
	})

	assert.Contains(t, query, "t.transaction_date BETWEEN $1 AND $2")
	assert.Contains(t, query, "t.product_account = ANY($3)")
	assert.Contains(t, query, "t.description ILIKE $4")
	assert.Contains(t, query, "t.id_transactionai = $5")
	assert.Contains(t, query, "t.organization_id = ANY($6)")
	assert.Contains(t, query, "t.conciliation = $7")
	assert.Len(t, params, 7)
	assert.Equal(t, 6, strings.Count(query, " AND "))
}

func TestUpdateConciliationInvalidStatus(t *testing.T) {
	// A nil registry proves validation rejects the call before any store access.
	_, err := UpdateConciliation(context.Background(), nil, []int64{101}, "DONE")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateConciliationEmptyIDs(t *testing.T) {
	updated, err := UpdateConciliation(context.Background(), nil, nil, models.Conciliated)
	require.NoError(t, err)
	assert.Zero(t, updated)

	updated, err = UpdateConciliation(context.Background(), nil, []int64{}, models.NotConciliated)
	require.NoError(t, err)
	assert.Zero(t, updated)
}
