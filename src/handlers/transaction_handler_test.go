package handlers

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conciliations-server/src/models"
)

func TestParseTransactionFilterEmpty(t *testing.T) {
	f, err := parseTransactionFilter(url.Values{})
	require.NoError(t, err)

	assert.Nil(t, f.DateFrom)
	assert.Nil(t, f.DateTo)
	assert.Empty(t, f.ProductAccounts)
	assert.Empty(t, f.DescriptionSearch)
	assert.Empty(t, f.OrganizationNames)
	assert.Nil(t, f.TransactionID)
	assert.Empty(t, f.Status)
}

func TestParseTransactionFilterFull(t *testing.T) {
	q := url.Values{
		"date_from":       {"2024-01-01"},
		"date_to":         {"2024-01-31"},
		"product_account": {"ACC-1", "ACC-2"},
		"description":     {"transfer"},
		"organization":    {"Acme", "Globex"},
		"transaction_id":  {"42"},
		"status":          {"CONCILIATED"},
	}

	f, err := parseTransactionFilter(q)
	require.NoError(t, err)

	require.NotNil(t, f.DateFrom)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *f.DateTo)
	assert.Equal(t, []string{"ACC-1", "ACC-2"}, f.ProductAccounts)
	assert.Equal(t, "transfer", f.DescriptionSearch)
	assert.Equal(t, []string{"Acme", "Globex"}, f.OrganizationNames)
	require.NotNil(t, f.TransactionID)
	assert.Equal(t, int64(42), *f.TransactionID)
	assert.Equal(t, models.Conciliated, f.Status)
}

func TestParseTransactionFilterBadDate(t *testing.T) {
	_, err := parseTransactionFilter(url.Values{"date_from": {"01/01/2024"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date_from")

	_, err = parseTransactionFilter(url.Values{"date_to": {"yesterday"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date_to")
}

func TestParseTransactionFilterBadTransactionID(t *testing.T) {
	_, err := parseTransactionFilter(url.Values{"transaction_id": {"abc"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction_id")
}

func TestParseTransactionFilterBadStatus(t *testing.T) {
	_, err := parseTransactionFilter(url.Values{"status": {"DONE"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}
