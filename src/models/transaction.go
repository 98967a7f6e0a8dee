package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConciliationStatus is the reconciliation state of a transaction.
type ConciliationStatus string

const (
	Conciliated    ConciliationStatus = "CONCILIATED"
	NotConciliated ConciliationStatus = "NOT_CONCILIATED"
)

func (s ConciliationStatus) Valid() bool {
	return s == Conciliated || s == NotConciliated
}

type Transaction struct {
	ID                 int64           `json:"id_transactionai"`
	TransactionDate    time.Time       `json:"transaction_date"`
	ProductAccount     *string         `json:"product_account"`
	Amount             decimal.Decimal `json:"amount"`
	Balance            decimal.Decimal `json:"balance"`
	Description        *string         `json:"description"`
	OrganizationID     *int64          `json:"organization_id"`
	Conciliation       *string         `json:"conciliation"`
	ConciliationStatus *string         `json:"conciliation_status"`
	OrganizationName   *string         `json:"organization_name"`
}
