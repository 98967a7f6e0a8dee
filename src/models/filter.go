package models

import "time"

// TransactionFilter carries the optional criteria of one transaction query.
// Nil/empty fields contribute no predicate. OrganizationIDs is filled in by
// the fetch layer from OrganizationNames; a non-nil empty slice means the
// names resolved to nothing and the query must match zero rows.
type TransactionFilter struct {
	DateFrom          *time.Time
	DateTo            *time.Time
	ProductAccounts   []string
	DescriptionSearch string
	OrganizationNames []string
	OrganizationIDs   []int64
	TransactionID     *int64
	Status            ConciliationStatus
}
