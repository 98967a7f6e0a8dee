package models

type ConciliationRequest struct {
	TransactionIDs []int64 `json:"transaction_ids"`
	Status         string  `json:"status"`
}
