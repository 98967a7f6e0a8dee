package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"conciliations-server/src/config"
	rdb "conciliations-server/src/db"
	db "conciliations-server/src/db/sql"
	"conciliations-server/src/models"
	"conciliations-server/src/util"
)

func GetTransactions(reg *rdb.Registry, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseTransactionFilter(r.URL.Query())
		if err != nil {
			log.Printf("ERROR: Invalid transaction filter from %s: %v", r.RemoteAddr, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		transactions, err := db.FetchTransactions(r.Context(), reg, filter)
		if err != nil {
			if errors.Is(err, config.ErrMissingHost) {
				log.Printf("ERROR: Database configuration incomplete: %v", err)
				http.Error(w, "database configuration incomplete", http.StatusInternalServerError)
				return
			}
			log.Printf("ERROR: Failed to fetch transactions: %v", err)
			http.Error(w, "failed to fetch transactions", http.StatusInternalServerError)
			return
		}

		if len(cfg.DecryptKey) > 0 {
			for i := range transactions {
				if transactions[i].ProductAccount == nil {
					continue
				}
				plain := util.DecryptCell(cfg.DecryptKey, *transactions[i].ProductAccount)
				transactions[i].ProductAccount = &plain
			}
		}

		if transactions == nil {
			transactions = []models.Transaction{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}

func SetConciliation(reg *rdb.Registry, actionLog *util.ActionLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ConciliationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode conciliation request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		status := models.ConciliationStatus(req.Status)
		updated, err := db.UpdateConciliation(r.Context(), reg, req.TransactionIDs, status)
		if err != nil {
			if errors.Is(err, db.ErrInvalidStatus) {
				log.Printf("ERROR: Conciliation request with invalid status %q", req.Status)
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Printf("ERROR: Failed to update conciliation for %d transactions: %v", len(req.TransactionIDs), err)
			http.Error(w, "failed to update conciliation", http.StatusInternalServerError)
			return
		}

		actionLog.Record(string(status), req.TransactionIDs)
		rdb.ClearAllFilterOptionCaches()

		log.Printf("INFO: Conciliation updated - Status: %s, Requested: %d, Updated: %d",
			status, len(req.TransactionIDs), updated)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int64{
			"updated": updated,
		})
	}
}

func parseTransactionFilter(q url.Values) (models.TransactionFilter, error) {
	var f models.TransactionFilter

	if v := q.Get("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errors.New("date_from must be formatted YYYY-MM-DD")
		}
		f.DateFrom = &t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errors.New("date_to must be formatted YYYY-MM-DD")
		}
		f.DateTo = &t
	}

	f.ProductAccounts = q["product_account"]
	f.DescriptionSearch = q.Get("description")
	f.OrganizationNames = q["organization"]

	if v := q.Get("transaction_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, errors.New("transaction_id must be an integer")
		}
		f.TransactionID = &id
	}

	if v := q.Get("status"); v != "" {
		status := models.ConciliationStatus(v)
		if !status.Valid() {
			return f, errors.New("status must be 'CONCILIATED' or 'NOT_CONCILIATED'")
		}
		f.Status = status
	}

	return f, nil
}
