package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	rdb "conciliations-server/src/db"
	db "conciliations-server/src/db/sql"
)

// Option lists feed the dashboard's multi-select widgets. They change
// rarely, so results sit in the short-TTL cache.

func GetProductAccountOptions(reg *rdb.Registry) http.HandlerFunc {
	const cacheKey = "filter_options:product_accounts"
	return func(w http.ResponseWriter, r *http.Request) {
		if cached, found := rdb.Cache.Get(cacheKey); found {
			writeOptions(w, cached.([]string))
			return
		}

		pool, err := reg.Acquire(r.Context(), rdb.TargetTransactions)
		if err != nil {
			log.Printf("ERROR: Failed to acquire transactions store: %v", err)
			http.Error(w, "failed to load product accounts", http.StatusInternalServerError)
			return
		}
		accounts, err := db.DistinctProductAccounts(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to load product account options: %v", err)
			http.Error(w, "failed to load product accounts", http.StatusInternalServerError)
			return
		}

		rdb.SetFilterOptionCache(cacheKey, accounts)
		writeOptions(w, accounts)
	}
}

func GetOrganizationOptions(reg *rdb.Registry) http.HandlerFunc {
	const cacheKey = "filter_options:organizations"
	return func(w http.ResponseWriter, r *http.Request) {
		if cached, found := rdb.Cache.Get(cacheKey); found {
			writeOptions(w, cached.([]string))
			return
		}

		pool, err := reg.Acquire(r.Context(), rdb.TargetOrganizations)
		if err != nil {
			log.Printf("ERROR: Failed to acquire organizations store: %v", err)
			http.Error(w, "failed to load organizations", http.StatusInternalServerError)
			return
		}
		names, err := db.DistinctOrganizationNames(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to load organization options: %v", err)
			http.Error(w, "failed to load organizations", http.StatusInternalServerError)
			return
		}

		rdb.SetFilterOptionCache(cacheKey, names)
		writeOptions(w, names)
	}
}

func writeOptions(w http.ResponseWriter, options []string) {
	if options == nil {
		options = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(options)
}
