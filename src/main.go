package main

import (
	"log"
	"net/http"

	"conciliations-server/src/api"
	"conciliations-server/src/config"
	"conciliations-server/src/db"
	"conciliations-server/src/util"
)

func main() {
	cfg := config.Load()

	db.InitCache()

	// Store connections open lazily on first use
	reg := db.NewRegistry()
	defer reg.Close()

	actionLog := util.NewActionLog(cfg.ActionLogPath)

	// Router
	router := api.NewRouter(reg, cfg, actionLog)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
