package handler

import (
	"context"
	"net/http"

	"github.com/wadjakorntonsri/linkboard/pkg/app"
	"github.com/wadjakorntonsri/linkboard/pkg/config"
	"github.com/wadjakorntonsri/linkboard/pkg/logging"
)

var mux http.Handler

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logging.New(cfg.LogLevel, true)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	// Note: On Vercel the local disk is ephemeral, use a libsql:// DATABASE_URL
	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}
	mux = a.Handler
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
