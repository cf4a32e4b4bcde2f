package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"founderfolio/internal/stocks"
)

// NewRouter wires the read-only HTTP surface over the stocks service.
func NewRouter(svc *stocks.Service, log zerolog.Logger) http.Handler {
	h := &handlers{svc: svc, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/", h.index).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/companies", h.allCompanies).Methods(http.MethodGet)
	api.HandleFunc("/companies/{ticker}", h.company).Methods(http.MethodGet)
	api.HandleFunc("/top-performers", h.topPerformers).Methods(http.MethodGet)
	api.HandleFunc("/contrarian", h.contrarian).Methods(http.MethodGet)
	api.HandleFunc("/health", h.health).Methods(http.MethodGet)

	r.Use(
		requestLogging(log),
		recoverPanic(log),
		withCORS,
		withGzip,
	)
	return r
}
