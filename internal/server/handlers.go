package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"founderfolio/internal/catalog"
	"founderfolio/internal/stocks"
)

type handlers struct {
	svc *stocks.Service
	log zerolog.Logger
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Founder-Led Investment API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"companies":      "/api/companies",
			"company":        "/api/companies/{ticker}",
			"top_performers": "/api/top-performers",
			"contrarian":     "/api/contrarian",
			"health":         "/api/health",
		},
	})
}

func (h *handlers) allCompanies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.AllCompanies(r.Context()))
}

func (h *handlers) company(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	rec, err := h.svc.Lookup(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "company not found")
			return
		}
		h.log.Error().Str("ticker", ticker).Err(err).Msg("company lookup failed")
		writeError(w, http.StatusServiceUnavailable, "unable to fetch stock data")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handlers) topPerformers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.TopPerformers(r.Context()))
}

func (h *handlers) contrarian(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ContrarianSignals(r.Context()))
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Health())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
