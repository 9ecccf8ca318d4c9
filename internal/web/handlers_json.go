package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vitos/crypto_market_cache/internal/domain"
	"go.uber.org/zap"
)

func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	pairs := s.service.GetAllPairs()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string][]string{"pairs": pairs}); err != nil {
		s.logger.Error("Failed to encode pairs", zap.Error(err))
	}
}

func (s *Server) handleTicker(w http.ResponseWriter, r *http.Request) {
	tickers := s.service.GetAllTickers()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tickers); err != nil {
		s.logger.Error("Failed to encode tickers", zap.Error(err))
	}
}

// handleLiveData serves the composite view for one market. The symbol is
// accepted as a query parameter or, for POST, as a form field; both shapes
// have clients in the wild.
func (s *Server) handleLiveData(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form data", http.StatusBadRequest)
			return
		}
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		symbol = r.FormValue("symbol")
	}
	if symbol == "" {
		http.Error(w, "Missing 'symbol' parameter", http.StatusBadRequest)
		return
	}

	view, err := s.service.GetLiveData(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, domain.ErrMarketNotFound) {
			writeJSONError(w, http.StatusNotFound, "market not found")
			return
		}
		s.logger.Error("Failed to get live data", zap.String("symbol", symbol), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		s.logger.Error("Failed to encode live data", zap.Error(err))
	}
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
