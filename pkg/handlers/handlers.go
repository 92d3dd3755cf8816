package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"drive-portfolio/pkg/models"
)

// FetchFailedMessage is the only error detail the listing endpoint exposes
const FetchFailedMessage = "Portfolio fetch failed"

// Lister produces the portfolio listing
type Lister interface {
	ListPortfolio(ctx context.Context) (*models.Listing, error)
}

// ListingHandler serves the portfolio listing as JSON
func ListingHandler(lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		logrus.Println("Generating Portfolio Listing")

		listing, err := lister.ListPortfolio(r.Context())
		if err != nil {
			logrus.Errorf("Portfolio listing failed: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: FetchFailedMessage})
			return
		}

		writeJSON(w, http.StatusOK, listing)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Warnf("Error writing response: %v", err)
	}
}
