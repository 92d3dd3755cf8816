package cmd

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"drive-portfolio/pkg/config"
	"drive-portfolio/pkg/handlers"
	"drive-portfolio/pkg/services"
)

// newServeCmd creates a new command for serving the web application
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the web server. It serves the static site from ./public, the portfolio
listing at /portfolio-listing and a rendered portfolio page at /portfolio.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				logrus.Fatalf("Failed to load configuration: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				logrus.Warnf("Configuration incomplete, listing requests will fail: %v", err)
			}
			services.InitService(cfg)
			serveWebsite(cfg)
		},
	}
}

// NewMux wires the portfolio routes around lister
func NewMux(lister handlers.Lister) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("./public")))
	mux.HandleFunc("/portfolio-listing", handlers.ListingHandler(lister))
	mux.HandleFunc("/portfolio", handlers.PortfolioPageHandler(lister, "./views/portfolio.pug"))
	return mux
}

// serveWebsite runs the web server to serve the portfolio
func serveWebsite(cfg *config.Config) {
	mux := NewMux(services.Default())

	// Start server
	cfg.PrintServerStartMessage()
	if err := http.ListenAndServe(cfg.ServerAddress(), mux); err != nil {
		logrus.Errorf("Server error: %v", err)
		os.Exit(1)
	}
}
