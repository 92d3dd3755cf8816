package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"drive-portfolio/pkg/models"
	"drive-portfolio/pkg/services"
)

// newExportCmd creates a new command for exporting the portfolio listing
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export the portfolio listing",
		Long:  `Export the portfolio listing in the specified format. Supported formats: json (the /portfolio-listing body), yaml.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				logrus.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)

			format := "json"
			if len(args) > 0 {
				format = args[0]
			}

			listing, err := services.ListPortfolio(cmd.Context())
			if err != nil {
				logrus.Fatalf("Failed to list portfolio: %v", err)
			}
			exportData(listing, format)
		},
	}
}

// exportData writes the listing to stdout in the specified format
func exportData(listing *models.Listing, format string) {
	data, err := marshalListing(listing, format)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println("Supported formats: json, yaml")
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func marshalListing(listing *models.Listing, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(listing, "", "  ")
	case "yaml":
		return yaml.Marshal(listing)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}
