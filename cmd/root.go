package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"drive-portfolio/pkg/config"
)

// Configuration flags
var (
	clientEmail string
	privateKey  string
	folderID    string
	backendName string
	bucketName  string
	portNumber  string
	apiURL      string
	configFile  string
	logLevel    string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "drive-portfolio",
		Short: "Drive Portfolio serves a media portfolio from a cloud storage folder",
		Long: `Drive Portfolio is a command line application that lists the folders and media
files of a Google Drive (or Cloud Storage) root as a categorized portfolio. It can
serve the listing over HTTP and browse it in the terminal.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVar(&clientEmail, "client-email", "", "Set the GOOGLE_CLIENT_EMAIL (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&privateKey, "private-key", "", "Set the GOOGLE_PRIVATE_KEY (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&folderID, "folder", "f", "", "Set the GOOGLE_DRIVE_FOLDER_ID (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "Set the STORAGE_BACKEND, drive or gcs (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the BUCKET_NAME (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Set the PORTFOLIO_API_URL (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Read configuration from a YAML file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add commands to root
	rootCmd.AddCommand(newListCategoriesCmd())
	rootCmd.AddCommand(newShowCategoryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newBrowseCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	overrides := map[string]string{
		"PORTFOLIO_CONFIG":       configFile,
		"GOOGLE_CLIENT_EMAIL":    clientEmail,
		"GOOGLE_PRIVATE_KEY":     privateKey,
		"GOOGLE_DRIVE_FOLDER_ID": folderID,
		"STORAGE_BACKEND":        backendName,
		"BUCKET_NAME":            bucketName,
		"PORT":                   portNumber,
		"PORTFOLIO_API_URL":      apiURL,
	}
	for key, value := range overrides {
		if value != "" {
			os.Setenv(key, value)
		}
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}
