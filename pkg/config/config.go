package config

import (
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends understood by the listing service
const (
	BackendDrive = "drive"
	BackendGCS   = "gcs"
)

// Config holds all configuration for the application
type Config struct {
	ClientEmail        string `yaml:"client_email"`
	PrivateKey         string `yaml:"private_key"`
	RootFolderID       string `yaml:"root_folder_id"`
	Backend            string `yaml:"backend"`
	BucketName         string `yaml:"bucket_name"`
	Port               string `yaml:"port"`
	ListingConcurrency int    `yaml:"listing_concurrency"`
	APIURL             string `yaml:"api_url"`
}

var (
	// ErrClientEmailNotSet is returned when GOOGLE_CLIENT_EMAIL is not set
	ErrClientEmailNotSet = errors.New("GOOGLE_CLIENT_EMAIL environment variable not set")

	// ErrPrivateKeyNotSet is returned when GOOGLE_PRIVATE_KEY is not set
	ErrPrivateKeyNotSet = errors.New("GOOGLE_PRIVATE_KEY environment variable not set")

	// ErrPrivateKeyInvalid is returned when GOOGLE_PRIVATE_KEY is not a PEM block
	ErrPrivateKeyInvalid = errors.New("GOOGLE_PRIVATE_KEY is not a PEM encoded key")

	// ErrFolderIDNotSet is returned when GOOGLE_DRIVE_FOLDER_ID is not set
	ErrFolderIDNotSet = errors.New("GOOGLE_DRIVE_FOLDER_ID environment variable not set")

	// ErrBucketNameNotSet is returned when the gcs backend is used without BUCKET_NAME
	ErrBucketNameNotSet = errors.New("BUCKET_NAME environment variable not set")

	// ErrUnknownBackend is returned for an unsupported STORAGE_BACKEND
	ErrUnknownBackend = errors.New("unknown storage backend")
)

const (
	defaultPort        = "8080"
	defaultConcurrency = 4
	defaultAPIURL      = "http://localhost:8080"
)

// Load loads configuration from an optional YAML file named by
// PORTFOLIO_CONFIG and then from environment variables, which take
// precedence. Missing credentials are not an error here; see Validate.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv("PORTFOLIO_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	overrideString(&cfg.ClientEmail, "GOOGLE_CLIENT_EMAIL")
	overrideString(&cfg.PrivateKey, "GOOGLE_PRIVATE_KEY")
	overrideString(&cfg.RootFolderID, "GOOGLE_DRIVE_FOLDER_ID")
	overrideString(&cfg.Backend, "STORAGE_BACKEND")
	overrideString(&cfg.BucketName, "BUCKET_NAME")
	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.APIURL, "PORTFOLIO_API_URL")

	if v := os.Getenv("LISTING_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("LISTING_CONCURRENCY must be a positive integer, got %q", v)
		}
		cfg.ListingConcurrency = n
	}

	cfg.PrivateKey = NormalizePrivateKey(cfg.PrivateKey)

	if cfg.Backend == "" {
		cfg.Backend = BackendDrive
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.ListingConcurrency < 1 {
		cfg.ListingConcurrency = defaultConcurrency
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}

	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// NormalizePrivateKey turns the escaped "\n" sequences that environment
// variables usually carry into real newlines.
func NormalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// Validate checks that everything needed to talk to the storage backend is present
func (c *Config) Validate() error {
	if c.ClientEmail == "" {
		return ErrClientEmailNotSet
	}
	if c.PrivateKey == "" {
		return ErrPrivateKeyNotSet
	}
	if block, _ := pem.Decode([]byte(c.PrivateKey)); block == nil {
		return ErrPrivateKeyInvalid
	}
	if c.RootFolderID == "" {
		return ErrFolderIDNotSet
	}

	switch c.Backend {
	case BackendDrive:
	case BackendGCS:
		if c.BucketName == "" {
			return ErrBucketNameNotSet
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}

	return nil
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Listing URL: http://localhost:%s/portfolio-listing\n", c.Port)
	fmt.Printf("Portfolio URL: http://localhost:%s/portfolio\n", c.Port)
}
