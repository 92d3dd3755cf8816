package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"golang.org/x/sync/errgroup"

	"drive-portfolio/pkg/config"
	"drive-portfolio/pkg/models"
)

// Backend lists folders and media files from a storage provider.
// Implementations are read-only.
type Backend interface {
	ListFolders(ctx context.Context, parentID string) ([]models.Category, error)
	ListMedia(ctx context.Context, folderID string) ([]models.MediaFile, error)
}

// BackendFactory builds a Backend for a single listing request
type BackendFactory func(ctx context.Context, cfg *config.Config) (Backend, error)

// Service assembles the portfolio listing from a storage backend
type Service struct {
	config     *config.Config
	newBackend BackendFactory
}

var (
	// defaultService is the singleton instance of Service
	defaultService *Service
	once           sync.Once
)

// InitService initializes the service with the given configuration
func InitService(cfg *config.Config) {
	once.Do(func() {
		defaultService = NewService(cfg, NewBackend)
	})
}

// Default returns the service set up by InitService
func Default() *Service {
	return defaultService
}

// ListPortfolio lists the portfolio using the default service
func ListPortfolio(ctx context.Context) (*models.Listing, error) {
	return defaultService.ListPortfolio(ctx)
}

// NewService creates a Service that builds its backend with factory
func NewService(cfg *config.Config, factory BackendFactory) *Service {
	return &Service{
		config:     cfg,
		newBackend: factory,
	}
}

// NewBackend builds the backend selected by cfg.Backend
func NewBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Backend {
	case config.BackendGCS:
		return NewBucketBackend(ctx, cfg)
	case config.BackendDrive, "":
		return NewDriveBackend(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}

// ListPortfolio lists the sub-folders of the configured root as categories
// and the media files of each category. Any failure aborts the whole listing.
func (s *Service) ListPortfolio(ctx context.Context) (*models.Listing, error) {
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	backend, err := s.newBackend(ctx, s.config)
	if err != nil {
		return nil, fmt.Errorf("connecting to storage: %w", err)
	}
	if closer, ok := backend.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logrus.Warnf("Error closing storage backend: %v", err)
			}
		}()
	}

	logrus.Debugf("Listing categories under %s", s.config.RootFolderID)

	categories, err := backend.ListFolders(ctx, s.config.RootFolderID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}

	files := make([][]models.MediaFile, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	limit := s.config.ListingConcurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, category := range categories {
		g.Go(func() error {
			media, err := backend.ListMedia(gctx, category.ID)
			if err != nil {
				return fmt.Errorf("listing category %q: %w", category.Name, err)
			}
			if media == nil {
				media = []models.MediaFile{}
			}
			files[i] = media
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make(map[string][]models.MediaFile, len(categories))
	for i, category := range categories {
		items[category.ID] = files[i]
	}

	logrus.Infof("Listed %d categories", len(categories))

	return &models.Listing{
		Categories: categories,
		Items:      items,
	}, nil
}

// serviceAccountClient returns an HTTP client authorized as the configured
// service account for the given scope
func serviceAccountClient(ctx context.Context, cfg *config.Config, scope string) *http.Client {
	conf := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{scope},
		TokenURL:   google.JWTTokenURL,
	}
	return conf.Client(ctx)
}
