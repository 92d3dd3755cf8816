package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"drive-portfolio/pkg/config"
	"drive-portfolio/pkg/models"
)

const folderMimeType = "application/vnd.google-apps.folder"

const (
	folderFields googleapi.Field = "files(id, name)"
	mediaFields  googleapi.Field = "files(id,name,mimeType,thumbnailLink,description,webViewLink)"
)

// DriveBackend lists portfolio folders from Google Drive
type DriveBackend struct {
	files *drive.FilesService
}

// NewDriveBackend connects to Drive with the configured service account and a read-only scope
func NewDriveBackend(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*DriveBackend, error) {
	opts = append([]option.ClientOption{
		option.WithHTTPClient(serviceAccountClient(ctx, cfg, drive.DriveReadonlyScope)),
	}, opts...)

	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	return newDriveBackend(svc), nil
}

func newDriveBackend(svc *drive.Service) *DriveBackend {
	return &DriveBackend{files: svc.Files}
}

// ListFolders returns the non-trashed folders directly inside parentID
func (b *DriveBackend) ListFolders(ctx context.Context, parentID string) ([]models.Category, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", quoteID(parentID), folderMimeType)

	res, err := b.files.List().Q(q).Fields(folderFields).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing folders of %s: %w", parentID, err)
	}

	categories := make([]models.Category, 0, len(res.Files))
	for _, f := range res.Files {
		categories = append(categories, models.Category{ID: f.Id, Name: f.Name})
	}
	return categories, nil
}

// ListMedia returns the non-trashed image and video files directly inside folderID
func (b *DriveBackend) ListMedia(ctx context.Context, folderID string) ([]models.MediaFile, error) {
	q := fmt.Sprintf("'%s' in parents and trashed=false and (mimeType contains 'image/' or mimeType contains 'video/')", quoteID(folderID))

	res, err := b.files.List().Q(q).Fields(mediaFields).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing files of %s: %w", folderID, err)
	}

	media := make([]models.MediaFile, 0, len(res.Files))
	for _, f := range res.Files {
		media = append(media, models.MediaFile{
			ID:            f.Id,
			Name:          f.Name,
			MimeType:      f.MimeType,
			ThumbnailLink: f.ThumbnailLink,
			Description:   f.Description,
			WebViewLink:   f.WebViewLink,
		})
	}
	return media, nil
}

// quoteID escapes an identifier for use inside a single-quoted Drive query literal
func quoteID(id string) string {
	id = strings.ReplaceAll(id, `\`, `\\`)
	return strings.ReplaceAll(id, `'`, `\'`)
}
