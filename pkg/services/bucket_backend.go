package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"drive-portfolio/pkg/config"
	"drive-portfolio/pkg/models"
)

// Allowed extensions, used when an object carries no content type
var mediaTypesByExtension = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// URLSigner returns a time-limited URL for an object
type URLSigner func(object string) (string, error)

// BucketBackend lists portfolio folders from a Cloud Storage bucket.
// Folders are object prefixes ending in "/".
type BucketBackend struct {
	client *storage.Client
	bucket *storage.BucketHandle
	sign   URLSigner
}

// NewBucketBackend connects to the configured bucket with a read-only scope.
// Object links are signed with the service account key for 24 hours.
func NewBucketBackend(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*BucketBackend, error) {
	opts = append([]option.ClientOption{
		option.WithHTTPClient(serviceAccountClient(ctx, cfg, storage.ScopeReadOnly)),
	}, opts...)

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	bucket := client.Bucket(cfg.BucketName)
	sign := func(object string) (string, error) {
		return bucket.SignedURL(object, &storage.SignedURLOptions{
			GoogleAccessID: cfg.ClientEmail,
			PrivateKey:     []byte(cfg.PrivateKey),
			Method:         http.MethodGet,
			Expires:        time.Now().Add(24 * time.Hour),
			Scheme:         storage.SigningSchemeV4,
		})
	}

	return &BucketBackend{client: client, bucket: bucket, sign: sign}, nil
}

// Close releases the storage client
func (b *BucketBackend) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

// ListFolders returns the prefixes directly below parentID
func (b *BucketBackend) ListFolders(ctx context.Context, parentID string) ([]models.Category, error) {
	it := b.bucket.Objects(ctx, &storage.Query{Prefix: folderPrefix(parentID), Delimiter: "/"})

	categories := []models.Category{}
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing folders of %s: %w", parentID, err)
		}
		if attrs.Prefix == "" {
			continue
		}
		categories = append(categories, models.Category{
			ID:   attrs.Prefix,
			Name: path.Base(strings.TrimSuffix(attrs.Prefix, "/")),
		})
	}
	return categories, nil
}

// ListMedia returns the images and videos directly inside folderID. An image
// sharing its base name with a video becomes that video's thumbnail.
func (b *BucketBackend) ListMedia(ctx context.Context, folderID string) ([]models.MediaFile, error) {
	prefix := folderPrefix(folderID)
	it := b.bucket.Objects(ctx, &storage.Query{Prefix: prefix, Delimiter: "/"})

	var objects []*storage.ObjectAttrs
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing files of %s: %w", folderID, err)
		}
		if attrs.Prefix != "" || attrs.Name == prefix || !attrs.Deleted.IsZero() {
			continue
		}
		if mediaType(attrs) == "" {
			continue
		}
		objects = append(objects, attrs)
	}

	// Pair videos with same-named images
	videoBases := make(map[string]bool)
	for _, obj := range objects {
		if strings.HasPrefix(mediaType(obj), "video/") {
			videoBases[baseName(obj.Name)] = true
		}
	}
	posters := make(map[string]string)
	for _, obj := range objects {
		if strings.HasPrefix(mediaType(obj), "image/") && videoBases[baseName(obj.Name)] {
			posters[baseName(obj.Name)] = obj.Name
		}
	}

	media := make([]models.MediaFile, 0, len(objects))
	for _, obj := range objects {
		contentType := mediaType(obj)
		base := baseName(obj.Name)

		file := models.MediaFile{
			ID:          obj.Name,
			Name:        path.Base(obj.Name),
			MimeType:    contentType,
			Description: obj.Metadata["description"],
		}

		if strings.HasPrefix(contentType, "video/") {
			link, err := b.sign(obj.Name)
			if err != nil {
				return nil, fmt.Errorf("signing %s: %w", obj.Name, err)
			}
			file.WebViewLink = link

			if poster, ok := posters[base]; ok {
				thumb, err := b.sign(poster)
				if err != nil {
					return nil, fmt.Errorf("signing %s: %w", poster, err)
				}
				file.ThumbnailLink = thumb
			}
		} else {
			if _, isPoster := posters[base]; isPoster {
				continue
			}
			thumb, err := b.sign(obj.Name)
			if err != nil {
				return nil, fmt.Errorf("signing %s: %w", obj.Name, err)
			}
			file.ThumbnailLink = thumb
		}

		media = append(media, file)
	}
	return media, nil
}

// mediaType returns the image or video content type of an object, or "" for anything else
func mediaType(attrs *storage.ObjectAttrs) string {
	contentType := attrs.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mediaTypesByExtension[strings.ToLower(path.Ext(attrs.Name))]
	}
	if strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/") {
		return contentType
	}
	return ""
}

func baseName(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

func folderPrefix(id string) string {
	if id == "" || strings.HasSuffix(id, "/") {
		return id
	}
	return id + "/"
}
