package portfolio

import (
	"strings"

	"github.com/sirupsen/logrus"

	"drive-portfolio/pkg/models"
)

// MediaKind tells how an item is presented in the modal viewer
type MediaKind int

const (
	KindImage MediaKind = iota
	KindVideo
)

func (k MediaKind) String() string {
	if k == KindVideo {
		return "video"
	}
	return "image"
}

// MediaItem is one listed file, normalized for display
type MediaItem struct {
	ID          string
	Name        string
	Description string
	Kind        MediaKind
	PreviewURL  string
	ViewURL     string
}

// Index is the normalized snapshot the controller renders from.
// Every key of Items is the ID of one of Categories.
type Index struct {
	Categories []models.Category
	Items      map[string][]MediaItem
}

// KindFromMimeType resolves a declared content type. Anything that is not a
// video, including an empty type, is treated as an image.
func KindFromMimeType(mimeType string) MediaKind {
	if strings.Contains(mimeType, "video/") {
		return KindVideo
	}
	return KindImage
}

// NewMediaItem converts a listed file into a MediaItem
func NewMediaItem(f models.MediaFile) MediaItem {
	return MediaItem{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Kind:        KindFromMimeType(f.MimeType),
		PreviewURL:  f.ThumbnailLink,
		ViewURL:     f.WebViewLink,
	}
}

// Normalize converts a listing into an Index. Items filed under an unknown
// category are dropped.
func Normalize(listing *models.Listing) Index {
	idx := Index{
		Categories: []models.Category{},
		Items:      make(map[string][]MediaItem),
	}
	if listing == nil {
		return idx
	}

	known := make(map[string]bool, len(listing.Categories))
	for _, c := range listing.Categories {
		idx.Categories = append(idx.Categories, c)
		known[c.ID] = true
	}

	for id, files := range listing.Items {
		if !known[id] {
			logrus.Warnf("Dropping %d items filed under unknown category %s", len(files), id)
			continue
		}
		items := make([]MediaItem, 0, len(files))
		for _, f := range files {
			items = append(items, NewMediaItem(f))
		}
		idx.Items[id] = items
	}

	return idx
}
