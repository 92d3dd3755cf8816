package portfolio

import "drive-portfolio/pkg/models"

const demoVideo = "https://www.youtube.com/embed/dQw4w9WgXcQ"

// FallbackListing is the demonstration portfolio shown when the listing
// endpoint cannot be reached. It has the same shape as a real response;
// some items carry no content type and resolve to images.
func FallbackListing() *models.Listing {
	return &models.Listing{
		Categories: []models.Category{
			{ID: "mock-1", Name: "Commercials"},
			{ID: "mock-2", Name: "Music Videos"},
		},
		Items: map[string][]models.MediaFile{
			"mock-1": {
				{
					Name:          "Neon Nights",
					Description:   "Automotive Commercial",
					MimeType:      "image/jpeg",
					ThumbnailLink: "https://images.unsplash.com/photo-1542282088-fe8426682b8f?auto=format&fit=crop&q=80&w=800",
				},
				{
					Name:          "Future Perfect",
					Description:   "Tech Brand Anthem",
					MimeType:      "video/mp4",
					ThumbnailLink: "https://images.unsplash.com/photo-1451187580459-43490279c0fa?auto=format&fit=crop&q=80&w=800",
					WebViewLink:   demoVideo,
				},
			},
			"mock-2": {
				{
					Name:          "Echoes",
					Description:   "Indie Artist Promo",
					ThumbnailLink: "https://images.unsplash.com/photo-1514525253161-7a46d19cd819?auto=format&fit=crop&q=80&w=800",
				},
				{
					Name:          "The Void",
					Description:   "Live Performance",
					MimeType:      "video/mp4",
					ThumbnailLink: "https://images.unsplash.com/photo-1470229722913-7c090be5bcff?auto=format&fit=crop&q=80&w=800",
					WebViewLink:   demoVideo,
				},
			},
		},
	}
}

// FallbackIndex is FallbackListing, normalized
func FallbackIndex() Index {
	return Normalize(FallbackListing())
}
