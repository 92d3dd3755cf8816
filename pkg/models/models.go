package models

// Category represents one sub-folder of the portfolio root
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// MediaFile is an image or video file as listed by the storage backend
type MediaFile struct {
	ID            string `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string `json:"name" yaml:"name"`
	MimeType      string `json:"mimeType,omitempty" yaml:"mime_type,omitempty"`
	ThumbnailLink string `json:"thumbnailLink,omitempty" yaml:"thumbnail_link,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	WebViewLink   string `json:"webViewLink,omitempty" yaml:"web_view_link,omitempty"`
}

// Listing is the response body of the portfolio listing endpoint
type Listing struct {
	Categories []Category             `json:"categories" yaml:"categories"`
	Items      map[string][]MediaFile `json:"items" yaml:"items"`
}

// ErrorResponse is returned by the listing endpoint on failure
type ErrorResponse struct {
	Error string `json:"error"`
}
