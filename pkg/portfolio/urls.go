package portfolio

import (
	"net/url"
	"strings"
)

// Size markers understood by the thumbnail service
const (
	smallSize = "=s220"
	gridSize  = "=s800"
	modalSize = "=s2048"
)

var externalVideoHosts = []string{"youtube.com", "youtu.be", "vimeo.com"}

// GridThumbnailURL upgrades a small thumbnail to the size used in the grid
func GridThumbnailURL(preview string) string {
	return strings.Replace(preview, smallSize, gridSize, 1)
}

// ModalImageURL upgrades a small or grid-size thumbnail to the size used in the modal
func ModalImageURL(preview string) string {
	u := strings.Replace(preview, smallSize, modalSize, 1)
	return strings.Replace(u, gridSize, modalSize, 1)
}

// EmbedURL turns a file view link into an embeddable player link by
// replacing a trailing "/view" path segment with "/preview". Links to
// external video hosts are returned unchanged.
func EmbedURL(viewURL string) string {
	if isExternalVideoHost(viewURL) {
		return viewURL
	}

	end := strings.IndexAny(viewURL, "?#")
	if end < 0 {
		end = len(viewURL)
	}
	p := viewURL[:end]
	if !strings.HasSuffix(p, "/view") {
		return viewURL
	}
	return strings.TrimSuffix(p, "/view") + "/preview" + viewURL[end:]
}

func isExternalVideoHost(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return strings.Contains(raw, "youtube")
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range externalVideoHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
