package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// bucketListing is the JSON "items" and "prefixes" served for one list prefix
type bucketListing struct {
	items    []map[string]any
	prefixes []string
}

func newBucketBackend(t *testing.T, listings map[string]bucketListing, sign URLSigner) *BucketBackend {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/b/media/o") {
			http.NotFound(w, r)
			return
		}
		listing := listings[r.URL.Query().Get("prefix")]
		body := map[string]any{
			"kind":     "storage#objects",
			"items":    listing.items,
			"prefixes": listing.prefixes,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(ts.Close)

	client, err := storage.NewClient(context.Background(),
		option.WithEndpoint(ts.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	return &BucketBackend{client: client, bucket: client.Bucket("media"), sign: sign}
}

func fakeSigner(object string) (string, error) {
	return "https://signed.example/" + object, nil
}

func TestBucketBackendListFolders(t *testing.T) {
	backend := newBucketBackend(t, map[string]bucketListing{
		"portfolio/": {
			prefixes: []string{"portfolio/commercials/", "portfolio/music-videos/"},
			items: []map[string]any{
				{"name": "portfolio/readme.txt", "bucket": "media", "contentType": "text/plain"},
			},
		},
	}, fakeSigner)
	defer backend.Close()

	categories, err := backend.ListFolders(context.Background(), "portfolio")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "portfolio/commercials/", categories[0].ID)
	assert.Equal(t, "commercials", categories[0].Name)
	assert.Equal(t, "music-videos", categories[1].Name)
}

func TestBucketBackendListMedia(t *testing.T) {
	backend := newBucketBackend(t, map[string]bucketListing{
		"portfolio/ads/": {
			items: []map[string]any{
				{"name": "portfolio/ads/", "bucket": "media"},
				{"name": "portfolio/ads/spot.mp4", "bucket": "media", "contentType": "video/mp4",
					"metadata": map[string]string{"description": "Automotive Commercial"}},
				{"name": "portfolio/ads/spot.jpg", "bucket": "media", "contentType": "image/jpeg"},
				{"name": "portfolio/ads/still.png", "bucket": "media"},
				{"name": "portfolio/ads/notes.pdf", "bucket": "media", "contentType": "application/pdf"},
			},
		},
	}, fakeSigner)
	defer backend.Close()

	media, err := backend.ListMedia(context.Background(), "portfolio/ads/")
	require.NoError(t, err)
	require.Len(t, media, 2)

	video := media[0]
	assert.Equal(t, "spot.mp4", video.Name)
	assert.Equal(t, "video/mp4", video.MimeType)
	assert.Equal(t, "Automotive Commercial", video.Description)
	assert.Equal(t, "https://signed.example/portfolio/ads/spot.mp4", video.WebViewLink)
	assert.Equal(t, "https://signed.example/portfolio/ads/spot.jpg", video.ThumbnailLink)

	still := media[1]
	assert.Equal(t, "still.png", still.Name)
	assert.Equal(t, "image/png", still.MimeType)
	assert.Equal(t, "https://signed.example/portfolio/ads/still.png", still.ThumbnailLink)
	assert.Empty(t, still.WebViewLink)
}

func TestBucketBackendSignError(t *testing.T) {
	boom := errors.New("no key")
	backend := newBucketBackend(t, map[string]bucketListing{
		"portfolio/ads/": {
			items: []map[string]any{
				{"name": "portfolio/ads/still.png", "bucket": "media", "contentType": "image/png"},
			},
		},
	}, func(string) (string, error) { return "", boom })
	defer backend.Close()

	_, err := backend.ListMedia(context.Background(), "portfolio/ads")
	assert.ErrorIs(t, err, boom)
}

func TestFolderPrefix(t *testing.T) {
	assert.Equal(t, "", folderPrefix(""))
	assert.Equal(t, "a/", folderPrefix("a"))
	assert.Equal(t, "a/b/", folderPrefix("a/b/"))
}
