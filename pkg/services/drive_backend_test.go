package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type driveQuery struct {
	q      string
	fields string
}

func newDriveServer(t *testing.T, handler func(q string) (int, any)) (*DriveBackend, *[]driveQuery) {
	t.Helper()

	var mu sync.Mutex
	var queries []driveQuery

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/files") {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query().Get("q")
		mu.Lock()
		queries = append(queries, driveQuery{q: q, fields: r.URL.Query().Get("fields")})
		mu.Unlock()

		status, body := handler(q)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(ts.Close)

	svc, err := drive.NewService(context.Background(),
		option.WithEndpoint(ts.URL+"/drive/v3/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	return newDriveBackend(svc), &queries
}

func TestDriveBackendListFolders(t *testing.T) {
	backend, queries := newDriveServer(t, func(q string) (int, any) {
		return http.StatusOK, map[string]any{
			"files": []map[string]string{
				{"id": "f1", "name": "Commercials"},
				{"id": "f2", "name": "Music Videos"},
			},
		}
	})

	categories, err := backend.ListFolders(context.Background(), "root-id")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "f1", categories[0].ID)
	assert.Equal(t, "Music Videos", categories[1].Name)

	require.Len(t, *queries, 1)
	got := (*queries)[0]
	assert.Equal(t, "'root-id' in parents and mimeType='application/vnd.google-apps.folder' and trashed=false", got.q)
	assert.Equal(t, "files(id, name)", got.fields)
}

func TestDriveBackendListMedia(t *testing.T) {
	backend, queries := newDriveServer(t, func(q string) (int, any) {
		return http.StatusOK, map[string]any{
			"files": []map[string]string{
				{
					"id":            "v1",
					"name":          "Spot.mp4",
					"mimeType":      "video/mp4",
					"thumbnailLink": "https://lh3.googleusercontent.com/x=s220",
					"description":   "Automotive",
					"webViewLink":   "https://drive.google.com/file/d/v1/view?usp=drivesdk",
				},
				{"id": "i1", "name": "Still.jpg", "mimeType": "image/jpeg"},
			},
		}
	})

	media, err := backend.ListMedia(context.Background(), "f1")
	require.NoError(t, err)
	require.Len(t, media, 2)
	assert.Equal(t, "video/mp4", media[0].MimeType)
	assert.Equal(t, "Automotive", media[0].Description)
	assert.Equal(t, "https://drive.google.com/file/d/v1/view?usp=drivesdk", media[0].WebViewLink)
	assert.Equal(t, "https://lh3.googleusercontent.com/x=s220", media[0].ThumbnailLink)
	assert.Empty(t, media[1].WebViewLink)

	got := (*queries)[0]
	assert.Equal(t, "'f1' in parents and trashed=false and (mimeType contains 'image/' or mimeType contains 'video/')", got.q)
	assert.Equal(t, "files(id,name,mimeType,thumbnailLink,description,webViewLink)", got.fields)
}

func TestDriveBackendError(t *testing.T) {
	backend, _ := newDriveServer(t, func(q string) (int, any) {
		return http.StatusForbidden, map[string]any{
			"error": map[string]any{"code": 403, "message": "insufficient permissions"},
		}
	})

	_, err := backend.ListFolders(context.Background(), "root-id")
	require.Error(t, err)

	var apiErr *googleapi.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Code)

	_, err = backend.ListMedia(context.Background(), "f1")
	assert.Error(t, err)
}

func TestDriveBackendWithService(t *testing.T) {
	backend, _ := newDriveServer(t, func(q string) (int, any) {
		if strings.Contains(q, "application/vnd.google-apps.folder") {
			return http.StatusOK, map[string]any{"files": []map[string]string{{"id": "f1", "name": "Reels"}}}
		}
		return http.StatusOK, map[string]any{"files": []map[string]string{}}
	})

	svc := NewService(testConfig(), factoryFor(backend))
	listing, err := svc.ListPortfolio(context.Background())
	require.NoError(t, err)
	require.Len(t, listing.Categories, 1)
	assert.NotNil(t, listing.Items["f1"])
	assert.Empty(t, listing.Items["f1"])
}

func TestQuoteID(t *testing.T) {
	assert.Equal(t, "abc", quoteID("abc"))
	assert.Equal(t, `it\'s`, quoteID("it's"))
	assert.Equal(t, `a\\b`, quoteID(`a\b`))
}
