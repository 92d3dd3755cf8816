package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drive-portfolio/pkg/portfolio"
)

const listingJSON = `{
  "categories": [{"id": "f1", "name": "Commercials"}],
  "items": {"f1": [{"id": "a", "name": "Spot", "mimeType": "video/mp4", "webViewLink": "https://drive.google.com/file/d/a/view"}]}
}`

func TestFetch(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, ListingPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listingJSON))
	}))
	defer ts.Close()

	c := New(ts.URL + "/")
	assert.Equal(t, ts.URL+ListingPath, c.URL())

	listing, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, listing.Categories, 1)
	assert.Equal(t, "video/mp4", listing.Items["f1"][0].MimeType)

	_, err = c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "second fetch served from cache")

	c.Invalidate()
	_, err = c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Portfolio fetch failed"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).Fetch(context.Background())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestFetchMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchIndexFallsBackOnServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	idx, err := portfolio.FetchIndex(context.Background(), New(ts.URL))
	require.NoError(t, err)
	require.Len(t, idx.Categories, 2)
	assert.Equal(t, "Commercials", idx.Categories[0].Name)
	assert.Equal(t, "Music Videos", idx.Categories[1].Name)
}

func TestFetchIndexFallsBackOnNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	idx, err := portfolio.FetchIndex(context.Background(), New(url))
	require.NoError(t, err)
	assert.Len(t, idx.Categories, 2)
	for _, c := range idx.Categories {
		assert.Len(t, idx.Items[c.ID], 2)
	}
}
