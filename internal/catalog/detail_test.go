package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes/vol-1", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		response := `{
			"id": "vol-1",
			"volumeInfo": {
				"title": "Dune",
				"authors": ["Frank Herbert"],
				"previewLink": "https://example.com/preview",
				"infoLink": "https://example.com/info",
				"industryIdentifiers": [{"type": "ISBN_13", "identifier": "9780441013593"}]
			},
			"saleInfo": {"buyLink": "https://example.com/buy"},
			"accessInfo": {
				"pdf": {"isAvailable": true, "acsTokenLink": "https://example.com/pdf"},
				"epub": {"isAvailable": false},
				"webReaderLink": "https://example.com/reader",
				"embeddable": true
			}
		}`
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	vol, err := client.Volume(context.Background(), "vol-1")
	require.NoError(t, err)
	assert.Equal(t, "vol-1", vol.ID)
	assert.Equal(t, "Dune", vol.VolumeInfo.Title)
	assert.True(t, vol.AccessInfo.PDF.IsAvailable)
	assert.False(t, vol.AccessInfo.EPUB.IsAvailable)
	assert.True(t, vol.AccessInfo.Embeddable)
	assert.Equal(t, "9780441013593", vol.VolumeInfo.IndustryIdentifiers[0].Identifier)
}

func TestVolumeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"code": 404, "message": "The volume ID could not be found."}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.Volume(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestVolumeEmptyID(t *testing.T) {
	client := NewClient("test-key")

	_, err := client.Volume(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindBadRequest, KindOf(err))
}

func TestVolumeForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "Daily Limit Exceeded."}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.Volume(context.Background(), "vol-1")
	require.Error(t, err)
	assert.Equal(t, KindAuthInvalid, KindOf(err))
}
