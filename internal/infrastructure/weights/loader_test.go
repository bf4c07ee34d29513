package weights

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoader_DownloadAndCache(t *testing.T) {
	payload := []byte("onnx-model-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/flow.onnx", r.URL.Path)
		w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	loader := NewLoader(dir, srv.URL)

	data, err := loader.Fetch(context.Background(), "flow")
	require.NoError(t, err)
	require.Equal(t, payload, data)

	cached, err := os.ReadFile(filepath.Join(dir, "flow.onnx"))
	require.NoError(t, err)
	require.Equal(t, payload, cached)
}

func TestLoader_CacheHitSkipsDownload(t *testing.T) {
	payload := []byte("cached-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))

	dir := t.TempDir()
	loader := NewLoader(dir, srv.URL)

	_, err := loader.Fetch(context.Background(), "flow")
	require.NoError(t, err)

	// После остановки сервера ответ приходит из кэша.
	srv.Close()
	data, err := loader.Fetch(context.Background(), "flow")
	require.NoError(t, err)
	require.Equal(t, payload, data)
}

func TestLoader_NotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	loader := NewLoader(t.TempDir(), srv.URL)

	_, err := loader.Fetch(context.Background(), "missing")
	require.ErrorContains(t, err, "unexpected status")
}

func TestLoader_NoBaseURL(t *testing.T) {
	loader := NewLoader(t.TempDir(), "")

	_, err := loader.Fetch(context.Background(), "flow")
	require.ErrorContains(t, err, "no download url")
}
