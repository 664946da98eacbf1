package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"email-assistant/internal/fetcher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pdfContents = "%PDF-1.4 test resume"

func newMediaServer(t *testing.T, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ACtest" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(pdfContents))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchDownloadsWithAuth(t *testing.T) {
	server := newMediaServer(t, http.StatusOK)
	dir := t.TempDir()

	f := fetcher.New("ACtest", "secret", dir)

	path, err := f.Fetch(context.Background(), server.URL+"/media/abc")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Regexp(t, `^resume_\d{8}_\d{6}_[0-9a-f\-]+\.pdf$`, filepath.Base(path))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pdfContents, string(contents))
}

func TestFetchBadCredentials(t *testing.T) {
	server := newMediaServer(t, http.StatusOK)
	dir := t.TempDir()

	f := fetcher.New("ACtest", "wrong", dir)

	_, err := f.Fetch(context.Background(), server.URL+"/media/abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fetcher.ErrAuth))

	assertDirEmpty(t, dir)
}

func TestFetchServerError(t *testing.T) {
	server := newMediaServer(t, http.StatusInternalServerError)
	dir := t.TempDir()

	f := fetcher.New("ACtest", "secret", dir)

	_, err := f.Fetch(context.Background(), server.URL+"/media/abc")
	require.Error(t, err)
	assert.False(t, errors.Is(err, fetcher.ErrAuth))

	assertDirEmpty(t, dir)
}

func TestFetchUnreachableHost(t *testing.T) {
	dir := t.TempDir()
	f := fetcher.New("ACtest", "secret", dir)

	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/media/abc")
	require.Error(t, err)

	assertDirEmpty(t, dir)
}

func TestFetchUniqueFilenames(t *testing.T) {
	server := newMediaServer(t, http.StatusOK)
	dir := t.TempDir()

	f := fetcher.New("ACtest", "secret", dir)

	first, err := f.Fetch(context.Background(), server.URL+"/media/abc")
	require.NoError(t, err)
	second, err := f.Fetch(context.Background(), server.URL+"/media/abc")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial downloads must be removed")
}
