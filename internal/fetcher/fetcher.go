// Package fetcher downloads webhook media attachments to local disk. Twilio
// media URLs require the account credentials as HTTP basic auth.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// ErrAuth indicates the media host rejected our credentials.
var ErrAuth = errors.New("authentication rejected by media host")

type Fetcher struct {
	client *resty.Client
	dir    string
}

func New(accountSID, authToken, dir string) *Fetcher {
	client := resty.New().
		SetBasicAuth(accountSID, authToken).
		SetTimeout(30 * time.Second)

	return &Fetcher{client: client, dir: dir}
}

// Fetch downloads the attachment in a single attempt and returns the local
// path. The filename is timestamp-qualified plus a random suffix so concurrent
// downloads cannot collide. Partial files are removed on failure; removing the
// file after a successful send is the caller's responsibility.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	name := fmt.Sprintf("resume_%s_%s.pdf", time.Now().UTC().Format("20060102_150405"), uuid.NewString()[:8])
	path := filepath.Join(f.dir, name)

	res, err := f.client.R().
		SetContext(ctx).
		SetOutput(path).
		Get(url)
	if err != nil {
		f.discard(path)
		return "", fmt.Errorf("error downloading attachment: %w", err)
	}

	switch {
	case res.StatusCode() == http.StatusUnauthorized, res.StatusCode() == http.StatusForbidden:
		f.discard(path)
		return "", fmt.Errorf("error downloading attachment (status %d): %w", res.StatusCode(), ErrAuth)
	case res.IsError():
		f.discard(path)
		return "", fmt.Errorf("error downloading attachment: unexpected status %d", res.StatusCode())
	}

	slog.Info("attachment downloaded", "url", url, "path", path)
	return path, nil
}

func (f *Fetcher) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Error("error removing partial download", "path", path, "error", err)
	}
}
