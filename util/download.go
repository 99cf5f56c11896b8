package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

// DownloadError is returned when the remote fetch behind a download relay
// fails before any bytes reach the client.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// FilenameFromURL derives an attachment filename from the last path segment
// of rawURL, with query and fragment stripped. Falls back to "download" when
// the URL has no usable segment.
func FilenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "download"
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "download"
	}
	return name
}

// RelayDownload fetches rawURL and streams the body to w verbatim, so the
// browser can save provider result files without hitting their cross-origin
// restrictions. Headers are written only after the remote responded 200; a
// stream that breaks mid-transfer just terminates the connection.
func RelayDownload(ctx context.Context, client *http.Client, rawURL string, w http.ResponseWriter) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &DownloadError{URL: rawURL, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return &DownloadError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &DownloadError{URL: rawURL, Err: fmt.Errorf("remote returned status %d", resp.StatusCode)}
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		w.Header().Set("Content-Length", cl)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", FilenameFromURL(rawURL)))

	_, err = io.Copy(w, resp.Body)
	return err
}
