// Package fs writes inspection results to a directory tree.
package fs

import (
	"io"
	"net/url"
	"os"
	pathpkg "path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/metainspect"
)

// URLToPath converts a page URL to a relative file path under a directory
// named after the host.
// Example: https://example.com/docs/api → example.com/docs/api.json
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", metainspect.WrapError(metainspect.EINVALIDURL, err, "invalid url %q", rawURL)
	}
	if u.Host == "" {
		return "", metainspect.Errorf(metainspect.EINVALIDURL, "url %q has no host", rawURL)
	}

	host := strings.ReplaceAll(u.Host, ":", "_")
	// Dot segments are resolved against the root so the file stays under host.
	path := strings.TrimPrefix(pathpkg.Clean("/"+u.Path), "/")

	// Root and trailing slash map to an index file in that directory.
	if path == "" || strings.HasSuffix(u.Path, "/") {
		path = pathpkg.Join(path, "index")
	}

	return filepath.Join(host, filepath.FromSlash(path)) + "." + ext, nil
}

// ResultWriter writes each result to its own file, one file per URL.
type ResultWriter struct {
	baseDir    string
	ext        string
	newEncoder func(io.Writer) metainspect.Encoder
}

// NewResultWriter creates a ResultWriter that writes files with extension
// ext under baseDir, encoding each with an encoder from newEncoder.
func NewResultWriter(baseDir, ext string, newEncoder func(io.Writer) metainspect.Encoder) *ResultWriter {
	return &ResultWriter{baseDir: baseDir, ext: ext, newEncoder: newEncoder}
}

// WriteResult writes r and returns the path written. The file is replaced
// atomically, so readers never observe a partial result.
func (w *ResultWriter) WriteResult(r *metainspect.Result) (string, error) {
	relPath, err := URLToPath(r.URL, w.ext)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".result-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if err := w.newEncoder(tmp).Encode([]*metainspect.Result{r}); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
