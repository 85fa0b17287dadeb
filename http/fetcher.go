// Package http provides an HTTP-based implementation of metainspect.Fetcher.
package http

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/fwojciec/metainspect"
)

// acceptEncoding lists the content encodings the fetcher decodes itself.
const acceptEncoding = "gzip, deflate, br"

// Ensure Fetcher implements metainspect.Fetcher at compile time.
var _ metainspect.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with a single HTTP GET request.
// It does not execute JavaScript; see rod.Fetcher for rendered pages.
//
// Fetcher is safe for concurrent use. Every call owns its own byte counter.
type Fetcher struct {
	client *http.Client
	opts   metainspect.Options
}

// NewFetcher creates a new HTTP-based Fetcher. Zero option fields take
// their defaults.
func NewFetcher(opts metainspect.Options) *Fetcher {
	f := &Fetcher{
		opts: opts.WithDefaults(),
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: !f.opts.StrictSSL, //nolint:gosec // opt-in via StrictSSL
	}
	// Bodies are decoded by readBody so that the size limit applies to
	// decoded bytes.
	transport.DisableCompression = true

	f.client = &http.Client{
		Timeout:       f.opts.Timeout,
		Transport:     transport,
		CheckRedirect: f.checkRedirect,
	}

	return f
}

// Options returns the effective options, defaults applied.
func (f *Fetcher) Options() metainspect.Options {
	return f.opts
}

// Fetch retrieves the page at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*metainspect.Response, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, metainspect.WrapError(metainspect.EINVALIDURL, err, "invalid url %q", url)
	}
	req.Header.Set("Accept-Encoding", acceptEncoding)
	for k, v := range f.opts.Headers {
		req.Header.Set(k, v)
	}

	begin := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, metainspect.WrapError(metainspect.ENETWORK, err, "fetching %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, metainspect.StatusErrorf(resp.StatusCode, "response status code was %d", resp.StatusCode)
	}

	body, err := f.readBody(resp, cancel)
	if err != nil {
		if metainspect.ErrorCode(err) == metainspect.ETOOLARGE {
			return nil, err
		}
		return nil, metainspect.WrapError(metainspect.ENETWORK, err, "reading body of %s", url)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &metainspect.Response{
		URL:         finalURL,
		StatusCode:  resp.StatusCode,
		Header:      resp.Header.Clone(),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		FetchedAt:   begin,
		Duration:    time.Since(begin),
	}, nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// checkRedirect stops the redirect chain after MaxRedirects hops.
func (f *Fetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if limit := f.opts.RedirectLimit(); len(via) > limit {
		return fmt.Errorf("stopped after %d redirects", limit)
	}
	return nil
}

// readBody decodes the response body while counting decoded bytes.
// Crossing MaxBytes cancels the in-flight request.
func (f *Fetcher) readBody(resp *http.Response, cancel context.CancelCauseFunc) ([]byte, error) {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))

	if (encoding == "" || encoding == "identity") && resp.ContentLength > f.opts.MaxBytes {
		err := tooLarge(f.opts.MaxBytes)
		cancel(err)
		return nil, err
	}

	reader := io.Reader(resp.Body)
	switch encoding {
	case "gzip", "x-gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip decode: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl, err := newDeflateReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("deflate decode: %w", err)
		}
		defer fl.Close()
		reader = fl
	case "br":
		reader = brotli.NewReader(resp.Body)
	}

	return io.ReadAll(&limitedReader{r: reader, max: f.opts.MaxBytes, cancel: cancel})
}

// newDeflateReader decodes zlib-wrapped deflate and falls back to raw
// deflate for servers that omit the zlib header.
func newDeflateReader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	if header, err := br.Peek(2); err == nil && isZlibHeader(header[0], header[1]) {
		return zlib.NewReader(br)
	}
	return flate.NewReader(br), nil
}

// isZlibHeader reports whether cmf and flg form a valid RFC 1950 header
// for the deflate method.
func isZlibHeader(cmf, flg byte) bool {
	return cmf&0x0f == 8 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// limitedReader counts bytes as they are read and fails once more than max
// bytes have been seen, cancelling the request with the same error.
type limitedReader struct {
	r      io.Reader
	n      int64
	max    int64
	cancel context.CancelCauseFunc
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.n += int64(n)
	if l.n > l.max {
		tooLargeErr := tooLarge(l.max)
		l.cancel(tooLargeErr)
		return n, tooLargeErr
	}
	return n, err
}

func tooLarge(max int64) error {
	return metainspect.Errorf(metainspect.ETOOLARGE, "response body exceeded maxBytes limit of %d bytes", max)
}
