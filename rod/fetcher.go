// Package rod provides a metainspect.Fetcher that renders pages in headless
// Chrome before they are parsed.
package rod

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/metainspect"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements metainspect.Fetcher at compile time.
var _ metainspect.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	opts         metainspect.Options
	fetchTimeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout overrides the per-page timeout taken from the options.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Zero option fields take their defaults. Close must be called when the
// Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts metainspect.Options, fetcherOpts ...Option) (*Fetcher, error) {
	f := &Fetcher{opts: opts.WithDefaults()}
	f.fetchTimeout = f.opts.Timeout
	for _, opt := range fetcherOpts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithIgnoreCertErrors(!f.opts.StrictSSL))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML along with the
// status and headers of the main document response.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*metainspect.Response, error) {
	if f.manager.Closed() {
		return nil, metainspect.Errorf(metainspect.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, metainspect.WrapError(metainspect.ENETWORK, err, "fetching %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	begin := time.Now()
	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, metainspect.WrapError(metainspect.ENETWORK, err, "opening page")
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := f.configure(page); err != nil {
		return nil, err
	}

	doc := &documentResponse{}
	wait := page.EachEvent(
		func(e *proto.NetworkRequestWillBeSent) {
			if e.FrameID == page.FrameID && e.Type == proto.NetworkResourceTypeDocument && e.RedirectResponse != nil {
				doc.redirect()
			}
		},
		func(e *proto.NetworkResponseReceived) {
			if e.FrameID == page.FrameID && e.Type == proto.NetworkResourceTypeDocument {
				doc.capture(e.Response)
			}
		},
	)
	go wait()

	if err := page.Navigate(url); err != nil {
		return nil, metainspect.WrapError(metainspect.ENETWORK, err, "fetching %s", url)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, metainspect.WrapError(metainspect.ENETWORK, err, "fetching %s", url)
	}

	snap := doc.snapshot()
	if limit := f.opts.RedirectLimit(); snap.redirects > limit {
		return nil, metainspect.Errorf(metainspect.ENETWORK, "fetching %s: stopped after %d redirects", url, limit)
	}
	if snap.status != http.StatusOK {
		return nil, metainspect.StatusErrorf(snap.status, "response status code was %d", snap.status)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, metainspect.WrapError(metainspect.ENETWORK, err, "reading rendered html")
	}
	if int64(len(html)) > f.opts.MaxBytes {
		return nil, metainspect.Errorf(metainspect.ETOOLARGE, "response body exceeded maxBytes limit of %d bytes", f.opts.MaxBytes)
	}

	finalURL := snap.url
	if finalURL == "" {
		finalURL = url
	}
	return &metainspect.Response{
		URL:         finalURL,
		StatusCode:  snap.status,
		Header:      snap.header,
		ContentType: snap.mimeType,
		Body:        []byte(html),
		FetchedAt:   begin,
		Duration:    time.Since(begin),
	}, nil
}

// configure applies the user agent and extra request headers to page.
func (f *Fetcher) configure(page *rod.Page) error {
	var extra []string
	for k, v := range f.opts.Headers {
		if strings.EqualFold(k, "User-Agent") {
			if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: v}); err != nil {
				return metainspect.WrapError(metainspect.ENETWORK, err, "setting user agent")
			}
			continue
		}
		extra = append(extra, k, v)
	}
	if len(extra) > 0 {
		if _, err := page.SetExtraHeaders(extra); err != nil {
			return metainspect.WrapError(metainspect.ENETWORK, err, "setting request headers")
		}
	}
	return nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// documentInfo describes the main frame's document response.
type documentInfo struct {
	status    int
	url       string
	mimeType  string
	header    http.Header
	redirects int
}

// documentResponse collects documentInfo from browser events.
type documentResponse struct {
	mu   sync.Mutex
	info documentInfo
}

func (d *documentResponse) capture(resp *proto.NetworkResponse) {
	if resp == nil {
		return
	}
	header := http.Header{}
	for k, v := range resp.Headers {
		// Chrome joins repeated headers with newlines.
		for _, line := range strings.Split(v.Str(), "\n") {
			header.Add(k, line)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.info.status = resp.Status
	d.info.url = resp.URL
	d.info.mimeType = resp.MIMEType
	d.info.header = header
}

func (d *documentResponse) redirect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.info.redirects++
}

func (d *documentResponse) snapshot() documentInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.info
}
