// Package inspect implements the inspection pipeline: URL normalization,
// fetching, parsing and field extraction.
package inspect

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/purell"
	"github.com/fwojciec/metainspect"
)

// DefaultScheme is prepended to URLs given without a scheme.
const DefaultScheme = "http"

var (
	schemeRE   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)
	absoluteRE = regexp.MustCompile(`(?i)^(http:|https:)?//`)
)

// ParseTarget normalizes rawURL and splits it into its components.
//
// A missing scheme defaults to http. Normalization lowercases the scheme and
// host, normalizes percent-encoding, drops the default port and gives a bare
// host a trailing slash.
func ParseTarget(rawURL string) (*metainspect.Target, error) {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return nil, metainspect.Errorf(metainspect.EINVALIDURL, "url required")
	}
	if !schemeRE.MatchString(raw) {
		raw = DefaultScheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, metainspect.WrapError(metainspect.EINVALIDURL, err, "invalid url %q", rawURL)
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return nil, metainspect.Errorf(metainspect.EINVALIDURL, "unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, metainspect.Errorf(metainspect.EINVALIDURL, "url %q has no host", rawURL)
	}

	u, err = url.Parse(purell.NormalizeURL(u, purell.FlagsSafe))
	if err != nil {
		return nil, metainspect.WrapError(metainspect.EINVALIDURL, err, "invalid url %q", rawURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	return &metainspect.Target{
		URL:     u.String(),
		Scheme:  u.Scheme,
		Host:    u.Host,
		RootURL: u.Scheme + "://" + u.Host,
	}, nil
}

// AbsolutePath resolves href against rootURL.
//
// Absolute and protocol-relative hrefs are returned unchanged. Anything else
// is treated as a path from the root, so "images/a.png" and "/images/a.png"
// resolve to the same URL.
func AbsolutePath(rootURL, href string) string {
	if absoluteRE.MatchString(href) {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return rootURL + href
}
