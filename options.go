package metainspect

import (
	"maps"
	"time"
)

// Defaults applied by DefaultOptions and Options.WithDefaults.
const (
	DefaultMaxRedirects       = 5
	DefaultTimeout            = 20 * time.Second
	DefaultMaxBytes     int64 = 10 << 20
	DefaultUserAgent          = "MetaInspector/1.0"
)

// NoRedirects disables redirect following when set as Options.MaxRedirects.
const NoRedirects = -1

// Options configures how a page is fetched.
// The zero value of a field means "use the default".
type Options struct {
	// MaxRedirects is the number of redirects followed before giving up.
	// Use NoRedirects to fail on the first redirect.
	MaxRedirects int `json:"maxRedirects" yaml:"maxRedirects"`

	// Timeout bounds the whole request, including reading the body.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// StrictSSL enables TLS certificate verification.
	StrictSSL bool `json:"strictSSL" yaml:"strictSSL"`

	// Headers are sent with the request.
	Headers map[string]string `json:"headers" yaml:"headers"`

	// MaxBytes caps the decoded response body size.
	MaxBytes int64 `json:"maxBytes" yaml:"maxBytes"`
}

// DefaultOptions returns the default fetch options.
func DefaultOptions() Options {
	return Options{
		MaxRedirects: DefaultMaxRedirects,
		Timeout:      DefaultTimeout,
		Headers:      map[string]string{"User-Agent": DefaultUserAgent},
		MaxBytes:     DefaultMaxBytes,
	}
}

// WithDefaults returns a copy of o with zero fields replaced by defaults.
// A non-empty Headers map replaces the default headers entirely.
func (o Options) WithDefaults() Options {
	if o.MaxRedirects == 0 {
		o.MaxRedirects = DefaultMaxRedirects
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxBytes == 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if len(o.Headers) == 0 {
		o.Headers = map[string]string{"User-Agent": DefaultUserAgent}
	} else {
		o.Headers = maps.Clone(o.Headers)
	}
	return o
}

// RedirectLimit returns the number of redirects to follow, treating
// NoRedirects as zero.
func (o Options) RedirectLimit() int {
	if o.MaxRedirects < 0 {
		return 0
	}
	return o.MaxRedirects
}

// Validate returns an error if the options contain invalid values.
func (o Options) Validate() error {
	if o.MaxRedirects < NoRedirects {
		return Errorf(EINVALID, "max redirects must not be below %d", NoRedirects)
	}
	if o.Timeout < 0 {
		return Errorf(EINVALID, "timeout must not be negative")
	}
	if o.MaxBytes < 0 {
		return Errorf(EINVALID, "max bytes must not be negative")
	}
	return nil
}
