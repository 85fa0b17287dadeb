package metainspect

// Target is a normalized URL split into the components used during
// inspection.
type Target struct {
	// URL is the normalized URL that is fetched.
	URL string `json:"url" yaml:"url"`

	// Scheme is the URL scheme, e.g. "http".
	Scheme string `json:"scheme" yaml:"scheme"`

	// Host includes the port when it is not the scheme's default.
	Host string `json:"host" yaml:"host"`

	// RootURL is scheme://host with no path. Relative links are resolved
	// against it.
	RootURL string `json:"rootUrl" yaml:"rootUrl"`
}
