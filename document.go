package metainspect

// Element is a single node matched by a selector.
type Element interface {
	// Attr returns the named attribute and whether it exists.
	Attr(name string) (string, bool)

	// Text returns the combined text content of the element and its
	// descendants.
	Text() string
}

// Document is a parsed HTML page that can be queried with CSS selectors.
type Document interface {
	// Query returns the elements matching the selector in document order.
	// An invalid selector matches nothing.
	Query(selector string) []Element
}

// Parser turns a fetched body into a queryable Document.
type Parser interface {
	// Parse decodes and parses body. The content type is used to detect
	// the character encoding and may be empty.
	//
	// Parsing is best-effort; only an empty or unreadable body fails with
	// EPARSE.
	Parse(body []byte, contentType string) (Document, error)
}
