package mock

import "github.com/fwojciec/metainspect"

var _ metainspect.Parser = (*Parser)(nil)

// Parser is a mock implementation of metainspect.Parser.
type Parser struct {
	ParseFn func(body []byte, contentType string) (metainspect.Document, error)
}

func (p *Parser) Parse(body []byte, contentType string) (metainspect.Document, error) {
	return p.ParseFn(body, contentType)
}

var _ metainspect.Document = (*Document)(nil)

// Document is a mock implementation of metainspect.Document.
type Document struct {
	QueryFn func(selector string) []metainspect.Element
}

func (d *Document) Query(selector string) []metainspect.Element {
	return d.QueryFn(selector)
}

var _ metainspect.Element = (*Element)(nil)

// Element is a static metainspect.Element.
type Element struct {
	Attrs   map[string]string
	Content string
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

func (e *Element) Text() string {
	return e.Content
}
