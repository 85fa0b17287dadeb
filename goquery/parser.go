// Package goquery implements metainspect.Parser using goquery.
package goquery

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/metainspect"
	"golang.org/x/net/html/charset"
)

// Ensure Parser implements metainspect.Parser at compile time.
var _ metainspect.Parser = (*Parser)(nil)

// Parser parses HTML bodies into goquery documents.
// Malformed markup is repaired by the HTML5 parsing algorithm, so parsing
// only fails for empty input or undecodable bytes.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes body to UTF-8 and parses it as HTML.
// The character set is taken from contentType, a BOM, or a <meta> tag.
func (p *Parser) Parse(body []byte, contentType string) (metainspect.Document, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, metainspect.Errorf(metainspect.EPARSE, "empty document")
	}

	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, metainspect.WrapError(metainspect.EPARSE, err, "decoding document")
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, metainspect.WrapError(metainspect.EPARSE, err, "parsing document")
	}

	return NewDocument(doc), nil
}

// Ensure Document implements metainspect.Document at compile time.
var _ metainspect.Document = (*Document)(nil)

// Document adapts a goquery.Document to metainspect.Document.
type Document struct {
	doc *goquery.Document
}

// NewDocument wraps doc.
func NewDocument(doc *goquery.Document) *Document {
	return &Document{doc: doc}
}

// Query returns the elements matching selector in document order.
// goquery treats an invalid selector as matching nothing.
func (d *Document) Query(selector string) []metainspect.Element {
	sel := d.doc.Find(selector)
	elements := make([]metainspect.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, element{sel: s})
	})
	return elements
}

// element wraps a single-node selection.
type element struct {
	sel *goquery.Selection
}

func (e element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e element) Text() string {
	return e.sel.Text()
}
