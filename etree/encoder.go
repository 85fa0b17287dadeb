// Package etree encodes inspection results as XML.
package etree

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/metainspect"
)

// Ensure Encoder implements metainspect.Encoder at compile time.
var _ metainspect.Encoder = (*Encoder)(nil)

// Encoder writes results as an indented XML document.
//
// Absent scalar fields are omitted. List fields are always present and
// hold one <item> per value.
type Encoder struct {
	w      io.Writer
	indent int
}

// NewEncoder returns an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, indent: 2}
}

// Encode writes results as a single <results> document.
func (e *Encoder) Encode(results []*metainspect.Result) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("results")
	for _, r := range results {
		encodeResult(root.CreateElement("result"), r)
	}

	doc.Indent(e.indent)
	if _, err := doc.WriteTo(e.w); err != nil {
		return metainspect.WrapError(metainspect.EINTERNAL, err, "writing xml")
	}
	return nil
}

func encodeResult(el *etree.Element, r *metainspect.Result) {
	el.CreateAttr("url", r.URL)
	el.CreateAttr("scheme", r.Scheme)
	el.CreateAttr("host", r.Host)
	el.CreateAttr("rootUrl", r.RootURL)

	if resp := r.Response; resp != nil {
		re := el.CreateElement("response")
		re.CreateAttr("url", resp.URL)
		re.CreateAttr("statusCode", strconv.Itoa(resp.StatusCode))
		if resp.ContentType != "" {
			re.CreateAttr("contentType", resp.ContentType)
		}
	}

	for _, f := range r.Fields() {
		if !f.Valid {
			continue
		}
		fe := el.CreateElement(f.Name)
		if !f.List {
			fe.SetText(f.Values[0])
			continue
		}
		for _, v := range f.Values {
			fe.CreateElement("item").SetText(v)
		}
	}
}
