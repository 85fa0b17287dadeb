// Package yaml encodes inspection results as YAML.
package yaml

import (
	"io"

	"github.com/fwojciec/metainspect"
	"gopkg.in/yaml.v3"
)

// Ensure Encoder implements metainspect.Encoder at compile time.
var _ metainspect.Encoder = (*Encoder)(nil)

// Encoder writes results as a YAML sequence. Absent fields encode as null.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes results as one YAML document.
func (e *Encoder) Encode(results []*metainspect.Result) error {
	if results == nil {
		results = []*metainspect.Result{}
	}

	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(results); err != nil {
		return metainspect.WrapError(metainspect.EINTERNAL, err, "encoding yaml")
	}
	if err := enc.Close(); err != nil {
		return metainspect.WrapError(metainspect.EINTERNAL, err, "writing yaml")
	}
	return nil
}
