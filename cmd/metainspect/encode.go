package main

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/metainspect"
	"github.com/fwojciec/metainspect/etree"
	"github.com/fwojciec/metainspect/yaml"
)

// newEncoder returns the encoder for an output format accepted by the
// --format flag.
func newEncoder(format string, w io.Writer) metainspect.Encoder {
	switch format {
	case "yaml":
		return yaml.NewEncoder(w)
	case "xml":
		return etree.NewEncoder(w)
	case "text":
		return &textEncoder{w: w}
	default:
		return &jsonEncoder{w: w}
	}
}

// fileExt returns the file extension for an output format.
func fileExt(format string) string {
	switch format {
	case "yaml", "xml":
		return format
	case "text":
		return "txt"
	default:
		return "json"
	}
}

// jsonEncoder writes results as an indented JSON array.
type jsonEncoder struct {
	w io.Writer
}

func (e *jsonEncoder) Encode(results []*metainspect.Result) error {
	if results == nil {
		results = []*metainspect.Result{}
	}
	enc := json.NewEncoder(e.w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// textEncoder writes results with metainspect.FormatResults.
type textEncoder struct {
	w io.Writer
}

func (e *textEncoder) Encode(results []*metainspect.Result) error {
	_, err := io.WriteString(e.w, metainspect.FormatResults(results))
	return err
}
