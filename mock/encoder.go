package mock

import "github.com/fwojciec/metainspect"

var _ metainspect.Encoder = (*Encoder)(nil)

// Encoder is a mock implementation of metainspect.Encoder.
type Encoder struct {
	EncodeFn func(results []*metainspect.Result) error
}

func (e *Encoder) Encode(results []*metainspect.Result) error {
	return e.EncodeFn(results)
}
