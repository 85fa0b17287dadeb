package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/metainspect"
	"github.com/fwojciec/metainspect/fs"
)

// Run executes the inspect command.
//
// Successful results are always printed. Failed URLs are reported on stderr
// and make the command return an error.
func (c *InspectCmd) Run(deps *Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	outcomes := deps.Inspector.InspectAll(deps.Ctx, c.URLs, c.Concurrency)

	var results []*metainspect.Result
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", o.URL, describeError(o.Err))
			continue
		}
		results = append(results, o.Result)
	}

	if err := newEncoder(c.Format, deps.Stdout).Encode(results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	if c.Out != "" {
		w := fs.NewResultWriter(c.Out, fileExt(c.Format), func(w io.Writer) metainspect.Encoder {
			return newEncoder(c.Format, w)
		})
		for _, r := range results {
			path, err := w.WriteResult(r)
			if err != nil {
				return fmt.Errorf("writing %s: %w", r.URL, err)
			}
			logger.Debug("wrote result", "url", r.URL, "path", path)
		}
	}

	if c.Save {
		for _, r := range results {
			ins := metainspect.NewInspection(r)
			if err := deps.Inspections.CreateInspection(deps.Ctx, ins); err != nil {
				fmt.Fprintf(deps.Stderr, "error: saving %s: %s\n", r.URL, metainspect.ErrorMessage(err))
				return err
			}
			fmt.Fprintf(deps.Stderr, "Saved inspection %s for %s\n", ins.ID, r.URL)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inspections failed", failed, len(outcomes))
	}
	return nil
}

// describeError renders an inspection error with its code.
func describeError(err error) string {
	code := metainspect.ErrorCode(err)
	msg := metainspect.ErrorMessage(err)
	if code == metainspect.EINTERNAL {
		msg = err.Error()
	}
	return fmt.Sprintf("%s (%s)", msg, code)
}
