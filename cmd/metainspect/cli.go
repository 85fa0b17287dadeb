package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/metainspect"
	"github.com/fwojciec/metainspect/inspect"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Inspector   *inspect.Inspector
	Inspections metainspect.InspectionService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	DB      string `name:"db" env:"METAINSPECT_DB" default:"${db_path}" help:"Inspection archive path"`

	Inspect InspectCmd `cmd:"" help:"Inspect one or more URLs"`
	History HistoryCmd `cmd:"" help:"Browse archived inspections"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	URLs         []string      `arg:"" name:"url" help:"URLs to inspect"`
	MaxRedirects int           `name:"max-redirects" default:"5" help:"Redirects followed before giving up (0 disables redirects)"`
	Timeout      time.Duration `default:"20s" env:"METAINSPECT_TIMEOUT" help:"Per-request timeout"`
	StrictSSL    bool          `name:"strict-ssl" help:"Verify TLS certificates"`
	Header       []string      `short:"H" help:"Request header as 'Name: value' (repeatable, replaces defaults)"`
	MaxBytes     int64         `name:"max-bytes" default:"10485760" help:"Maximum decoded body size"`
	Format       string        `short:"f" enum:"json,yaml,xml,text" default:"json" help:"Output format (json, yaml, xml, text)"`
	Concurrency  int           `short:"c" default:"4" help:"Concurrent inspection limit"`
	Render       bool          `help:"Render pages in headless Chrome before extraction"`
	Save         bool          `help:"Archive successful inspections"`
	Out          string        `short:"o" type:"path" help:"Also write each result to its own file under this directory"`
}

// Options converts the fetch flags to metainspect.Options.
func (c *InspectCmd) Options() (metainspect.Options, error) {
	opts := metainspect.Options{
		MaxRedirects: c.MaxRedirects,
		Timeout:      c.Timeout,
		StrictSSL:    c.StrictSSL,
		MaxBytes:     c.MaxBytes,
	}
	if opts.MaxRedirects == 0 {
		opts.MaxRedirects = metainspect.NoRedirects
	}
	if len(c.Header) > 0 {
		opts.Headers = make(map[string]string, len(c.Header))
		for _, h := range c.Header {
			name, value, ok := strings.Cut(h, ":")
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				return metainspect.Options{}, metainspect.Errorf(metainspect.EINVALID, "invalid header %q, expected 'Name: value'", h)
			}
			opts.Headers[name] = strings.TrimSpace(value)
		}
	}
	if err := opts.Validate(); err != nil {
		return metainspect.Options{}, err
	}
	return opts, nil
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	List   HistoryListCmd   `cmd:"" default:"withargs" help:"List archived inspections, newest first"`
	Show   HistoryShowCmd   `cmd:"" help:"Show an archived inspection"`
	Delete HistoryDeleteCmd `cmd:"" help:"Delete an archived inspection"`
}

// HistoryListCmd is the "history list" subcommand.
type HistoryListCmd struct {
	URL    string `help:"Only list inspections of this normalized URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of inspections"`
	Offset int    `help:"Number of inspections to skip"`
}

// HistoryShowCmd is the "history show" subcommand.
type HistoryShowCmd struct {
	ID     string `arg:"" help:"Inspection ID"`
	Format string `short:"f" enum:"json,yaml,xml,text" default:"json" help:"Output format (json, yaml, xml, text)"`
}

// HistoryDeleteCmd is the "history delete" subcommand.
type HistoryDeleteCmd struct {
	ID string `arg:"" help:"Inspection ID"`
}
