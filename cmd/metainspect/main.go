package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/metainspect"
	"github.com/fwojciec/metainspect/goquery"
	mihttp "github.com/fwojciec/metainspect/http"
	"github.com/fwojciec/metainspect/inspect"
	"github.com/fwojciec/metainspect/rod"
	mislog "github.com/fwojciec/metainspect/slog"
	"github.com/fwojciec/metainspect/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default database path, overridable with --db. Set before calling Run().
	DBPath string

	// SQLite database backing the inspection archive. Opened only by
	// commands that need it.
	DB *sqlite.DB

	// Services for end-to-end testing.
	InspectionService metainspect.InspectionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("metainspect"),
		kong.Description("Extract titles, descriptions, images and other metadata from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{"db_path": m.DBPath},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'metainspect --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)

	if cmd == "history" || (cmd == "inspect" && cli.Inspect.Save) {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set METAINSPECT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()

		m.InspectionService = mislog.NewLoggingInspectionService(sqlite.NewInspectionService(m.DB), deps.Logger)
		deps.Inspections = m.InspectionService
	}

	if cmd == "inspect" {
		opts, err := cli.Inspect.Options()
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", metainspect.ErrorMessage(err))
			return err
		}

		var fetcher metainspect.Fetcher
		if cli.Inspect.Render {
			f, err := rod.NewFetcher(opts)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to use --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = mihttp.NewFetcher(opts)
		}
		defer fetcher.Close()

		deps.Inspector = inspect.NewInspector(
			mislog.NewLoggingFetcher(fetcher, deps.Logger),
			mislog.NewLoggingParser(goquery.NewParser(), deps.Logger),
			inspect.WithLogger(deps.Logger),
		)
	}

	return kongCtx.Run(deps)
}

// newLogger returns a text logger on w at Info level, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "metainspect.db"
	}
	dir := filepath.Join(home, ".metainspect")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "metainspect.db")
}
