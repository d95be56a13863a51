package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joecarey/jc-voxnos/internal/call"
	"github.com/joecarey/jc-voxnos/internal/classify"
	"github.com/joecarey/jc-voxnos/internal/format"
	"github.com/joecarey/jc-voxnos/internal/logging"
	"github.com/joecarey/jc-voxnos/internal/model"
	"github.com/joecarey/jc-voxnos/internal/parser"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "voxnos: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		inputPath    string
		forceColor   bool
		forceNoColor bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "voxnos [callId]",
		Short: "Render FreeClimb call logs as per-call timelines",
		Long: `voxnos reads a call log export ({"logs": [...]}) from stdin or --file and
prints a compact timeline for one call. Without an argument the call of the
first record in the batch is shown.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if forceColor && forceNoColor {
				return errors.New("--color and --no-color cannot be used together")
			}
			logger := logging.New(logLevel(verbose), cmd.ErrOrStderr())

			records, err := loadRecords(cmd, inputPath)
			if err != nil {
				return err
			}
			logger.Debug("batch parsed", "records", len(records))

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, err := fmt.Fprintln(out, "No logs found.")
				return err
			}

			target := ""
			if len(args) > 0 {
				target = args[0]
			}
			if target == "" {
				target = records[0].CallID
				if _, err := fmt.Fprintf(out, "Most recent call: %s\n", target); err != nil {
					return err
				}
			}

			tl := call.Select(records, target)
			if len(tl.Records) == 0 {
				_, err := fmt.Fprintf(out, "No logs for callId=%s\n", target)
				return err
			}
			logger.Debug("call selected", "callId", target, "events", len(tl.Records))

			opts := format.TimelineOptions{Color: resolveColorChoice(out, forceColor, forceNoColor)}
			return format.WriteTimeline(out, tl.CallID, classify.Events(tl), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&inputPath, "file", "f", defaultLogFile(), "read the log batch from a file instead of stdin ('-' means stdin)")
	flags.BoolVar(&forceColor, "color", false, "force-enable ANSI colors even when stdout is not a TTY")
	flags.BoolVar(&forceNoColor, "no-color", false, "disable ANSI colors regardless of terminal detection")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics on stderr")

	cmd.AddCommand(newCallsCmd())
	cmd.AddCommand(newInfoCmd())

	return cmd
}

func newCallsCmd() *cobra.Command {
	var (
		inputPath    string
		formatFlag   string
		noHeader     bool
		summaryWidth int
		limit        int
	)

	cmd := &cobra.Command{
		Use:   "calls",
		Short: "List distinct calls in reverse chronological order",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(cmd, inputPath)
			if err != nil {
				return err
			}
			summaries := call.List(records, limit)

			width := summaryWidth
			if width <= 0 {
				width = defaultTranscriptWidth(cmd.OutOrStdout())
			}
			return format.WriteCalls(cmd.OutOrStdout(), summaries, !noHeader, strings.ToLower(formatFlag), width)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&inputPath, "file", "f", defaultLogFile(), "read the log batch from a file instead of stdin ('-' means stdin)")
	flags.StringVar(&formatFlag, "format", "table", "output format: table, plain, json, or jsonl")
	flags.BoolVar(&noHeader, "no-header", false, "omit header row for plain output")
	flags.IntVar(&summaryWidth, "summary-width", 0, "maximum display width of the transcript column (0 means auto)")
	flags.IntVar(&limit, "limit", 0, "limit number of calls returned (0 means no limit)")

	return cmd
}

func newInfoCmd() *cobra.Command {
	var (
		inputPath  string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "info [callId]",
		Short: "Show aggregate metadata for one call",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(cmd, inputPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, err := fmt.Fprintln(out, "No logs found.")
				return err
			}

			target := ""
			if len(args) > 0 {
				target = args[0]
			}
			if target == "" {
				target = records[0].CallID
			}

			tl := call.Select(records, target)
			if len(tl.Records) == 0 {
				_, err := fmt.Fprintf(out, "No logs for callId=%s\n", target)
				return err
			}
			return format.WriteInfo(out, call.Summarize(tl), strings.ToLower(formatFlag))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&inputPath, "file", "f", defaultLogFile(), "read the log batch from a file instead of stdin ('-' means stdin)")
	flags.StringVar(&formatFlag, "format", "text", "output format: text or json")

	return cmd
}

func loadRecords(cmd *cobra.Command, path string) ([]model.LogRecord, error) {
	data, err := parser.ReadInput(path, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	return parser.ParseBatch(data)
}

// defaultLogFile returns the batch source used when --file is not given.
// An empty value means stdin.
func defaultLogFile() string {
	return os.Getenv("VOXNOS_LOG_FILE")
}

// logLevel picks the diagnostic level: --verbose wins, then
// VOXNOS_LOG_LEVEL, then warn.
func logLevel(verbose bool) string {
	if verbose {
		return "debug"
	}
	if env := os.Getenv("VOXNOS_LOG_LEVEL"); env != "" {
		return env
	}
	return "warn"
}

// defaultTranscriptWidth sizes the transcript column from the terminal,
// leaving room for the fixed columns of the calls table.
func defaultTranscriptWidth(out io.Writer) int {
	const fixedColumns = 96
	width := 0
	if file, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(file.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	if width == 0 {
		if colsStr := os.Getenv("COLUMNS"); colsStr != "" {
			if v, err := strconv.Atoi(colsStr); err == nil && v > 0 {
				width = v
			}
		}
	}
	if width > fixedColumns+24 {
		return width - fixedColumns
	}
	return 48
}

func resolveColorChoice(out io.Writer, forceColor, forceNoColor bool) bool {
	if forceColor {
		return true
	}
	if forceNoColor {
		return false
	}
	return shouldUseColorAuto(out)
}

func shouldUseColorAuto(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
