// Command scl-journal is a tool for viewing and analyzing edit journals.
//
// Journal files are written by scl-shell when run with the -journal flag,
// or by any program that sets adapter.Config.Journal to a FileLogger.
//
// Usage:
//
//	scl-journal <command> [flags] <file.sjl>
//
// Commands:
//
//	view     View journal in human-readable format
//	export   Export journal to JSON or CSV format
//	filter   Filter journal and write to new file
//	stats    Show statistics about the journal
//
// Examples:
//
//	# View all events
//	scl-journal view edits.sjl
//
//	# View only rejected edits
//	scl-journal view --category rejected edits.sjl
//
//	# Export to CSV
//	scl-journal export --format csv -o edits.csv edits.sjl
//
//	# Keep the value updates of one IED
//	scl-journal filter --ied IED1 --op update_dai -o ied1.sjl edits.sjl
//
//	# Show statistics
//	scl-journal stats edits.sjl
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sclkit/sclkit-go/cmd/scl-journal/commands"
)

const usage = `scl-journal - SCL Edit Journal Analyzer

Usage:
  scl-journal <command> [flags] <file.sjl>

Commands:
  view     View journal in human-readable format
  export   Export journal to JSON or CSV format
  filter   Filter journal and write to new file
  stats    Show statistics about the journal

Use "scl-journal <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// requirePath returns the journal path argument or exits with usage.
func requirePath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: journal file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func newFlagSet(name, synopsis, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "scl-journal %s - %s\n\nUsage:\n  scl-journal %s %s\n\nFlags:\n", name, synopsis, name, args)
		fs.PrintDefaults()
	}
	return fs
}

func runView(args []string) {
	fs := newFlagSet("view", "View journal in human-readable format", "[flags] <file.sjl>")
	category := fs.String("category", "", "Filter by category (applied, rejected)")
	op := fs.String("op", "", "Filter by operation (e.g. update_dai)")
	ied := fs.String("ied", "", "Filter by IED name")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	filter := commands.ViewFilter{IED: *ied}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}
	if *op != "" {
		o, err := commands.ParseOpFlag(*op)
		if err != nil {
			fail(err)
		}
		filter.Op = &o
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export journal to JSON or CSV format", "[flags] <file.sjl>")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter journal and write to new file", "[flags] <file.sjl>")
	output := fs.String("o", "", "Output file (required)")
	session := fs.String("session", "", "Filter by session ID")
	ied := fs.String("ied", "", "Filter by IED name")
	target := fs.String("target", "", "Filter by target XPath prefix")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	category := fs.String("category", "", "Filter by category (applied, rejected)")
	op := fs.String("op", "", "Filter by operation (e.g. update_extrefs)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, commands.FilterOptions{
		Output:       *output,
		SessionID:    *session,
		IED:          *ied,
		TargetPrefix: *target,
		TimeStart:    *timeStart,
		TimeEnd:      *timeEnd,
		Category:     *category,
		Op:           *op,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the journal", "<file.sjl>")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
