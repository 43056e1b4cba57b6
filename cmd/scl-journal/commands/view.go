// Package commands implements the scl-journal CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/sclkit/sclkit-go/pkg/journal"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Category *journal.Category
	Op       *journal.Op
	IED      string
}

func (f ViewFilter) journalFilter() journal.Filter {
	return journal.Filter{Category: f.Category, Op: f.Op, IED: f.IED}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event journal.Event) {
	// Header line: timestamp [session] CATEGORY OP
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [session:%s] %-8s %s\n", ts, shortenSessionID(event.SessionID), event.Category, event.Op)

	if event.Target != "" {
		fmt.Fprintf(w, "  Target: %s\n", event.Target)
	}
	if event.IED != "" {
		fmt.Fprintf(w, "  IED: %s\n", event.IED)
	}

	switch {
	case event.DAI != nil:
		formatDAIDetails(w, event.DAI)
	case event.ExtRef != nil:
		formatExtRefDetails(w, event.ExtRef)
	case event.Import != nil:
		formatImportDetails(w, event.Import)
	case event.Structure != nil:
		formatStructureDetails(w, event.Structure)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatValues(values []journal.ValueRecord) string {
	if len(values) == 0 {
		return "(none)"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		if v.SGroup == 0 {
			parts[i] = fmt.Sprintf("%q", v.Text)
		} else {
			parts[i] = fmt.Sprintf("%d:%q", v.SGroup, v.Text)
		}
	}
	return strings.Join(parts, " ")
}

// formatDAIDetails writes value update details.
func formatDAIDetails(w io.Writer, d *journal.DAIChange) {
	fmt.Fprintf(w, "  DAI: %s %s.%s", d.LN, d.DO, d.DA)
	if d.FC != "" {
		fmt.Fprintf(w, " [%s]", d.FC)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s -> %s\n", formatValues(d.Old), formatValues(d.New))
	if d.Created > 0 {
		fmt.Fprintf(w, "  Created: %d nodes\n", d.Created)
	}
}

// formatExtRefDetails writes binding update details.
func formatExtRefDetails(w io.Writer, x *journal.ExtRefChange) {
	fmt.Fprintf(w, "  LN: %s/%s  created=%d updated=%d\n", x.LDInst, x.LN, x.Created, x.Updated)
	for _, b := range x.Bindings {
		fmt.Fprintf(w, "    %s <- %s/%s/%s%s%s %s", b.IntAddr, b.IEDName, b.LDInst, b.Prefix, b.LNClass, b.LNInst, b.PDO)
		if b.PDA != "" {
			fmt.Fprintf(w, ".%s", b.PDA)
		}
		if b.CBName != "" {
			fmt.Fprintf(w, " via %s", b.CBName)
		}
		fmt.Fprintln(w)
	}
}

// formatImportDetails writes IED import details.
func formatImportDetails(w io.Writer, imp *journal.ImportChange) {
	if imp.Source != "" {
		fmt.Fprintf(w, "  Source: %s\n", imp.Source)
	}
	fmt.Fprintf(w, "  Types added: %d\n", imp.TypesAdded)
	for _, from := range sortedKeys(imp.Renamed) {
		fmt.Fprintf(w, "    %s -> %s\n", from, imp.Renamed[from])
	}
}

// formatStructureDetails writes structural addition details.
func formatStructureDetails(w io.Writer, s *journal.StructureChange) {
	fmt.Fprintf(w, "  Element: %s", s.Element)
	if s.Name != "" {
		fmt.Fprintf(w, " %q", s.Name)
	}
	fmt.Fprintln(w)
	if s.Detail != "" {
		fmt.Fprintf(w, "  Detail: %s\n", s.Detail)
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *journal.ErrorData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Kind != "" {
		fmt.Fprintf(w, "  Kind: %s\n", err.Kind)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (journal.Category, error) {
	switch strings.ToLower(s) {
	case "applied":
		return journal.CategoryApplied, nil
	case "rejected":
		return journal.CategoryRejected, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be applied or rejected)", s)
	}
}

// ParseOpFlag parses an operation name such as "update_dai" (case-insensitive).
func ParseOpFlag(s string) (journal.Op, error) {
	want := strings.ToUpper(strings.ReplaceAll(s, "-", "_"))
	names := make([]string, 0, len(journal.Ops()))
	for _, op := range journal.Ops() {
		if op.String() == want {
			return op, nil
		}
		names = append(names, strings.ToLower(op.String()))
	}
	return 0, fmt.Errorf("invalid op: %s (must be one of %s)", s, strings.Join(names, ", "))
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := journal.NewFilteredReader(path, filter.journalFilter())
	if err != nil {
		return fmt.Errorf("failed to open journal file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
