package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/sclkit/sclkit-go/pkg/journal"
)

// Stats holds aggregate statistics about a journal file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[journal.Category]int
	EventsByOp       map[journal.Op]int
	EventsByIED      map[string]int
	Sessions         map[string]*SessionStats
	ErrorKinds       map[string]int
	ValuesWritten    int
	NodesCreated     int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single engine session.
type SessionStats struct {
	FirstSeen  time.Time
	LastSeen   time.Time
	Events     int
	Rejected   int
	DocumentID string
}

// CollectStats reads every event of the journal file.
func CollectStats(path string) (*Stats, error) {
	reader, err := journal.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[journal.Category]int),
		EventsByOp:       make(map[journal.Op]int),
		EventsByIED:      make(map[string]int),
		Sessions:         make(map[string]*SessionStats),
		ErrorKinds:       make(map[string]int),
	}

	for event, err := range reader.All() {
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event journal.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++
	s.EventsByOp[event.Op]++
	if event.IED != "" {
		s.EventsByIED[event.IED]++
	}

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}
	if event.DocumentID != "" && sess.DocumentID == "" {
		sess.DocumentID = event.DocumentID
	}

	if event.Category == journal.CategoryRejected {
		sess.Rejected++
	}
	if event.Error != nil {
		kind := event.Error.Kind
		if kind == "" {
			kind = "other"
		}
		s.ErrorKinds[kind]++
	}
	if event.DAI != nil {
		s.ValuesWritten += len(event.DAI.New)
		s.NodesCreated += event.DAI.Created
	}
}

// RunStats analyzes the journal file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== SCL Edit Journal Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []journal.Category{journal.CategoryApplied, journal.CategoryRejected} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-18s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Operation:")
	for _, op := range journal.Ops() {
		if count := stats.EventsByOp[op]; count > 0 {
			fmt.Fprintf(w, "  %-18s %d\n", op.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.EventsByIED) > 0 {
		fmt.Fprintln(w, "Events by IED:")
		for _, ied := range slices.Sorted(maps.Keys(stats.EventsByIED)) {
			fmt.Fprintf(w, "  %-18s %d\n", ied+":", stats.EventsByIED[ied])
		}
		fmt.Fprintln(w)
	}

	if stats.ValuesWritten > 0 || stats.NodesCreated > 0 {
		fmt.Fprintf(w, "Values written: %d (nodes created: %d)\n", stats.ValuesWritten, stats.NodesCreated)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenSessionID(s.id), s.stats.Events, duration)
			if s.stats.DocumentID != "" {
				fmt.Fprintf(w, "           Document: %s\n", s.stats.DocumentID)
			}
			if s.stats.Rejected > 0 {
				fmt.Fprintf(w, "           Rejected: %d\n", s.stats.Rejected)
			}
		}
	}

	if len(stats.ErrorKinds) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors by Kind:")
		for _, kind := range slices.Sorted(maps.Keys(stats.ErrorKinds)) {
			fmt.Fprintf(w, "  %-18s %d\n", kind+":", stats.ErrorKinds[kind])
		}
	}
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
