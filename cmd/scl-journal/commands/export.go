package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sclkit/sclkit-go/pkg/journal"
)

// jsonEvent is the JSONL form of an event, with names instead of codes.
type jsonEvent struct {
	journal.Event
	Category string `json:"Category"`
	Op       string `json:"Op"`
}

// RunExport exports the journal file to the specified format.
func RunExport(path, format, output string) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := journal.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open journal file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *journal.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		je := jsonEvent{Event: event, Category: event.Category.String(), Op: event.Op.String()}
		if err := encoder.Encode(je); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *journal.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "category", "op", "ied", "target", "document_id", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			event.Category.String(),
			event.Op.String(),
			event.IED,
			event.Target,
			event.DocumentID,
			eventDetail(event),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return cw.Error()
}

// eventDetail summarizes the payload of an event in one cell.
func eventDetail(e journal.Event) string {
	switch {
	case e.DAI != nil:
		return e.DAI.LN + " " + e.DAI.DO + "." + e.DAI.DA + " = " + formatValues(e.DAI.New)
	case e.ExtRef != nil:
		return e.ExtRef.LDInst + "/" + e.ExtRef.LN + " created=" + strconv.Itoa(e.ExtRef.Created) + " updated=" + strconv.Itoa(e.ExtRef.Updated)
	case e.Import != nil:
		return "types_added=" + strconv.Itoa(e.Import.TypesAdded) + " renamed=" + strconv.Itoa(len(e.Import.Renamed))
	case e.Structure != nil:
		return e.Structure.Element + " " + e.Structure.Name
	case e.Error != nil:
		return e.Error.Message
	}
	return ""
}
