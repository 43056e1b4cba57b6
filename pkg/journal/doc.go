// Package journal records the edits applied to a configuration document.
//
// The journal is separate from operational logging (slog). It captures a
// complete machine-readable trace of every mutation the engine applied or
// rejected, so a session can be audited or replayed by hand later.
//
// # Basic Usage
//
// Applications configure journaling by providing a Logger implementation:
//
//	// For development: journal to console via slog
//	cfg.Journal = journal.NewSlogAdapter(slog.Default())
//
//	// For audit trails: write to a binary file
//	cfg.Journal, _ = journal.NewFileLogger("/var/lib/sclkit/edits.sjl")
//
//	// Both: use MultiLogger
//	cfg.Journal = journal.NewMultiLogger(
//	    journal.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Each event names the operation and the XPath of the affected node, and
// carries one payload:
//   - DAI: value updates (DAIChange)
//   - ExtRef: binding updates (ExtRefChange)
//   - Import: IED and template imports (ImportChange)
//   - Structure: header, history, subnetwork, connected AP, private (StructureChange)
//   - Error: rejected operations (ErrorData)
//
// # File Format
//
// Journal files use CBOR encoding with the .sjl extension. The scl-journal
// CLI tool provides viewing, filtering, export and statistics.
package journal
