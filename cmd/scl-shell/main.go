// Command scl-shell is an interactive shell for inspecting and editing a
// substation configuration document.
//
// Usage:
//
//	scl-shell -doc <fixture.yaml> [flags]
//
// Flags:
//
//	-doc string      Document fixture to load (required)
//	-policy string   Policy file applied on top of the built-in defaults
//	-journal string  Append edit events to this journal file (.sjl)
//	-debug           Log engine decisions at debug level
//
// Examples:
//
//	# Open a document
//	scl-shell -doc substation.yaml
//
//	# Journal every edit and restrict GOOSE bindings
//	scl-shell -doc substation.yaml -policy strict.yaml -journal edits.sjl
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sclkit/sclkit-go/cmd/scl-shell/interactive"
	"github.com/sclkit/sclkit-go/pkg/adapter"
	"github.com/sclkit/sclkit-go/pkg/fixture"
	"github.com/sclkit/sclkit-go/pkg/journal"
	"github.com/sclkit/sclkit-go/pkg/policy"
)

// Config holds the shell configuration.
type Config struct {
	DocFile     string
	PolicyFile  string
	JournalFile string
	Debug       bool
}

var config Config

func init() {
	flag.StringVar(&config.DocFile, "doc", "", "Document fixture to load (required)")
	flag.StringVar(&config.PolicyFile, "policy", "", "Policy file applied on top of the built-in defaults")
	flag.StringVar(&config.JournalFile, "journal", "", "Append edit events to this journal file (.sjl)")
	flag.BoolVar(&config.Debug, "debug", false, "Log engine decisions at debug level")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime)

	if config.DocFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -doc is required")
		flag.Usage()
		os.Exit(1)
	}

	doc, err := fixture.Load(config.DocFile)
	if err != nil {
		log.Fatalf("Failed to load document: %v", err)
	}

	pol := policy.Default()
	if config.PolicyFile != "" {
		if pol, err = policy.Load(config.PolicyFile); err != nil {
			log.Fatalf("Failed to load policy: %v", err)
		}
	}

	level := slog.LevelWarn
	if config.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var fileJournal *journal.FileLogger
	if config.JournalFile != "" {
		if fileJournal, err = journal.NewFileLogger(config.JournalFile); err != nil {
			log.Fatalf("Failed to open journal: %v", err)
		}
		defer fileJournal.Close()
	}
	var sink journal.Logger = journal.NewSlogAdapter(logger)
	if fileJournal != nil {
		sink = journal.NewMultiLogger(sink, fileJournal)
	}

	root, err := adapter.NewRoot(doc, adapter.Config{
		Logger:  logger,
		Journal: sink,
		Policy:  pol,
	})
	if err != nil {
		log.Fatalf("Failed to open document: %v", err)
	}

	shell, err := interactive.New(root)
	if err != nil {
		log.Fatalf("Failed to start shell: %v", err)
	}
	log.SetOutput(shell.Stderr())

	log.Printf("Loaded %s (%s)", config.DocFile, doc)
	log.Printf("Session: %s", root.SessionID())
	if config.JournalFile != "" {
		log.Printf("Journaling to: %s", config.JournalFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	shell.Run(ctx)
}
