// Package adapter is a typed navigation layer over an scl.Document.
//
// Each adapter wraps one node of the tree together with the adapter of its
// parent. Constructors verify that the node is a direct child of the
// parent's node and fail with scl.ErrStructuralMismatch otherwise:
//
//	root, _ := adapter.NewRoot(doc, adapter.Config{})
//	ied, _ := root.IED("IED1")
//	ld, _ := ied.LDevice("LD1")
//	ln, _ := adapter.ResolveLN(adapter.LNRef{LDevice: ld, Class: "MMXU", Inst: "1"})
//	entries, _ := ln.GetDAI(adapter.DAIFilter{}, true)
//
// Adapters borrow node pointers and hold no state of their own, so they
// are cheap to build on demand. The engine is synchronous and does no
// locking; one call sequence owns a document at a time.
//
// Every mutation either succeeds completely or returns an error and leaves
// the tree unchanged. Applied and rejected mutations are reported to the
// configured journal.
package adapter

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sclkit/sclkit-go/pkg/journal"
	"github.com/sclkit/sclkit-go/pkg/policy"
	"github.com/sclkit/sclkit-go/pkg/scl"
	"github.com/sclkit/sclkit-go/pkg/xpath"
)

// Adapter is implemented by every node wrapper in this package.
// The set of implementations is closed.
type Adapter interface {
	// Kind returns the kind of the wrapped node.
	Kind() scl.Kind

	// Parent returns the parent adapter, or nil for the Root.
	Parent() Adapter

	// Node returns the wrapped node.
	Node() scl.Node

	// ElementXPath returns the path expression of the node relative to its parent.
	ElementXPath() string

	// XPath returns the path expression of the node from the document root.
	XPath() string

	// AddPrivate attaches a vendor private to the wrapped node.
	AddPrivate(p scl.Private) error

	sealed()
}

// Config configures a Root.
type Config struct {
	// Logger is the optional logger for operational output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Journal receives an event for every applied or rejected mutation.
	// If nil, journaling is disabled.
	Journal journal.Logger

	// Policy holds the update, binding and privates rules.
	// If nil, policy.Default() is used.
	Policy *policy.Policy

	// SessionID tags journal events. If empty, a random ID is generated.
	SessionID string
}

// base carries the fields shared by all non-root adapters.
type base struct {
	root   *Root
	parent Adapter
}

func (b *base) Parent() Adapter { return b.parent }

func (*base) sealed() {}

// xpathOf joins the parent path and the element path of a.
func xpathOf(a Adapter) string {
	return xpath.Join(a.Parent().XPath(), a.ElementXPath())
}

func (r *Root) debugLog(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func (r *Root) warnLog(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

// record stamps and journals an event.
func (r *Root) record(e journal.Event) {
	if r.journal == nil {
		return
	}
	e.Timestamp = time.Now()
	e.SessionID = r.session
	if h := r.doc.Header; h != nil {
		e.DocumentID = h.ID
	}
	r.journal.Log(e)
}

// reject journals a failed mutation and returns err unchanged.
func (r *Root) reject(op journal.Op, target, ied string, err error) error {
	r.debugLog("edit rejected", "op", op.String(), "target", target, "error", err)
	r.record(journal.Event{
		Category: journal.CategoryRejected,
		Op:       op,
		Target:   target,
		IED:      ied,
		Error:    &journal.ErrorData{Message: err.Error(), Kind: errorKind(err)},
	})
	return err
}

var errorKinds = []error{
	scl.ErrStructuralMismatch,
	scl.ErrNotFound,
	scl.ErrTemplateResolution,
	scl.ErrNotUpdatable,
	scl.ErrUnsupported,
	scl.ErrInvalid,
	scl.ErrAlreadyExists,
}

// errorKind returns the message of the engine sentinel wrapped by err.
func errorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return ""
}

// addPrivate attaches p to the node of a through the document side table.
func (r *Root) addPrivate(a Adapter, ied string, p scl.Private) error {
	target := a.XPath()
	if err := r.doc.AddPrivate(a.Node(), p); err != nil {
		return r.reject(journal.OpAddPrivate, target, ied, err)
	}
	r.debugLog("private added", "target", target, "type", p.Type)
	r.record(journal.Event{
		Op:        journal.OpAddPrivate,
		Target:    target,
		IED:       ied,
		Structure: &journal.StructureChange{Element: a.Kind().String(), Name: p.Type},
	})
	return nil
}
