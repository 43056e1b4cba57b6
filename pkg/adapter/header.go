package adapter

import (
	"time"

	"github.com/sclkit/sclkit-go/pkg/journal"
	"github.com/sclkit/sclkit-go/pkg/scl"
)

// Header wraps the document header.
type Header struct {
	base
	node *scl.Header
}

func (h *Header) Kind() scl.Kind       { return scl.KindHeader }
func (h *Header) Node() scl.Node       { return h.node }
func (h *Header) ElementXPath() string { return "Header" }
func (h *Header) XPath() string        { return xpathOf(h) }

// AddPrivate is denied for headers unless the policy allows it.
func (h *Header) AddPrivate(p scl.Private) error {
	return h.root.addPrivate(h, "", p)
}

func (h *Header) ID() string       { return h.node.ID }
func (h *Header) Version() string  { return h.node.Version }
func (h *Header) Revision() string { return h.node.Revision }
func (h *Header) ToolID() string   { return h.node.ToolID }

// History returns a copy of the history items.
func (h *Header) History() []scl.HistoryItem {
	return append([]scl.HistoryItem(nil), h.node.History...)
}

// AddHistoryItem appends a history entry stamped with the current time and
// the header version and revision.
func (h *Header) AddHistoryItem(who, what, why string) scl.HistoryItem {
	item := scl.HistoryItem{
		Version:  h.node.Version,
		Revision: h.node.Revision,
		When:     time.Now().UTC().Format(time.RFC3339),
		Who:      who,
		What:     what,
		Why:      why,
	}
	h.node.History = append(h.node.History, item)

	h.root.debugLog("history item added", "who", who, "what", what)
	h.root.record(journal.Event{
		Op:        journal.OpAddHistory,
		Target:    h.XPath(),
		Structure: &journal.StructureChange{Element: "Hitem", Name: who, Detail: what},
	})
	return item
}
