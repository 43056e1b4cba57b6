package scl

// Header identifies the document and records its history.
type Header struct {
	nodeBase

	ID       string
	Version  string
	Revision string
	ToolID   string
	History  []HistoryItem
}

// HistoryItem is one entry of the header history.
type HistoryItem struct {
	Version  string
	Revision string
	When     string
	Who      string
	What     string
	Why      string
}
