package journal

import (
	"time"

	"github.com/google/uuid"
)

// Event represents one journaled edit.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the edit was applied or rejected.
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID groups the events of one engine session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Category tells applied edits from rejected ones.
	Category Category `cbor:"3,keyasint"`

	// Op is the engine operation.
	Op Op `cbor:"4,keyasint"`

	// Target is the XPath of the affected node.
	Target string `cbor:"5,keyasint,omitempty"`

	// IED is the name of the affected device, when there is one.
	IED string `cbor:"6,keyasint,omitempty"`

	// DocumentID is the header ID of the edited document.
	DocumentID string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (at most one of these is set).
	DAI       *DAIChange       `cbor:"10,keyasint,omitempty"`
	ExtRef    *ExtRefChange    `cbor:"11,keyasint,omitempty"`
	Import    *ImportChange    `cbor:"12,keyasint,omitempty"`
	Structure *StructureChange `cbor:"13,keyasint,omitempty"`
	Error     *ErrorData       `cbor:"14,keyasint,omitempty"`
}

// NewSessionID returns a random session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// Category classifies the outcome of an edit.
type Category uint8

const (
	// CategoryApplied indicates the edit changed the document.
	CategoryApplied Category = 0
	// CategoryRejected indicates the edit failed and the document is unchanged.
	CategoryRejected Category = 1
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryApplied:
		return "APPLIED"
	case CategoryRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Op identifies the engine operation.
type Op uint8

const (
	OpAddHeader      Op = 0
	OpAddHistory     Op = 1
	OpAddIED         Op = 2
	OpImportIED      Op = 3
	OpAddSubNetwork  Op = 4
	OpAddConnectedAP Op = 5
	OpAddPrivate     Op = 6
	OpUpdateDAI      Op = 7
	OpUpdateExtRefs  Op = 8
)

var opNames = map[Op]string{
	OpAddHeader:      "ADD_HEADER",
	OpAddHistory:     "ADD_HISTORY",
	OpAddIED:         "ADD_IED",
	OpImportIED:      "IMPORT_IED",
	OpAddSubNetwork:  "ADD_SUBNETWORK",
	OpAddConnectedAP: "ADD_CONNECTED_AP",
	OpAddPrivate:     "ADD_PRIVATE",
	OpUpdateDAI:      "UPDATE_DAI",
	OpUpdateExtRefs:  "UPDATE_EXTREFS",
}

// String returns the operation name.
func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "UNKNOWN"
}

// Ops returns every operation in numeric order.
func Ops() []Op {
	return []Op{
		OpAddHeader, OpAddHistory, OpAddIED, OpImportIED, OpAddSubNetwork,
		OpAddConnectedAP, OpAddPrivate, OpUpdateDAI, OpUpdateExtRefs,
	}
}

// ValueRecord is one DAI value.
type ValueRecord struct {
	SGroup uint32 `cbor:"1,keyasint,omitempty"`
	Text   string `cbor:"2,keyasint"`
}

// DAIChange captures a value update.
type DAIChange struct {
	// LN identifies the logical node as prefix+class+inst.
	LN string `cbor:"1,keyasint"`

	DO string `cbor:"2,keyasint"`
	DA string `cbor:"3,keyasint"`
	FC string `cbor:"4,keyasint,omitempty"`

	Old []ValueRecord `cbor:"5,keyasint,omitempty"`
	New []ValueRecord `cbor:"6,keyasint,omitempty"`

	// Created is the number of DOI/SDI/DAI nodes created along the path.
	Created int `cbor:"7,keyasint,omitempty"`
}

// BindingRecord is the binding written on one external reference.
type BindingRecord struct {
	IntAddr string `cbor:"1,keyasint,omitempty"`
	PDO     string `cbor:"2,keyasint,omitempty"`
	PDA     string `cbor:"3,keyasint,omitempty"`
	IEDName string `cbor:"4,keyasint,omitempty"`
	LDInst  string `cbor:"5,keyasint,omitempty"`
	Prefix  string `cbor:"6,keyasint,omitempty"`
	LNClass string `cbor:"7,keyasint,omitempty"`
	LNInst  string `cbor:"8,keyasint,omitempty"`
	CBName  string `cbor:"9,keyasint,omitempty"`
}

// ExtRefChange captures a binding update on one logical node.
type ExtRefChange struct {
	LDInst string `cbor:"1,keyasint"`
	LN     string `cbor:"2,keyasint"`

	Created int `cbor:"3,keyasint,omitempty"`
	Updated int `cbor:"4,keyasint,omitempty"`

	Bindings []BindingRecord `cbor:"5,keyasint,omitempty"`
}

// ImportChange captures an IED import.
type ImportChange struct {
	// Source is the header ID of the document the IED came from.
	Source string `cbor:"1,keyasint,omitempty"`

	// TypesAdded counts the template types appended to the catalog.
	TypesAdded int `cbor:"2,keyasint,omitempty"`

	// Renamed maps source type IDs to the IDs used in this document.
	Renamed map[string]string `cbor:"3,keyasint,omitempty"`
}

// StructureChange captures the addition of a structural element.
type StructureChange struct {
	// Element is the tag of the added element.
	Element string `cbor:"1,keyasint"`

	// Name identifies the added element (ID, name or private type).
	Name string `cbor:"2,keyasint,omitempty"`

	// Detail carries element-specific text (history "what", subnet type).
	Detail string `cbor:"3,keyasint,omitempty"`
}

// ErrorData captures a rejected operation.
type ErrorData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Kind is the engine error kind (e.g. "not found").
	Kind string `cbor:"2,keyasint,omitempty"`
}
