// Package scl implements the in-memory substation configuration document.
//
// # Document Hierarchy
//
// A document is a single mutable tree rooted at Document:
//
//	Document (SCL)
//	├── Header
//	├── Communication
//	│   └── SubNetwork
//	│       └── ConnectedAP
//	├── IED
//	│   └── AccessPoint
//	│       └── Server
//	│           └── LDevice
//	│               ├── LN0
//	│               └── LN
//	│                   ├── DOI > SDI* > DAI > Val
//	│                   └── ExtRef (Inputs)
//	└── DataTypeTemplates
//	    ├── LNodeType > DO
//	    ├── DOType > SDO, DA
//	    ├── DAType > BDA
//	    └── EnumType
//
// Instance nodes (DOI, SDI, DAI) mirror the structure declared by the
// logical node's type in DataTypeTemplates. The template catalog is a
// separate flat registry addressed by type ID.
//
// # Arena
//
// Every node carries a NodeID assigned by its Document. IDs are stable for
// the lifetime of the document: Reindex only assigns IDs to nodes that do
// not have one yet. Vendor blobs (Private) are stored in a side table keyed
// by NodeID, gated by a per-kind allow/deny table.
//
// # Concurrency
//
// A Document is owned by a single call sequence. It has no internal locking.
package scl
