package scl

import (
	"fmt"

	"github.com/google/uuid"
)

// Document header identity defaults.
const (
	// Version is the SCL schema version written on new documents.
	Version = "2007"

	// Revision is the SCL schema revision written on new documents.
	Revision = "B"

	// Release is the SCL schema release written on new documents.
	Release uint8 = 4

	// DefaultToolID is the tool identifier written on new headers.
	DefaultToolID = "sclkit"
)

// Document is the root of an SCL tree.
type Document struct {
	nodeBase

	Version  string
	Revision string
	Release  uint8

	Header            *Header
	Communication     *Communication
	IEDs              []*IED
	DataTypeTemplates *DataTypeTemplates

	// PrivatePolicy overrides DefaultPrivatePolicy per kind.
	// A kind absent from both tables allows privates.
	PrivatePolicy map[Kind]bool `cbor:"-"`

	arena    []Node
	privates map[NodeID][]Private
}

// NewDocument creates a document with a header.
// An empty headerID is replaced with a random UUID.
func NewDocument(headerID, hVersion, hRevision string) *Document {
	if headerID == "" {
		headerID = uuid.New().String()
	}
	d := &Document{
		Version:  Version,
		Revision: Revision,
		Release:  Release,
		Header: &Header{
			ID:       headerID,
			Version:  hVersion,
			Revision: hRevision,
			ToolID:   DefaultToolID,
		},
	}
	d.Reindex()
	return d
}

// Kind returns KindDocument.
func (*Document) Kind() Kind { return KindDocument }

// Node returns the node registered under id.
func (d *Document) Node(id NodeID) (Node, bool) {
	if id == 0 || int(id) >= len(d.arena) {
		return nil, false
	}
	return d.arena[id], true
}

// Len returns the number of registered nodes.
func (d *Document) Len() int {
	if len(d.arena) == 0 {
		return 0
	}
	return len(d.arena) - 1
}

// Register assigns an arena index to n if it does not already own one
// in this document, and returns the index.
func (d *Document) Register(n Node) NodeID {
	b := n.base()
	if b.id != 0 && int(b.id) < len(d.arena) && d.arena[b.id] == n {
		return b.id
	}
	if len(d.arena) == 0 {
		// index 0 is reserved for "unregistered"
		d.arena = append(d.arena, nil)
	}
	b.id = NodeID(len(d.arena))
	d.arena = append(d.arena, n)
	return b.id
}

// Reindex registers every node reachable from the document that does not
// have an index yet. Existing indices are preserved.
func (d *Document) Reindex() {
	d.Register(d)
	d.Walk(func(n Node) bool {
		d.Register(n)
		return true
	})
}

// Walk visits every node below the document in document order.
// Returning false from fn skips the node's children.
func (d *Document) Walk(fn func(Node) bool) {
	if d.Header != nil {
		fn(d.Header)
	}
	if c := d.Communication; c != nil && fn(c) {
		for _, sn := range c.SubNetworks {
			if fn(sn) {
				for _, cnx := range sn.ConnectedAPs {
					fn(cnx)
				}
			}
		}
	}
	for _, ied := range d.IEDs {
		walkIED(ied, fn)
	}
	if t := d.DataTypeTemplates; t != nil && fn(t) {
		for _, n := range t.LNodeTypes {
			fn(n)
		}
		for _, n := range t.DOTypes {
			fn(n)
		}
		for _, n := range t.DATypes {
			fn(n)
		}
		for _, n := range t.EnumTypes {
			fn(n)
		}
	}
}

func walkIED(ied *IED, fn func(Node) bool) {
	if !fn(ied) {
		return
	}
	for _, ap := range ied.AccessPoints {
		if !fn(ap) || ap.Server == nil || !fn(ap.Server) {
			continue
		}
		for _, ld := range ap.Server.LDevices {
			if !fn(ld) {
				continue
			}
			for ln := range ld.AllLNs() {
				walkLN(ln, fn)
			}
		}
	}
}

func walkLN(ln *LN, fn func(Node) bool) {
	if !fn(ln) {
		return
	}
	for _, doi := range ln.DOIs {
		if fn(doi) {
			walkData(doi.SDIs, doi.DAIs, fn)
		}
	}
	for _, er := range ln.ExtRefs {
		fn(er)
	}
}

func walkData(sdis []*SDI, dais []*DAI, fn func(Node) bool) {
	for _, sdi := range sdis {
		if fn(sdi) {
			walkData(sdi.SDIs, sdi.DAIs, fn)
		}
	}
	for _, dai := range dais {
		fn(dai)
	}
}

// IED returns the IED with the given name.
func (d *Document) IED(name string) (*IED, bool) {
	for _, ied := range d.IEDs {
		if ied.Name == name {
			return ied, true
		}
	}
	return nil, false
}

// String returns a short description of the document.
func (d *Document) String() string {
	id := ""
	if d.Header != nil {
		id = d.Header.ID
	}
	return fmt.Sprintf("SCL(%s %s%s.%d, %d IEDs)", id, d.Version, d.Revision, d.Release, len(d.IEDs))
}
