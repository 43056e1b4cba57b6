package scl

import "fmt"

// Private is an opaque vendor extension attached to a node.
type Private struct {
	Type    string
	Source  string
	Content []byte
}

// DefaultPrivatePolicy lists the kinds whose privates are decided without
// a document override. Kinds not listed allow privates.
var DefaultPrivatePolicy = map[Kind]bool{
	KindHeader: false,
}

// AllowsPrivate reports whether privates may be attached to nodes of kind k.
func (d *Document) AllowsPrivate(k Kind) bool {
	if allow, ok := d.PrivatePolicy[k]; ok {
		return allow
	}
	if allow, ok := DefaultPrivatePolicy[k]; ok {
		return allow
	}
	return true
}

// AddPrivate attaches p to n. The node is registered if needed.
func (d *Document) AddPrivate(n Node, p Private) error {
	if !d.AllowsPrivate(n.Kind()) {
		return fmt.Errorf("%w: privates are not allowed on %s", ErrUnsupported, n.Kind())
	}
	if p.Type == "" {
		return fmt.Errorf("%w: private type not set", ErrInvalid)
	}
	id := d.Register(n)
	if d.privates == nil {
		d.privates = make(map[NodeID][]Private)
	}
	d.privates[id] = append(d.privates[id], p)
	return nil
}

// Privates returns the privates attached to n, in insertion order.
func (d *Document) Privates(n Node) []Private {
	id := n.NodeID()
	if id == 0 {
		return nil
	}
	if node, ok := d.Node(id); !ok || node != n {
		return nil
	}
	return d.privates[id]
}
