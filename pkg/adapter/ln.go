package adapter

import (
	"fmt"
	"iter"
	"slices"

	"github.com/sclkit/sclkit-go/pkg/scl"
	"github.com/sclkit/sclkit-go/pkg/xpath"
)

// LNDescriptor identifies a logical node within a logical device.
type LNDescriptor struct {
	Class  string
	Inst   string
	Prefix string
}

// String returns the usual prefix+class+inst label.
func (d LNDescriptor) String() string {
	return d.Prefix + d.Class + d.Inst
}

// LNRef identifies a logical node for ResolveLN.
type LNRef struct {
	LDevice *LDevice
	Class   string
	Inst    string
	Prefix  string
}

// ResolveLN looks up the logical node named by ref. Class LLN0 selects
// the LN0 of the logical device and requires an empty Inst and Prefix.
func ResolveLN(ref LNRef) (*LN, error) {
	if ref.LDevice == nil {
		return nil, fmt.Errorf("%w: logical device not set", scl.ErrInvalid)
	}
	ld := ref.LDevice
	notFound := func() error {
		return scl.NewLookupError("logical node in logical device",
			ref.Class, ref.Inst, ref.Prefix, ld.node.Inst, ld.IED().Name())
	}

	if ref.Class == scl.LLN0Class {
		if ld.node.LN0 == nil || ref.Inst != "" || ref.Prefix != "" {
			return nil, notFound()
		}
		return &LN{base: base{root: ld.root, parent: ld}, node: ld.node.LN0}, nil
	}
	for _, node := range ld.node.LNs {
		if node.Class == ref.Class && node.Inst == ref.Inst && node.Prefix == ref.Prefix {
			return &LN{base: base{root: ld.root, parent: ld}, node: node}, nil
		}
	}
	return nil, notFound()
}

// LN wraps a logical node, LN0 included.
type LN struct {
	base
	node *scl.LN
}

// NewLN wraps node, which must be the LN0 or one of the logical nodes of ld.
func NewLN(ld *LDevice, node *scl.LN) (*LN, error) {
	if node == nil || (node != ld.node.LN0 && !slices.Contains(ld.node.LNs, node)) {
		return nil, fmt.Errorf("%w: LN is not a child of %s", scl.ErrStructuralMismatch, ld.XPath())
	}
	return &LN{base: base{root: ld.root, parent: ld}, node: node}, nil
}

func (l *LN) Kind() scl.Kind { return l.node.Kind() }
func (l *LN) Node() scl.Node { return l.node }
func (l *LN) XPath() string  { return xpathOf(l) }

// ElementXPath renders LN0 as a bare tag. Other nodes are identified by
// class, instance and type, and by prefix when one is set.
func (l *LN) ElementXPath() string {
	if l.IsLN0() {
		return "LN0"
	}
	return xpath.Element("LN",
		xpath.Eq("lnClass", l.node.Class),
		xpath.Eq("inst", l.node.Inst),
		xpath.Eq("lnType", l.node.Type),
		xpath.EqIfSet("prefix", l.node.Prefix))
}

// AddPrivate attaches a vendor private to the logical node.
func (l *LN) AddPrivate(p scl.Private) error {
	return l.root.addPrivate(l, l.IEDName(), p)
}

func (l *LN) Class() string  { return l.node.Class }
func (l *LN) Inst() string   { return l.node.Inst }
func (l *LN) Prefix() string { return l.node.Prefix }

// Type returns the LNodeType ID.
func (l *LN) Type() string { return l.node.Type }

// IsLN0 reports whether the node is the LLN0 of its logical device.
func (l *LN) IsLN0() bool { return l.node.Class == scl.LLN0Class }

// Descriptor returns the class, instance and prefix of the node.
func (l *LN) Descriptor() LNDescriptor {
	return LNDescriptor{Class: l.node.Class, Inst: l.node.Inst, Prefix: l.node.Prefix}
}

// LDevice returns the owning logical device adapter.
func (l *LN) LDevice() *LDevice { return l.parent.(*LDevice) }

// IEDName returns the name of the owning device.
func (l *LN) IEDName() string { return l.LDevice().IED().Name() }

// DOI returns the data object instance with the given name.
func (l *LN) DOI(name string) (*DOI, error) {
	node, ok := l.node.DOI(name)
	if !ok {
		return nil, scl.NewLookupError("DOI in logical node", name, l.Descriptor().String())
	}
	return &DOI{base: base{root: l.root, parent: l}, node: node}, nil
}

// DOIs yields every data object instance in document order.
func (l *LN) DOIs() iter.Seq[*DOI] {
	return func(yield func(*DOI) bool) {
		for _, node := range l.node.DOIs {
			if !yield(&DOI{base: base{root: l.root, parent: l}, node: node}) {
				return
			}
		}
	}
}

// ExtRefs returns the external references of the node.
func (l *LN) ExtRefs() []*scl.ExtRef {
	return l.node.ExtRefs
}
