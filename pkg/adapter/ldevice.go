package adapter

import (
	"fmt"
	"iter"
	"slices"

	"github.com/sclkit/sclkit-go/pkg/scl"
	"github.com/sclkit/sclkit-go/pkg/xpath"
)

// LDevice wraps a logical device. The access point hosting it is kept for
// path rendering.
type LDevice struct {
	base
	ap   *scl.AccessPoint
	node *scl.LDevice
}

// NewLDevice wraps node, which must be a logical device of ied.
func NewLDevice(ied *IED, node *scl.LDevice) (*LDevice, error) {
	if node != nil {
		for _, ap := range ied.node.AccessPoints {
			if ap.Server != nil && slices.Contains(ap.Server.LDevices, node) {
				return &LDevice{base: base{root: ied.root, parent: ied}, ap: ap, node: node}, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: LDevice is not a child of %s", scl.ErrStructuralMismatch, ied.XPath())
}

func (l *LDevice) Kind() scl.Kind { return scl.KindLDevice }
func (l *LDevice) Node() scl.Node { return l.node }

func (l *LDevice) ElementXPath() string {
	return xpath.Element("LDevice", xpath.Eq("inst", l.node.Inst))
}

// XPath includes the access point and server between the device and the
// logical device.
func (l *LDevice) XPath() string {
	return xpath.Join(l.parent.XPath(),
		xpath.Element("AccessPoint", xpath.Eq("name", l.ap.Name)),
		"Server",
		l.ElementXPath())
}

// AddPrivate attaches a vendor private to the logical device.
func (l *LDevice) AddPrivate(p scl.Private) error {
	return l.root.addPrivate(l, l.IED().Name(), p)
}

func (l *LDevice) Inst() string { return l.node.Inst }

// AccessPointName returns the name of the hosting access point.
func (l *LDevice) AccessPointName() string { return l.ap.Name }

// IED returns the owning device adapter.
func (l *LDevice) IED() *IED { return l.parent.(*IED) }

// LN0 returns the LLN0 node.
func (l *LDevice) LN0() (*LN, error) {
	return ResolveLN(LNRef{LDevice: l, Class: scl.LLN0Class})
}

// LN looks up a logical node by class, instance and prefix.
func (l *LDevice) LN(class, inst, prefix string) (*LN, error) {
	return ResolveLN(LNRef{LDevice: l, Class: class, Inst: inst, Prefix: prefix})
}

// LNs yields LN0, if present, followed by every other logical node.
func (l *LDevice) LNs() iter.Seq[*LN] {
	return func(yield func(*LN) bool) {
		for node := range l.node.AllLNs() {
			if !yield(&LN{base: base{root: l.root, parent: l}, node: node}) {
				return
			}
		}
	}
}
