package adapter

import (
	"fmt"
	"iter"
	"slices"

	"github.com/sclkit/sclkit-go/pkg/scl"
	"github.com/sclkit/sclkit-go/pkg/xpath"
)

// IED wraps a device.
type IED struct {
	base
	node *scl.IED
}

// NewIED wraps node, which must be a device of root's document.
func NewIED(root *Root, node *scl.IED) (*IED, error) {
	if node == nil || !slices.Contains(root.doc.IEDs, node) {
		return nil, fmt.Errorf("%w: IED is not a child of %s", scl.ErrStructuralMismatch, root.XPath())
	}
	return &IED{base: base{root: root, parent: root}, node: node}, nil
}

func (i *IED) Kind() scl.Kind { return scl.KindIED }
func (i *IED) Node() scl.Node { return i.node }
func (i *IED) XPath() string  { return xpathOf(i) }

func (i *IED) ElementXPath() string {
	return xpath.Element("IED", xpath.Eq("name", i.node.Name))
}

// AddPrivate attaches a vendor private to the device.
func (i *IED) AddPrivate(p scl.Private) error {
	return i.root.addPrivate(i, i.node.Name, p)
}

func (i *IED) Name() string { return i.node.Name }

// LDevice returns the logical device with the given instance, searching
// every access point.
func (i *IED) LDevice(inst string) (*LDevice, error) {
	for _, ap := range i.node.AccessPoints {
		if ap.Server == nil {
			continue
		}
		for _, ld := range ap.Server.LDevices {
			if ld.Inst == inst {
				return &LDevice{base: base{root: i.root, parent: i}, ap: ap, node: ld}, nil
			}
		}
	}
	return nil, scl.NewLookupError("logical device in device", inst, i.node.Name)
}

// LDevices yields every logical device in document order.
func (i *IED) LDevices() iter.Seq[*LDevice] {
	return func(yield func(*LDevice) bool) {
		for _, ap := range i.node.AccessPoints {
			if ap.Server == nil {
				continue
			}
			for _, ld := range ap.Server.LDevices {
				if !yield(&LDevice{base: base{root: i.root, parent: i}, ap: ap, node: ld}) {
					return
				}
			}
		}
	}
}
