package adapter

import (
	"fmt"
	"iter"
	"slices"

	"github.com/sclkit/sclkit-go/pkg/journal"
	"github.com/sclkit/sclkit-go/pkg/scl"
	"github.com/sclkit/sclkit-go/pkg/xpath"
)

// Communication wraps the communication section.
type Communication struct {
	base
	node *scl.Communication
}

func (c *Communication) Kind() scl.Kind       { return scl.KindCommunication }
func (c *Communication) Node() scl.Node       { return c.node }
func (c *Communication) ElementXPath() string { return "Communication" }
func (c *Communication) XPath() string        { return xpathOf(c) }

// AddPrivate attaches a vendor private to the section.
func (c *Communication) AddPrivate(p scl.Private) error {
	return c.root.addPrivate(c, "", p)
}

// SubNetwork returns the subnetwork with the given name.
func (c *Communication) SubNetwork(name string) (*SubNetwork, error) {
	node, ok := c.node.SubNetwork(name)
	if !ok {
		return nil, scl.NewLookupError("subnetwork", name)
	}
	return &SubNetwork{base: base{root: c.root, parent: c}, node: node}, nil
}

// SubNetworks yields every subnetwork in document order.
func (c *Communication) SubNetworks() iter.Seq[*SubNetwork] {
	return func(yield func(*SubNetwork) bool) {
		for _, node := range c.node.SubNetworks {
			if !yield(&SubNetwork{base: base{root: c.root, parent: c}, node: node}) {
				return
			}
		}
	}
}

// SubNetwork wraps a communication subnetwork.
type SubNetwork struct {
	base
	node *scl.SubNetwork
}

// NewSubNetwork wraps node, which must be a subnetwork of comm.
func NewSubNetwork(comm *Communication, node *scl.SubNetwork) (*SubNetwork, error) {
	if node == nil || !slices.Contains(comm.node.SubNetworks, node) {
		return nil, fmt.Errorf("%w: SubNetwork is not a child of %s", scl.ErrStructuralMismatch, comm.XPath())
	}
	return &SubNetwork{base: base{root: comm.root, parent: comm}, node: node}, nil
}

func (s *SubNetwork) Kind() scl.Kind { return scl.KindSubNetwork }
func (s *SubNetwork) Node() scl.Node { return s.node }
func (s *SubNetwork) XPath() string  { return xpathOf(s) }

func (s *SubNetwork) ElementXPath() string {
	return xpath.Element("SubNetwork", xpath.Eq("name", s.node.Name))
}

// AddPrivate attaches a vendor private to the subnetwork.
func (s *SubNetwork) AddPrivate(p scl.Private) error {
	return s.root.addPrivate(s, "", p)
}

func (s *SubNetwork) Name() string { return s.node.Name }
func (s *SubNetwork) Type() string { return s.node.Type }

// ConnectedAP returns the connection of the given device access point.
func (s *SubNetwork) ConnectedAP(iedName, apName string) (*ConnectedAP, error) {
	node, ok := s.node.ConnectedAP(iedName, apName)
	if !ok {
		return nil, scl.NewLookupError("connected access point", iedName, apName)
	}
	return &ConnectedAP{base: base{root: s.root, parent: s}, node: node}, nil
}

// ConnectedAPs yields every connected access point in document order.
func (s *SubNetwork) ConnectedAPs() iter.Seq[*ConnectedAP] {
	return func(yield func(*ConnectedAP) bool) {
		for _, node := range s.node.ConnectedAPs {
			if !yield(&ConnectedAP{base: base{root: s.root, parent: s}, node: node}) {
				return
			}
		}
	}
}

// AddConnectedAP connects a device access point to the subnetwork. An
// existing connection is returned unchanged.
func (s *SubNetwork) AddConnectedAP(iedName, apName string) (*ConnectedAP, error) {
	if iedName == "" || apName == "" {
		return nil, s.root.reject(journal.OpAddConnectedAP, s.XPath(), iedName,
			fmt.Errorf("%w: connected access point needs IED and access point names", scl.ErrInvalid))
	}
	if node, ok := s.node.ConnectedAP(iedName, apName); ok {
		return &ConnectedAP{base: base{root: s.root, parent: s}, node: node}, nil
	}

	node := &scl.ConnectedAP{IEDName: iedName, APName: apName}
	s.node.ConnectedAPs = append(s.node.ConnectedAPs, node)
	s.root.doc.Register(node)

	ca := &ConnectedAP{base: base{root: s.root, parent: s}, node: node}
	s.root.debugLog("connected access point added", "subnetwork", s.node.Name, "ied", iedName, "ap", apName)
	s.root.record(journal.Event{
		Op:        journal.OpAddConnectedAP,
		Target:    ca.XPath(),
		IED:       iedName,
		Structure: &journal.StructureChange{Element: scl.KindConnectedAP.String(), Name: apName},
	})
	return ca, nil
}

// ConnectedAP wraps the connection of a device access point to a subnetwork.
type ConnectedAP struct {
	base
	node *scl.ConnectedAP
}

// NewConnectedAP wraps node, which must be a connection of sn.
func NewConnectedAP(sn *SubNetwork, node *scl.ConnectedAP) (*ConnectedAP, error) {
	if node == nil || !slices.Contains(sn.node.ConnectedAPs, node) {
		return nil, fmt.Errorf("%w: ConnectedAP is not a child of %s", scl.ErrStructuralMismatch, sn.XPath())
	}
	return &ConnectedAP{base: base{root: sn.root, parent: sn}, node: node}, nil
}

func (c *ConnectedAP) Kind() scl.Kind { return scl.KindConnectedAP }
func (c *ConnectedAP) Node() scl.Node { return c.node }
func (c *ConnectedAP) XPath() string  { return xpathOf(c) }

func (c *ConnectedAP) ElementXPath() string {
	return xpath.Element("ConnectedAP", xpath.Eq("apName", c.node.APName), xpath.Eq("iedName", c.node.IEDName))
}

// AddPrivate attaches a vendor private to the connection.
func (c *ConnectedAP) AddPrivate(p scl.Private) error {
	return c.root.addPrivate(c, c.node.IEDName, p)
}

func (c *ConnectedAP) IEDName() string { return c.node.IEDName }
func (c *ConnectedAP) APName() string  { return c.node.APName }
