package adapter

import (
	"fmt"
	"slices"

	"github.com/sclkit/sclkit-go/pkg/scl"
	"github.com/sclkit/sclkit-go/pkg/xpath"
)

// DataParent is a DOI or SDI adapter: a node that holds SDIs and DAIs.
type DataParent interface {
	Adapter

	// Names returns the instance names from the DOI down to this node.
	Names() []string

	sdis() []*scl.SDI
	dais() []*scl.DAI
	ln() *LN
}

// DOI wraps a data object instance.
type DOI struct {
	base
	node *scl.DOI
}

// NewDOI wraps node, which must be a data object instance of ln.
func NewDOI(ln *LN, node *scl.DOI) (*DOI, error) {
	if node == nil || !slices.Contains(ln.node.DOIs, node) {
		return nil, fmt.Errorf("%w: DOI is not a child of %s", scl.ErrStructuralMismatch, ln.XPath())
	}
	return &DOI{base: base{root: ln.root, parent: ln}, node: node}, nil
}

func (d *DOI) Kind() scl.Kind { return scl.KindDOI }
func (d *DOI) Node() scl.Node { return d.node }
func (d *DOI) XPath() string  { return xpathOf(d) }

func (d *DOI) ElementXPath() string {
	return xpath.Element("DOI", xpath.Eq("name", d.node.Name))
}

// AddPrivate attaches a vendor private to the data object instance.
func (d *DOI) AddPrivate(p scl.Private) error {
	return d.root.addPrivate(d, d.ln().IEDName(), p)
}

func (d *DOI) Name() string     { return d.node.Name }
func (d *DOI) Names() []string  { return []string{d.node.Name} }
func (d *DOI) sdis() []*scl.SDI { return d.node.SDIs }
func (d *DOI) dais() []*scl.DAI { return d.node.DAIs }
func (d *DOI) ln() *LN          { return d.parent.(*LN) }

func (d *DOI) SDI(name string) (*SDI, error) { return findSDI(d, name) }
func (d *DOI) DAI(name string) (*DAI, error) { return findDAI(d, name) }

// SDI wraps a sub data instance.
type SDI struct {
	base
	node *scl.SDI
}

// NewSDI wraps node, which must be a sub data instance of parent.
func NewSDI(parent DataParent, node *scl.SDI) (*SDI, error) {
	if node == nil || !slices.Contains(parent.sdis(), node) {
		return nil, fmt.Errorf("%w: SDI is not a child of %s", scl.ErrStructuralMismatch, parent.XPath())
	}
	return &SDI{base: base{root: parent.ln().root, parent: parent}, node: node}, nil
}

func (s *SDI) Kind() scl.Kind { return scl.KindSDI }
func (s *SDI) Node() scl.Node { return s.node }
func (s *SDI) XPath() string  { return xpathOf(s) }

func (s *SDI) ElementXPath() string {
	return xpath.Element("SDI", xpath.Eq("name", s.node.Name))
}

// AddPrivate attaches a vendor private to the sub data instance.
func (s *SDI) AddPrivate(p scl.Private) error {
	return s.root.addPrivate(s, s.ln().IEDName(), p)
}

func (s *SDI) Name() string     { return s.node.Name }
func (s *SDI) sdis() []*scl.SDI { return s.node.SDIs }
func (s *SDI) dais() []*scl.DAI { return s.node.DAIs }
func (s *SDI) ln() *LN          { return s.parent.(DataParent).ln() }

func (s *SDI) Names() []string {
	return append(s.parent.(DataParent).Names(), s.node.Name)
}

func (s *SDI) SDI(name string) (*SDI, error) { return findSDI(s, name) }
func (s *SDI) DAI(name string) (*DAI, error) { return findDAI(s, name) }

func findSDI(p DataParent, name string) (*SDI, error) {
	node, ok := scl.FindSDI(p.sdis(), name)
	if !ok {
		return nil, scl.NewLookupError("SDI", append(p.Names(), name)...)
	}
	return &SDI{base: base{root: p.ln().root, parent: p}, node: node}, nil
}

func findDAI(p DataParent, name string) (*DAI, error) {
	node, ok := scl.FindDAI(p.dais(), name)
	if !ok {
		return nil, scl.NewLookupError("DAI", append(p.Names(), name)...)
	}
	return &DAI{base: base{root: p.ln().root, parent: p}, node: node}, nil
}

// DAI wraps a data attribute instance.
type DAI struct {
	base
	node *scl.DAI
}

// NewDAI wraps node, which must be a data attribute instance of parent.
func NewDAI(parent DataParent, node *scl.DAI) (*DAI, error) {
	if node == nil || !slices.Contains(parent.dais(), node) {
		return nil, fmt.Errorf("%w: DAI is not a child of %s", scl.ErrStructuralMismatch, parent.XPath())
	}
	return &DAI{base: base{root: parent.ln().root, parent: parent}, node: node}, nil
}

func (d *DAI) Kind() scl.Kind { return scl.KindDAI }
func (d *DAI) Node() scl.Node { return d.node }
func (d *DAI) XPath() string  { return xpathOf(d) }

func (d *DAI) ElementXPath() string {
	return xpath.Element("DAI", xpath.Eq("name", d.node.Name))
}

// AddPrivate attaches a vendor private to the data attribute instance.
func (d *DAI) AddPrivate(p scl.Private) error {
	return d.root.addPrivate(d, d.ln().IEDName(), p)
}

func (d *DAI) Name() string { return d.node.Name }
func (d *DAI) ln() *LN      { return d.parent.(DataParent).ln() }

// Names returns the instance names from the DOI down to this attribute.
func (d *DAI) Names() []string {
	return append(d.parent.(DataParent).Names(), d.node.Name)
}

// Values returns a copy of the configured values.
func (d *DAI) Values() []scl.Value {
	return slices.Clone(d.node.Values)
}

// ValImport returns the instance valImport flag and whether it is set.
func (d *DAI) ValImport() (value, set bool) {
	if d.node.ValImport == nil {
		return false, false
	}
	return *d.node.ValImport, true
}

// Template resolves the attribute against the type of its logical node.
func (d *DAI) Template() (ResolvedDataTemplate, error) {
	ln := d.ln()
	cat := ln.root.Catalog()
	do, da, err := cat.Classify(ln.node.Type, d.Names())
	if err != nil {
		return ResolvedDataTemplate{}, err
	}
	r, err := cat.Resolve(ln.node.Type, do, da)
	if err != nil {
		return ResolvedDataTemplate{}, err
	}
	return ln.template(r, d.node), nil
}

// IsUpdatable reports whether the attribute may be written under the
// active policy.
func (d *DAI) IsUpdatable() (bool, error) {
	t, err := d.Template()
	if err != nil {
		return false, err
	}
	return t.IsUpdatable(d.root.policy.Update), nil
}
