package adapter

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sclkit/sclkit-go/pkg/dtt"
	"github.com/sclkit/sclkit-go/pkg/journal"
	"github.com/sclkit/sclkit-go/pkg/policy"
	"github.com/sclkit/sclkit-go/pkg/scl"
	"github.com/sclkit/sclkit-go/pkg/xpath"
)

// Root wraps the document itself and owns the engine configuration.
type Root struct {
	doc     *scl.Document
	logger  *slog.Logger
	journal journal.Logger
	policy  *policy.Policy
	session string

	// catalog is built on first use and dropped by ImportIED and Refresh.
	catalog *dtt.Catalog
}

// NewRoot creates the root adapter over doc. Nodes without an arena index
// are registered, and the privates table of cfg.Policy is applied to the
// document.
func NewRoot(doc *scl.Document, cfg Config) (*Root, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document not set", scl.ErrInvalid)
	}
	p := cfg.Policy
	if p == nil {
		p = policy.Default()
	}
	session := cfg.SessionID
	if session == "" {
		session = journal.NewSessionID()
	}

	for k, allow := range p.PrivateKinds() {
		if doc.PrivatePolicy == nil {
			doc.PrivatePolicy = make(map[scl.Kind]bool)
		}
		doc.PrivatePolicy[k] = allow
	}
	doc.Reindex()

	return &Root{
		doc:     doc,
		logger:  cfg.Logger,
		journal: cfg.Journal,
		policy:  p,
		session: session,
	}, nil
}

func (r *Root) Kind() scl.Kind       { return scl.KindDocument }
func (r *Root) Parent() Adapter      { return nil }
func (r *Root) Node() scl.Node       { return r.doc }
func (r *Root) ElementXPath() string { return "SCL" }
func (r *Root) XPath() string        { return r.ElementXPath() }
func (*Root) sealed()                {}

// AddPrivate attaches a vendor private to the document root.
func (r *Root) AddPrivate(p scl.Private) error {
	return r.addPrivate(r, "", p)
}

// Document returns the wrapped document.
func (r *Root) Document() *scl.Document { return r.doc }

// Policy returns the active policy.
func (r *Root) Policy() *policy.Policy { return r.policy }

// SessionID returns the journal session ID.
func (r *Root) SessionID() string { return r.session }

// Catalog returns the resolver over the document's data type templates.
func (r *Root) Catalog() *dtt.Catalog {
	if r.catalog == nil {
		r.catalog = dtt.NewCatalog(r.doc.DataTypeTemplates)
	}
	return r.catalog
}

// Refresh registers nodes added to the document without going through an
// adapter and rebuilds the template catalog on next use.
func (r *Root) Refresh() {
	r.doc.Reindex()
	r.catalog = nil
}

// Header returns the document header.
func (r *Root) Header() (*Header, error) {
	if r.doc.Header == nil {
		return nil, fmt.Errorf("%w: document has no header", scl.ErrNotFound)
	}
	return &Header{base: base{root: r, parent: r}, node: r.doc.Header}, nil
}

// AddHeader creates the document header. An empty id is replaced with a
// random UUID. A document holds at most one header.
func (r *Root) AddHeader(id, version, revision string) (*Header, error) {
	target := xpath.Join(r.XPath(), "Header")
	if r.doc.Header != nil {
		return nil, r.reject(journal.OpAddHeader, target, "",
			fmt.Errorf("%w: document already has header %q", scl.ErrAlreadyExists, r.doc.Header.ID))
	}
	if id == "" {
		id = uuid.New().String()
	}
	h := &scl.Header{ID: id, Version: version, Revision: revision, ToolID: scl.DefaultToolID}
	r.doc.Header = h
	r.doc.Register(h)

	r.debugLog("header added", "id", id)
	r.record(journal.Event{
		Op:        journal.OpAddHeader,
		Target:    target,
		Structure: &journal.StructureChange{Element: scl.KindHeader.String(), Name: id},
	})
	return &Header{base: base{root: r, parent: r}, node: h}, nil
}

// IED returns the device with the given name.
func (r *Root) IED(name string) (*IED, error) {
	node, ok := r.doc.IED(name)
	if !ok {
		return nil, scl.NewLookupError("IED name", name)
	}
	return &IED{base: base{root: r, parent: r}, node: node}, nil
}

// IEDs yields an adapter for every device in document order.
func (r *Root) IEDs() iter.Seq[*IED] {
	return func(yield func(*IED) bool) {
		for _, node := range r.doc.IEDs {
			if !yield(&IED{base: base{root: r, parent: r}, node: node}) {
				return
			}
		}
	}
}

// AddIED appends a device built by the caller. Its name must be set and
// unique within the document.
func (r *Root) AddIED(node *scl.IED) (*IED, error) {
	if node == nil || node.Name == "" {
		return nil, r.reject(journal.OpAddIED, r.XPath(), "", fmt.Errorf("%w: IED name not set", scl.ErrInvalid))
	}
	target := xpath.Join(r.XPath(), xpath.Element("IED", xpath.Eq("name", node.Name)))
	if _, exists := r.doc.IED(node.Name); exists {
		return nil, r.reject(journal.OpAddIED, target, node.Name,
			fmt.Errorf("%w: IED %q", scl.ErrAlreadyExists, node.Name))
	}
	r.doc.IEDs = append(r.doc.IEDs, node)
	r.doc.Reindex()

	r.debugLog("IED added", "name", node.Name)
	r.record(journal.Event{
		Op:        journal.OpAddIED,
		Target:    target,
		IED:       node.Name,
		Structure: &journal.StructureChange{Element: scl.KindIED.String(), Name: node.Name},
	})
	return &IED{base: base{root: r, parent: r}, node: node}, nil
}

// ImportIED copies the device name from src into this document together
// with the template types it uses. Types already present with the same
// content are reused; types whose ID clashes with different content are
// renamed and the copied device is rewritten to use the new IDs.
func (r *Root) ImportIED(src *scl.Document, name string) (*IED, error) {
	target := xpath.Join(r.XPath(), xpath.Element("IED", xpath.Eq("name", name)))
	if src == nil {
		return nil, r.reject(journal.OpImportIED, target, name, fmt.Errorf("%w: source document not set", scl.ErrInvalid))
	}
	srcIED, ok := src.IED(name)
	if !ok {
		return nil, r.reject(journal.OpImportIED, target, name, scl.NewLookupError("IED name in source document", name))
	}
	if _, exists := r.doc.IED(name); exists {
		return nil, r.reject(journal.OpImportIED, target, name, fmt.Errorf("%w: IED %q", scl.ErrAlreadyExists, name))
	}
	node, err := scl.Clone(srcIED)
	if err != nil {
		return nil, r.reject(journal.OpImportIED, target, name, err)
	}

	dst := r.doc.DataTypeTemplates
	if dst == nil {
		dst = &scl.DataTypeTemplates{}
	}
	res, err := dtt.Import(dst, src.DataTypeTemplates, name)
	if err != nil {
		return nil, r.reject(journal.OpImportIED, target, name, err)
	}
	for ld := range node.LDevices() {
		for ln := range ld.AllLNs() {
			if renamed, ok := res.LNodeTypes[ln.Type]; ok {
				ln.Type = renamed
			}
		}
	}

	r.doc.DataTypeTemplates = dst
	r.doc.IEDs = append(r.doc.IEDs, node)
	r.doc.Reindex()
	r.catalog = nil

	renamed := make(map[string]string)
	for _, m := range []map[string]string{res.EnumTypes, res.DATypes, res.DOTypes, res.LNodeTypes} {
		for from, to := range m {
			renamed[from] = to
		}
	}
	source := ""
	if src.Header != nil {
		source = src.Header.ID
	}
	r.debugLog("IED imported", "name", name, "source", source, "typesAdded", res.Added, "typesRenamed", len(renamed))
	r.record(journal.Event{
		Op:     journal.OpImportIED,
		Target: target,
		IED:    name,
		Import: &journal.ImportChange{Source: source, TypesAdded: res.Added, Renamed: renamed},
	})
	return &IED{base: base{root: r, parent: r}, node: node}, nil
}

// Communication returns the communication section.
func (r *Root) Communication() (*Communication, error) {
	if r.doc.Communication == nil {
		return nil, fmt.Errorf("%w: document has no communication section", scl.ErrNotFound)
	}
	return &Communication{base: base{root: r, parent: r}, node: r.doc.Communication}, nil
}

// AddSubNetwork connects access point apName of device iedName to the
// subnetwork name, creating the communication section and the subnetwork
// as needed. The type of an existing subnetwork is left unchanged.
func (r *Root) AddSubNetwork(name, typ, iedName, apName string) (*SubNetwork, error) {
	target := xpath.Join(r.XPath(), "Communication", xpath.Element("SubNetwork", xpath.Eq("name", name)))
	if name == "" || iedName == "" || apName == "" {
		return nil, r.reject(journal.OpAddSubNetwork, target, iedName,
			fmt.Errorf("%w: subnetwork, IED and access point names must be set", scl.ErrInvalid))
	}
	ied, ok := r.doc.IED(iedName)
	if !ok {
		return nil, r.reject(journal.OpAddSubNetwork, target, iedName, scl.NewLookupError("IED name", iedName))
	}
	if _, ok := ied.AccessPoint(apName); !ok {
		return nil, r.reject(journal.OpAddSubNetwork, target, iedName,
			scl.NewLookupError("access point in device", apName, iedName))
	}

	if r.doc.Communication == nil {
		r.doc.Communication = &scl.Communication{}
		r.doc.Register(r.doc.Communication)
	}
	comm := &Communication{base: base{root: r, parent: r}, node: r.doc.Communication}

	node, ok := comm.node.SubNetwork(name)
	if !ok {
		node = &scl.SubNetwork{Name: name, Type: typ}
		comm.node.SubNetworks = append(comm.node.SubNetworks, node)
		r.doc.Register(node)
		r.debugLog("subnetwork added", "name", name, "type", typ)
		r.record(journal.Event{
			Op:        journal.OpAddSubNetwork,
			Target:    target,
			IED:       iedName,
			Structure: &journal.StructureChange{Element: scl.KindSubNetwork.String(), Name: name, Detail: typ},
		})
	}
	sn := &SubNetwork{base: base{root: r, parent: comm}, node: node}
	if _, err := sn.AddConnectedAP(iedName, apName); err != nil {
		return nil, err
	}
	return sn, nil
}

// DataTypeTemplates returns the template catalog section.
func (r *Root) DataTypeTemplates() (*DataTypeTemplates, error) {
	if r.doc.DataTypeTemplates == nil {
		return nil, fmt.Errorf("%w: document has no DataTypeTemplates", scl.ErrNotFound)
	}
	return &DataTypeTemplates{base: base{root: r, parent: r}, node: r.doc.DataTypeTemplates}, nil
}

// DataTypeTemplates wraps the template catalog section.
type DataTypeTemplates struct {
	base
	node *scl.DataTypeTemplates
}

func (t *DataTypeTemplates) Kind() scl.Kind       { return scl.KindDataTypeTemplates }
func (t *DataTypeTemplates) Node() scl.Node       { return t.node }
func (t *DataTypeTemplates) ElementXPath() string { return "DataTypeTemplates" }
func (t *DataTypeTemplates) XPath() string        { return xpathOf(t) }

// AddPrivate attaches a vendor private to the section.
func (t *DataTypeTemplates) AddPrivate(p scl.Private) error {
	return t.root.addPrivate(t, "", p)
}

// LNodeTypeIDs returns the IDs of the declared LNodeTypes.
func (t *DataTypeTemplates) LNodeTypeIDs() []string {
	ids := make([]string, 0, len(t.node.LNodeTypes))
	for _, lt := range t.node.LNodeTypes {
		ids = append(ids, lt.ID)
	}
	return ids
}
