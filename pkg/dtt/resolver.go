// Package dtt resolves data object and data attribute paths against the
// data type template catalog of a document.
//
// A path is resolved in two parts. The DO part walks from an LNodeType to
// a DO and then through nested SDOs, each naming another DOType. The DA
// part starts at a DA of the last DOType and walks through BDAs of struct
// DATypes:
//
//	LNodeType --DO--> DOType --SDO--> DOType --DA--> DAType --BDA--> DAType ...
//
// A Catalog is read-only once built and safe for concurrent readers.
package dtt

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sclkit/sclkit-go/pkg/scl"
)

// Catalog indexes a DataTypeTemplates section by type ID.
type Catalog struct {
	lnodeTypes map[string]*scl.LNodeType
	doTypes    map[string]*scl.DOType
	daTypes    map[string]*scl.DAType
	enumTypes  map[string]*scl.EnumType
}

// NewCatalog builds a catalog over t. A nil t yields an empty catalog.
// When an ID is declared twice, the first declaration wins.
func NewCatalog(t *scl.DataTypeTemplates) *Catalog {
	c := &Catalog{
		lnodeTypes: make(map[string]*scl.LNodeType),
		doTypes:    make(map[string]*scl.DOType),
		daTypes:    make(map[string]*scl.DAType),
		enumTypes:  make(map[string]*scl.EnumType),
	}
	if t == nil {
		return c
	}
	for _, lt := range t.LNodeTypes {
		if _, dup := c.lnodeTypes[lt.ID]; !dup {
			c.lnodeTypes[lt.ID] = lt
		}
	}
	for _, dt := range t.DOTypes {
		if _, dup := c.doTypes[dt.ID]; !dup {
			c.doTypes[dt.ID] = dt
		}
	}
	for _, at := range t.DATypes {
		if _, dup := c.daTypes[at.ID]; !dup {
			c.daTypes[at.ID] = at
		}
	}
	for _, et := range t.EnumTypes {
		if _, dup := c.enumTypes[et.ID]; !dup {
			c.enumTypes[et.ID] = et
		}
	}
	return c
}

// LNodeType returns the LNodeType with the given ID.
func (c *Catalog) LNodeType(id string) (*scl.LNodeType, bool) {
	t, ok := c.lnodeTypes[id]
	return t, ok
}

// DOType returns the DOType with the given ID.
func (c *Catalog) DOType(id string) (*scl.DOType, bool) {
	t, ok := c.doTypes[id]
	return t, ok
}

// DAType returns the DAType with the given ID.
func (c *Catalog) DAType(id string) (*scl.DAType, bool) {
	t, ok := c.daTypes[id]
	return t, ok
}

// EnumType returns the EnumType with the given ID.
func (c *Catalog) EnumType(id string) (*scl.EnumType, bool) {
	t, ok := c.enumTypes[id]
	return t, ok
}

// ResolvedObject is the result of resolving a DO path.
type ResolvedObject struct {
	LNType  string
	LNClass string
	DO      scl.DoTypeName

	// DOType is the type of the last DO path segment.
	DOType *scl.DOType
}

// ResolvedAttribute is the result of resolving a DO path and a DA path.
type ResolvedAttribute struct {
	LNType  string
	LNClass string
	DO      scl.DoTypeName
	DA      scl.DaTypeName

	DOType string
	CDC    string

	// FC is the functional constraint of the top-level DA.
	FC scl.FC

	// BType and Type describe the leaf: Type is the DAType ID for structs
	// and the EnumType ID for enums.
	BType scl.BType
	Type  string

	ValImport bool
	ValKind   string
	Default   []scl.Value
}

// ResolveDO walks the DO path of lnType.
func (c *Catalog) ResolveDO(lnType string, do scl.DoTypeName) (*ResolvedObject, error) {
	lnt, ok := c.lnodeTypes[lnType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown LNodeType %q", scl.ErrTemplateResolution, lnType)
	}
	if !do.IsDefined() {
		return nil, fmt.Errorf("%w: DO name not set", scl.ErrInvalid)
	}
	d, ok := lnt.DO(baseName(do.Name))
	if !ok {
		return nil, fmt.Errorf("%w: unknown DO %q in LNodeType %q", scl.ErrTemplateResolution, do.Name, lnType)
	}
	cur, ok := c.doTypes[d.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unknown DOType %q referenced by DO %q", scl.ErrTemplateResolution, d.Type, do.Name)
	}
	for _, seg := range do.StructNames {
		sdo, ok := cur.SDO(baseName(seg))
		if !ok {
			return nil, fmt.Errorf("%w: unknown SDO %q in DOType %q", scl.ErrTemplateResolution, seg, cur.ID)
		}
		next, ok := c.doTypes[sdo.Type]
		if !ok {
			return nil, fmt.Errorf("%w: unknown DOType %q referenced by SDO %q", scl.ErrTemplateResolution, sdo.Type, seg)
		}
		cur = next
	}
	return &ResolvedObject{LNType: lnType, LNClass: lnt.LNClass, DO: do, DOType: cur}, nil
}

// Resolve walks the DO path and then the DA path of lnType. The DA path
// may stop at a struct attribute; the result then has BType Struct.
func (c *Catalog) Resolve(lnType string, do scl.DoTypeName, da scl.DaTypeName) (*ResolvedAttribute, error) {
	obj, err := c.ResolveDO(lnType, do)
	if err != nil {
		return nil, err
	}
	if !da.IsDefined() {
		return nil, fmt.Errorf("%w: DA name not set", scl.ErrInvalid)
	}
	a, ok := obj.DOType.DA(baseName(da.Name))
	if !ok {
		return nil, fmt.Errorf("%w: unknown DA %q in DOType %q", scl.ErrTemplateResolution, da.Name, obj.DOType.ID)
	}

	r := &ResolvedAttribute{
		LNType:    lnType,
		LNClass:   obj.LNClass,
		DO:        do,
		DA:        da,
		DOType:    obj.DOType.ID,
		CDC:       obj.DOType.CDC,
		FC:        a.FC,
		BType:     a.BType,
		Type:      a.Type,
		ValImport: a.ValImport,
		ValKind:   a.ValKind,
		Default:   slices.Clone(a.Values),
	}

	owner := da.Name
	for _, seg := range da.StructNames {
		if r.BType != scl.BTypeStruct {
			return nil, fmt.Errorf("%w: %q is not a struct, cannot resolve %q", scl.ErrTemplateResolution, owner, seg)
		}
		at, ok := c.daTypes[r.Type]
		if !ok {
			return nil, fmt.Errorf("%w: unknown DAType %q referenced by %q", scl.ErrTemplateResolution, r.Type, owner)
		}
		b, ok := at.BDA(baseName(seg))
		if !ok {
			return nil, fmt.Errorf("%w: unknown BDA %q in DAType %q", scl.ErrTemplateResolution, seg, at.ID)
		}
		r.BType = b.BType
		r.Type = b.Type
		r.ValImport = b.ValImport
		r.ValKind = b.ValKind
		r.Default = slices.Clone(b.Values)
		owner = seg
	}
	return r, nil
}

// Classify splits an instance name chain (DOI name, SDI names, DAI name)
// into its DO path and DA path, using the types declared for lnType.
// SDI names that are SDOs of the current DOType extend the DO path; the
// first one that is not starts the DA path.
func (c *Catalog) Classify(lnType string, names []string) (scl.DoTypeName, scl.DaTypeName, error) {
	var do scl.DoTypeName
	var da scl.DaTypeName
	if len(names) < 2 {
		return do, da, fmt.Errorf("%w: instance path %q has no DA", scl.ErrTemplateResolution, strings.Join(names, "."))
	}
	obj, err := c.ResolveDO(lnType, scl.DoTypeName{Name: names[0]})
	if err != nil {
		return do, da, err
	}
	cur := obj.DOType

	i := 1
	for ; i < len(names)-1; i++ {
		sdo, ok := cur.SDO(baseName(names[i]))
		if !ok {
			break
		}
		next, ok := c.doTypes[sdo.Type]
		if !ok {
			return do, da, fmt.Errorf("%w: unknown DOType %q referenced by SDO %q", scl.ErrTemplateResolution, sdo.Type, names[i])
		}
		cur = next
	}

	do = scl.DoTypeName{Name: names[0], StructNames: cloneStrings(names[1:i])}
	da = scl.DaTypeName{Name: names[i], StructNames: cloneStrings(names[i+1:])}
	return do, da, nil
}

// baseName strips an array index suffix: "arr(3)" becomes "arr".
func baseName(s string) string {
	if i := strings.IndexByte(s, '('); i > 0 {
		return s[:i]
	}
	return s
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
