package dtt

import (
	"fmt"
	"strconv"

	"github.com/sclkit/sclkit-go/pkg/scl"
)

// maxIDLength bounds generated type IDs.
const maxIDLength = 255

// ImportResult records the IDs renamed while importing templates.
// Keys are the IDs in the source catalog, values the IDs in the destination.
type ImportResult struct {
	LNodeTypes map[string]string
	DOTypes    map[string]string
	DATypes    map[string]string
	EnumTypes  map[string]string

	// Added counts the types appended to the destination.
	Added int
}

// GenerateID derives the ID used for an imported type whose ID clashes
// with a different type in the destination.
func GenerateID(owner, id string) string {
	s := owner + "_" + id
	if len(s) > maxIDLength {
		return s[:maxIDLength]
	}
	return s
}

// Import merges the types of src into dst. src is not modified.
//
// A type whose ID is unknown in dst is appended. A type whose ID exists in
// dst with identical content is reused. A type whose ID exists with
// different content is appended under GenerateID(owner, id), or a numbered
// variant of it when that ID is taken by yet another type, and every
// reference to it from the other imported types is rewritten.
//
// Types are processed leaf first: EnumType, DAType, DOType, LNodeType.
// Within a level a DAType is merged after the DATypes its BDAs use, and a
// DOType after the DOTypes its SDOs use, so a renamed member renames the
// types that contain it.
func Import(dst, src *scl.DataTypeTemplates, owner string) (*ImportResult, error) {
	if dst == nil {
		return nil, fmt.Errorf("%w: destination templates not set", scl.ErrInvalid)
	}
	res := &ImportResult{
		LNodeTypes: make(map[string]string),
		DOTypes:    make(map[string]string),
		DATypes:    make(map[string]string),
		EnumTypes:  make(map[string]string),
	}
	if src == nil {
		return res, nil
	}
	in, err := scl.Clone(src)
	if err != nil {
		return nil, err
	}

	for _, et := range in.EnumTypes {
		if merge(dst, &dst.EnumTypes, et, &et.ID, owner, res.EnumTypes, findEnumType) {
			res.Added++
		}
	}
	rewriteAttrRefs(in, scl.BTypeEnum, res.EnumTypes)

	daOrder := dependencyOrder(in.DATypes, func(at *scl.DAType) string { return at.ID }, daTypeDeps)
	for _, at := range daOrder {
		old := at.ID
		if merge(dst, &dst.DATypes, at, &at.ID, owner, res.DATypes, findDAType) {
			res.Added++
		}
		if at.ID != old {
			rewriteAttrRefs(in, scl.BTypeStruct, map[string]string{old: at.ID})
		}
	}

	doOrder := dependencyOrder(in.DOTypes, func(dt *scl.DOType) string { return dt.ID }, doTypeDeps)
	for _, dt := range doOrder {
		old := dt.ID
		if merge(dst, &dst.DOTypes, dt, &dt.ID, owner, res.DOTypes, findDOType) {
			res.Added++
		}
		if dt.ID != old {
			rewriteObjectRefs(in, map[string]string{old: dt.ID})
		}
	}

	for _, lt := range in.LNodeTypes {
		if merge(dst, &dst.LNodeTypes, lt, &lt.ID, owner, res.LNodeTypes, findLNodeType) {
			res.Added++
		}
	}
	return res, nil
}

// merge appends t to list unless dst already holds the same content under
// the same ID, or under the ID t is renamed to. It reports whether t was
// appended.
func merge[T any](dst *scl.DataTypeTemplates, list *[]*T, t *T, id *string, owner string,
	renames map[string]string, find func(*scl.DataTypeTemplates, string) (*T, bool)) bool {
	existing, ok := find(dst, *id)
	if !ok {
		*list = append(*list, t)
		return true
	}
	if scl.SameContent(existing, t) {
		return false
	}
	old := *id
	base := GenerateID(owner, old)
	for n := 1; ; n++ {
		*id = numberedID(base, n)
		existing, ok := find(dst, *id)
		if ok && !scl.SameContent(existing, t) {
			continue
		}
		renames[old] = *id
		if ok {
			return false
		}
		*list = append(*list, t)
		return true
	}
}

// numberedID returns base for n == 1 and base_n otherwise, truncating base
// so the result stays within maxIDLength.
func numberedID(base string, n int) string {
	if n == 1 {
		return base
	}
	suffix := "_" + strconv.Itoa(n)
	if len(base)+len(suffix) > maxIDLength {
		base = base[:maxIDLength-len(suffix)]
	}
	return base + suffix
}

// dependencyOrder returns list with every type placed after the types of
// the same list it depends on. Unknown and cyclic references are ignored;
// otherwise list order is kept.
func dependencyOrder[T any](list []*T, id func(*T) string, deps func(*T) []string) []*T {
	byID := make(map[string]*T, len(list))
	for _, t := range list {
		if _, ok := byID[id(t)]; !ok {
			byID[id(t)] = t
		}
	}
	out := make([]*T, 0, len(list))
	seen := make(map[*T]bool, len(list))
	var visit func(*T)
	visit = func(t *T) {
		if seen[t] {
			return
		}
		seen[t] = true
		for _, d := range deps(t) {
			if dep, ok := byID[d]; ok {
				visit(dep)
			}
		}
		out = append(out, t)
	}
	for _, t := range list {
		visit(t)
	}
	return out
}

func daTypeDeps(at *scl.DAType) []string {
	var deps []string
	for _, b := range at.BDAs {
		if b.BType == scl.BTypeStruct {
			deps = append(deps, b.Type)
		}
	}
	return deps
}

func doTypeDeps(dt *scl.DOType) []string {
	deps := make([]string, 0, len(dt.SDOs))
	for _, sdo := range dt.SDOs {
		deps = append(deps, sdo.Type)
	}
	return deps
}

func rewriteAttrRefs(in *scl.DataTypeTemplates, bt scl.BType, renames map[string]string) {
	if len(renames) == 0 {
		return
	}
	for _, at := range in.DATypes {
		for i := range at.BDAs {
			b := &at.BDAs[i]
			if nid, ok := renames[b.Type]; ok && b.BType == bt {
				b.Type = nid
			}
		}
	}
	for _, dt := range in.DOTypes {
		for i := range dt.DAs {
			a := &dt.DAs[i]
			if nid, ok := renames[a.Type]; ok && a.BType == bt {
				a.Type = nid
			}
		}
	}
}

func rewriteObjectRefs(in *scl.DataTypeTemplates, renames map[string]string) {
	if len(renames) == 0 {
		return
	}
	for _, dt := range in.DOTypes {
		for i := range dt.SDOs {
			if nid, ok := renames[dt.SDOs[i].Type]; ok {
				dt.SDOs[i].Type = nid
			}
		}
	}
	for _, lt := range in.LNodeTypes {
		for i := range lt.DOs {
			if nid, ok := renames[lt.DOs[i].Type]; ok {
				lt.DOs[i].Type = nid
			}
		}
	}
}

func findEnumType(t *scl.DataTypeTemplates, id string) (*scl.EnumType, bool) {
	for _, et := range t.EnumTypes {
		if et.ID == id {
			return et, true
		}
	}
	return nil, false
}

func findDAType(t *scl.DataTypeTemplates, id string) (*scl.DAType, bool) {
	for _, at := range t.DATypes {
		if at.ID == id {
			return at, true
		}
	}
	return nil, false
}

func findDOType(t *scl.DataTypeTemplates, id string) (*scl.DOType, bool) {
	for _, dt := range t.DOTypes {
		if dt.ID == id {
			return dt, true
		}
	}
	return nil, false
}

func findLNodeType(t *scl.DataTypeTemplates, id string) (*scl.LNodeType, bool) {
	for _, lt := range t.LNodeTypes {
		if lt.ID == id {
			return lt, true
		}
	}
	return nil, false
}
