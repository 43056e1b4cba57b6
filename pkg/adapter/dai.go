package adapter

import (
	"fmt"
	"iter"
	"slices"

	"github.com/sclkit/sclkit-go/pkg/dtt"
	"github.com/sclkit/sclkit-go/pkg/journal"
	"github.com/sclkit/sclkit-go/pkg/policy"
	"github.com/sclkit/sclkit-go/pkg/scl"
)

// ResolvedDataTemplate is a data attribute instance path resolved against
// the type of its logical node, together with its current values.
type ResolvedDataTemplate struct {
	LNClass string
	LNInst  string
	Prefix  string
	LNType  string

	DO scl.DoTypeName
	DA scl.DaTypeName

	FC    scl.FC
	BType scl.BType
	Type  string

	// ValImport is the instance flag if set, the type flag otherwise.
	ValImport bool

	Values []scl.Value
}

// IsUpdatable reports whether the attribute may be written under u.
func (t ResolvedDataTemplate) IsUpdatable(u policy.UpdatePolicy) bool {
	return u.Allows(t.ValImport, t.FC, t.DO, t.DA)
}

// DAIFilter restricts GetDAI to paths starting with the given dotted
// prefixes. Empty fields match everything.
type DAIFilter struct {
	DO string
	DA string
}

func (f DAIFilter) matches(do scl.DoTypeName, da scl.DaTypeName) bool {
	return scl.HasPrefix(do.Segments(), scl.ParseDoTypeName(f.DO).Segments()) &&
		scl.HasPrefix(da.Segments(), scl.ParseDaTypeName(f.DA).Segments())
}

func (l *LN) template(r *dtt.ResolvedAttribute, dai *scl.DAI) ResolvedDataTemplate {
	t := ResolvedDataTemplate{
		LNClass:   l.node.Class,
		LNInst:    l.node.Inst,
		Prefix:    l.node.Prefix,
		LNType:    l.node.Type,
		DO:        r.DO,
		DA:        r.DA,
		FC:        r.FC,
		BType:     r.BType,
		Type:      r.Type,
		ValImport: r.ValImport,
	}
	if dai != nil {
		if dai.ValImport != nil {
			t.ValImport = *dai.ValImport
		}
		t.Values = slices.Clone(dai.Values)
	}
	return t
}

// GetDAI yields the data attribute instances of the node, depth first in
// document order, resolved against the node's type. Instances whose path
// does not resolve are skipped. With updatableOnly set, only attributes
// writable under the active policy are yielded.
//
// The only upfront error is an unknown node type. The sequence may be
// iterated more than once and reflects the tree at iteration time.
func (l *LN) GetDAI(filter DAIFilter, updatableOnly bool) (iter.Seq[ResolvedDataTemplate], error) {
	cat := l.root.Catalog()
	if _, ok := cat.LNodeType(l.node.Type); !ok {
		return nil, fmt.Errorf("%w: unknown LNodeType %q of %s", scl.ErrTemplateResolution, l.node.Type, l.Descriptor())
	}
	update := l.root.policy.Update

	return func(yield func(ResolvedDataTemplate) bool) {
		emit := func(names []string, dai *scl.DAI) bool {
			do, da, err := cat.Classify(l.node.Type, names)
			if err == nil {
				var r *dtt.ResolvedAttribute
				r, err = cat.Resolve(l.node.Type, do, da)
				if err == nil && r.BType == scl.BTypeStruct {
					err = fmt.Errorf("%w: %s is a struct attribute", scl.ErrTemplateResolution, da)
				}
				if err == nil {
					if !filter.matches(do, da) {
						return true
					}
					t := l.template(r, dai)
					if updatableOnly && !t.IsUpdatable(update) {
						return true
					}
					return yield(t)
				}
			}
			l.root.warnLog("skipping unresolvable DAI", "ln", l.XPath(), "path", names, "error", err)
			return true
		}
		for _, doi := range l.node.DOIs {
			if !walkDAIs([]string{doi.Name}, doi.SDIs, doi.DAIs, emit) {
				return
			}
		}
	}, nil
}

// walkDAIs calls fn for every DAI below a data instance with its full
// instance name chain. It stops when fn returns false.
func walkDAIs(names []string, sdis []*scl.SDI, dais []*scl.DAI, fn func([]string, *scl.DAI) bool) bool {
	for _, sdi := range sdis {
		if !walkDAIs(append(slices.Clip(names), sdi.Name), sdi.SDIs, sdi.DAIs, fn) {
			return false
		}
	}
	for _, dai := range dais {
		if !fn(append(slices.Clip(names), dai.Name), dai) {
			return false
		}
	}
	return true
}

// UpdateDAI writes the values of t to the data attribute instance at
// t.DO/t.DA, creating missing DOI, SDI and DAI nodes along the path.
//
// The path must resolve against the node type to a non-struct attribute,
// and the attribute must be writable under the active policy given its
// functional constraint and effective valImport flag (the existing
// instance flag if set, the type flag otherwise). The flags carried by t
// are not consulted. If more than one value is given and one of them has
// no setting group, only that value is written.
//
// On error the tree is unchanged.
func (l *LN) UpdateDAI(t ResolvedDataTemplate) error {
	target := l.XPath()
	fail := func(err error) error {
		return l.root.reject(journal.OpUpdateDAI, target, l.IEDName(), err)
	}

	if !t.DO.IsDefined() {
		return fail(fmt.Errorf("%w: DO name not set", scl.ErrInvalid))
	}
	if !t.DA.IsDefined() {
		return fail(fmt.Errorf("%w: DA name not set", scl.ErrInvalid))
	}
	r, err := l.root.Catalog().Resolve(l.node.Type, t.DO, t.DA)
	if err != nil {
		return fail(fmt.Errorf("unknown DO/DA %s.%s in type %q: %w", t.DO, t.DA, l.node.Type, err))
	}
	if r.BType == scl.BTypeStruct {
		return fail(fmt.Errorf("%w: %s.%s is a struct attribute", scl.ErrTemplateResolution, t.DO, t.DA))
	}

	segs := append(t.DO.Segments(), t.DA.Segments()...)
	existing := l.lookupDAI(segs)
	resolved := l.template(r, existing)
	if !resolved.IsUpdatable(l.root.policy.Update) {
		return fail(fmt.Errorf("%w: %s.%s (fc %s, valImport %t)", scl.ErrNotUpdatable, t.DO, t.DA, r.FC, resolved.ValImport))
	}

	values := selectValues(t.Values)
	dai, created := l.createDAI(segs, true)
	old := dai.Values
	dai.Values = values

	l.root.debugLog("DAI updated", "ln", target, "do", t.DO.String(), "da", t.DA.String(), "values", len(values), "created", created)
	l.root.record(journal.Event{
		Op:     journal.OpUpdateDAI,
		Target: target,
		IED:    l.IEDName(),
		DAI: &journal.DAIChange{
			LN:      l.Descriptor().String(),
			DO:      t.DO.String(),
			DA:      t.DA.String(),
			FC:      string(r.FC),
			Old:     valueRecords(old),
			New:     valueRecords(values),
			Created: created,
		},
	})
	return nil
}

// selectValues returns a copy of values. When more than one value is given
// and one has no setting group, only that one is kept.
func selectValues(values []scl.Value) []scl.Value {
	if len(values) > 1 {
		for _, v := range values {
			if v.SGroup == 0 {
				return []scl.Value{v}
			}
		}
	}
	return slices.Clone(values)
}

func valueRecords(values []scl.Value) []journal.ValueRecord {
	if len(values) == 0 {
		return nil
	}
	out := make([]journal.ValueRecord, len(values))
	for i, v := range values {
		out[i] = journal.ValueRecord{SGroup: v.SGroup, Text: v.Text}
	}
	return out
}

// lookupDAI returns the instance at the DOI, SDI..., DAI name chain segs,
// or nil if any node along the path is missing.
func (l *LN) lookupDAI(segs []string) *scl.DAI {
	doi, ok := l.node.DOI(segs[0])
	if !ok {
		return nil
	}
	sdis, dais := doi.SDIs, doi.DAIs
	for _, name := range segs[1 : len(segs)-1] {
		sdi, ok := scl.FindSDI(sdis, name)
		if !ok {
			return nil
		}
		sdis, dais = sdi.SDIs, sdi.DAIs
	}
	dai, _ := scl.FindDAI(dais, segs[len(segs)-1])
	return dai
}

// createDAI returns the instance at segs, creating the missing nodes, and
// the number of nodes created. A created instance records valImport as its
// own flag.
func (l *LN) createDAI(segs []string, valImport bool) (*scl.DAI, int) {
	doc := l.root.doc
	created := 0

	doi, ok := l.node.DOI(segs[0])
	if !ok {
		doi = &scl.DOI{Name: segs[0]}
		l.node.DOIs = append(l.node.DOIs, doi)
		doc.Register(doi)
		created++
	}
	sdis, dais := &doi.SDIs, &doi.DAIs
	for _, name := range segs[1 : len(segs)-1] {
		sdi, ok := scl.FindSDI(*sdis, name)
		if !ok {
			sdi = &scl.SDI{Name: name}
			*sdis = append(*sdis, sdi)
			doc.Register(sdi)
			created++
		}
		sdis, dais = &sdi.SDIs, &sdi.DAIs
	}
	name := segs[len(segs)-1]
	dai, ok := scl.FindDAI(*dais, name)
	if !ok {
		dai = &scl.DAI{Name: name, ValImport: scl.Bool(valImport)}
		*dais = append(*dais, dai)
		doc.Register(dai)
		created++
	}
	return dai, created
}
