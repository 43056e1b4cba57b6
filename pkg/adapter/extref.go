package adapter

import (
	"fmt"
	"iter"

	"github.com/sclkit/sclkit-go/pkg/dtt"
	"github.com/sclkit/sclkit-go/pkg/journal"
	"github.com/sclkit/sclkit-go/pkg/scl"
)

// ExtRefSignalInfo describes the signal an external reference consumes.
type ExtRefSignalInfo struct {
	Desc    string
	PLN     string
	PDO     string
	PDA     string
	IntAddr string
	PServT  scl.ServiceType
}

// SignalInfo returns the signal description of er.
func SignalInfo(er *scl.ExtRef) ExtRefSignalInfo {
	return ExtRefSignalInfo{
		Desc:    er.Desc,
		PLN:     er.PLN,
		PDO:     er.PDO,
		PDA:     er.PDA,
		IntAddr: er.IntAddr,
		PServT:  er.PServT,
	}
}

// Validate checks that the data object and internal address are set and
// that the object and attribute paths are well formed.
func (s ExtRefSignalInfo) Validate() error {
	if s.PDO == "" {
		return fmt.Errorf("%w: signal pDO not set", scl.ErrInvalid)
	}
	if s.IntAddr == "" {
		return fmt.Errorf("%w: signal intAddr not set", scl.ErrInvalid)
	}
	if err := scl.ParseDoTypeName(s.PDO).Validate(); err != nil {
		return err
	}
	if s.PDA != "" {
		if err := scl.ParseDaTypeName(s.PDA).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsValid reports whether Validate succeeds.
func (s ExtRefSignalInfo) IsValid() bool {
	return s.Validate() == nil
}

// Matches reports whether every field set in s equals the field of er.
// Unset fields match anything.
func (s ExtRefSignalInfo) Matches(er *scl.ExtRef) bool {
	return matchIfSet(s.Desc, er.Desc) &&
		matchIfSet(s.PLN, er.PLN) &&
		matchIfSet(s.PDO, er.PDO) &&
		matchIfSet(s.PDA, er.PDA) &&
		matchIfSet(s.IntAddr, er.IntAddr) &&
		matchIfSet(string(s.PServT), string(er.PServT))
}

func matchIfSet(want, got string) bool {
	return want == "" || want == got
}

// ExtRefBindingInfo names a producer attribute an external reference can
// be bound to.
type ExtRefBindingInfo struct {
	IEDName string
	LDInst  string
	Prefix  string
	LNClass string
	LNInst  string
	LNType  string

	DO scl.DoTypeName
	DA scl.DaTypeName
	FC scl.FC

	ServiceType scl.ServiceType
}

// Validate checks that the device, logical device and logical node are
// named. The instance may be empty only for LLN0.
func (b ExtRefBindingInfo) Validate() error {
	if b.IEDName == "" || b.LDInst == "" || b.LNClass == "" {
		return fmt.Errorf("%w: binding needs iedName, ldInst and lnClass", scl.ErrInvalid)
	}
	if b.LNClass != scl.LLN0Class && b.LNInst == "" {
		return fmt.Errorf("%w: binding to %s needs lnInst", scl.ErrInvalid, b.LNClass)
	}
	return nil
}

// IsValid reports whether Validate succeeds.
func (b ExtRefBindingInfo) IsValid() bool {
	return b.Validate() == nil
}

// ExtRefSourceInfo names the producer control block of a binding.
type ExtRefSourceInfo struct {
	LDInst  string
	Prefix  string
	LNClass string
	LNInst  string
	CBName  string
}

// ExtRefInfo is one entry of an UpdateExtRefBinders request.
type ExtRefInfo struct {
	Signal  ExtRefSignalInfo
	Binding *ExtRefBindingInfo
	Source  *ExtRefSourceInfo
}

// ExtRefsBySignalInfo yields the external references of the node that
// match sig.
func (l *LN) ExtRefsBySignalInfo(sig ExtRefSignalInfo) iter.Seq[*scl.ExtRef] {
	return func(yield func(*scl.ExtRef) bool) {
		for _, er := range l.node.ExtRefs {
			if sig.Matches(er) && !yield(er) {
				return
			}
		}
	}
}

// ExtRefBinders searches the document for producers of sig. The signal
// must be declared on this node.
func (l *LN) ExtRefBinders(sig ExtRefSignalInfo) (iter.Seq[ExtRefBindingInfo], error) {
	declared := false
	for range l.ExtRefsBySignalInfo(sig) {
		declared = true
		break
	}
	if !declared {
		return nil, scl.NewLookupError("signal in logical node", sig.PDO, sig.IntAddr, l.Descriptor().String())
	}
	return l.root.ExtRefBinders(sig)
}

// ExtRefBinders yields every logical node of the document able to produce
// sig, in document order (device, logical device, LN0 then the other
// nodes). A node qualifies when its class equals sig.PLN (if set), its
// type resolves sig.PDO and sig.PDA (if set) to a non-struct attribute,
// and the attribute's functional constraint is compatible with
// sig.PServT under the binding policy. Duplicates are not removed.
func (r *Root) ExtRefBinders(sig ExtRefSignalInfo) (iter.Seq[ExtRefBindingInfo], error) {
	if sig.PDO == "" {
		return nil, fmt.Errorf("%w: signal pDO not set", scl.ErrInvalid)
	}
	do := scl.ParseDoTypeName(sig.PDO)
	da := scl.ParseDaTypeName(sig.PDA)
	cat := r.Catalog()

	return func(yield func(ExtRefBindingInfo) bool) {
		for _, ied := range r.doc.IEDs {
			for ld := range ied.LDevices() {
				for ln := range ld.AllLNs() {
					if sig.PLN != "" && ln.Class != sig.PLN {
						continue
					}
					b, ok := r.binder(cat, ln, do, da, sig.PServT)
					if !ok {
						continue
					}
					b.IEDName = ied.Name
					b.LDInst = ld.Inst
					if !yield(b) {
						return
					}
				}
			}
		}
	}, nil
}

// binder resolves the signal path against the type of ln.
func (r *Root) binder(cat *dtt.Catalog, ln *scl.LN, do scl.DoTypeName, da scl.DaTypeName, svc scl.ServiceType) (ExtRefBindingInfo, bool) {
	b := ExtRefBindingInfo{
		Prefix:      ln.Prefix,
		LNClass:     ln.Class,
		LNInst:      ln.Inst,
		LNType:      ln.Type,
		DO:          do,
		DA:          da,
		ServiceType: svc,
	}
	if da.IsDefined() {
		res, err := cat.Resolve(ln.Type, do, da)
		if err != nil {
			r.debugLog("binder skipped", "lnType", ln.Type, "error", err)
			return b, false
		}
		if res.BType == scl.BTypeStruct {
			r.debugLog("binder skipped", "lnType", ln.Type, "reason", "struct attribute without struct names")
			return b, false
		}
		b.FC = res.FC
	} else if _, err := cat.ResolveDO(ln.Type, do); err != nil {
		r.debugLog("binder skipped", "lnType", ln.Type, "error", err)
		return b, false
	}
	if !r.policy.Binding.Compatible(svc, b.FC) {
		return b, false
	}
	return b, true
}

// UpdateExtRefBinders writes bindings on the external references of the
// logical node ln in logical device ldInst. Each info overwrites the
// binding and source of the reference whose signal equals info.Signal, or
// appends a new reference. References not named are kept.
//
// Every info is validated first, including that its binding names an
// existing device, logical device and logical node. On error the tree is
// unchanged.
func (i *IED) UpdateExtRefBinders(ldInst string, ln LNDescriptor, infos []ExtRefInfo) error {
	target := i.XPath()
	fail := func(err error) error {
		return i.root.reject(journal.OpUpdateExtRefs, target, i.node.Name, err)
	}

	ld, err := i.LDevice(ldInst)
	if err != nil {
		return fail(err)
	}
	lna, err := ResolveLN(LNRef{LDevice: ld, Class: ln.Class, Inst: ln.Inst, Prefix: ln.Prefix})
	if err != nil {
		return fail(err)
	}
	target = lna.XPath()

	for _, info := range infos {
		if err := info.Signal.Validate(); err != nil {
			return fail(err)
		}
		if info.Binding == nil {
			continue
		}
		if err := info.Binding.Validate(); err != nil {
			return fail(err)
		}
		if err := i.root.checkBindingTarget(*info.Binding); err != nil {
			return fail(err)
		}
	}

	change := &journal.ExtRefChange{LDInst: ldInst, LN: ln.String()}
	for _, info := range infos {
		er := lna.findExtRef(info.Signal)
		if er == nil {
			er = newExtRef(info.Signal)
			lna.node.ExtRefs = append(lna.node.ExtRefs, er)
			i.root.doc.Register(er)
			change.Created++
		} else {
			change.Updated++
		}
		applyBinding(er, info)
		change.Bindings = append(change.Bindings, bindingRecord(er))
	}

	i.root.debugLog("ExtRefs updated", "ln", target, "created", change.Created, "updated", change.Updated)
	i.root.record(journal.Event{
		Op:     journal.OpUpdateExtRefs,
		Target: target,
		IED:    i.node.Name,
		ExtRef: change,
	})
	return nil
}

// checkBindingTarget verifies that the producer named by b exists.
func (r *Root) checkBindingTarget(b ExtRefBindingInfo) error {
	ied, err := r.IED(b.IEDName)
	if err != nil {
		return err
	}
	ld, err := ied.LDevice(b.LDInst)
	if err != nil {
		return err
	}
	_, err = ResolveLN(LNRef{LDevice: ld, Class: b.LNClass, Inst: b.LNInst, Prefix: b.Prefix})
	return err
}

// findExtRef returns the reference whose signal equals sig.
func (l *LN) findExtRef(sig ExtRefSignalInfo) *scl.ExtRef {
	for _, er := range l.node.ExtRefs {
		if SignalInfo(er) == sig {
			return er
		}
	}
	return nil
}

func newExtRef(sig ExtRefSignalInfo) *scl.ExtRef {
	return &scl.ExtRef{
		Desc:    sig.Desc,
		PLN:     sig.PLN,
		PDO:     sig.PDO,
		PDA:     sig.PDA,
		IntAddr: sig.IntAddr,
		PServT:  sig.PServT,
	}
}

// applyBinding overwrites the binding and source fields of er. A nil
// binding or source clears the corresponding fields.
func applyBinding(er *scl.ExtRef, info ExtRefInfo) {
	er.IEDName, er.LDInst, er.Prefix, er.LNClass, er.LNInst = "", "", "", "", ""
	er.DOName, er.DAName, er.ServiceType = "", "", ""
	if b := info.Binding; b != nil {
		er.IEDName = b.IEDName
		er.LDInst = b.LDInst
		er.Prefix = b.Prefix
		er.LNClass = b.LNClass
		er.LNInst = b.LNInst
		er.DOName = b.DO.String()
		er.DAName = b.DA.String()
		er.ServiceType = b.ServiceType
	}

	er.SrcLDInst, er.SrcPrefix, er.SrcLNClass, er.SrcLNInst, er.SrcCBName = "", "", "", "", ""
	if s := info.Source; s != nil {
		er.SrcLDInst = s.LDInst
		er.SrcPrefix = s.Prefix
		er.SrcLNClass = s.LNClass
		er.SrcLNInst = s.LNInst
		er.SrcCBName = s.CBName
	}
}

func bindingRecord(er *scl.ExtRef) journal.BindingRecord {
	return journal.BindingRecord{
		IntAddr: er.IntAddr,
		PDO:     er.PDO,
		PDA:     er.PDA,
		IEDName: er.IEDName,
		LDInst:  er.LDInst,
		Prefix:  er.Prefix,
		LNClass: er.LNClass,
		LNInst:  er.LNInst,
		CBName:  er.SrcCBName,
	}
}
