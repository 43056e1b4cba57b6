package inspect

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/sclkit/sclkit-go/pkg/adapter"
	"github.com/sclkit/sclkit-go/pkg/scl"
)

// Inspector provides inspection and mutation capabilities for a document.
type Inspector struct {
	root *adapter.Root
}

// NewInspector creates a new Inspector for the given document root.
func NewInspector(root *adapter.Root) *Inspector {
	return &Inspector{root: root}
}

// Root returns the underlying document root.
func (i *Inspector) Root() *adapter.Root {
	return i.root
}

// Target holds the adapters a path resolves to. Fields below the depth of
// the path are nil.
type Target struct {
	IED     *adapter.IED
	LDevice *adapter.LDevice
	LN      *adapter.LN
}

// IEDInfo represents a device for display.
type IEDInfo struct {
	Name     string
	LDevices []LDeviceInfo
}

// LDeviceInfo represents a logical device for display.
type LDeviceInfo struct {
	Inst        string
	AccessPoint string
	LNs         []LNInfo
}

// LNInfo represents a logical node for display.
type LNInfo struct {
	Descriptor adapter.LNDescriptor
	Type       string
	DOIs       []string
	ExtRefs    int
}

// DAIInfo represents a resolved data attribute instance for display.
type DAIInfo struct {
	adapter.ResolvedDataTemplate
	Updatable bool
}

// Resolve looks up the adapters named by path.
func (i *Inspector) Resolve(path *Path) (*Target, error) {
	ied, err := i.root.IED(path.IED)
	if err != nil {
		return nil, err
	}
	t := &Target{IED: ied}
	if path.LDevice == "" {
		return t, nil
	}
	if t.LDevice, err = ied.LDevice(path.LDevice); err != nil {
		return nil, err
	}
	if path.IsPartial() {
		return t, nil
	}
	t.LN, err = adapter.ResolveLN(adapter.LNRef{
		LDevice: t.LDevice,
		Class:   path.LN.Class,
		Inst:    path.LN.Inst,
		Prefix:  path.LN.Prefix,
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// LN parses s and resolves it to a logical node.
func (i *Inspector) LN(s string) (*adapter.LN, error) {
	path, err := ParsePath(s)
	if err != nil {
		return nil, err
	}
	if path.IsPartial() {
		return nil, fmt.Errorf("%w: %s does not name a logical node", ErrInvalidPath, s)
	}
	t, err := i.Resolve(path)
	if err != nil {
		return nil, err
	}
	return t.LN, nil
}

// InspectDocument returns the device tree of the whole document.
func (i *Inspector) InspectDocument() []IEDInfo {
	var out []IEDInfo
	for ied := range i.root.IEDs() {
		out = append(out, inspectIED(ied, nil))
	}
	return out
}

// Inspect returns the part of the device tree selected by path.
func (i *Inspector) Inspect(path *Path) ([]IEDInfo, error) {
	t, err := i.Resolve(path)
	if err != nil {
		return nil, err
	}
	if t.LDevice == nil {
		return []IEDInfo{inspectIED(t.IED, nil)}, nil
	}
	ldi := inspectLDevice(t.LDevice)
	if t.LN != nil {
		ldi.LNs = []LNInfo{inspectLN(t.LN)}
	}
	return []IEDInfo{inspectIED(t.IED, []LDeviceInfo{ldi})}, nil
}

func inspectIED(ied *adapter.IED, lds []LDeviceInfo) IEDInfo {
	info := IEDInfo{Name: ied.Name(), LDevices: lds}
	if lds != nil {
		return info
	}
	for ld := range ied.LDevices() {
		info.LDevices = append(info.LDevices, inspectLDevice(ld))
	}
	return info
}

func inspectLDevice(ld *adapter.LDevice) LDeviceInfo {
	info := LDeviceInfo{Inst: ld.Inst(), AccessPoint: ld.AccessPointName()}
	for ln := range ld.LNs() {
		info.LNs = append(info.LNs, inspectLN(ln))
	}
	return info
}

func inspectLN(ln *adapter.LN) LNInfo {
	info := LNInfo{Descriptor: ln.Descriptor(), Type: ln.Type(), ExtRefs: len(ln.ExtRefs())}
	for doi := range ln.DOIs() {
		info.DOIs = append(info.DOIs, doi.Name())
	}
	return info
}

// ReadDAIs returns the resolved data attribute instances of ln matching filter.
func (i *Inspector) ReadDAIs(ln *adapter.LN, filter adapter.DAIFilter) ([]DAIInfo, error) {
	seq, err := ln.GetDAI(filter, false)
	if err != nil {
		return nil, err
	}
	update := i.root.Policy().Update
	var out []DAIInfo
	for t := range seq {
		out = append(out, DAIInfo{ResolvedDataTemplate: t, Updatable: t.IsUpdatable(update)})
	}
	return out, nil
}

// WriteDAI writes value to the attribute do.da of ln. With sgroup zero the
// value replaces every existing value. A non-zero sgroup sets the value of
// that setting group and keeps the other groups.
func (i *Inspector) WriteDAI(ln *adapter.LN, do, da, value string, sgroup uint32) error {
	t := adapter.ResolvedDataTemplate{
		DO:     scl.ParseDoTypeName(do),
		DA:     scl.ParseDaTypeName(da),
		Values: []scl.Value{{SGroup: sgroup, Text: value}},
	}
	if sgroup != 0 {
		cur, err := currentValues(ln, t.DO, t.DA)
		if err != nil {
			return err
		}
		t.Values = mergeSGroup(cur, scl.Value{SGroup: sgroup, Text: value})
	}
	return ln.UpdateDAI(t)
}

func currentValues(ln *adapter.LN, do scl.DoTypeName, da scl.DaTypeName) ([]scl.Value, error) {
	seq, err := ln.GetDAI(adapter.DAIFilter{DO: do.String(), DA: da.String()}, false)
	if err != nil {
		return nil, err
	}
	for t := range seq {
		if t.DO.String() == do.String() && t.DA.String() == da.String() {
			return t.Values, nil
		}
	}
	return nil, nil
}

// mergeSGroup replaces the value of v's setting group in cur, drops
// values without a group, and orders the result by group.
func mergeSGroup(cur []scl.Value, v scl.Value) []scl.Value {
	out := []scl.Value{v}
	for _, c := range cur {
		if c.SGroup != 0 && c.SGroup != v.SGroup {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b scl.Value) int { return cmp.Compare(a.SGroup, b.SGroup) })
	return out
}

// Binders returns the candidate producers of sig.
func (i *Inspector) Binders(sig adapter.ExtRefSignalInfo) ([]adapter.ExtRefBindingInfo, error) {
	seq, err := i.root.ExtRefBinders(sig)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// Bind binds the external reference at index idx of ln to the logical node
// producer. The producer must be one of the candidates ExtRefBinders
// yields for the reference's signal.
func (i *Inspector) Bind(ln *adapter.LN, idx int, producer *adapter.LN) error {
	ers := ln.ExtRefs()
	if idx < 0 || idx >= len(ers) {
		return fmt.Errorf("%w: external reference %d out of range (0..%d)", scl.ErrInvalid, idx, len(ers)-1)
	}
	sig := adapter.SignalInfo(ers[idx])
	seq, err := i.root.ExtRefBinders(sig)
	if err != nil {
		return err
	}
	ld := producer.LDevice()
	for b := range seq {
		if b.IEDName != producer.IEDName() || b.LDInst != ld.Inst() || b.LNClass != producer.Class() ||
			b.LNInst != producer.Inst() || b.Prefix != producer.Prefix() {
			continue
		}
		return ln.LDevice().IED().UpdateExtRefBinders(ln.LDevice().Inst(), ln.Descriptor(), []adapter.ExtRefInfo{{
			Signal:  sig,
			Binding: &b,
		}})
	}
	return fmt.Errorf("%w: %s cannot produce %s", scl.ErrNotFound, PathOf(producer), sig.PDO)
}
