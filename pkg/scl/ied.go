package scl

import "iter"

// LLN0Class is the class of the distinguished zero-instance logical node.
const LLN0Class = "LLN0"

// IED is a configured intelligent electronic device.
type IED struct {
	nodeBase

	Name          string
	Type          string
	Manufacturer  string
	ConfigVersion string
	AccessPoints  []*AccessPoint
}

// AccessPoint returns the access point with the given name.
func (ied *IED) AccessPoint(name string) (*AccessPoint, bool) {
	for _, ap := range ied.AccessPoints {
		if ap.Name == name {
			return ap, true
		}
	}
	return nil, false
}

// LDevices yields every logical device of the IED across all access points,
// in document order.
func (ied *IED) LDevices() iter.Seq[*LDevice] {
	return func(yield func(*LDevice) bool) {
		for _, ap := range ied.AccessPoints {
			if ap.Server == nil {
				continue
			}
			for _, ld := range ap.Server.LDevices {
				if !yield(ld) {
					return
				}
			}
		}
	}
}

// AccessPoint is a communication access point of an IED.
type AccessPoint struct {
	nodeBase

	Name   string
	Server *Server
}

// Server hosts the logical devices of an access point.
type Server struct {
	nodeBase

	LDevices []*LDevice
}

// LDevice is a logical device.
type LDevice struct {
	nodeBase

	Inst   string
	LDName string
	LN0    *LN
	LNs    []*LN
}

// AllLNs yields LN0 (if present) followed by the other logical nodes.
func (ld *LDevice) AllLNs() iter.Seq[*LN] {
	return func(yield func(*LN) bool) {
		if ld.LN0 != nil && !yield(ld.LN0) {
			return
		}
		for _, ln := range ld.LNs {
			if !yield(ln) {
				return
			}
		}
	}
}

// LN is a logical node. The LLN0 node of a logical device uses the same
// type with Class set to LLN0Class and an empty Inst.
type LN struct {
	nodeBase

	Class  string
	Inst   string
	Prefix string

	// Type is the ID of the LNodeType in DataTypeTemplates.
	Type string
	Desc string

	DOIs    []*DOI
	ExtRefs []*ExtRef
}

// DOI returns the data object instance with the given name.
func (ln *LN) DOI(name string) (*DOI, bool) {
	for _, doi := range ln.DOIs {
		if doi.Name == name {
			return doi, true
		}
	}
	return nil, false
}

// DOI is a data object instance.
type DOI struct {
	nodeBase

	Name string
	SDIs []*SDI
	DAIs []*DAI
}

// SDI is a sub data instance: either a sub data object or a struct data
// attribute, depending on the type of its parent.
type SDI struct {
	nodeBase

	Name string
	SDIs []*SDI
	DAIs []*DAI
}

// FindSDI returns the SDI with the given name from sdis.
func FindSDI(sdis []*SDI, name string) (*SDI, bool) {
	for _, s := range sdis {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// FindDAI returns the DAI with the given name from dais.
func FindDAI(dais []*DAI, name string) (*DAI, bool) {
	for _, d := range dais {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// DAI is a data attribute instance holding configured values.
type DAI struct {
	nodeBase

	Name string

	// ValImport overrides the type's valImport flag when set.
	ValImport *bool
	ValKind   string
	Values    []Value
}

// Value is one configured value. SGroup is the setting group (0 for none).
type Value struct {
	SGroup uint32
	Text   string
}

// Bool returns a pointer to b, for optional boolean attributes.
func Bool(b bool) *bool {
	return &b
}
