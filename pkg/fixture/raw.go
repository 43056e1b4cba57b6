// Package fixture reads and writes configuration documents in a compact
// YAML form. It is used to hand documents to the engine in tests and
// tools; it is not an SCL serializer.
//
// A minimal document:
//
//	header: {id: demo, version: "1", revision: A}
//	ieds:
//	  - name: IED1
//	    accessPoints:
//	      - name: AP1
//	        ldevices:
//	          - inst: LD1
//	            ln0: {lnType: LLN0_T}
//	            lns:
//	              - {lnClass: MMXU, inst: "1", lnType: MMXU_T}
//	templates:
//	  lnodeTypes:
//	    - {id: LLN0_T, lnClass: LLN0}
package fixture

// RawDocument is the YAML form of a document.
type RawDocument struct {
	Version       string          `yaml:"version,omitempty"`
	Revision      string          `yaml:"revision,omitempty"`
	Release       uint8           `yaml:"release,omitempty"`
	Header        *RawHeader      `yaml:"header,omitempty"`
	Communication []RawSubNetwork `yaml:"communication,omitempty"`
	IEDs          []RawIED        `yaml:"ieds,omitempty"`
	Templates     *RawTemplates   `yaml:"templates,omitempty"`
}

// RawHeader is the document header.
type RawHeader struct {
	ID       string           `yaml:"id"`
	Version  string           `yaml:"version,omitempty"`
	Revision string           `yaml:"revision,omitempty"`
	ToolID   string           `yaml:"toolID,omitempty"`
	History  []RawHistoryItem `yaml:"history,omitempty"`
}

// RawHistoryItem is one header history entry.
type RawHistoryItem struct {
	Version  string `yaml:"version,omitempty"`
	Revision string `yaml:"revision,omitempty"`
	When     string `yaml:"when,omitempty"`
	Who      string `yaml:"who,omitempty"`
	What     string `yaml:"what,omitempty"`
	Why      string `yaml:"why,omitempty"`
}

// RawSubNetwork is a subnetwork with its connected access points.
type RawSubNetwork struct {
	Name         string           `yaml:"name"`
	Type         string           `yaml:"type,omitempty"`
	ConnectedAPs []RawConnectedAP `yaml:"connectedAPs,omitempty"`
}

// RawConnectedAP links an IED access point to a subnetwork.
type RawConnectedAP struct {
	IEDName string `yaml:"iedName"`
	APName  string `yaml:"apName"`
}

// RawIED is a device.
type RawIED struct {
	Name          string           `yaml:"name"`
	Type          string           `yaml:"type,omitempty"`
	Manufacturer  string           `yaml:"manufacturer,omitempty"`
	ConfigVersion string           `yaml:"configVersion,omitempty"`
	AccessPoints  []RawAccessPoint `yaml:"accessPoints,omitempty"`
}

// RawAccessPoint is an access point. Its server is implicit: an access
// point with logical devices has a server.
type RawAccessPoint struct {
	Name     string       `yaml:"name"`
	LDevices []RawLDevice `yaml:"ldevices,omitempty"`
}

// RawLDevice is a logical device.
type RawLDevice struct {
	Inst   string  `yaml:"inst"`
	LDName string  `yaml:"ldName,omitempty"`
	LN0    *RawLN  `yaml:"ln0,omitempty"`
	LNs    []RawLN `yaml:"lns,omitempty"`
}

// RawLN is a logical node. The lnClass of ln0 defaults to LLN0.
type RawLN struct {
	Class   string        `yaml:"lnClass,omitempty"`
	Inst    string        `yaml:"inst,omitempty"`
	Prefix  string        `yaml:"prefix,omitempty"`
	Type    string        `yaml:"lnType"`
	Desc    string        `yaml:"desc,omitempty"`
	DOIs    []RawInstance `yaml:"dois,omitempty"`
	ExtRefs []RawExtRef   `yaml:"extRefs,omitempty"`
}

// RawInstance is a DOI or an SDI.
type RawInstance struct {
	Name string        `yaml:"name"`
	SDIs []RawInstance `yaml:"sdis,omitempty"`
	DAIs []RawDAI      `yaml:"dais,omitempty"`
}

// RawDAI is a data attribute instance. Value is a shorthand for a single
// value without setting group.
type RawDAI struct {
	Name      string     `yaml:"name"`
	ValImport *bool      `yaml:"valImport,omitempty"`
	ValKind   string     `yaml:"valKind,omitempty"`
	Value     string     `yaml:"value,omitempty"`
	Values    []RawValue `yaml:"values,omitempty"`
}

// RawValue is a value with an optional setting group.
type RawValue struct {
	SGroup uint32 `yaml:"sGroup,omitempty"`
	Text   string `yaml:"text"`
}

// RawExtRef is an external reference.
type RawExtRef struct {
	Desc    string `yaml:"desc,omitempty"`
	PLN     string `yaml:"pLN,omitempty"`
	PDO     string `yaml:"pDO,omitempty"`
	PDA     string `yaml:"pDA,omitempty"`
	IntAddr string `yaml:"intAddr,omitempty"`
	PServT  string `yaml:"pServT,omitempty"`

	IEDName     string `yaml:"iedName,omitempty"`
	LDInst      string `yaml:"ldInst,omitempty"`
	Prefix      string `yaml:"prefix,omitempty"`
	LNClass     string `yaml:"lnClass,omitempty"`
	LNInst      string `yaml:"lnInst,omitempty"`
	DOName      string `yaml:"doName,omitempty"`
	DAName      string `yaml:"daName,omitempty"`
	ServiceType string `yaml:"serviceType,omitempty"`

	SrcLDInst  string `yaml:"srcLDInst,omitempty"`
	SrcPrefix  string `yaml:"srcPrefix,omitempty"`
	SrcLNClass string `yaml:"srcLNClass,omitempty"`
	SrcLNInst  string `yaml:"srcLNInst,omitempty"`
	SrcCBName  string `yaml:"srcCBName,omitempty"`
}

// RawTemplates is the data type template catalog.
type RawTemplates struct {
	LNodeTypes []RawLNodeType `yaml:"lnodeTypes,omitempty"`
	DOTypes    []RawDOType    `yaml:"doTypes,omitempty"`
	DATypes    []RawDAType    `yaml:"daTypes,omitempty"`
	EnumTypes  []RawEnumType  `yaml:"enumTypes,omitempty"`
}

// RawLNodeType declares the data objects of a logical node class.
type RawLNodeType struct {
	ID      string  `yaml:"id"`
	LNClass string  `yaml:"lnClass"`
	Desc    string  `yaml:"desc,omitempty"`
	DOs     []RawDO `yaml:"dos,omitempty"`
}

// RawDO declares a data object.
type RawDO struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Transient bool   `yaml:"transient,omitempty"`
}

// RawDOType declares the content of a common data class.
type RawDOType struct {
	ID   string  `yaml:"id"`
	CDC  string  `yaml:"cdc"`
	SDOs []RawDO `yaml:"sdos,omitempty"`
	DAs  []RawDA `yaml:"das,omitempty"`
}

// RawDA declares a data attribute. FC is ignored for BDAs.
type RawDA struct {
	Name      string     `yaml:"name"`
	FC        string     `yaml:"fc,omitempty"`
	BType     string     `yaml:"bType"`
	Type      string     `yaml:"type,omitempty"`
	ValImport bool       `yaml:"valImport,omitempty"`
	ValKind   string     `yaml:"valKind,omitempty"`
	Value     string     `yaml:"value,omitempty"`
	Values    []RawValue `yaml:"values,omitempty"`
}

// RawDAType declares the basic data attributes of a struct.
type RawDAType struct {
	ID   string  `yaml:"id"`
	BDAs []RawDA `yaml:"bdas,omitempty"`
}

// RawEnumType declares an enumeration.
type RawEnumType struct {
	ID     string       `yaml:"id"`
	Values []RawEnumVal `yaml:"values,omitempty"`
}

// RawEnumVal is one enumeration literal.
type RawEnumVal struct {
	Ord  int    `yaml:"ord"`
	Text string `yaml:"text"`
}
