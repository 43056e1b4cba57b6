package scl

// Kind identifies the type of a document node.
type Kind uint8

const (
	KindDocument Kind = iota
	KindHeader
	KindCommunication
	KindSubNetwork
	KindConnectedAP
	KindIED
	KindAccessPoint
	KindServer
	KindLDevice
	KindLN0
	KindLN
	KindDOI
	KindSDI
	KindDAI
	KindExtRef
	KindDataTypeTemplates
	KindLNodeType
	KindDOType
	KindDAType
	KindEnumType
)

var kindNames = [...]string{
	KindDocument:          "SCL",
	KindHeader:            "Header",
	KindCommunication:     "Communication",
	KindSubNetwork:        "SubNetwork",
	KindConnectedAP:       "ConnectedAP",
	KindIED:               "IED",
	KindAccessPoint:       "AccessPoint",
	KindServer:            "Server",
	KindLDevice:           "LDevice",
	KindLN0:               "LN0",
	KindLN:                "LN",
	KindDOI:               "DOI",
	KindSDI:               "SDI",
	KindDAI:               "DAI",
	KindExtRef:            "ExtRef",
	KindDataTypeTemplates: "DataTypeTemplates",
	KindLNodeType:         "LNodeType",
	KindDOType:            "DOType",
	KindDAType:            "DAType",
	KindEnumType:          "EnumType",
}

// String returns the element tag of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// ParseKind returns the kind whose element tag is s.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}
