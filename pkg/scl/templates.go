package scl

// BType is the basic type of a data attribute.
type BType string

// Basic types with special handling. Other predefined basic types
// (BOOLEAN, INT32, VisString255, ...) are carried as plain strings.
const (
	BTypeStruct BType = "Struct"
	BTypeEnum   BType = "Enum"
)

// DataTypeTemplates is the catalog of reusable type declarations.
type DataTypeTemplates struct {
	nodeBase

	LNodeTypes []*LNodeType
	DOTypes    []*DOType
	DATypes    []*DAType
	EnumTypes  []*EnumType
}

// LNodeType declares the data objects of a logical node class.
type LNodeType struct {
	nodeBase

	ID      string
	LNClass string
	Desc    string
	DOs     []DO
}

// DO declares a data object of an LNodeType.
type DO struct {
	Name      string
	Type      string
	Transient bool
}

// DOType declares the sub data objects and data attributes of a CDC.
type DOType struct {
	nodeBase

	ID   string
	CDC  string
	SDOs []SDO
	DAs  []DA
}

// SDO declares a nested data object.
type SDO struct {
	Name string
	Type string
}

// DA declares a data attribute of a DOType.
type DA struct {
	Name      string
	FC        FC
	BType     BType
	Type      string
	ValImport bool
	ValKind   string
	Values    []Value
}

// DAType declares the members of a struct attribute.
type DAType struct {
	nodeBase

	ID   string
	BDAs []BDA
}

// BDA declares a member of a DAType.
type BDA struct {
	Name      string
	BType     BType
	Type      string
	ValImport bool
	ValKind   string
	Values    []Value
}

// EnumType declares the literals of an enumeration.
type EnumType struct {
	nodeBase

	ID     string
	Values []EnumVal
}

// EnumVal is one enumeration literal.
type EnumVal struct {
	Ord  int
	Text string
}

// SDO returns the sub data object with the given name.
func (t *DOType) SDO(name string) (SDO, bool) {
	for _, s := range t.SDOs {
		if s.Name == name {
			return s, true
		}
	}
	return SDO{}, false
}

// DA returns the data attribute with the given name.
func (t *DOType) DA(name string) (DA, bool) {
	for _, a := range t.DAs {
		if a.Name == name {
			return a, true
		}
	}
	return DA{}, false
}

// DO returns the data object with the given name.
func (t *LNodeType) DO(name string) (DO, bool) {
	for _, d := range t.DOs {
		if d.Name == name {
			return d, true
		}
	}
	return DO{}, false
}

// BDA returns the member with the given name.
func (t *DAType) BDA(name string) (BDA, bool) {
	for _, b := range t.BDAs {
		if b.Name == name {
			return b, true
		}
	}
	return BDA{}, false
}
