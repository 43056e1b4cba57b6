package scl

// NodeID is the stable arena index of a node within its Document.
// The zero value means the node has not been registered.
type NodeID uint32

// Node is implemented by every element of the document tree.
type Node interface {
	// NodeID returns the arena index, or 0 if unregistered.
	NodeID() NodeID

	// Kind returns the element kind.
	Kind() Kind

	base() *nodeBase
}

type nodeBase struct {
	id NodeID
}

// NodeID returns the arena index of the node.
func (b *nodeBase) NodeID() NodeID { return b.id }

func (b *nodeBase) base() *nodeBase { return b }

func (*Header) Kind() Kind            { return KindHeader }
func (*Communication) Kind() Kind     { return KindCommunication }
func (*SubNetwork) Kind() Kind        { return KindSubNetwork }
func (*ConnectedAP) Kind() Kind       { return KindConnectedAP }
func (*IED) Kind() Kind               { return KindIED }
func (*AccessPoint) Kind() Kind       { return KindAccessPoint }
func (*Server) Kind() Kind            { return KindServer }
func (*LDevice) Kind() Kind           { return KindLDevice }
func (*DOI) Kind() Kind               { return KindDOI }
func (*SDI) Kind() Kind               { return KindSDI }
func (*DAI) Kind() Kind               { return KindDAI }
func (*ExtRef) Kind() Kind            { return KindExtRef }
func (*DataTypeTemplates) Kind() Kind { return KindDataTypeTemplates }
func (*LNodeType) Kind() Kind         { return KindLNodeType }
func (*DOType) Kind() Kind            { return KindDOType }
func (*DAType) Kind() Kind            { return KindDAType }
func (*EnumType) Kind() Kind          { return KindEnumType }

// Kind returns KindLN0 for the LLN0 node and KindLN otherwise.
func (ln *LN) Kind() Kind {
	if ln.Class == LLN0Class {
		return KindLN0
	}
	return KindLN
}
