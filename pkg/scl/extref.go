package scl

// ServiceType is the kind of service carrying a bound signal.
type ServiceType string

// Service types.
const (
	ServicePoll   ServiceType = "Poll"
	ServiceReport ServiceType = "Report"
	ServiceGOOSE  ServiceType = "GOOSE"
	ServiceSMV    ServiceType = "SMV"
)

// ExtRef is an external reference: a signal a logical node consumes, the
// producer it is bound to, and the producer's source control block.
type ExtRef struct {
	nodeBase

	// Signal description.
	Desc    string
	PLN     string
	PDO     string
	PDA     string
	IntAddr string
	PServT  ServiceType

	// Binding.
	IEDName     string
	LDInst      string
	Prefix      string
	LNClass     string
	LNInst      string
	DOName      string
	DAName      string
	ServiceType ServiceType

	// Source control block.
	SrcLDInst  string
	SrcPrefix  string
	SrcLNClass string
	SrcLNInst  string
	SrcCBName  string
}
