package scl

// FC is a functional constraint.
type FC string

// Functional constraints.
const (
	FCST FC = "ST" // status
	FCMX FC = "MX" // measurand
	FCCO FC = "CO" // control
	FCSP FC = "SP" // set point
	FCSV FC = "SV" // substitution
	FCCF FC = "CF" // configuration
	FCDC FC = "DC" // description
	FCSG FC = "SG" // setting group
	FCSE FC = "SE" // setting group editable
	FCSR FC = "SR" // service response
	FCOR FC = "OR" // operate received
	FCBL FC = "BL" // blocking
	FCEX FC = "EX" // extended definition
)

var knownFCs = map[FC]struct{}{
	FCST: {}, FCMX: {}, FCCO: {}, FCSP: {}, FCSV: {}, FCCF: {}, FCDC: {},
	FCSG: {}, FCSE: {}, FCSR: {}, FCOR: {}, FCBL: {}, FCEX: {},
}

// Valid reports whether fc is a known functional constraint.
func (fc FC) Valid() bool {
	_, ok := knownFCs[fc]
	return ok
}
