package scl

// Communication holds the subnetworks of the document.
type Communication struct {
	nodeBase

	SubNetworks []*SubNetwork
}

// SubNetwork returns the subnetwork with the given name.
func (c *Communication) SubNetwork(name string) (*SubNetwork, bool) {
	for _, sn := range c.SubNetworks {
		if sn.Name == name {
			return sn, true
		}
	}
	return nil, false
}

// SubNetwork is a communication subnetwork.
type SubNetwork struct {
	nodeBase

	Name string
	Type string

	ConnectedAPs []*ConnectedAP
}

// ConnectedAP returns the connection point of the given IED access point.
func (sn *SubNetwork) ConnectedAP(iedName, apName string) (*ConnectedAP, bool) {
	for _, ca := range sn.ConnectedAPs {
		if ca.IEDName == iedName && ca.APName == apName {
			return ca, true
		}
	}
	return nil, false
}

// ConnectedAP links an IED access point to a subnetwork.
type ConnectedAP struct {
	nodeBase

	IEDName string
	APName  string
}
