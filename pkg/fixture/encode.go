package fixture

import "github.com/sclkit/sclkit-go/pkg/scl"

// FromDocument converts doc into its raw fixture form.
func FromDocument(doc *scl.Document) *RawDocument {
	r := &RawDocument{Version: doc.Version, Revision: doc.Revision, Release: doc.Release}

	if h := doc.Header; h != nil {
		r.Header = &RawHeader{ID: h.ID, Version: h.Version, Revision: h.Revision, ToolID: h.ToolID}
		for _, hi := range h.History {
			r.Header.History = append(r.Header.History, RawHistoryItem(hi))
		}
	}

	if c := doc.Communication; c != nil {
		for _, sn := range c.SubNetworks {
			rsn := RawSubNetwork{Name: sn.Name, Type: sn.Type}
			for _, cnx := range sn.ConnectedAPs {
				rsn.ConnectedAPs = append(rsn.ConnectedAPs, RawConnectedAP{IEDName: cnx.IEDName, APName: cnx.APName})
			}
			r.Communication = append(r.Communication, rsn)
		}
	}

	for _, ied := range doc.IEDs {
		r.IEDs = append(r.IEDs, rawIED(ied))
	}

	if t := doc.DataTypeTemplates; t != nil {
		r.Templates = rawTemplates(t)
	}
	return r
}

func rawIED(ied *scl.IED) RawIED {
	r := RawIED{Name: ied.Name, Type: ied.Type, Manufacturer: ied.Manufacturer, ConfigVersion: ied.ConfigVersion}
	for _, ap := range ied.AccessPoints {
		rap := RawAccessPoint{Name: ap.Name}
		if ap.Server != nil {
			for _, ld := range ap.Server.LDevices {
				rld := RawLDevice{Inst: ld.Inst, LDName: ld.LDName}
				if ld.LN0 != nil {
					ln0 := rawLN(ld.LN0)
					ln0.Class = ""
					rld.LN0 = &ln0
				}
				for _, ln := range ld.LNs {
					rld.LNs = append(rld.LNs, rawLN(ln))
				}
				rap.LDevices = append(rap.LDevices, rld)
			}
		}
		r.AccessPoints = append(r.AccessPoints, rap)
	}
	return r
}

func rawLN(ln *scl.LN) RawLN {
	r := RawLN{Class: ln.Class, Inst: ln.Inst, Prefix: ln.Prefix, Type: ln.Type, Desc: ln.Desc}
	for _, doi := range ln.DOIs {
		r.DOIs = append(r.DOIs, rawInstance(doi.Name, doi.SDIs, doi.DAIs))
	}
	for _, er := range ln.ExtRefs {
		r.ExtRefs = append(r.ExtRefs, rawExtRef(er))
	}
	return r
}

func rawInstance(name string, sdis []*scl.SDI, dais []*scl.DAI) RawInstance {
	r := RawInstance{Name: name}
	for _, sdi := range sdis {
		r.SDIs = append(r.SDIs, rawInstance(sdi.Name, sdi.SDIs, sdi.DAIs))
	}
	for _, dai := range dais {
		rd := RawDAI{Name: dai.Name, ValImport: dai.ValImport, ValKind: dai.ValKind}
		rd.Value, rd.Values = rawValues(dai.Values)
		r.DAIs = append(r.DAIs, rd)
	}
	return r
}

func rawExtRef(er *scl.ExtRef) RawExtRef {
	return RawExtRef{
		Desc: er.Desc, PLN: er.PLN, PDO: er.PDO, PDA: er.PDA, IntAddr: er.IntAddr,
		PServT:  string(er.PServT),
		IEDName: er.IEDName, LDInst: er.LDInst, Prefix: er.Prefix,
		LNClass: er.LNClass, LNInst: er.LNInst, DOName: er.DOName, DAName: er.DAName,
		ServiceType: string(er.ServiceType),
		SrcLDInst:   er.SrcLDInst, SrcPrefix: er.SrcPrefix, SrcLNClass: er.SrcLNClass,
		SrcLNInst: er.SrcLNInst, SrcCBName: er.SrcCBName,
	}
}

func rawTemplates(t *scl.DataTypeTemplates) *RawTemplates {
	r := &RawTemplates{}
	for _, lt := range t.LNodeTypes {
		rl := RawLNodeType{ID: lt.ID, LNClass: lt.LNClass, Desc: lt.Desc}
		for _, d := range lt.DOs {
			rl.DOs = append(rl.DOs, RawDO{Name: d.Name, Type: d.Type, Transient: d.Transient})
		}
		r.LNodeTypes = append(r.LNodeTypes, rl)
	}
	for _, dt := range t.DOTypes {
		rd := RawDOType{ID: dt.ID, CDC: dt.CDC}
		for _, s := range dt.SDOs {
			rd.SDOs = append(rd.SDOs, RawDO{Name: s.Name, Type: s.Type})
		}
		for _, a := range dt.DAs {
			ra := RawDA{Name: a.Name, FC: string(a.FC), BType: string(a.BType), Type: a.Type, ValImport: a.ValImport, ValKind: a.ValKind}
			ra.Value, ra.Values = rawValues(a.Values)
			rd.DAs = append(rd.DAs, ra)
		}
		r.DOTypes = append(r.DOTypes, rd)
	}
	for _, at := range t.DATypes {
		ra := RawDAType{ID: at.ID}
		for _, b := range at.BDAs {
			rb := RawDA{Name: b.Name, BType: string(b.BType), Type: b.Type, ValImport: b.ValImport, ValKind: b.ValKind}
			rb.Value, rb.Values = rawValues(b.Values)
			ra.BDAs = append(ra.BDAs, rb)
		}
		r.DATypes = append(r.DATypes, ra)
	}
	for _, et := range t.EnumTypes {
		re := RawEnumType{ID: et.ID}
		for _, v := range et.Values {
			re.Values = append(re.Values, RawEnumVal(v))
		}
		r.EnumTypes = append(r.EnumTypes, re)
	}
	return r
}

// rawValues uses the single-value shorthand when it round-trips.
func rawValues(vs []scl.Value) (string, []RawValue) {
	if len(vs) == 1 && vs[0].SGroup == 0 && vs[0].Text != "" {
		return vs[0].Text, nil
	}
	var out []RawValue
	for _, v := range vs {
		out = append(out, RawValue(v))
	}
	return "", out
}
