package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sclkit/sclkit-go/pkg/scl"
)

// Parse parses a YAML fixture into an indexed document.
func Parse(data []byte) (*scl.Document, error) {
	var raw RawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return raw.Document()
}

// Load reads and parses a fixture file.
func Load(path string) (*scl.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal renders doc as a YAML fixture. Privates are not written.
func Marshal(doc *scl.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", scl.ErrInvalid)
	}
	data, err := yaml.Marshal(FromDocument(doc))
	if err != nil {
		return nil, fmt.Errorf("encoding fixture: %w", err)
	}
	return data, nil
}

// Save writes doc to path as a YAML fixture.
func Save(path string, doc *scl.Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Document converts the raw fixture into an indexed document.
// Missing schema identity fields take the scl package defaults.
func (r *RawDocument) Document() (*scl.Document, error) {
	doc := &scl.Document{
		Version:  r.Version,
		Revision: r.Revision,
		Release:  r.Release,
	}
	if doc.Version == "" {
		doc.Version = scl.Version
	}
	if doc.Revision == "" {
		doc.Revision = scl.Revision
	}
	if doc.Release == 0 {
		doc.Release = scl.Release
	}

	if h := r.Header; h != nil {
		if h.ID == "" {
			return nil, fmt.Errorf("%w: header id not set", scl.ErrInvalid)
		}
		doc.Header = &scl.Header{ID: h.ID, Version: h.Version, Revision: h.Revision, ToolID: h.ToolID}
		for _, hi := range h.History {
			doc.Header.History = append(doc.Header.History, scl.HistoryItem(hi))
		}
	}

	if len(r.Communication) > 0 {
		doc.Communication = &scl.Communication{}
		for _, rsn := range r.Communication {
			if rsn.Name == "" {
				return nil, fmt.Errorf("%w: subnetwork name not set", scl.ErrInvalid)
			}
			sn := &scl.SubNetwork{Name: rsn.Name, Type: rsn.Type}
			for _, cnx := range rsn.ConnectedAPs {
				sn.ConnectedAPs = append(sn.ConnectedAPs, &scl.ConnectedAP{IEDName: cnx.IEDName, APName: cnx.APName})
			}
			doc.Communication.SubNetworks = append(doc.Communication.SubNetworks, sn)
		}
	}

	seen := make(map[string]bool, len(r.IEDs))
	for i := range r.IEDs {
		ied, err := r.IEDs[i].ied()
		if err != nil {
			return nil, err
		}
		if seen[ied.Name] {
			return nil, fmt.Errorf("%w: duplicate IED %q", scl.ErrInvalid, ied.Name)
		}
		seen[ied.Name] = true
		doc.IEDs = append(doc.IEDs, ied)
	}

	if r.Templates != nil {
		doc.DataTypeTemplates = r.Templates.templates()
	}

	doc.Reindex()
	return doc, nil
}

func (r *RawIED) ied() (*scl.IED, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("%w: IED name not set", scl.ErrInvalid)
	}
	ied := &scl.IED{Name: r.Name, Type: r.Type, Manufacturer: r.Manufacturer, ConfigVersion: r.ConfigVersion}
	for _, rap := range r.AccessPoints {
		ap := &scl.AccessPoint{Name: rap.Name, Server: &scl.Server{}}
		for _, rld := range rap.LDevices {
			ld := &scl.LDevice{Inst: rld.Inst, LDName: rld.LDName}
			if rld.LN0 != nil {
				if rld.LN0.Class != "" && rld.LN0.Class != scl.LLN0Class {
					return nil, fmt.Errorf("%w: ln0 of %s/%s has class %q", scl.ErrInvalid, r.Name, rld.Inst, rld.LN0.Class)
				}
				ln, err := rld.LN0.ln()
				if err != nil {
					return nil, fmt.Errorf("%s/%s: %w", r.Name, rld.Inst, err)
				}
				ln.Class = scl.LLN0Class
				ld.LN0 = ln
			}
			for i := range rld.LNs {
				if rld.LNs[i].Class == "" {
					return nil, fmt.Errorf("%w: lnClass not set in %s/%s", scl.ErrInvalid, r.Name, rld.Inst)
				}
				ln, err := rld.LNs[i].ln()
				if err != nil {
					return nil, fmt.Errorf("%s/%s: %w", r.Name, rld.Inst, err)
				}
				ld.LNs = append(ld.LNs, ln)
			}
			ap.Server.LDevices = append(ap.Server.LDevices, ld)
		}
		ied.AccessPoints = append(ied.AccessPoints, ap)
	}
	return ied, nil
}

func (r *RawLN) ln() (*scl.LN, error) {
	ln := &scl.LN{Class: r.Class, Inst: r.Inst, Prefix: r.Prefix, Type: r.Type, Desc: r.Desc}
	for i := range r.DOIs {
		sdis, dais, err := r.DOIs[i].children()
		if err != nil {
			return nil, err
		}
		ln.DOIs = append(ln.DOIs, &scl.DOI{Name: r.DOIs[i].Name, SDIs: sdis, DAIs: dais})
	}
	for _, rer := range r.ExtRefs {
		er := rer.extRef()
		ln.ExtRefs = append(ln.ExtRefs, &er)
	}
	return ln, nil
}

func (r *RawInstance) children() ([]*scl.SDI, []*scl.DAI, error) {
	var sdis []*scl.SDI
	for i := range r.SDIs {
		s, d, err := r.SDIs[i].children()
		if err != nil {
			return nil, nil, err
		}
		sdis = append(sdis, &scl.SDI{Name: r.SDIs[i].Name, SDIs: s, DAIs: d})
	}
	var dais []*scl.DAI
	for _, rd := range r.DAIs {
		if rd.Value != "" && len(rd.Values) > 0 {
			return nil, nil, fmt.Errorf("%w: DAI %q sets both value and values", scl.ErrInvalid, rd.Name)
		}
		dais = append(dais, &scl.DAI{
			Name:      rd.Name,
			ValImport: rd.ValImport,
			ValKind:   rd.ValKind,
			Values:    values(rd.Value, rd.Values),
		})
	}
	return sdis, dais, nil
}

func (r RawExtRef) extRef() scl.ExtRef {
	return scl.ExtRef{
		Desc: r.Desc, PLN: r.PLN, PDO: r.PDO, PDA: r.PDA, IntAddr: r.IntAddr,
		PServT:  scl.ServiceType(r.PServT),
		IEDName: r.IEDName, LDInst: r.LDInst, Prefix: r.Prefix,
		LNClass: r.LNClass, LNInst: r.LNInst, DOName: r.DOName, DAName: r.DAName,
		ServiceType: scl.ServiceType(r.ServiceType),
		SrcLDInst:   r.SrcLDInst, SrcPrefix: r.SrcPrefix, SrcLNClass: r.SrcLNClass,
		SrcLNInst: r.SrcLNInst, SrcCBName: r.SrcCBName,
	}
}

func (r *RawTemplates) templates() *scl.DataTypeTemplates {
	t := &scl.DataTypeTemplates{}
	for _, rl := range r.LNodeTypes {
		lt := &scl.LNodeType{ID: rl.ID, LNClass: rl.LNClass, Desc: rl.Desc}
		for _, d := range rl.DOs {
			lt.DOs = append(lt.DOs, scl.DO{Name: d.Name, Type: d.Type, Transient: d.Transient})
		}
		t.LNodeTypes = append(t.LNodeTypes, lt)
	}
	for _, rd := range r.DOTypes {
		dt := &scl.DOType{ID: rd.ID, CDC: rd.CDC}
		for _, s := range rd.SDOs {
			dt.SDOs = append(dt.SDOs, scl.SDO{Name: s.Name, Type: s.Type})
		}
		for _, a := range rd.DAs {
			dt.DAs = append(dt.DAs, scl.DA{
				Name: a.Name, FC: scl.FC(a.FC), BType: scl.BType(a.BType), Type: a.Type,
				ValImport: a.ValImport, ValKind: a.ValKind, Values: values(a.Value, a.Values),
			})
		}
		t.DOTypes = append(t.DOTypes, dt)
	}
	for _, ra := range r.DATypes {
		at := &scl.DAType{ID: ra.ID}
		for _, b := range ra.BDAs {
			at.BDAs = append(at.BDAs, scl.BDA{
				Name: b.Name, BType: scl.BType(b.BType), Type: b.Type,
				ValImport: b.ValImport, ValKind: b.ValKind, Values: values(b.Value, b.Values),
			})
		}
		t.DATypes = append(t.DATypes, at)
	}
	for _, re := range r.EnumTypes {
		et := &scl.EnumType{ID: re.ID}
		for _, v := range re.Values {
			et.Values = append(et.Values, scl.EnumVal(v))
		}
		t.EnumTypes = append(t.EnumTypes, et)
	}
	return t
}

func values(single string, list []RawValue) []scl.Value {
	if single != "" {
		return []scl.Value{{Text: single}}
	}
	var out []scl.Value
	for _, v := range list {
		out = append(out, scl.Value(v))
	}
	return out
}
