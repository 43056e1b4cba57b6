package inspect

import (
	"fmt"
	"strings"

	"github.com/sclkit/sclkit-go/pkg/adapter"
	"github.com/sclkit/sclkit-go/pkg/scl"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowTypes includes LNodeType IDs and attribute type information
	ShowTypes bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowTypes:   true,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValues formats attribute values for display. Values with a
// setting group are shown as group:value.
func (f *Formatter) FormatValues(values []scl.Value) string {
	if len(values) == 0 {
		return "(unset)"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		if v.SGroup == 0 {
			parts[i] = fmt.Sprintf("%q", v.Text)
		} else {
			parts[i] = fmt.Sprintf("%d:%q", v.SGroup, v.Text)
		}
	}
	return strings.Join(parts, " ")
}

// FormatTree formats a device tree for display.
func (f *Formatter) FormatTree(ieds []IEDInfo) string {
	if len(ieds) == 0 {
		return "(no IEDs)\n"
	}
	var sb strings.Builder
	for _, ied := range ieds {
		sb.WriteString(f.Indent(0, "IED "+ied.Name) + "\n")
		for _, ld := range ied.LDevices {
			sb.WriteString(f.Indent(1, fmt.Sprintf("%s (%s)", ld.Inst, ld.AccessPoint)) + "\n")
			for _, ln := range ld.LNs {
				sb.WriteString(f.Indent(2, f.formatLNInfo(ln)) + "\n")
			}
		}
	}
	return sb.String()
}

func (f *Formatter) formatLNInfo(ln LNInfo) string {
	s := FormatLN(ln.Descriptor)
	if f.ShowTypes {
		s += " [" + ln.Type + "]"
	}
	if len(ln.DOIs) > 0 {
		s += " dois: " + strings.Join(ln.DOIs, ", ")
	}
	if ln.ExtRefs > 0 {
		s += fmt.Sprintf(" extRefs: %d", ln.ExtRefs)
	}
	return s
}

// FormatDAIs formats resolved data attribute instances as a table.
func (f *Formatter) FormatDAIs(dais []DAIInfo) string {
	if len(dais) == 0 {
		return "  (no attributes)\n"
	}
	var sb strings.Builder
	for _, d := range dais {
		sb.WriteString(fmt.Sprintf("  %s.%s = %s", d.DO, d.DA, f.FormatValues(d.Values)))
		if f.ShowTypes {
			sb.WriteString(fmt.Sprintf(" (%s, %s", d.FC, d.BType))
			if d.Type != "" {
				sb.WriteString(" " + d.Type)
			}
			sb.WriteString(")")
		}
		if d.Updatable {
			sb.WriteString(" updatable")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatExtRefs formats the external references of a logical node with
// their index.
func (f *Formatter) FormatExtRefs(ers []*scl.ExtRef) string {
	if len(ers) == 0 {
		return "  (no external references)\n"
	}
	var sb strings.Builder
	for i, er := range ers {
		sig := er.PDO
		if er.PDA != "" {
			sig += "." + er.PDA
		}
		if er.PLN != "" {
			sig = er.PLN + " " + sig
		}
		sb.WriteString(fmt.Sprintf("  [%d] %s <- %s", i, er.IntAddr, sig))
		if er.PServT != "" {
			sb.WriteString(" (" + string(er.PServT) + ")")
		}
		if er.IEDName == "" {
			sb.WriteString(" unbound\n")
			continue
		}
		bound := Path{IED: er.IEDName, LDevice: er.LDInst, LN: adapter.LNDescriptor{Class: er.LNClass, Inst: er.LNInst, Prefix: er.Prefix}}
		sb.WriteString(" bound to " + bound.String())
		if er.SrcCBName != "" {
			sb.WriteString(" via " + er.SrcCBName)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatBinders formats candidate producers of a signal.
func (f *Formatter) FormatBinders(binders []adapter.ExtRefBindingInfo) string {
	if len(binders) == 0 {
		return "  (no candidates)\n"
	}
	var sb strings.Builder
	for _, b := range binders {
		p := Path{IED: b.IEDName, LDevice: b.LDInst, LN: adapter.LNDescriptor{Class: b.LNClass, Inst: b.LNInst, Prefix: b.Prefix}}
		sb.WriteString("  " + p.String() + " " + b.DO.String())
		if b.DA.IsDefined() {
			sb.WriteString("." + b.DA.String())
		}
		if b.FC != "" {
			sb.WriteString(" [" + string(b.FC) + "]")
		}
		if f.ShowTypes && b.LNType != "" {
			sb.WriteString(" " + b.LNType)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
