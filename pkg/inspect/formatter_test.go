package inspect

import (
	"strings"
	"testing"

	"github.com/sclkit/sclkit-go/pkg/adapter"
	"github.com/sclkit/sclkit-go/pkg/scl"
)

func TestFormatValues(t *testing.T) {
	f := NewFormatter()

	tests := []struct {
		name     string
		values   []scl.Value
		expected string
	}{
		{name: "unset", values: nil, expected: "(unset)"},
		{name: "single", values: []scl.Value{{Text: "on"}}, expected: `"on"`},
		{name: "setting groups", values: []scl.Value{{SGroup: 1, Text: "a"}, {SGroup: 2, Text: "b"}}, expected: `1:"a" 2:"b"`},
		{name: "empty text", values: []scl.Value{{Text: ""}}, expected: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatValues(tt.values); got != tt.expected {
				t.Errorf("FormatValues() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIndent(t *testing.T) {
	f := &Formatter{}
	if got := f.Indent(2, "x"); got != "    x" {
		t.Errorf("Indent() = %q, want default width 2", got)
	}
	f.IndentWidth = 3
	if got := f.Indent(1, "x"); got != "   x" {
		t.Errorf("Indent() = %q", got)
	}
}

func TestFormatTree(t *testing.T) {
	insp := newTestInspector(t)
	out := NewFormatter().FormatTree(insp.InspectDocument())

	for _, want := range []string{
		"IED IED1\n",
		"  LD1 (AP1)\n",
		"    LLN0 [LLN0_T] dois: Mod\n",
		"    MMXU.1 [MMXU_T] dois: A, Mod\n",
		"    LLN0 [LLN0_T] extRefs: 1\n",
		"    Op:PTOC.1 [PTOC_T]\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}

	f := &Formatter{}
	if out := f.FormatTree(insp.InspectDocument()); strings.Contains(out, "[MMXU_T]") {
		t.Errorf("types shown with ShowTypes off:\n%s", out)
	}
	if out := f.FormatTree(nil); out != "(no IEDs)\n" {
		t.Errorf("FormatTree(nil) = %q", out)
	}
}

func TestFormatDAIs(t *testing.T) {
	dais := []DAIInfo{{
		ResolvedDataTemplate: adapter.ResolvedDataTemplate{
			DO:     scl.ParseDoTypeName("Mod"),
			DA:     scl.ParseDaTypeName("ctlModel"),
			FC:     scl.FCCF,
			BType:  scl.BTypeEnum,
			Type:   "CtlModel_E",
			Values: []scl.Value{{Text: "status-only"}},
		},
		Updatable: true,
	}}

	got := NewFormatter().FormatDAIs(dais)
	want := "  Mod.ctlModel = \"status-only\" (CF, Enum CtlModel_E) updatable\n"
	if got != want {
		t.Errorf("FormatDAIs() = %q, want %q", got, want)
	}
	if got := NewFormatter().FormatDAIs(nil); !strings.Contains(got, "no attributes") {
		t.Errorf("FormatDAIs(nil) = %q", got)
	}
}

func TestFormatExtRefs(t *testing.T) {
	ers := []*scl.ExtRef{
		{PLN: "MMXU", PDO: "A.phsA", PDA: "cVal.mag.f", IntAddr: "in1", PServT: scl.ServiceGOOSE},
		{PDO: "Pos", IntAddr: "in2", IEDName: "IED1", LDInst: "LD1", LNClass: "XCBR", LNInst: "1", SrcCBName: "gcb1"},
	}
	got := NewFormatter().FormatExtRefs(ers)

	for _, want := range []string{
		"  [0] in1 <- MMXU A.phsA.cVal.mag.f (GOOSE) unbound\n",
		"  [1] in2 <- Pos bound to IED1/LD1/XCBR.1 via gcb1\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatExtRefs() missing %q:\n%s", want, got)
		}
	}
}

func TestFormatBinders(t *testing.T) {
	binders := []adapter.ExtRefBindingInfo{{
		IEDName: "IED1", LDInst: "LD1", LNClass: "MMXU", LNInst: "1", LNType: "MMXU_T",
		DO: scl.ParseDoTypeName("A.phsA"), DA: scl.ParseDaTypeName("cVal.mag.f"), FC: scl.FCMX,
	}}
	got := NewFormatter().FormatBinders(binders)
	want := "  IED1/LD1/MMXU.1 A.phsA.cVal.mag.f [MX] MMXU_T\n"
	if got != want {
		t.Errorf("FormatBinders() = %q, want %q", got, want)
	}
}
