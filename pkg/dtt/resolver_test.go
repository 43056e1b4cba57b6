package dtt

import (
	"errors"
	"testing"

	"github.com/sclkit/sclkit-go/pkg/scl"
)

func testTemplates() *scl.DataTypeTemplates {
	return &scl.DataTypeTemplates{
		LNodeTypes: []*scl.LNodeType{{
			ID:      "MMXU_T",
			LNClass: "MMXU",
			DOs: []scl.DO{
				{Name: "A", Type: "WYE_T"},
				{Name: "Mod", Type: "ENC_T"},
				{Name: "Broken", Type: "MISSING_T"},
			},
		}},
		DOTypes: []*scl.DOType{
			{ID: "WYE_T", CDC: "WYE", SDOs: []scl.SDO{{Name: "phsA", Type: "CMV_T"}}},
			{ID: "CMV_T", CDC: "CMV", DAs: []scl.DA{
				{Name: "cVal", FC: scl.FCMX, BType: scl.BTypeStruct, Type: "Vector_T"},
				{Name: "q", FC: scl.FCMX, BType: "Quality"},
				{Name: "units", FC: scl.FCCF, BType: scl.BTypeStruct, Type: "Unit_T", ValImport: true},
			}},
			{ID: "ENC_T", CDC: "ENC", DAs: []scl.DA{
				{Name: "stVal", FC: scl.FCST, BType: scl.BTypeEnum, Type: "Beh_E"},
				{Name: "ctlModel", FC: scl.FCCF, BType: scl.BTypeEnum, Type: "CtlModel_E", ValImport: true,
					Values: []scl.Value{{Text: "status-only"}}},
			}},
		},
		DATypes: []*scl.DAType{
			{ID: "Vector_T", BDAs: []scl.BDA{
				{Name: "mag", BType: scl.BTypeStruct, Type: "AV_T"},
				{Name: "ang", BType: scl.BTypeStruct, Type: "AV_T"},
			}},
			{ID: "AV_T", BDAs: []scl.BDA{{Name: "f", BType: "FLOAT32"}}},
			{ID: "Unit_T", BDAs: []scl.BDA{{Name: "SIUnit", BType: scl.BTypeEnum, Type: "SIUnit_E", ValImport: true}}},
		},
		EnumTypes: []*scl.EnumType{
			{ID: "Beh_E", Values: []scl.EnumVal{{Ord: 1, Text: "on"}}},
			{ID: "CtlModel_E", Values: []scl.EnumVal{{Ord: 0, Text: "status-only"}}},
		},
	}
}

func TestResolve(t *testing.T) {
	c := NewCatalog(testTemplates())

	tests := []struct {
		name      string
		do        string
		da        string
		wantFC    scl.FC
		wantBType scl.BType
		wantType  string
		wantCDC   string
		wantVI    bool
	}{
		{name: "simple enum", do: "Mod", da: "stVal", wantFC: scl.FCST, wantBType: scl.BTypeEnum, wantType: "Beh_E", wantCDC: "ENC"},
		{name: "importable", do: "Mod", da: "ctlModel", wantFC: scl.FCCF, wantBType: scl.BTypeEnum, wantType: "CtlModel_E", wantCDC: "ENC", wantVI: true},
		{name: "sdo and struct", do: "A.phsA", da: "cVal.mag.f", wantFC: scl.FCMX, wantBType: "FLOAT32", wantCDC: "CMV"},
		{name: "stops at struct", do: "A.phsA", da: "cVal", wantFC: scl.FCMX, wantBType: scl.BTypeStruct, wantType: "Vector_T", wantCDC: "CMV"},
		{name: "array index ignored", do: "A.phsA", da: "cVal.ang(0).f", wantFC: scl.FCMX, wantBType: "FLOAT32", wantCDC: "CMV"},
		{name: "bda valImport", do: "A.phsA", da: "units.SIUnit", wantFC: scl.FCCF, wantBType: scl.BTypeEnum, wantType: "SIUnit_E", wantCDC: "CMV", wantVI: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := c.Resolve("MMXU_T", scl.ParseDoTypeName(tt.do), scl.ParseDaTypeName(tt.da))
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if r.FC != tt.wantFC {
				t.Errorf("FC = %q, want %q", r.FC, tt.wantFC)
			}
			if r.BType != tt.wantBType {
				t.Errorf("BType = %q, want %q", r.BType, tt.wantBType)
			}
			if r.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", r.Type, tt.wantType)
			}
			if r.CDC != tt.wantCDC {
				t.Errorf("CDC = %q, want %q", r.CDC, tt.wantCDC)
			}
			if r.ValImport != tt.wantVI {
				t.Errorf("ValImport = %v, want %v", r.ValImport, tt.wantVI)
			}
			if r.LNClass != "MMXU" {
				t.Errorf("LNClass = %q, want MMXU", r.LNClass)
			}
		})
	}
}

func TestResolveDefault(t *testing.T) {
	c := NewCatalog(testTemplates())
	r, err := c.Resolve("MMXU_T", scl.ParseDoTypeName("Mod"), scl.ParseDaTypeName("ctlModel"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(r.Default) != 1 || r.Default[0].Text != "status-only" {
		t.Errorf("Default = %v, want [status-only]", r.Default)
	}

	r.Default[0].Text = "changed"
	again, err := c.Resolve("MMXU_T", scl.ParseDoTypeName("Mod"), scl.ParseDaTypeName("ctlModel"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if again.Default[0].Text != "status-only" {
		t.Errorf("Default shares the catalog's values: %v", again.Default)
	}
}

func TestResolveErrors(t *testing.T) {
	c := NewCatalog(testTemplates())

	tests := []struct {
		name    string
		lnType  string
		do      string
		da      string
		wantErr error
	}{
		{name: "unknown lnType", lnType: "NOPE", do: "Mod", da: "stVal", wantErr: scl.ErrTemplateResolution},
		{name: "unknown DO", lnType: "MMXU_T", do: "Beh", da: "stVal", wantErr: scl.ErrTemplateResolution},
		{name: "dangling DOType", lnType: "MMXU_T", do: "Broken", da: "stVal", wantErr: scl.ErrTemplateResolution},
		{name: "unknown SDO", lnType: "MMXU_T", do: "A.phsB", da: "cVal", wantErr: scl.ErrTemplateResolution},
		{name: "unknown DA", lnType: "MMXU_T", do: "Mod", da: "q", wantErr: scl.ErrTemplateResolution},
		{name: "struct names on leaf", lnType: "MMXU_T", do: "Mod", da: "stVal.x", wantErr: scl.ErrTemplateResolution},
		{name: "unknown BDA", lnType: "MMXU_T", do: "A.phsA", da: "cVal.mag.i", wantErr: scl.ErrTemplateResolution},
		{name: "DO not set", lnType: "MMXU_T", do: "", da: "stVal", wantErr: scl.ErrInvalid},
		{name: "DA not set", lnType: "MMXU_T", do: "Mod", da: "", wantErr: scl.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := c.Resolve(tt.lnType, scl.ParseDoTypeName(tt.do), scl.ParseDaTypeName(tt.da))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if r != nil {
				t.Errorf("result = %+v, want nil", r)
			}
		})
	}
}

func TestResolveErrorNamesSegment(t *testing.T) {
	c := NewCatalog(testTemplates())
	_, err := c.Resolve("MMXU_T", scl.ParseDoTypeName("A.phsA"), scl.ParseDaTypeName("cVal.mag.i"))
	if err == nil {
		t.Fatal("expected error")
	}
	want := `template resolution failed: unknown BDA "i" in DAType "AV_T"`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestNilCatalog(t *testing.T) {
	c := NewCatalog(nil)
	if _, err := c.ResolveDO("MMXU_T", scl.ParseDoTypeName("Mod")); !errors.Is(err, scl.ErrTemplateResolution) {
		t.Errorf("error = %v, want ErrTemplateResolution", err)
	}
}

func TestDuplicateIDFirstWins(t *testing.T) {
	tpl := testTemplates()
	tpl.LNodeTypes = append(tpl.LNodeTypes, &scl.LNodeType{ID: "MMXU_T", LNClass: "XXXX"})
	c := NewCatalog(tpl)
	lt, ok := c.LNodeType("MMXU_T")
	if !ok || lt.LNClass != "MMXU" {
		t.Errorf("LNodeType = %+v, want first declaration", lt)
	}
}

func TestClassify(t *testing.T) {
	c := NewCatalog(testTemplates())

	tests := []struct {
		name    string
		names   []string
		wantDO  string
		wantDA  string
		wantErr bool
	}{
		{name: "plain", names: []string{"Mod", "stVal"}, wantDO: "Mod", wantDA: "stVal"},
		{name: "sdo then struct", names: []string{"A", "phsA", "cVal", "mag", "f"}, wantDO: "A.phsA", wantDA: "cVal.mag.f"},
		{name: "too short", names: []string{"Mod"}, wantErr: true},
		{name: "unknown DO", names: []string{"Nope", "stVal"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			do, da, err := c.Classify("MMXU_T", tt.names)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Classify error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if do.String() != tt.wantDO {
				t.Errorf("DO = %q, want %q", do.String(), tt.wantDO)
			}
			if da.String() != tt.wantDA {
				t.Errorf("DA = %q, want %q", da.String(), tt.wantDA)
			}
		})
	}
}

func TestClassifyDoesNotAliasInput(t *testing.T) {
	c := NewCatalog(testTemplates())
	names := []string{"A", "phsA", "cVal", "mag", "f"}
	do, da, err := c.Classify("MMXU_T", names)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	names[1] = "changed"
	names[3] = "changed"
	if do.String() != "A.phsA" || da.String() != "cVal.mag.f" {
		t.Errorf("result aliased input: %s / %s", do, da)
	}
}
