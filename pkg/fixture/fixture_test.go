package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sclkit/sclkit-go/pkg/scl"
)

func TestLoadSubstation(t *testing.T) {
	doc, err := Load("testdata/substation.yaml")
	require.NoError(t, err)

	assert.Equal(t, scl.Version, doc.Version)
	assert.Equal(t, scl.Revision, doc.Revision)
	assert.Equal(t, scl.Release, doc.Release)

	require.NotNil(t, doc.Header)
	assert.Equal(t, "doc-1", doc.Header.ID)
	require.Len(t, doc.Header.History, 1)
	assert.Equal(t, "engineer", doc.Header.History[0].Who)

	require.NotNil(t, doc.Communication)
	require.Len(t, doc.Communication.SubNetworks, 1)
	assert.Equal(t, "8-MMS", doc.Communication.SubNetworks[0].Type)

	require.Len(t, doc.IEDs, 2)
	ied1, ok := doc.IED("IED1")
	require.True(t, ok)
	ld := ied1.AccessPoints[0].Server.LDevices[0]
	assert.Equal(t, scl.LLN0Class, ld.LN0.Class, "ln0 class defaults")
	assert.Equal(t, "LD1", ld.Inst)

	mmxu := ld.LNs[0]
	assert.Equal(t, "MMXU", mmxu.Class)
	doi, ok := mmxu.DOI("Mod")
	require.True(t, ok)
	dai := doi.DAIs[0]
	require.NotNil(t, dai.ValImport)
	assert.True(t, *dai.ValImport)
	assert.Equal(t, []scl.Value{
		{SGroup: 1, Text: "status-only"},
		{SGroup: 2, Text: "direct-with-normal-security"},
	}, dai.Values)

	stVal := ld.LN0.DOIs[0].DAIs[0]
	assert.Equal(t, []scl.Value{{Text: "on"}}, stVal.Values, "value shorthand")

	ied2, ok := doc.IED("IED2")
	require.True(t, ok)
	ers := ied2.AccessPoints[0].Server.LDevices[0].LN0.ExtRefs
	require.Len(t, ers, 1)
	assert.Equal(t, scl.ServiceGOOSE, ers[0].PServT)
	assert.Equal(t, "cVal.mag.f", ers[0].PDA)

	tpl := doc.DataTypeTemplates
	require.NotNil(t, tpl)
	assert.Len(t, tpl.LNodeTypes, 3)
	assert.Len(t, tpl.DOTypes, 4)
	assert.Len(t, tpl.DATypes, 2)
	assert.Len(t, tpl.EnumTypes, 2)
	assert.Equal(t, scl.FCCF, tpl.DOTypes[2].DAs[1].FC)
	assert.Equal(t, []scl.Value{{Text: "status-only"}}, tpl.DOTypes[2].DAs[1].Values)
}

func TestLoadRegistersNodes(t *testing.T) {
	doc, err := Load("testdata/substation.yaml")
	require.NoError(t, err)

	ied, _ := doc.IED("IED2")
	assert.NotZero(t, ied.NodeID())
	er := ied.AccessPoints[0].Server.LDevices[0].LN0.ExtRefs[0]
	n, ok := doc.Node(er.NodeID())
	require.True(t, ok)
	assert.Same(t, er, n)
}

func TestRoundTrip(t *testing.T) {
	doc, err := Load("testdata/substation.yaml")
	require.NoError(t, err)

	data, err := Marshal(doc)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, scl.SameContent(doc, again))
}

func TestSave(t *testing.T) {
	doc := scl.NewDocument("saved", "1", "A")
	doc.IEDs = append(doc.IEDs, &scl.IED{Name: "IED9", AccessPoints: []*scl.AccessPoint{{
		Name: "AP1",
		Server: &scl.Server{LDevices: []*scl.LDevice{{
			Inst: "LD1",
			LN0:  &scl.LN{Class: scl.LLN0Class, Type: "LLN0_T"},
			LNs:  []*scl.LN{{Class: "GGIO", Inst: "1", Type: "GGIO_T"}},
		}}},
	}}})
	doc.Reindex()

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, Save(path, doc))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, scl.SameContent(doc, loaded))
}

func TestEmptyValueKeepsList(t *testing.T) {
	doc, err := Parse([]byte(`
ieds:
  - name: IED1
    accessPoints:
      - name: AP1
        ldevices:
          - inst: LD1
            ln0:
              lnType: LLN0_T
              dois:
                - name: NamPlt
                  dais:
                    - name: vendor
                      values: [{text: ""}]
`))
	require.NoError(t, err)

	data, err := Marshal(doc)
	require.NoError(t, err)
	again, err := Parse(data)
	require.NoError(t, err)

	dai := again.IEDs[0].AccessPoints[0].Server.LDevices[0].LN0.DOIs[0].DAIs[0]
	assert.Equal(t, []scl.Value{{Text: ""}}, dai.Values)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "header without id", data: "header: {version: \"1\"}\n", wantErr: scl.ErrInvalid},
		{name: "subnetwork without name", data: "communication:\n  - {type: 8-MMS}\n", wantErr: scl.ErrInvalid},
		{name: "ied without name", data: "ieds:\n  - {manufacturer: X}\n", wantErr: scl.ErrInvalid},
		{name: "duplicate ied", data: "ieds:\n  - {name: A}\n  - {name: A}\n", wantErr: scl.ErrInvalid},
		{
			name:    "ln0 with other class",
			data:    "ieds:\n  - name: A\n    accessPoints:\n      - name: AP1\n        ldevices:\n          - inst: LD1\n            ln0: {lnClass: GGIO, lnType: T}\n",
			wantErr: scl.ErrInvalid,
		},
		{
			name:    "ln without class",
			data:    "ieds:\n  - name: A\n    accessPoints:\n      - name: AP1\n        ldevices:\n          - inst: LD1\n            lns:\n              - {inst: \"1\", lnType: T}\n",
			wantErr: scl.ErrInvalid,
		},
		{
			name:    "value and values",
			data:    "ieds:\n  - name: A\n    accessPoints:\n      - name: AP1\n        ldevices:\n          - inst: LD1\n            ln0:\n              lnType: T\n              dois:\n                - name: Mod\n                  dais:\n                    - {name: stVal, value: \"on\", values: [{text: \"off\"}]}\n",
			wantErr: scl.ErrInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("ieds: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing fixture")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalNil(t *testing.T) {
	_, err := Marshal(nil)
	assert.ErrorIs(t, err, scl.ErrInvalid)
}
