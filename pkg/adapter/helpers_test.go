package adapter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sclkit/sclkit-go/pkg/journal"
	"github.com/sclkit/sclkit-go/pkg/scl"
)

// testTemplates declares the types used by testDocument.
func testTemplates() *scl.DataTypeTemplates {
	return &scl.DataTypeTemplates{
		LNodeTypes: []*scl.LNodeType{
			{ID: "LLN0_T", LNClass: "LLN0", DOs: []scl.DO{{Name: "Mod", Type: "ENC_T"}}},
			{ID: "MMXU_T", LNClass: "MMXU", DOs: []scl.DO{
				{Name: "A", Type: "WYE_T"},
				{Name: "Mod", Type: "ENC_T"},
			}},
			{ID: "PTOC_T", LNClass: "PTOC", DOs: []scl.DO{
				{Name: "StrVal", Type: "ASG_T"},
			}},
		},
		DOTypes: []*scl.DOType{
			{ID: "WYE_T", CDC: "WYE", SDOs: []scl.SDO{{Name: "phsA", Type: "CMV_T"}}},
			{ID: "CMV_T", CDC: "CMV", DAs: []scl.DA{
				{Name: "cVal", FC: scl.FCMX, BType: scl.BTypeStruct, Type: "Vector_T"},
				{Name: "q", FC: scl.FCMX, BType: "Quality"},
				{Name: "units", FC: scl.FCCF, BType: scl.BTypeStruct, Type: "Unit_T"},
			}},
			{ID: "ENC_T", CDC: "ENC", DAs: []scl.DA{
				{Name: "stVal", FC: scl.FCST, BType: scl.BTypeEnum, Type: "Beh_E"},
				{Name: "ctlModel", FC: scl.FCCF, BType: scl.BTypeEnum, Type: "CtlModel_E", ValImport: true},
			}},
			{ID: "ASG_T", CDC: "ASG", DAs: []scl.DA{
				{Name: "setMag", FC: scl.FCSE, BType: scl.BTypeStruct, Type: "AV_T"},
			}},
		},
		DATypes: []*scl.DAType{
			{ID: "Vector_T", BDAs: []scl.BDA{
				{Name: "mag", BType: scl.BTypeStruct, Type: "AV_T"},
				{Name: "ang", BType: scl.BTypeStruct, Type: "AV_T"},
			}},
			{ID: "AV_T", BDAs: []scl.BDA{{Name: "f", BType: "FLOAT32", ValImport: true}}},
			{ID: "Unit_T", BDAs: []scl.BDA{{Name: "SIUnit", BType: scl.BTypeEnum, Type: "SIUnit_E", ValImport: true}}},
		},
		EnumTypes: []*scl.EnumType{
			{ID: "Beh_E", Values: []scl.EnumVal{{Ord: 1, Text: "on"}, {Ord: 5, Text: "off"}}},
			{ID: "CtlModel_E", Values: []scl.EnumVal{{Ord: 0, Text: "status-only"}}},
			{ID: "SIUnit_E", Values: []scl.EnumVal{{Ord: 5, Text: "A"}}},
		},
	}
}

// testDocument builds a producer IED1 with an MMXU and a consumer IED2
// whose LLN0 declares one external reference.
//
//	IED1/AP1/LD1: LLN0 (Mod.stVal), MMXU1 (A.phsA.cVal.mag.f, A.phsA.units.SIUnit, Mod.ctlModel)
//	IED2/AP1/LD1: LLN0 (ExtRef in1 -> MMXU A.phsA cVal.mag.f), PTOC1
func testDocument() *scl.Document {
	doc := &scl.Document{
		Version:  scl.Version,
		Revision: scl.Revision,
		Release:  scl.Release,
		Header:   &scl.Header{ID: "doc-1", Version: "1", Revision: "A", ToolID: scl.DefaultToolID},
		IEDs: []*scl.IED{
			{
				Name: "IED1",
				AccessPoints: []*scl.AccessPoint{{
					Name: "AP1",
					Server: &scl.Server{LDevices: []*scl.LDevice{{
						Inst: "LD1",
						LN0: &scl.LN{Class: scl.LLN0Class, Type: "LLN0_T", DOIs: []*scl.DOI{{
							Name: "Mod",
							DAIs: []*scl.DAI{{Name: "stVal", Values: []scl.Value{{Text: "on"}}}},
						}}},
						LNs: []*scl.LN{{
							Class: "MMXU", Inst: "1", Type: "MMXU_T",
							DOIs: []*scl.DOI{
								{Name: "A", SDIs: []*scl.SDI{{
									Name: "phsA",
									SDIs: []*scl.SDI{
										{Name: "cVal", SDIs: []*scl.SDI{{
											Name: "mag",
											DAIs: []*scl.DAI{{Name: "f", Values: []scl.Value{{Text: "1.5"}}}},
										}}},
										{Name: "units", DAIs: []*scl.DAI{{Name: "SIUnit", Values: []scl.Value{{Text: "A"}}}}},
									},
								}}},
								{Name: "Mod", DAIs: []*scl.DAI{{Name: "ctlModel", Values: []scl.Value{{Text: "status-only"}}}}},
							},
						}},
					}}},
				}},
			},
			{
				Name: "IED2",
				AccessPoints: []*scl.AccessPoint{{
					Name: "AP1",
					Server: &scl.Server{LDevices: []*scl.LDevice{{
						Inst: "LD1",
						LN0: &scl.LN{Class: scl.LLN0Class, Type: "LLN0_T", ExtRefs: []*scl.ExtRef{{
							Desc: "current", PLN: "MMXU", PDO: "A.phsA", PDA: "cVal.mag.f", IntAddr: "in1",
						}}},
						LNs: []*scl.LN{{Class: "PTOC", Inst: "1", Type: "PTOC_T"}},
					}}},
				}},
			},
		},
		DataTypeTemplates: testTemplates(),
	}
	doc.Reindex()
	return doc
}

// recordingJournal collects journal events.
type recordingJournal struct {
	mu     sync.Mutex
	events []journal.Event
}

func (j *recordingJournal) Log(e journal.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
}

func (j *recordingJournal) last(t *testing.T) journal.Event {
	t.Helper()
	j.mu.Lock()
	defer j.mu.Unlock()
	require.NotEmpty(t, j.events, "no journal events")
	return j.events[len(j.events)-1]
}

func newTestRoot(t *testing.T, doc *scl.Document) (*Root, *recordingJournal) {
	t.Helper()
	j := &recordingJournal{}
	root, err := NewRoot(doc, Config{Journal: j, SessionID: "test-session"})
	require.NoError(t, err)
	return root, j
}

// lnOf resolves IED/LD/class/inst in root.
func lnOf(t *testing.T, root *Root, ied, ld, class, inst string) *LN {
	t.Helper()
	i, err := root.IED(ied)
	require.NoError(t, err)
	l, err := i.LDevice(ld)
	require.NoError(t, err)
	ln, err := ResolveLN(LNRef{LDevice: l, Class: class, Inst: inst})
	require.NoError(t, err)
	return ln
}

func snapshot(t *testing.T, doc *scl.Document) []byte {
	t.Helper()
	data, err := scl.Snapshot(doc)
	require.NoError(t, err)
	return data
}
