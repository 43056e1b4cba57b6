package interactive

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sclkit/sclkit-go/pkg/adapter"
	"github.com/sclkit/sclkit-go/pkg/fixture"
	"github.com/sclkit/sclkit-go/pkg/scl"
)

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	doc, err := fixture.Load("testdata/substation.yaml")
	require.NoError(t, err)
	root, err := adapter.NewRoot(doc, adapter.Config{})
	require.NoError(t, err)
	var buf bytes.Buffer
	return NewWithWriter(root, &buf), &buf
}

// run executes line and returns its output.
func run(t *testing.T, s *Shell, buf *bytes.Buffer, line string) string {
	t.Helper()
	buf.Reset()
	assert.False(t, s.Exec(line), "command %q quit the shell", line)
	return buf.String()
}

func TestExecIEDs(t *testing.T) {
	s, buf := newTestShell(t)
	out := run(t, s, buf, "ieds")
	assert.Contains(t, out, "  IED1 AP1(1 LD)\n")
	assert.Contains(t, out, "  IED2 AP1(1 LD)\n")
}

func TestExecInspect(t *testing.T) {
	s, buf := newTestShell(t)

	out := run(t, s, buf, "inspect")
	assert.Contains(t, out, "IED IED1")
	assert.Contains(t, out, "IED IED2")

	out = run(t, s, buf, "i IED2/LD1/Op:PTOC.1")
	assert.Contains(t, out, "Op:PTOC.1 [PTOC_T]")
	assert.NotContains(t, out, "LLN0")

	out = run(t, s, buf, "inspect IED9")
	assert.Contains(t, out, "Error: unknown IED name (IED9)")
}

func TestExecDAI(t *testing.T) {
	s, buf := newTestShell(t)

	out := run(t, s, buf, "dai IED1/LD1/MMXU.1")
	assert.Contains(t, out, "IED1/LD1/MMXU.1 [MMXU_T]\n")
	assert.Contains(t, out, "A.phsA.cVal.mag.f = \"1.5\"")
	assert.Contains(t, out, "Mod.ctlModel = 1:\"status-only\" 2:\"direct-with-normal-security\"")

	out = run(t, s, buf, "dai IED1/LD1/MMXU.1 Mod")
	assert.NotContains(t, out, "cVal")

	assert.Contains(t, run(t, s, buf, "dai"), "Usage: dai")
	assert.Contains(t, run(t, s, buf, "dai IED1/LD1"), "Error:")
}

func TestExecSet(t *testing.T) {
	s, buf := newTestShell(t)

	out := run(t, s, buf, "set IED1/LD1/MMXU.1 Mod ctlModel sbo-with-enhanced-security 2")
	assert.Contains(t, out, "OK:")

	out = run(t, s, buf, "dai IED1/LD1/MMXU.1 Mod ctlModel")
	assert.Contains(t, out, `1:"status-only" 2:"sbo-with-enhanced-security"`)

	out = run(t, s, buf, "set IED1/LD1/MMXU.1 A.phsA cVal.mag.f 2.0")
	assert.Contains(t, out, "Error: attribute not updatable")

	out = run(t, s, buf, "set IED1/LD1/MMXU.1 Mod ctlModel x nope")
	assert.Contains(t, out, `invalid setting group "nope"`)

	assert.Contains(t, run(t, s, buf, "set IED1/LD1/MMXU.1 Mod"), "Usage: set")
}

func TestExecBindFlow(t *testing.T) {
	s, buf := newTestShell(t)

	out := run(t, s, buf, "extrefs IED2/LD1/LLN0")
	assert.Contains(t, out, "[0] in1 <- MMXU A.phsA.cVal.mag.f (GOOSE) unbound")

	out = run(t, s, buf, "binders A.phsA cVal.mag.f MMXU")
	assert.Equal(t, "  IED1/LD1/MMXU.1 A.phsA.cVal.mag.f [MX] MMXU_T\n", out)

	out = run(t, s, buf, "binders Mod - LLN0")
	assert.Contains(t, out, "IED1/LD1/LLN0 Mod")
	assert.Contains(t, out, "IED2/LD1/LLN0 Mod")

	out = run(t, s, buf, "bind IED2/LD1/LLN0 0 IED1/LD1/MMXU.1")
	assert.Contains(t, out, "OK: IED2/LD1/LLN0 [0] bound to IED1/LD1/MMXU.1")

	out = run(t, s, buf, "extrefs IED2/LD1/LLN0")
	assert.Contains(t, out, "bound to IED1/LD1/MMXU.1")

	assert.Contains(t, run(t, s, buf, "bind IED2/LD1/LLN0 x IED1/LD1/MMXU.1"), `invalid index "x"`)
	assert.Contains(t, run(t, s, buf, "bind IED2/LD1/LLN0 0 IED1/LD1/LLN0"), "Error: not found")
}

func TestExecSave(t *testing.T) {
	s, buf := newTestShell(t)
	run(t, s, buf, "set IED1/LD1/LLN0 Mod stVal off")

	path := filepath.Join(t.TempDir(), "out.yaml")
	out := run(t, s, buf, "save "+path)
	assert.Contains(t, out, "Saved to "+path)

	doc, err := fixture.Load(path)
	require.NoError(t, err)
	ied, ok := doc.IED("IED1")
	require.True(t, ok)
	stVal := ied.AccessPoints[0].Server.LDevices[0].LN0.DOIs[0].DAIs[0]
	assert.Equal(t, []scl.Value{{Text: "off"}}, stVal.Values)
}

func TestExecMisc(t *testing.T) {
	s, buf := newTestShell(t)

	assert.Contains(t, run(t, s, buf, "help"), "SCL Shell Commands:")
	assert.Empty(t, run(t, s, buf, "   "))
	assert.Contains(t, run(t, s, buf, "frobnicate"), "Unknown command: frobnicate")

	buf.Reset()
	assert.True(t, s.Exec("quit"))
	assert.True(t, strings.HasPrefix(buf.String(), "Exiting"))
}
