package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sclkit/sclkit-go/pkg/scl"
)

func TestDefault(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())

	assert.ElementsMatch(t, []scl.FC{"CF", "DC", "SG", "SP", "ST", "SE"}, p.Update.SettableFC)
	assert.Equal(t, []string{"Mod.stVal"}, p.Update.Exempt)
	assert.Empty(t, p.Binding.Services)
	assert.Equal(t, map[scl.Kind]bool{scl.KindHeader: false}, p.PrivateKinds())
}

func TestDefaultIsFreshCopy(t *testing.T) {
	a := Default()
	a.Update.SettableFC = nil
	b := Default()
	assert.NotEmpty(t, b.Update.SettableFC)
}

func TestUpdateAllows(t *testing.T) {
	u := Default().Update

	tests := []struct {
		name      string
		valImport bool
		fc        scl.FC
		do        string
		da        string
		want      bool
	}{
		{name: "importable setting", valImport: true, fc: scl.FCSE, do: "StrVal", da: "setMag.f", want: true},
		{name: "importable config", valImport: true, fc: scl.FCCF, do: "Mod", da: "ctlModel", want: true},
		{name: "not importable", valImport: false, fc: scl.FCCF, do: "Mod", da: "ctlModel", want: false},
		{name: "measurand", valImport: true, fc: scl.FCMX, do: "A.phsA", da: "cVal.mag.f", want: false},
		{name: "Mod.stVal exempt", valImport: false, fc: scl.FCST, do: "Mod", da: "stVal", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := u.Allows(tt.valImport, tt.fc, scl.ParseDoTypeName(tt.do), scl.ParseDaTypeName(tt.da))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindingCompatible(t *testing.T) {
	b := BindingPolicy{Services: map[scl.ServiceType][]scl.FC{
		scl.ServiceGOOSE: {scl.FCST, scl.FCMX},
		scl.ServiceSMV:   {scl.FCMX},
	}}

	assert.True(t, b.Compatible(scl.ServiceGOOSE, scl.FCST))
	assert.False(t, b.Compatible(scl.ServiceSMV, scl.FCST))
	assert.True(t, b.Compatible(scl.ServiceReport, scl.FCCF), "service without entry accepts everything")
	assert.True(t, b.Compatible("", scl.FCCF), "unset service")
	assert.True(t, b.Compatible(scl.ServiceSMV, ""), "unset fc")

	assert.True(t, Default().Binding.Compatible(scl.ServiceSMV, scl.FCCF), "default is permissive")
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
update:
  settableFC: [CF]
binding:
  services:
    GOOSE: [ST, MX]
privates:
  DAI: false
`)
	p, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []scl.FC{"CF"}, p.Update.SettableFC)
	assert.Equal(t, []string{"Mod.stVal"}, p.Update.Exempt, "unset keys keep defaults")
	assert.Equal(t, []scl.FC{"ST", "MX"}, p.Binding.Services[scl.ServiceGOOSE])
	assert.Equal(t, map[scl.Kind]bool{scl.KindHeader: false, scl.KindDAI: false}, p.PrivateKinds())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown fc", data: "update:\n  settableFC: [XX]\n"},
		{name: "unknown service", data: "binding:\n  services:\n    MMS: [ST]\n"},
		{name: "unknown service fc", data: "binding:\n  services:\n    GOOSE: [ZZ]\n"},
		{name: "unknown element", data: "privates:\n  Gadget: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidPolicy)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("update: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPolicy)
}

func TestLoad(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("binding:\n  services:\n    SMV: [MX]\n"), 0644))

		p, err := Load(path)
		require.NoError(t, err)
		assert.False(t, p.Binding.Compatible(scl.ServiceSMV, scl.FCST))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.yaml")
	})
}
