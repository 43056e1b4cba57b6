package inspect

import (
	"errors"
	"testing"

	"github.com/sclkit/sclkit-go/pkg/adapter"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Path
		partial bool
	}{
		{
			name:    "device",
			input:   "IED1",
			want:    Path{IED: "IED1"},
			partial: true,
		},
		{
			name:    "logical device",
			input:   "IED1/LD1",
			want:    Path{IED: "IED1", LDevice: "LD1"},
			partial: true,
		},
		{
			name:  "LN0",
			input: "IED1/LD1/LLN0",
			want:  Path{IED: "IED1", LDevice: "LD1", LN: adapter.LNDescriptor{Class: "LLN0"}},
		},
		{
			name:  "logical node",
			input: "IED1/LD1/MMXU.1",
			want:  Path{IED: "IED1", LDevice: "LD1", LN: adapter.LNDescriptor{Class: "MMXU", Inst: "1"}},
		},
		{
			name:  "with prefix",
			input: " IED2/LD1/Op:PTOC.1 ",
			want:  Path{IED: "IED2", LDevice: "LD1", LN: adapter.LNDescriptor{Class: "PTOC", Inst: "1", Prefix: "Op"}},
		},
		{
			name:  "no instance",
			input: "IED1/LD1/GGIO",
			want:  Path{IED: "IED1", LDevice: "LD1", LN: adapter.LNDescriptor{Class: "GGIO"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if err != nil {
				t.Fatalf("ParsePath() error = %v", err)
			}
			if got.IED != tt.want.IED || got.LDevice != tt.want.LDevice || got.LN != tt.want.LN {
				t.Errorf("ParsePath() = %+v, want %+v", got, tt.want)
			}
			if got.IsPartial() != tt.partial {
				t.Errorf("IsPartial() = %v, want %v", got.IsPartial(), tt.partial)
			}
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: "  ", wantErr: ErrEmptyPath},
		{name: "leading slash", input: "/IED1", wantErr: ErrInvalidPath},
		{name: "trailing slash", input: "IED1/", wantErr: ErrInvalidPath},
		{name: "double slash", input: "IED1//LLN0", wantErr: ErrInvalidPath},
		{name: "too deep", input: "IED1/LD1/MMXU.1/A", wantErr: ErrInvalidPath},
		{name: "empty prefix", input: "IED1/LD1/:PTOC.1", wantErr: ErrInvalidPath},
		{name: "empty class", input: "IED1/LD1/.1", wantErr: ErrInvalidPath},
		{name: "empty instance", input: "IED1/LD1/MMXU.", wantErr: ErrInvalidPath},
		{name: "LLN0 with instance", input: "IED1/LD1/LLN0.1", wantErr: ErrInvalidPath},
		{name: "LLN0 with prefix", input: "IED1/LD1/X:LLN0", wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePath(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParsePath(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestPathString(t *testing.T) {
	for _, in := range []string{"IED1", "IED1/LD1", "IED1/LD1/LLN0", "IED1/LD1/MMXU.1", "IED2/LD1/Op:PTOC.1"} {
		p, err := ParsePath(in)
		if err != nil {
			t.Fatalf("ParsePath(%q) error = %v", in, err)
		}
		if got := p.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
}
