// Package inspect provides document inspection utilities for interactive
// tools.
//
// The inspect package offers:
//   - Parsing logical node paths (e.g., "IED1/LD1/Op:PTOC.1")
//   - Resolving paths to adapters
//   - Reading and writing data attribute values
//   - Formatting output for display
package inspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sclkit/sclkit-go/pkg/adapter"
	"github.com/sclkit/sclkit-go/pkg/scl"
)

// Path errors.
var (
	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidPath = errors.New("invalid path format")
)

// Path represents a parsed inspection path.
// Format: IED[/LDinst[/[prefix:]Class[.inst]]]
type Path struct {
	// IED is the device name.
	IED string

	// LDevice is the logical device instance (empty for device paths).
	LDevice string

	// LN identifies the logical node (zero for partial paths).
	LN adapter.LNDescriptor

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "IED1" - device
//   - "IED1/LD1" - logical device
//   - "IED1/LD1/LLN0" - LN0
//   - "IED1/LD1/MMXU.1" - logical node
//   - "IED1/LD1/Op:PTOC.1" - logical node with prefix
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}
	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, input)
	}

	parts := strings.Split(input, "/")
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w: too many segments in %s", ErrInvalidPath, input)
	}

	p := &Path{Raw: input, IED: parts[0]}
	if len(parts) > 1 {
		p.LDevice = parts[1]
	}
	if len(parts) > 2 {
		ln, err := ParseLN(parts[2])
		if err != nil {
			return nil, err
		}
		p.LN = ln
	}
	return p, nil
}

// ParseLN parses a logical node segment "[prefix:]Class[.inst]".
func ParseLN(s string) (adapter.LNDescriptor, error) {
	var d adapter.LNDescriptor
	if prefix, rest, ok := strings.Cut(s, ":"); ok {
		if prefix == "" {
			return d, fmt.Errorf("%w: empty prefix in %s", ErrInvalidPath, s)
		}
		d.Prefix = prefix
		s = rest
	}
	class, inst, hasInst := strings.Cut(s, ".")
	if class == "" || (hasInst && inst == "") {
		return d, fmt.Errorf("%w: logical node %s", ErrInvalidPath, s)
	}
	d.Class = class
	d.Inst = inst
	if class == scl.LLN0Class && (d.Inst != "" || d.Prefix != "") {
		return d, fmt.Errorf("%w: %s takes no prefix or instance", ErrInvalidPath, scl.LLN0Class)
	}
	return d, nil
}

// IsPartial reports whether the path stops above a logical node.
func (p *Path) IsPartial() bool {
	return p.LN.Class == ""
}

// String returns the path in canonical form.
func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteString(p.IED)
	if p.LDevice == "" {
		return sb.String()
	}
	sb.WriteString("/")
	sb.WriteString(p.LDevice)
	if p.IsPartial() {
		return sb.String()
	}
	sb.WriteString("/")
	sb.WriteString(FormatLN(p.LN))
	return sb.String()
}

// FormatLN renders a logical node segment as ParseLN accepts it.
func FormatLN(d adapter.LNDescriptor) string {
	s := d.Class
	if d.Prefix != "" {
		s = d.Prefix + ":" + s
	}
	if d.Inst != "" {
		s += "." + d.Inst
	}
	return s
}

// PathOf returns the path of ln.
func PathOf(ln *adapter.LN) *Path {
	ld := ln.LDevice()
	p := &Path{IED: ld.IED().Name(), LDevice: ld.Inst(), LN: ln.Descriptor()}
	p.Raw = p.String()
	return p
}
