package scl

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	doNamePattern = regexp.MustCompile(`^[A-Z][0-9A-Za-z]{0,11}(\.[a-z][0-9A-Za-z]*(\([0-9]+\))?)?$`)
	daNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*(\([0-9]+\))?(\.[a-zA-Z][a-zA-Z0-9]*(\([0-9]+\))?)*$`)
)

// DoTypeName is a dotted data object path: a DO name followed by the names
// of nested sub data objects.
type DoTypeName struct {
	Name        string
	StructNames []string
}

// ParseDoTypeName splits a dotted DO path. An empty string yields the zero value.
func ParseDoTypeName(s string) DoTypeName {
	name, rest := splitDotted(s)
	return DoTypeName{Name: name, StructNames: rest}
}

// String returns the dotted form.
func (n DoTypeName) String() string {
	return joinDotted(n.Name, n.StructNames)
}

// IsDefined reports whether the name is set.
func (n DoTypeName) IsDefined() bool {
	return n.Name != ""
}

// Segments returns the name followed by the struct names.
func (n DoTypeName) Segments() []string {
	return segments(n.Name, n.StructNames)
}

// Validate checks the dotted form against the DO naming rules.
func (n DoTypeName) Validate() error {
	if !doNamePattern.MatchString(n.String()) {
		return fmt.Errorf("%w: malformed DO name %q", ErrInvalid, n.String())
	}
	return nil
}

// DaTypeName is a dotted data attribute path: a DA name followed by the
// names of nested basic data attributes.
type DaTypeName struct {
	Name        string
	StructNames []string
}

// ParseDaTypeName splits a dotted DA path. An empty string yields the zero value.
func ParseDaTypeName(s string) DaTypeName {
	name, rest := splitDotted(s)
	return DaTypeName{Name: name, StructNames: rest}
}

// String returns the dotted form.
func (n DaTypeName) String() string {
	return joinDotted(n.Name, n.StructNames)
}

// IsDefined reports whether the name is set.
func (n DaTypeName) IsDefined() bool {
	return n.Name != ""
}

// Segments returns the name followed by the struct names.
func (n DaTypeName) Segments() []string {
	return segments(n.Name, n.StructNames)
}

// Validate checks the dotted form against the DA naming rules.
func (n DaTypeName) Validate() error {
	if !daNamePattern.MatchString(n.String()) {
		return fmt.Errorf("%w: malformed DA name %q", ErrInvalid, n.String())
	}
	return nil
}

// HasPrefix reports whether the segments of p are a leading run of the
// segments of s.
func HasPrefix(s, p []string) bool {
	if len(p) > len(s) {
		return false
	}
	for i := range p {
		if s[i] != p[i] {
			return false
		}
	}
	return true
}

func splitDotted(s string) (string, []string) {
	if s == "" {
		return "", nil
	}
	parts := strings.Split(s, ".")
	if len(parts) == 1 {
		return parts[0], nil
	}
	return parts[0], parts[1:]
}

func joinDotted(name string, rest []string) string {
	if len(rest) == 0 {
		return name
	}
	return name + "." + strings.Join(rest, ".")
}

func segments(name string, rest []string) []string {
	if name == "" {
		return nil
	}
	out := make([]string, 0, 1+len(rest))
	out = append(out, name)
	return append(out, rest...)
}
