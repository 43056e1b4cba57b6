// Package policy holds the configurable rules of the engine: which
// attributes may be updated, which functional constraints a signal service
// type may bind to, and which element kinds accept vendor privates.
//
// The built-in defaults are embedded as YAML. Load and Parse apply a YAML
// document on top of them.
package policy

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/sclkit/sclkit-go/pkg/scl"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalidPolicy is returned when a policy document fails validation.
var ErrInvalidPolicy = errors.New("invalid policy")

// Policy is the complete engine policy.
type Policy struct {
	Update   UpdatePolicy    `yaml:"update"`
	Binding  BindingPolicy   `yaml:"binding"`
	Privates map[string]bool `yaml:"privates"`
}

// UpdatePolicy decides whether a data attribute value may be written.
type UpdatePolicy struct {
	// SettableFC lists the functional constraints of writable attributes.
	SettableFC []scl.FC `yaml:"settableFC"`

	// Exempt lists "DO.DA" paths writable regardless of valImport.
	Exempt []string `yaml:"exempt"`
}

// BindingPolicy decides whether a resolved attribute may serve a signal.
type BindingPolicy struct {
	// Services maps a signal service type to its allowed functional
	// constraints. Absent service types accept everything.
	Services map[scl.ServiceType][]scl.FC `yaml:"services"`
}

// Default returns a fresh copy of the built-in policy.
func Default() *Policy {
	var p Policy
	if err := yaml.Unmarshal(defaultYAML, &p); err != nil {
		panic(fmt.Sprintf("embedded default policy: %v", err))
	}
	return &p
}

// Parse applies a YAML policy document on top of the defaults.
func Parse(data []byte) (*Policy, error) {
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads and parses a policy file.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks that every functional constraint and element kind is known.
func (p *Policy) Validate() error {
	for _, fc := range p.Update.SettableFC {
		if !fc.Valid() {
			return fmt.Errorf("%w: unknown functional constraint %q in update.settableFC", ErrInvalidPolicy, fc)
		}
	}
	for svc, fcs := range p.Binding.Services {
		switch svc {
		case scl.ServicePoll, scl.ServiceReport, scl.ServiceGOOSE, scl.ServiceSMV:
		default:
			return fmt.Errorf("%w: unknown service type %q in binding.services", ErrInvalidPolicy, svc)
		}
		for _, fc := range fcs {
			if !fc.Valid() {
				return fmt.Errorf("%w: unknown functional constraint %q for service %s", ErrInvalidPolicy, fc, svc)
			}
		}
	}
	for tag := range p.Privates {
		if _, ok := scl.ParseKind(tag); !ok {
			return fmt.Errorf("%w: unknown element %q in privates", ErrInvalidPolicy, tag)
		}
	}
	return nil
}

// PrivateKinds converts the privates table to a per-kind table suitable
// for scl.Document.PrivatePolicy. Unknown tags are skipped.
func (p *Policy) PrivateKinds() map[scl.Kind]bool {
	out := make(map[scl.Kind]bool, len(p.Privates))
	for tag, allow := range p.Privates {
		if k, ok := scl.ParseKind(tag); ok {
			out[k] = allow
		}
	}
	return out
}

// Allows reports whether an attribute with the given effective valImport
// flag and functional constraint may be written.
func (u UpdatePolicy) Allows(valImport bool, fc scl.FC, do scl.DoTypeName, da scl.DaTypeName) bool {
	if slices.Contains(u.Exempt, do.String()+"."+da.String()) {
		return true
	}
	return valImport && slices.Contains(u.SettableFC, fc)
}

// Compatible reports whether an attribute with functional constraint fc
// may be bound to a signal of service type svc. An unset service type or
// an unset fc is always compatible.
func (b BindingPolicy) Compatible(svc scl.ServiceType, fc scl.FC) bool {
	if svc == "" || fc == "" {
		return true
	}
	allowed, ok := b.Services[svc]
	if !ok {
		return true
	}
	return slices.Contains(allowed, fc)
}
