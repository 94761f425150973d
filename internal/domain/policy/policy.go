// Package policy exposes the business rules and HR wiki shown to agents
// alongside the tool catalogs.
package policy

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var defaultDocument []byte

var ErrInvalidPolicy = errors.New("invalid policy document")

// Section is one named group of rule statements.
type Section struct {
	Name       string   `yaml:"section" json:"section"`
	Statements []string `yaml:"statements" json:"statements"`
}

// Policy is the parsed document. Section order follows the file.
type Policy struct {
	rules []Section
	wiki  string
}

type document struct {
	Rules []Section `yaml:"rules"`
	Wiki  string    `yaml:"wiki"`
}

// Load parses the embedded policy document.
func Load() (*Policy, error) {
	return Parse(defaultDocument)
}

// Parse reads a policy document. Section names must be unique and every
// section needs at least one statement.
func Parse(data []byte) (*Policy, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	seen := make(map[string]struct{}, len(doc.Rules))
	for _, s := range doc.Rules {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: section without a name", ErrInvalidPolicy)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate section %q", ErrInvalidPolicy, name)
		}
		seen[name] = struct{}{}
		if len(s.Statements) == 0 {
			return nil, fmt.Errorf("%w: section %q has no statements", ErrInvalidPolicy, name)
		}
	}

	return &Policy{rules: doc.Rules, wiki: strings.TrimRight(doc.Wiki, "\n")}, nil
}

// Rules returns the rule sections in document order.
func (p *Policy) Rules() []Section {
	out := make([]Section, len(p.rules))
	for i, s := range p.rules {
		out[i] = Section{Name: s.Name, Statements: append([]string(nil), s.Statements...)}
	}
	return out
}

// Section looks up one rule section by name.
func (p *Policy) Section(name string) (Section, bool) {
	for _, s := range p.rules {
		if s.Name == name {
			return Section{Name: s.Name, Statements: append([]string(nil), s.Statements...)}, true
		}
	}
	return Section{}, false
}

// Wiki returns the HR policy text.
func (p *Policy) Wiki() string { return p.wiki }
