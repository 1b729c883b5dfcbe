// Package rules provides field-removal rule sets for bibliography
// cleanup.
//
// A rule set names the fields stripped from every entry plus extra
// fields stripped only for specific entry types. The stock rules ship
// embedded in the binary; a custom YAML file can replace them.
package rules

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joaochenriques/BIBparsley/bib"
)

//go:embed profiles/*.yaml
var profilesFS embed.FS

// RuleSet defines which fields are removed during cleanup.
type RuleSet struct {
	// Name identifies this rule set
	Name string `yaml:"name"`

	// Description documents what these rules are for
	Description string `yaml:"description,omitempty"`

	// Strip lists fields removed from every entry
	Strip []string `yaml:"strip"`

	// Types maps an entry type to rules applied only to that type
	Types map[string]TypeRules `yaml:"types,omitempty"`
}

// TypeRules holds per-entry-type removals.
type TypeRules struct {
	// Strip lists fields removed from entries of this type
	Strip []string `yaml:"strip"`
}

// Apply removes the configured fields from an entry: the generic strip
// list unconditionally, then the per-type strip list when the entry
// type matches.
func (r *RuleSet) Apply(entry *bib.Entry) {
	for _, name := range r.Strip {
		entry.Delete(name)
	}
	if tr, ok := r.Types[entry.Type]; ok {
		for _, name := range tr.Strip {
			entry.Delete(name)
		}
	}
}

// Default returns the embedded stock rule set.
func Default() (*RuleSet, error) {
	return Get("default")
}

// Get returns an embedded rule set by name.
func Get(name string) (*RuleSet, error) {
	data, err := profilesFS.ReadFile("profiles/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown rule set: %s", name)
	}
	return parse(data)
}

// List returns every embedded rule set, sorted by name.
func List() ([]*RuleSet, error) {
	entries, err := profilesFS.ReadDir("profiles")
	if err != nil {
		return nil, fmt.Errorf("reading embedded rule sets: %w", err)
	}

	sets := make([]*RuleSet, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		rs, err := Get(name)
		if err != nil {
			return nil, err
		}
		sets = append(sets, rs)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Name < sets[j].Name })
	return sets, nil
}

// Load reads a rule set from a YAML file.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing rules YAML: %w", err)
	}
	return &rs, nil
}

// Marshal renders the rule set back to YAML, e.g. for inspection from
// the CLI.
func (r *RuleSet) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
