package grammar

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// Def is the declarative YAML form of a grammar, the table consumed from
// schema producers:
//
//	elements:
//	  - tag: ul,ol
//	    children: { li: "+" }
//	  - tag: li
//	    parents: ul,ol
//	groups:
//	  - name: inline
//	    tags: span,a,em
//	    children: { inline: "*" }
type Def struct {
	Elements []ElementDef `yaml:"elements"`
	Groups   []GroupDef   `yaml:"groups"`
}

// ElementDef declares one element rule.
type ElementDef struct {
	Tag      string            `yaml:"tag"`
	Children map[string]string `yaml:"children"`
	Parents  string            `yaml:"parents"`
}

// GroupDef declares a named tag set, with an optional shared rule.
type GroupDef struct {
	Name     string            `yaml:"name"`
	Tags     string            `yaml:"tags"`
	Children map[string]string `yaml:"children"`
	Parents  string            `yaml:"parents"`
}

// LoadDef reads a YAML grammar definition.
func LoadDef(r io.Reader) (*Def, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	def := &Def{}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("grammar def: %w", err)
	}
	return def, nil
}

// Build turns a definition into a Grammar. Groups are registered first so
// that element rules may reference them by name.
func (def *Def) Build() (*Grammar, error) {
	g := New()
	for _, gd := range def.Groups {
		opts := ruleOpts(gd.Children, gd.Parents)
		if err := g.Group(gd.Name, gd.Tags, opts...); err != nil {
			return nil, err
		}
	}
	for _, ed := range def.Elements {
		opts := ruleOpts(ed.Children, ed.Parents)
		if err := g.Element(ed.Tag, opts...); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Load reads a YAML grammar definition and builds the Grammar.
func Load(r io.Reader) (*Grammar, error) {
	def, err := LoadDef(r)
	if err != nil {
		return nil, err
	}
	return def.Build()
}

func ruleOpts(children map[string]string, parents string) []RuleOption {
	var opts []RuleOption
	if len(children) > 0 {
		opts = append(opts, Children(children))
	}
	if parents != "" {
		opts = append(opts, Parents(parents))
	}
	return opts
}
