package main

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/softwell/genro-treestore/go-treestore/grammar"
)

var genTmpl = template.Must(template.New("grammar").Parse(`// Code generated by treestore-gen from {{.Source}}; DO NOT EDIT.

package {{.Package}}

import (
	"github.com/softwell/genro-treestore/go-treestore/grammar"
)

// {{.Func}} builds the grammar declared in {{.Source}}.
func {{.Func}}() *grammar.Grammar {
	g := grammar.New()
{{- range .Groups}}
	g.MustGroup({{printf "%q" .Name}}, {{printf "%q" .Tags}}{{template "opts" .}})
{{- end}}
{{- range .Elements}}
	g.MustElement({{printf "%q" .Tag}}{{template "opts" .}})
{{- end}}
	return g
}

{{define "opts"}}{{if .Children}},
		grammar.Children(map[string]string{
{{- range .Children}}
			{{printf "%q" .Name}}: {{printf "%q" .Spec}},
{{- end}}
		}){{end}}{{if .Parents}},
		grammar.Parents({{printf "%q" .Parents}}){{end}}{{end}}
`))

type childSpec struct {
	Name, Spec string
}

type ruleData struct {
	Tag      string
	Name     string
	Tags     string
	Children []childSpec
	Parents  string
}

type genData struct {
	Source   string
	Package  string
	Func     string
	Groups   []ruleData
	Elements []ruleData
}

func generate(pkg, funcName, source string, def *grammar.Def) ([]byte, error) {
	d := &genData{Source: source, Package: pkg, Func: funcName}
	for _, gd := range def.Groups {
		d.Groups = append(d.Groups, ruleData{
			Name:     gd.Name,
			Tags:     gd.Tags,
			Children: sortChildren(gd.Children),
			Parents:  gd.Parents,
		})
	}
	for _, ed := range def.Elements {
		d.Elements = append(d.Elements, ruleData{
			Tag:      ed.Tag,
			Children: sortChildren(ed.Children),
			Parents:  ed.Parents,
		})
	}
	var buf bytes.Buffer
	if err := genTmpl.Execute(&buf, d); err != nil {
		return nil, err
	}
	src, err := imports.Process("", buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("generated source does not compile: %w", err)
	}
	return src, nil
}

func sortChildren(m map[string]string) []childSpec {
	specs := make([]childSpec, 0, len(m))
	for name, spec := range m {
		specs = append(specs, childSpec{Name: name, Spec: spec})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}
