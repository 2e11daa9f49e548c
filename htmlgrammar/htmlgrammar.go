// Package htmlgrammar declares a grammar for a practical subset of HTML5,
// an example consumer of the grammar package and the default grammar of the
// treestore command.
package htmlgrammar

import "github.com/softwell/genro-treestore/go-treestore/grammar"

// New builds the HTML5 subset grammar. The returned Grammar is read-only;
// share it freely across builders.
func New() *grammar.Grammar {
	g := grammar.New()

	g.MustGroup("phrasing", "span,a,em,strong,b,i,code,img,br")
	g.MustGroup("flow", "div,p,ul,ol,table,section,article,header,footer,h1,h2,h3,blockquote,pre")

	g.MustElement("html", grammar.Children(map[string]string{
		"head": "1",
		"body": "1",
	}))
	g.MustElement("head",
		grammar.Children(map[string]string{
			"title": "1",
			"meta":  "*",
			"link":  "*",
			"style": "*",
		}),
		grammar.Parents("html"))
	g.MustElement("body",
		grammar.Children(map[string]string{"flow": "*"}),
		grammar.Parents("html"))
	g.MustElement("title", grammar.Parents("head"))
	g.MustElement("meta,link,style", grammar.Parents("head"))

	g.MustElement("div,section,article,header,footer,blockquote",
		grammar.Children(map[string]string{"flow": "*", "phrasing": "*"}))
	g.MustElement("p,h1,h2,h3,pre",
		grammar.Children(map[string]string{"phrasing": "*"}))
	g.MustElement("span,em,strong,b,i,code",
		grammar.Children(map[string]string{"phrasing": "*"}))
	g.MustElement("a",
		grammar.Children(map[string]string{"phrasing": "*"}))
	g.MustElement("img,br")

	g.MustElement("ul,ol", grammar.Children(map[string]string{"li": "+"}))
	g.MustElement("li",
		grammar.Children(map[string]string{"flow": "*", "phrasing": "*"}),
		grammar.Parents("ul,ol"))

	g.MustElement("table", grammar.Children(map[string]string{
		"caption": "?",
		"thead":   "?",
		"tbody":   "*",
		"tr":      "*",
		"tfoot":   "?",
	}))
	g.MustElement("caption", grammar.Parents("table"))
	g.MustElement("thead,tbody,tfoot",
		grammar.Children(map[string]string{"tr": "+"}),
		grammar.Parents("table"))
	g.MustElement("tr",
		grammar.Children(map[string]string{"td": "*", "th": "*"}),
		grammar.Parents("table,thead,tbody,tfoot"))
	g.MustElement("td,th",
		grammar.Children(map[string]string{"flow": "*", "phrasing": "*"}),
		grammar.Parents("tr"))

	return g
}
