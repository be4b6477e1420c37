// Package render turns content strings into the HTML the templates embed.
package render

import (
	"bytes"
	"html/template"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// Markdown converts GFM source to HTML, highlighting fenced code blocks with
// inline styles. Raw HTML in the source is dropped by goldmark's default
// (safe) renderer. On a conversion error the text is returned escaped.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// known skill category labels where splitting the key would read badly
var categoryLabels = map[string]string{
	"languagesFrameworks":   "Languages & Frameworks",
	"databasesTechnologies": "Databases & Technologies",
	"microservicesPayments": "Microservices & Payments",
	"devopsCICD":            "DevOps & CI/CD",
	"agileTools":            "Agile & Tools",
}

var titleCaser = cases.Title(language.English)

// CategoryLabel turns a skill category key into a heading. Unknown keys are
// split on case changes, dashes and underscores and title-cased, so
// "cloudPlatforms" becomes "Cloud Platforms".
func CategoryLabel(key string) string {
	if l, ok := categoryLabels[key]; ok {
		return l
	}
	var b strings.Builder
	prev := rune(0)
	for _, r := range key {
		switch {
		case r == '-' || r == '_':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && prev != 0 && unicode.IsLower(prev):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return titleCaser.String(strings.Join(strings.Fields(b.String()), " "))
}

// Initials returns the first letter of each of the first two words of name.
func Initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		out = append(out, unicode.ToUpper([]rune(w)[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// FirstName returns the first word of name.
func FirstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return ""
}
