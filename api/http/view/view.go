package view

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// RoleOption is one radio button of the expert selector.
type RoleOption struct {
	Label   string
	Checked bool
}

// Result is the block shown under the form after a submit.
type Result struct {
	Text    string
	IsError bool
}

// Page is everything the form template renders.
type Page struct {
	Title   string
	Roles   []RoleOption
	Text    string
	Warning string
	Result  *Result
}

// RoleOptions marks selected as checked, or the first label when selected
// is not among labels.
func RoleOptions(labels []string, selected string) []RoleOption {
	opts := make([]RoleOption, len(labels))
	found := false
	for i, l := range labels {
		opts[i] = RoleOption{Label: l, Checked: l == selected}
		found = found || opts[i].Checked
	}
	if !found && len(opts) > 0 {
		opts[0].Checked = true
	}
	return opts
}

func Render(w io.Writer, p Page) error {
	return pageTmpl.ExecuteTemplate(w, "page", p)
}
