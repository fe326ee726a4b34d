package report

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("report").Funcs(template.FuncMap{
	"statusClass": StatusClass,
	"statusIcon":  StatusIcon,
	"statusText":  StatusText,
}).ParseFS(templateFS, "templates/*.html"))

// Page is an in-memory Slots sink for the single analyzer page.
// A new page starts with results, error, loading and the invalid marker hidden.
type Page struct {
	// URL is echoed back into the form input
	URL string

	text    map[string]string
	markup  map[string]template.HTML
	visible map[string]bool
}

func NewPage(input string) *Page {
	return &Page{
		URL:     input,
		text:    make(map[string]string),
		markup:  make(map[string]template.HTML),
		visible: make(map[string]bool),
	}
}

func (p *Page) SetText(slot, text string) {
	p.text[slot] = text
}

func (p *Page) SetHTML(slot string, markup template.HTML) {
	p.markup[slot] = markup
}

func (p *Page) Show(slot string) {
	p.visible[slot] = true
}

func (p *Page) Hide(slot string) {
	p.visible[slot] = false
}

func (p *Page) TextOf(slot string) string {
	return p.text[slot]
}

func (p *Page) MarkupOf(slot string) template.HTML {
	return p.markup[slot]
}

func (p *Page) Visible(slot string) bool {
	return p.visible[slot]
}

// Hidden returns the CSS class that hides slot, if it is hidden
func (p *Page) Hidden(slot string) string {
	if p.visible[slot] {
		return ""
	}
	return "d-none"
}

// WriteHTML renders the full page
func (p *Page) WriteHTML(w io.Writer) error {
	return templates.ExecuteTemplate(w, "page", p)
}
