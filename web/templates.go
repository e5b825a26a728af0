package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"seq": func(n int) []int {
		return make([]int, max(n, 0))
	},
}

type renderer struct {
	pages    map[string]*template.Template
	fragment *template.Template
}

func newRenderer() (*renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/cards.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &renderer{pages: make(map[string]*template.Template), fragment: base}
	for _, name := range []string{"gallery", "detail", "about", "notfound"} {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		page, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

func (r *renderer) page(name string, data any) ([]byte, error) {
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *renderer) render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.fragment.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
