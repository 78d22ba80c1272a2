package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var viewsFS embed.FS

var indexTmpl *template.Template

// loadTemplatesFromFS loads the index template from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	indexTmpl, err = template.ParseFS(sub, "*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads the embedded templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// Route is one entry of the route directory shown on the index page.
type Route struct {
	Path        string
	Description string
}

type IndexData struct {
	Title  string
	Routes []Route
}

func RenderIndex(w io.Writer, data *IndexData) error {
	if indexTmpl == nil {
		return errors.New("index template not loaded: call views.LoadTemplates during startup")
	}
	return indexTmpl.ExecuteTemplate(w, "index.html", data)
}
