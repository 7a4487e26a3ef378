// Package scalar serves the Scalar API reference UI backed by the
// generated OpenAPI document.
package scalar

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/majikthise911/aes-note-taking-app/pkg/module"
)

//go:embed index.html
var indexHTML string

// NewModule creates a module that serves the Scalar API reference UI at
// basePath, rendering the spec found at specURL.
func NewModule(basePath, specURL string) *module.Module {
	router := buildRouter(specURL)
	return module.New(basePath, router)
}

func buildRouter(specURL string) http.Handler {
	mux := http.NewServeMux()

	tmpl := template.Must(template.New("index").Parse(indexHTML))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		tmpl.Execute(w, map[string]string{"SpecURL": specURL})
	})

	return mux
}
