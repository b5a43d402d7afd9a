// Package views holds the page templates.
package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.gotmpl
var files embed.FS

// Parse returns the page templates, named by file.
func Parse() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.gotmpl")
}
