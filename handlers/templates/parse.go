package templates

import (
	"embed"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed *.html
var FS embed.FS

var printer = message.NewPrinter(language.English)

// ParseTemplates parses HTML templates from the embedded filesystem.
// It takes a variadic list of template file paths and returns a parsed template
// or an error if parsing fails.
func ParseTemplates(files ...string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"comma": func(n int64) string {
			return printer.Sprintf("%d", n)
		},
		"percent": func(part, total int64) string {
			if total == 0 {
				return "0%"
			}
			return printer.Sprintf("%.1f%%", float64(part)*100/float64(total))
		},
	}

	return template.New("").Funcs(funcMap).ParseFS(FS, files...)
}
