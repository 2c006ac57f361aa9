// Package web holds the embedded HTML templates and static assets.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates
var templates embed.FS

//go:embed static
var static embed.FS

var printer = message.NewPrinter(language.English)

// NewEngine returns the template engine over the embedded templates.
// Views are addressed by path without extension, e.g. "pages/index".
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("peso", Peso)
	engine.AddFunc("number", Number)
	return engine
}

// Static returns the embedded static file tree rooted at static/.
func Static() http.FileSystem {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Peso formats n as a whole peso amount: 750000 -> "₱750,000".
func Peso(n int64) string {
	return "₱" + printer.Sprintf("%d", n)
}

func Number(n any) string {
	switch v := n.(type) {
	case float64:
		if v == float64(int64(v)) {
			return printer.Sprintf("%d", int64(v))
		}
		return printer.Sprintf("%.1f", v)
	case int, int64:
		return printer.Sprintf("%d", v)
	default:
		return fmt.Sprint(v)
	}
}
