package report

import (
	"io"

	"goresid/domain/diagnostics"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// WriteHTML renders the Markdown report as a complete HTML page.
func WriteHTML(w io.Writer, r *diagnostics.Report) error {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(Markdown(r))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Residual diagnostics: " + r.ModelID,
	})
	_, err := w.Write(markdown.Render(doc, renderer))
	return err
}
