package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/geolens"
)

var _ geolens.Converter = (*Converter)(nil)

// Converter flattens HTML into Markdown using the html-to-markdown library.
type Converter struct {
	conv *converter.Converter
}

// NewConverter builds a Converter with CommonMark and table support enabled.
// Tables survive the conversion as pipe tables rather than collapsing into
// run-on text.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert renders html as Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", geolens.Errorf(geolens.EINVALID, "no HTML to convert")
	}
	return c.conv.ConvertString(html)
}
