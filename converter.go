package geolens

// Converter turns HTML into Markdown. The simulator converts extracted
// content before summarizing it, mirroring how ingestion pipelines
// flatten pages before feeding them to a model.
type Converter interface {
	Convert(html string) (string, error)
}
