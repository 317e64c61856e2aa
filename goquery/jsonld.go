package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// structuredData collects every JSON-LD block on the page, keyed by
// schema @type. A block can contribute multiple types: arrays of
// objects, @graph containers, and multi-typed nodes all flatten into
// the same map. Malformed blocks are skipped rather than failing the
// parse; a broken script tag is the page's problem, not ours.
func structuredData(doc *goquery.Document) map[string][]map[string]any {
	out := make(map[string][]map[string]any)
	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		var raw any
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return
		}
		collectNodes(raw, out)
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

func collectNodes(raw any, out map[string][]map[string]any) {
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			collectNodes(item, out)
		}
	case map[string]any:
		if graph, ok := v["@graph"]; ok {
			collectNodes(graph, out)
		}
		switch typ := v["@type"].(type) {
		case string:
			out[typ] = append(out[typ], v)
		case []any:
			for _, t := range typ {
				if name, ok := t.(string); ok {
					out[name] = append(out[name], v)
				}
			}
		}
	}
}
