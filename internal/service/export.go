package service

import (
	"encoding/json"
	"fmt"
	"html"
)

// wordHTMLTemplate wraps a plain-text report in a minimal HTML shell that
// word processors open directly.
const wordHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Final Report - %s</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 20px; line-height: 1.6; }
    h1, h2, h3 { margin-top: 20px; }
  </style>
</head>
<body>
  <pre style="white-space: pre-wrap;">%s</pre>
</body>
</html>
`

// ExportWordHTML wraps the final report text in a Word-compatible HTML
// document. Pure serialization, no transformation of the report content.
func ExportWordHTML(villageName, report string) []byte {
	doc := fmt.Sprintf(wordHTMLTemplate, html.EscapeString(villageName), html.EscapeString(report))
	return []byte(doc)
}

// ExportJSON serializes the full data snapshot for download.
func ExportJSON(data ExportData) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing snapshot: %w", err)
	}
	return out, nil
}
