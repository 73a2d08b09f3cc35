package nginx

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed site.tmpl
var templates embed.FS

var siteTmpl = template.Must(template.ParseFS(templates, "site.tmpl"))

// Render serializes the SiteConfig to nginx configuration text.
func Render(cfg *SiteConfig) (string, error) {
	var buf bytes.Buffer
	if err := siteTmpl.Execute(&buf, cfg); err != nil {
		return "", fmt.Errorf("failed to render site config: %w", err)
	}
	return buf.String(), nil
}
