// Package nginx synthesizes the per-domain server configuration: fixed
// PHP/error-page boilerplate, the location blocks translated from legacy
// rule files, and the TLS stanza when a certificate is available.
package nginx

// LocationBlock groups translated directives under one URL-prefix scope.
type LocationBlock struct {
	Prefix string   // URL prefix, "/" for the site root
	Rules  []string // rendered nginx directives
}

// SiteConfig is the synthesized configuration document for one domain.
// It is regenerated in full on every provisioning or rebuild event and
// never partially patched.
type SiteConfig struct {
	Domain    string
	TLS       bool
	Locations []LocationBlock
}
