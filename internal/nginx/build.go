package nginx

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xedro98/glacier/internal/htaccess"
	"github.com/xedro98/glacier/internal/logger"
	"github.com/xedro98/glacier/internal/output"
)

// Build walks the site root, translates every legacy rule file it finds and
// assembles the SiteConfig for the domain. A site with no rule files is the
// common case and yields a config with only the fixed boilerplate. The TLS
// flag must only be set once a certificate for the domain is in place.
func Build(siteRoot, domain string, tls bool) (*SiteConfig, error) {
	files, err := htaccess.Find(siteRoot)
	if err != nil {
		return nil, err
	}

	var blocks []LocationBlock
	for _, rf := range files {
		f, err := os.Open(rf.Path)
		if err != nil {
			// never aborts the translation
			output.Warn("Skipping unreadable rule file %s: %v", rf.Path, err)
			continue
		}
		res, perr := htaccess.Parse(f)
		f.Close()
		if perr != nil {
			output.Warn("Skipping rule file %s: %v", rf.Path, perr)
			continue
		}

		if res.Conditions > 0 {
			logger.Debug("%s: %d RewriteCond lines not translated", rf.Path, res.Conditions)
		}
		if res.Skipped > 0 {
			logger.Debug("%s: %d malformed RewriteRule lines skipped", rf.Path, res.Skipped)
		}
		if len(res.Directives) == 0 {
			continue
		}

		rules := make([]string, 0, len(res.Directives))
		for _, d := range res.Directives {
			rules = append(rules, d.Nginx())
		}
		blocks = append(blocks, LocationBlock{
			Prefix: prefixFor(rf.Dir),
			Rules:  rules,
		})
	}

	sortBlocks(blocks)

	return &SiteConfig{
		Domain:    domain,
		TLS:       tls,
		Locations: blocks,
	}, nil
}

// prefixFor maps a site-relative rule-file directory to its URL prefix.
func prefixFor(dir string) string {
	if dir == "." || dir == "" {
		return "/"
	}
	return "/" + filepath.ToSlash(dir)
}

// sortBlocks orders blocks by ascending prefix depth, then lexically, so
// more specific prefixes are emitted later and win under the proxy's
// last-match evaluation.
func sortBlocks(blocks []LocationBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		di, dj := prefixDepth(blocks[i].Prefix), prefixDepth(blocks[j].Prefix)
		if di != dj {
			return di < dj
		}
		return blocks[i].Prefix < blocks[j].Prefix
	})
}

func prefixDepth(prefix string) int {
	if prefix == "/" {
		return 0
	}
	return strings.Count(prefix, "/")
}
