package nginx

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer persists rendered site configs into the directory the proxy
// container mounts as its conf.d.
type Writer struct {
	Dir string
}

// NewWriter creates a Writer for the given config directory.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Apply renders the SiteConfig and writes it as <domain>.conf. The document
// is written whole; an existing config for the domain is replaced, never
// patched.
func (w *Writer) Apply(cfg *SiteConfig) error {
	content, err := Render(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := w.Path(cfg.Domain)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Path returns the config file path for a domain.
func (w *Writer) Path(domain string) string {
	return filepath.Join(w.Dir, domain+".conf")
}

// Remove deletes the config file for a domain, if present.
func (w *Writer) Remove(domain string) error {
	err := os.Remove(w.Path(domain))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}
	return nil
}
