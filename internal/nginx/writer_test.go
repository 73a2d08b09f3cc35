package nginx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterApply(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nginx")
	w := NewWriter(dir)

	cfg := &SiteConfig{Domain: "example.com", TLS: true}
	if err := w.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "example.com.conf"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "server_name example.com www.example.com;") {
		t.Error("written config missing server_name")
	}
	if !strings.Contains(string(data), "listen 443 ssl;") {
		t.Error("written config missing TLS stanza")
	}
}

func TestWriterApplyReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	if err := w.Apply(&SiteConfig{Domain: "example.com", TLS: true}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := w.Apply(&SiteConfig{Domain: "example.com"}); err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}

	data, err := os.ReadFile(w.Path("example.com"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "listen 443") {
		t.Error("stale TLS stanza survived the rewrite")
	}
}

func TestWriterRemove(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	if err := w.Apply(&SiteConfig{Domain: "example.com"}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := w.Remove("example.com"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(w.Path("example.com")); !os.IsNotExist(err) {
		t.Error("config file still present after Remove")
	}

	// removing again is not an error
	if err := w.Remove("example.com"); err != nil {
		t.Errorf("Remove of absent config failed: %v", err)
	}
}
