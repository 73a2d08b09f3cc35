//go:build integration

package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xedro98/glacier/internal/certstore"
	"github.com/xedro98/glacier/internal/compose"
	"github.com/xedro98/glacier/internal/config"
	"github.com/xedro98/glacier/internal/issuer"
	"github.com/xedro98/glacier/internal/nginx"
)

// setupBase scaffolds a fresh stack directory and returns a config pointed
// at it.
func setupBase(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.New()
	cfg.BaseDir = t.TempDir()

	if err := compose.Scaffold(cfg.BaseDir); err != nil {
		t.Fatalf("Failed to scaffold stack: %v", err)
	}

	return cfg
}

func TestProvisionLifecycle(t *testing.T) {
	cfg := setupBase(t)
	domain := "demo.local"

	t.Run("Scaffold layout", func(t *testing.T) {
		for _, sub := range []string{"nginx", "sites", "certs"} {
			if _, err := os.Stat(filepath.Join(cfg.BaseDir, sub)); err != nil {
				t.Errorf("Missing stack directory %s: %v", sub, err)
			}
		}
		if _, err := os.Stat(compose.Path(cfg.BaseDir)); err != nil {
			t.Errorf("Missing compose file: %v", err)
		}
	})

	t.Run("Create site with legacy rules", func(t *testing.T) {
		siteDir := cfg.SiteDir(domain)
		if err := os.MkdirAll(filepath.Join(siteDir, "blog"), 0755); err != nil {
			t.Fatal(err)
		}

		rootRules := "Options -Indexes\n"
		if err := os.WriteFile(filepath.Join(siteDir, ".htaccess"), []byte(rootRules), 0644); err != nil {
			t.Fatal(err)
		}
		blogRules := "RewriteRule ^/old-post$ /new-post redirect=301\n"
		if err := os.WriteFile(filepath.Join(siteDir, "blog", ".htaccess"), []byte(blogRules), 0644); err != nil {
			t.Fatal(err)
		}

		site, err := nginx.Build(siteDir, domain, false)
		if err != nil {
			t.Fatalf("Failed to build site config: %v", err)
		}
		if err := nginx.NewWriter(cfg.NginxDir()).Apply(site); err != nil {
			t.Fatalf("Failed to apply site config: %v", err)
		}

		data, err := os.ReadFile(cfg.ConfPath(domain))
		if err != nil {
			t.Fatalf("Failed to read rendered config: %v", err)
		}
		conf := string(data)
		if !strings.Contains(conf, "rewrite ^/old-post$ /new-post redirect=301;") {
			t.Error("Config should contain the translated blog rule")
		}
		if strings.Index(conf, "location /blog {") < strings.Index(conf, "# Translated .htaccess rules") {
			t.Error("Blog location should follow the boilerplate")
		}
		if strings.Contains(conf, "listen 443") {
			t.Error("Config should not have a TLS stanza yet")
		}
	})

	t.Run("Install certificate and re-render", func(t *testing.T) {
		src := t.TempDir()
		certPath := filepath.Join(src, "fullchain.pem")
		keyPath := filepath.Join(src, "privkey.pem")
		if err := os.WriteFile(certPath, []byte("CERT"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(keyPath, []byte("KEY"), 0600); err != nil {
			t.Fatal(err)
		}

		cert := &issuer.Certificate{Domain: domain, CertPath: certPath, KeyPath: keyPath}
		if err := certstore.Install(cfg.BaseDir, cert); err != nil {
			t.Fatalf("Failed to install certificate: %v", err)
		}
		if !certstore.Installed(cfg.BaseDir, domain) {
			t.Fatal("Certificate should be installed")
		}

		site, err := nginx.Build(cfg.SiteDir(domain), domain, true)
		if err != nil {
			t.Fatalf("Failed to build site config: %v", err)
		}
		if err := nginx.NewWriter(cfg.NginxDir()).Apply(site); err != nil {
			t.Fatalf("Failed to apply site config: %v", err)
		}

		data, err := os.ReadFile(cfg.ConfPath(domain))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "listen 443 ssl;") {
			t.Error("Config should have a TLS stanza after installation")
		}
	})

	t.Run("Remove site", func(t *testing.T) {
		if err := os.RemoveAll(cfg.SiteDir(domain)); err != nil {
			t.Fatalf("Failed to remove site directory: %v", err)
		}
		if err := nginx.NewWriter(cfg.NginxDir()).Remove(domain); err != nil {
			t.Fatalf("Failed to remove site config: %v", err)
		}
		if err := certstore.Remove(cfg.BaseDir, domain); err != nil {
			t.Fatalf("Failed to remove certificate: %v", err)
		}

		if _, err := os.Stat(cfg.ConfPath(domain)); !os.IsNotExist(err) {
			t.Error("Site config should have been removed")
		}
		if certstore.Installed(cfg.BaseDir, domain) {
			t.Error("Certificate should have been removed")
		}
	})
}
