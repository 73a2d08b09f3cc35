// Package certstore manages the per-domain certificate storage the proxy
// container mounts as /etc/letsencrypt.
package certstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xedro98/glacier/internal/errors"
	"github.com/xedro98/glacier/internal/issuer"
)

// Dir returns the storage directory for a domain's certificate artifacts.
func Dir(baseDir, domain string) string {
	return filepath.Join(baseDir, "certs", "live", domain)
}

// Install copies the issued full chain and private key into the domain's
// storage location. Failure here is recoverable: the caller surfaces it and
// provisions the site without TLS.
func Install(baseDir string, cert *issuer.Certificate) error {
	dir := Dir(baseDir, cert.Domain)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapDomain(errors.ErrCodeFilesystem, cert.Domain, "failed to create certificate directory", err)
	}

	if err := copyFile(cert.CertPath, filepath.Join(dir, "fullchain.pem"), 0644); err != nil {
		return errors.WrapDomain(errors.ErrCodeFilesystem, cert.Domain, "failed to copy certificate", err)
	}
	if err := copyFile(cert.KeyPath, filepath.Join(dir, "privkey.pem"), 0600); err != nil {
		return errors.WrapDomain(errors.ErrCodeFilesystem, cert.Domain, "failed to copy private key", err)
	}

	return nil
}

// Installed reports whether certificate artifacts exist for the domain.
func Installed(baseDir, domain string) bool {
	_, err := os.Stat(filepath.Join(Dir(baseDir, domain), "fullchain.pem"))
	return err == nil
}

// Remove deletes the stored artifacts for a domain, if any.
func Remove(baseDir, domain string) error {
	if err := os.RemoveAll(Dir(baseDir, domain)); err != nil {
		return fmt.Errorf("failed to remove certificate directory: %w", err)
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, mode)
}
