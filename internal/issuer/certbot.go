package issuer

import (
	"fmt"
	"path/filepath"

	"github.com/xedro98/glacier/internal/errors"
	"github.com/xedro98/glacier/internal/executor"
)

// letsencryptDir is where certbot leaves issued certificates.
const letsencryptDir = "/etc/letsencrypt/live"

// CertbotIssuer shells out to the certbot binary in manual DNS mode. The
// auth hook echoes the already-published token, so certbot performs no DNS
// changes of its own.
type CertbotIssuer struct {
	exec executor.CommandExecutor
}

// NewCertbot creates a certbot issuer using the system executor.
func NewCertbot() *CertbotIssuer {
	return &CertbotIssuer{exec: executor.NewSystemExecutor()}
}

// NewCertbotWithExecutor creates a certbot issuer with a custom executor (for testing).
func NewCertbotWithExecutor(exec executor.CommandExecutor) *CertbotIssuer {
	return &CertbotIssuer{exec: exec}
}

// Name returns the issuer name
func (c *CertbotIssuer) Name() string {
	return "certbot"
}

// IsInstalled checks if certbot is installed
func (c *CertbotIssuer) IsInstalled() bool {
	_, err := c.exec.LookPath("certbot")
	return err == nil
}

// Issue runs certbot certonly with DNS preferred challenges for the domain
// and its www alias. Certbot's exit status is the success signal; its
// output is preserved in the returned error on failure.
func (c *CertbotIssuer) Issue(domain, token string) (*Certificate, error) {
	if !c.IsInstalled() {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "certbot is not installed", fmt.Errorf("install it with: apt install certbot"))
	}

	args := []string{
		"certonly", "-v",
		"--manual",
		"--preferred-challenges=dns",
		"-d", domain,
		"-d", "www." + domain,
		"--agree-tos",
		"--cert-name", domain,
		"--manual-auth-hook", "echo " + token,
		"--manual-cleanup-hook", "echo Cleanup complete",
		"--non-interactive",
	}

	output, err := c.exec.Execute("certbot", args...)
	if err != nil {
		return nil, errors.WrapDomain(errors.ErrCodeIssuance, domain, "certbot failed", fmt.Errorf("%s", string(output)))
	}

	return &Certificate{
		Domain:   domain,
		CertPath: filepath.Join(letsencryptDir, domain, "fullchain.pem"),
		KeyPath:  filepath.Join(letsencryptDir, domain, "privkey.pem"),
	}, nil
}

func init() {
	Register("certbot", func(Options) Issuer {
		return NewCertbot()
	})
}
