package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xedro98/glacier/internal/acme"
	"github.com/xedro98/glacier/internal/certstore"
	"github.com/xedro98/glacier/internal/config"
	"github.com/xedro98/glacier/internal/dnscheck"
	"github.com/xedro98/glacier/internal/executor"
	"github.com/xedro98/glacier/internal/input"
	"github.com/xedro98/glacier/internal/issuer"
	"github.com/xedro98/glacier/internal/logger"
	"github.com/xedro98/glacier/internal/nginx"
	"github.com/xedro98/glacier/internal/output"
)

// sysExec runs git and other ad-hoc commands; replaceable for tests.
var sysExec executor.CommandExecutor = executor.NewSystemExecutor()

// stdin is the operator input source; replaceable for tests.
var stdin input.Reader = input.NewStdinReader()

// SetExecutor replaces the command executor (for testing).
func SetExecutor(exec executor.CommandExecutor) {
	sysExec = exec
}

// SetInput replaces the operator input reader (for testing).
func SetInput(r input.Reader) {
	stdin = r
}

// loadConfig loads the application configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// saveConfig saves the config, wrapping the error for the caller.
func saveConfig(cfg *config.Config) error {
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// newWorkflow wires the challenge workflow from the configuration.
func newWorkflow(cfg *config.Config) (*acme.Workflow, error) {
	iss, err := issuer.New(cfg.Issuer, issuer.Options{
		Email:       cfg.Email,
		CADirURL:    cfg.CADirURL,
		Nameservers: cfg.Nameservers,
		CertDir:     filepath.Join(cfg.CertsDir(), "live"),
	})
	if err != nil {
		return nil, fmt.Errorf("issuer %s not available (have: %s)", cfg.Issuer, strings.Join(issuer.Available(), ", "))
	}
	return acme.New(dnscheck.New(cfg.Nameservers), iss, stdin), nil
}

// provisionTLS runs the challenge workflow for the domain and installs the
// issued material. It reports whether the site config may enable TLS; every
// failure path degrades to false so provisioning continues unencrypted.
func provisionTLS(cfg *config.Config, domain string) bool {
	wf, err := newWorkflow(cfg)
	if err != nil {
		output.Error("%v", err)
		return false
	}

	cert, sess := wf.Run(domain)
	logger.Info("challenge session for %s ended: %s", domain, sess.Outcome)
	if cert == nil {
		output.Warn("Setting up website without SSL. You can try again later with: glacier ssl %s", domain)
		return false
	}

	if err := certstore.Install(cfg.BaseDir, cert); err != nil {
		output.Error("Failed to store certificate: %v", err)
		output.Warn("Setting up website without SSL. You can try again later with: glacier ssl %s", domain)
		return false
	}

	return true
}

// applySiteConfig regenerates and writes the full nginx config for a domain.
func applySiteConfig(cfg *config.Config, domain string, tls bool) error {
	site, err := nginx.Build(cfg.SiteDir(domain), domain, tls)
	if err != nil {
		return fmt.Errorf("failed to build site config: %w", err)
	}
	if err := nginx.NewWriter(cfg.NginxDir()).Apply(site); err != nil {
		return fmt.Errorf("failed to apply site config: %w", err)
	}
	return nil
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// validateDomain checks if domain is valid
func validateDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}
	if strings.Contains(domain, " ") {
		return fmt.Errorf("domain cannot contain spaces")
	}
	if strings.Contains(domain, "/") {
		return fmt.Errorf("domain cannot contain slashes")
	}
	if strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return fmt.Errorf("domain cannot start or end with hyphen")
	}
	return nil
}
