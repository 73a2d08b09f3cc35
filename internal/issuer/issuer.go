// Package issuer obtains certificates for domains whose DNS-01 challenge
// record has already been published by the operator.
//
// Implementations are registered by name in a static registry populated at
// startup; there is no dynamic discovery. Two issuers ship with the tool:
// "certbot" shells out to the certbot binary in manual DNS mode and "lego"
// performs the ACME exchange in-process via go-acme/lego.
package issuer

import (
	"sort"

	"github.com/xedro98/glacier/internal/errors"
)

// Certificate points at issued certificate material on disk.
type Certificate struct {
	Domain   string
	CertPath string // full chain PEM
	KeyPath  string // private key PEM
}

// Issuer obtains a certificate for a domain. The token is the challenge
// value the operator published; how (and whether) an implementation uses it
// is its own concern.
type Issuer interface {
	// Name returns the issuer name
	Name() string

	// Issue obtains certificate material for the domain and its www alias
	Issue(domain, token string) (*Certificate, error)
}

// Options carries the configuration an issuer may need at construction.
type Options struct {
	Email       string
	CADirURL    string
	Nameservers []string
	CertDir     string // where in-process issuers write obtained material
}

// Factory builds an issuer from options.
type Factory func(Options) Issuer

var registry = make(map[string]Factory)

// Register adds an issuer factory to the registry.
func Register(name string, f Factory) {
	registry[name] = f
}

// New builds the named issuer.
func New(name string, opts Options) (Issuer, error) {
	f, ok := registry[name]
	if !ok {
		return nil, errors.ErrIssuerNotFound
	}
	return f(opts), nil
}

// Available returns all registered issuer names, sorted.
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
