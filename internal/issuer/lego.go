package issuer

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/go-acme/lego/v4/certificate"
	legodns "github.com/go-acme/lego/v4/challenge/dns01"
	"github.com/go-acme/lego/v4/lego"
	"github.com/go-acme/lego/v4/registration"

	"github.com/xedro98/glacier/internal/errors"
	"github.com/xedro98/glacier/internal/output"
)

// LegoIssuer performs the ACME exchange in-process. Unlike the certbot
// issuer it presents the real key-authorization record: the provider shows
// the operator the exact value the CA will validate and lego's own
// propagation check polls until the record is visible.
type LegoIssuer struct {
	Email       string
	CADirURL    string
	Nameservers []string
	CertDir     string // obtained material is written here, per domain

	// propagationWait is the pause after the operator is shown the
	// record, before lego starts its pre-checks
	propagationWait time.Duration
}

// NewLego creates a lego issuer from options.
func NewLego(opts Options) *LegoIssuer {
	return &LegoIssuer{
		Email:           opts.Email,
		CADirURL:        opts.CADirURL,
		Nameservers:     opts.Nameservers,
		CertDir:         opts.CertDir,
		propagationWait: 30 * time.Second,
	}
}

// Name returns the issuer name
func (l *LegoIssuer) Name() string {
	return "lego"
}

// legoUser satisfies lego's registration.User with an ephemeral account.
type legoUser struct {
	email        string
	registration *registration.Resource
	key          crypto.PrivateKey
}

func (u *legoUser) GetEmail() string {
	return u.email
}

func (u *legoUser) GetRegistration() *registration.Resource {
	return u.registration
}

func (u *legoUser) GetPrivateKey() crypto.PrivateKey {
	return u.key
}

// manualProvider surfaces the DNS-01 record to the operator instead of
// creating it anywhere; publication is the operator's job.
type manualProvider struct {
	wait time.Duration
}

// Present displays the record the CA will validate and pauses for initial
// propagation. Lego's wrapped pre-check then polls until it resolves.
func (p *manualProvider) Present(domain, token, keyAuth string) error {
	fqdn, value := legodns.GetRecord(domain, keyAuth)
	output.Notice("ACME validation requires a TXT record for %s with the value:", fqdn)
	output.Token(value)
	output.Hint("Create or update the record now; validation starts shortly.")
	time.Sleep(p.wait)
	return nil
}

// CleanUp only reminds the operator; there is nothing to undo here.
func (p *manualProvider) CleanUp(domain, token, keyAuth string) error {
	fqdn, _ := legodns.GetRecord(domain, keyAuth)
	output.Hint("You can now remove the TXT record for %s", fqdn)
	return nil
}

// Issue registers an ephemeral ACME account, runs the DNS-01 challenge for
// the domain and its www alias and writes the obtained material under
// CertDir/<domain>/.
func (l *LegoIssuer) Issue(domain, token string) (*Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "failed to generate account key", err)
	}

	user := &legoUser{email: l.Email, key: key}

	cfg := lego.NewConfig(user)
	if l.CADirURL != "" {
		cfg.CADirURL = l.CADirURL
	}

	client, err := lego.NewClient(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "failed to create ACME client", err)
	}

	reg, err := client.Registration.Register(registration.RegisterOptions{
		TermsOfServiceAgreed: true,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "failed to register ACME account", err)
	}
	user.registration = reg

	nameservers := l.Nameservers
	if len(nameservers) == 0 {
		nameservers = []string{"8.8.8.8:53", "1.1.1.1:53"}
	}
	err = client.Challenge.SetDNS01Provider(
		&manualProvider{wait: l.propagationWait},
		legodns.AddRecursiveNameservers(nameservers),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIssuance, "failed to set DNS provider", err)
	}

	certs, err := client.Certificate.Obtain(certificate.ObtainRequest{
		Domains: []string{domain, "www." + domain},
		Bundle:  true,
	})
	if err != nil {
		return nil, errors.WrapDomain(errors.ErrCodeIssuance, domain, "failed to obtain certificate", err)
	}

	dir := l.CertDir
	if dir == "" {
		dir, err = os.MkdirTemp("", "glacier-cert-")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFilesystem, "failed to create staging directory", err)
		}
	} else {
		dir = filepath.Join(dir, domain)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFilesystem, "failed to create certificate directory", err)
		}
	}

	certPath := filepath.Join(dir, "fullchain.pem")
	keyPath := filepath.Join(dir, "privkey.pem")
	if err := os.WriteFile(certPath, certs.Certificate, 0644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFilesystem, "failed to write certificate", err)
	}
	if err := os.WriteFile(keyPath, certs.PrivateKey, 0600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFilesystem, "failed to write private key", err)
	}

	return &Certificate{
		Domain:   domain,
		CertPath: certPath,
		KeyPath:  keyPath,
	}, nil
}

func init() {
	Register("lego", func(opts Options) Issuer {
		return NewLego(opts)
	})
}
