// Package dnscheck performs the TXT record lookups used to verify a
// manually published DNS-01 challenge record.
package dnscheck

import (
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// Resolver looks up the TXT record values for a fully qualified name.
type Resolver interface {
	LookupTXT(fqdn string) ([]string, error)
}

// Client queries the configured nameservers in order until one answers.
type Client struct {
	Nameservers []string // host:port
	Timeout     time.Duration
}

// defaultNameservers are used when the caller configures none.
var defaultNameservers = []string{"8.8.8.8:53", "1.1.1.1:53"}

// New creates a Client for the given nameservers.
func New(nameservers []string) *Client {
	if len(nameservers) == 0 {
		nameservers = defaultNameservers
	}
	return &Client{
		Nameservers: nameservers,
		Timeout:     10 * time.Second,
	}
}

// LookupTXT resolves the TXT records for fqdn. Each record's character
// strings are joined into one value. A name with no TXT records yields an
// empty slice and no error.
func (c *Client) LookupTXT(fqdn string) ([]string, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(fqdn), dns.TypeTXT)
	m.RecursionDesired = true

	client := &dns.Client{Timeout: c.Timeout}

	var lastErr error
	for _, ns := range c.Nameservers {
		in, _, err := client.Exchange(m, ns)
		if err != nil {
			lastErr = err
			continue
		}
		if in.Rcode != dns.RcodeSuccess {
			lastErr = fmt.Errorf("TXT query for %s against %s: %s", fqdn, ns, dns.RcodeToString[in.Rcode])
			continue
		}

		values := make([]string, 0, len(in.Answer))
		for _, rr := range in.Answer {
			if txt, ok := rr.(*dns.TXT); ok {
				values = append(values, strings.Join(txt.Txt, ""))
			}
		}
		return values, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no nameservers configured")
	}
	return nil, lastErr
}
