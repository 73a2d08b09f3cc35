package dnscheck

import (
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
)

// startTXTServer runs a DNS server on a loopback port that answers TXT
// queries from the records map and NXDOMAIN for everything else.
func startTXTServer(t *testing.T, records map[string][]string) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("cannot listen: %v", err)
	}

	mux := dns.NewServeMux()
	mux.HandleFunc(".", func(w dns.ResponseWriter, req *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(req)

		name := req.Question[0].Name
		values, ok := records[name]
		if !ok || req.Question[0].Qtype != dns.TypeTXT {
			m.Rcode = dns.RcodeNameError
		} else {
			for _, v := range values {
				m.Answer = append(m.Answer, &dns.TXT{
					Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 60},
					Txt: []string{v},
				})
			}
		}
		_ = w.WriteMsg(m)
	})

	srv := &dns.Server{PacketConn: pc, Handler: mux}
	go func() { _ = srv.ActivateAndServe() }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestLookupTXT(t *testing.T) {
	addr := startTXTServer(t, map[string][]string{
		"_acme-challenge.example.com.": {"tok123", "other-value"},
	})

	c := New([]string{addr})
	c.Timeout = 2 * time.Second

	values, err := c.LookupTXT("_acme-challenge.example.com")
	if err != nil {
		t.Fatalf("LookupTXT failed: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %v", values)
	}
	if values[0] != "tok123" || values[1] != "other-value" {
		t.Errorf("unexpected values %v", values)
	}
}

func TestLookupTXTNameError(t *testing.T) {
	addr := startTXTServer(t, nil)

	c := New([]string{addr})
	c.Timeout = 2 * time.Second

	if _, err := c.LookupTXT("_acme-challenge.missing.com"); err == nil {
		t.Fatal("expected an error for NXDOMAIN")
	}
}

func TestLookupTXTFallsThroughNameservers(t *testing.T) {
	addr := startTXTServer(t, map[string][]string{
		"_acme-challenge.example.com.": {"tok123"},
	})

	// first nameserver refuses; the second answers
	c := New([]string{"127.0.0.1:1", addr})
	c.Timeout = time.Second

	values, err := c.LookupTXT("_acme-challenge.example.com")
	if err != nil {
		t.Fatalf("LookupTXT failed: %v", err)
	}
	if len(values) != 1 || values[0] != "tok123" {
		t.Errorf("unexpected values %v", values)
	}
}

func TestNewDefaults(t *testing.T) {
	c := New(nil)
	if len(c.Nameservers) != 2 {
		t.Errorf("expected default nameservers, got %v", c.Nameservers)
	}
	if c.Timeout != 10*time.Second {
		t.Errorf("unexpected timeout %v", c.Timeout)
	}

	custom := New([]string{"192.0.2.1:53"})
	if len(custom.Nameservers) != 1 || custom.Nameservers[0] != "192.0.2.1:53" {
		t.Errorf("custom nameservers not kept: %v", custom.Nameservers)
	}
}
