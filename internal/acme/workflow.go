package acme

import (
	"strings"
	"time"

	"github.com/xedro98/glacier/internal/dnscheck"
	"github.com/xedro98/glacier/internal/input"
	"github.com/xedro98/glacier/internal/issuer"
	"github.com/xedro98/glacier/internal/logger"
	"github.com/xedro98/glacier/internal/output"
)

// Workflow runs the manual DNS-01 challenge for one domain at a time on the
// calling goroutine. Attempts and Interval exist so tests can shrink the
// polling schedule; production callers keep the contract defaults.
type Workflow struct {
	Resolver dnscheck.Resolver
	Issuer   issuer.Issuer
	Input    input.Reader

	Attempts int
	Interval time.Duration
}

// New creates a Workflow with the contract polling schedule.
func New(resolver dnscheck.Resolver, iss issuer.Issuer, in input.Reader) *Workflow {
	return &Workflow{
		Resolver: resolver,
		Issuer:   iss,
		Input:    in,
		Attempts: PollAttempts,
		Interval: PollInterval,
	}
}

// Run drives one challenge session for the domain: display the token, wait
// for acknowledgment or deadline, poll DNS for the record, then invoke the
// issuer. The returned certificate is nil whenever the session ends without
// issued material, in which case the caller proceeds without TLS; the
// session's Outcome records why.
func (w *Workflow) Run(domain string) (*issuer.Certificate, *Session) {
	sess, err := NewSession(domain)
	if err != nil {
		output.Error("Cannot start challenge: %v", err)
		return nil, &Session{Domain: domain, Outcome: IssuanceFailed}
	}
	return w.RunSession(sess), sess
}

// RunSession drives an existing session through the state machine. It
// returns the issued certificate, or nil when the session ends in any of
// the fallback outcomes.
func (w *Workflow) RunSession(sess *Session) *issuer.Certificate {
	output.Notice("Please create a TXT record for %s with the following value:", sess.RecordName())
	output.Token(sess.Token)
	output.Notice("You have %d minutes to create this DNS record.", int(AckTimeout.Minutes()))
	output.Hint("The workflow continues automatically after the deadline, or press Enter to continue sooner.")
	output.Hint("You can use Ctrl+C to copy the text without interrupting the process.")

	if WaitForAck(w.Input, sess.Deadline) == DeadlineExpired {
		output.Notice("%d minutes have passed. Continuing automatically.", int(AckTimeout.Minutes()))
	}

	output.Info("Checking DNS propagation...")
	if !w.poll(sess) {
		sess.Outcome = TimedOut
		output.Error("DNS record not found after %d attempts. Please check your DNS configuration and try again.", w.Attempts)
		return nil
	}
	sess.Outcome = Verified
	output.Success("DNS record found. Proceeding with certificate issuance.")

	cert, err := w.Issuer.Issue(sess.Domain, sess.Token)
	if err != nil {
		sess.Outcome = IssuanceFailed
		output.Error("Certificate issuance failed: %v", err)
		return nil
	}

	output.Notice("You can now remove the TXT record for %s", sess.RecordName())
	return cert
}

// poll performs up to Attempts lookups, Interval apart, and reports whether
// the expected record appeared. It returns on the first hit.
func (w *Workflow) poll(sess *Session) bool {
	for i := 0; i < w.Attempts; i++ {
		if w.recordPresent(sess) {
			return true
		}
		output.Warn("DNS record not found yet. Waiting %s before checking again...", w.Interval)
		time.Sleep(w.Interval)
	}
	return false
}

// recordPresent checks one lookup. Resolution errors are transient by
// policy: they count as "not yet found" and the retry schedule continues.
func (w *Workflow) recordPresent(sess *Session) bool {
	values, err := w.Resolver.LookupTXT(sess.RecordName())
	if err != nil {
		logger.Debug("TXT lookup for %s: %v", sess.RecordName(), err)
		return false
	}
	for _, v := range values {
		// containment, not equality: resolvers may merge or pad values
		if strings.Contains(v, sess.Token) {
			return true
		}
	}
	return false
}
