// Package acme drives the manual DNS-01 certificate workflow: it generates
// a challenge token, waits for the operator to publish it, polls DNS for
// the record with bounded retries and hands a verified challenge to the
// configured issuer. Every failure mode degrades to provisioning the site
// without TLS; nothing here aborts the overall flow.
package acme

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Timing and token constants of the challenge contract. They are part of
// the workflow's external contract, not tunables.
const (
	TokenLength  = 32
	AckTimeout   = 5 * time.Minute
	PollAttempts = 10
	PollInterval = 30 * time.Second
)

// tokenAlphabet is lowercase letters plus digits.
const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Outcome is the terminal (or pending) state of a challenge session.
type Outcome int

// Session outcomes.
const (
	Pending Outcome = iota
	Verified
	TimedOut
	IssuanceFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Verified:
		return "verified"
	case TimedOut:
		return "timed out"
	case IssuanceFailed:
		return "issuance failed"
	default:
		return "unknown"
	}
}

// Session is one certificate-issuance attempt. Exactly one session is live
// per domain at a time; creating a new one supersedes any earlier token.
// Sessions are not persisted and are discarded when the workflow ends.
type Session struct {
	Domain    string
	Token     string
	CreatedAt time.Time
	Deadline  time.Time
	Outcome   Outcome
}

// NewSession creates a challenge session with a fresh random token and the
// acknowledgment deadline five minutes out.
func NewSession(domain string) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate challenge token: %w", err)
	}

	now := time.Now()
	return &Session{
		Domain:    domain,
		Token:     token,
		CreatedAt: now,
		Deadline:  now.Add(AckTimeout),
		Outcome:   Pending,
	}, nil
}

// RecordName returns the DNS name the operator must publish the token at.
func (s *Session) RecordName() string {
	return "_acme-challenge." + s.Domain
}

func newToken() (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, TokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
