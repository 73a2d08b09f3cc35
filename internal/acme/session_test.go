package acme

import (
	"strings"
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	sess, err := NewSession("example.com")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if sess.Domain != "example.com" {
		t.Errorf("unexpected domain %q", sess.Domain)
	}
	if len(sess.Token) != TokenLength {
		t.Errorf("expected token of length %d, got %d", TokenLength, len(sess.Token))
	}
	for _, c := range sess.Token {
		if !strings.ContainsRune(tokenAlphabet, c) {
			t.Errorf("token contains %q outside the alphabet", c)
		}
	}
	if sess.Outcome != Pending {
		t.Errorf("new session should be pending, got %v", sess.Outcome)
	}

	want := sess.CreatedAt.Add(AckTimeout)
	if !sess.Deadline.Equal(want) {
		t.Errorf("deadline %v, want %v", sess.Deadline, want)
	}
	if time.Until(sess.Deadline) > AckTimeout {
		t.Error("deadline further out than the acknowledgment timeout")
	}
}

func TestNewSessionTokensDiffer(t *testing.T) {
	a, err := NewSession("example.com")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSession("example.com")
	if err != nil {
		t.Fatal(err)
	}
	if a.Token == b.Token {
		t.Error("two sessions produced the same token")
	}
}

func TestRecordName(t *testing.T) {
	sess := &Session{Domain: "example.com"}
	if got := sess.RecordName(); got != "_acme-challenge.example.com" {
		t.Errorf("unexpected record name %q", got)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{Pending, "pending"},
		{Verified, "verified"},
		{TimedOut, "timed out"},
		{IssuanceFailed, "issuance failed"},
		{Outcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}
