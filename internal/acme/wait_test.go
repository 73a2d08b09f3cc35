package acme

import (
	"os"
	"testing"
	"time"

	"github.com/xedro98/glacier/internal/input"
)

func TestWaitForAckInput(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	lineCh := make(chan struct{}, 1)
	lineCh <- struct{}{}

	if got := waitForAck(sigCh, lineCh, time.Minute); got != Acknowledged {
		t.Errorf("expected Acknowledged, got %v", got)
	}
}

func TestWaitForAckDeadline(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	lineCh := make(chan struct{}, 1)

	if got := waitForAck(sigCh, lineCh, time.Millisecond); got != DeadlineExpired {
		t.Errorf("expected DeadlineExpired, got %v", got)
	}
}

func TestWaitForAckInterruptKeepsWaiting(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	lineCh := make(chan struct{}, 1)

	// an interrupt must not end the wait; the deadline does
	sigCh <- os.Interrupt
	if got := waitForAck(sigCh, lineCh, 50*time.Millisecond); got != DeadlineExpired {
		t.Errorf("expected DeadlineExpired after interrupt, got %v", got)
	}
}

func TestWaitForAckInterruptThenInput(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	lineCh := make(chan struct{}, 1)

	sigCh <- os.Interrupt
	go func() {
		time.Sleep(10 * time.Millisecond)
		lineCh <- struct{}{}
	}()

	if got := waitForAck(sigCh, lineCh, time.Minute); got != Acknowledged {
		t.Errorf("expected Acknowledged, got %v", got)
	}
}

func TestWaitForAckScriptedReader(t *testing.T) {
	r := input.NewScriptedReader("\n")
	if got := WaitForAck(r, time.Now().Add(time.Minute)); got != Acknowledged {
		t.Errorf("expected Acknowledged, got %v", got)
	}
}

func TestWaitForAckExhaustedReader(t *testing.T) {
	// an EOF from the reader never acknowledges; the deadline decides
	r := input.NewScriptedReader()
	if got := WaitForAck(r, time.Now().Add(20*time.Millisecond)); got != DeadlineExpired {
		t.Errorf("expected DeadlineExpired, got %v", got)
	}
}
