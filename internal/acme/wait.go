package acme

import (
	"os"
	"os/signal"
	"time"

	"github.com/xedro98/glacier/internal/input"
	"github.com/xedro98/glacier/internal/output"
)

// AckResult is the outcome of the acknowledgment wait.
type AckResult int

// Acknowledgment outcomes.
const (
	Acknowledged AckResult = iota
	DeadlineExpired
)

// WaitForAck blocks until the operator sends a line of input or the deadline
// passes, whichever comes first. For the duration of the wait SIGINT is
// diverted to an informational message so the operator can use Ctrl+C to
// copy the displayed token without aborting the flow; the previous signal
// disposition is restored exactly once on return, whatever the outcome.
func WaitForAck(r input.Reader, deadline time.Time) AckResult {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	lineCh := make(chan struct{}, 1)
	go func() {
		// A blocked stdin read cannot be cancelled; when the deadline
		// fires first this goroutine lingers until process exit.
		if _, err := r.ReadString('\n'); err == nil {
			lineCh <- struct{}{}
		}
	}()

	return waitForAck(sigCh, lineCh, time.Until(deadline))
}

// waitForAck is the select loop behind WaitForAck, split out so tests can
// drive the signal and input channels directly.
func waitForAck(sigCh <-chan os.Signal, lineCh <-chan struct{}, d time.Duration) AckResult {
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-lineCh:
			return Acknowledged
		case <-sigCh:
			output.Notice("Ctrl+C pressed. You can copy the text. The timer is still running.")
		case <-timer.C:
			return DeadlineExpired
		}
	}
}
