package probe

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/sourceplane/entrygate/internal/model"
	"golang.org/x/sync/errgroup"
)

// DialFunc attempts a single connection. It exists so tests can count and
// script attempts; the default is net.DialTimeout.
type DialFunc func(network, addr string, timeout time.Duration) (net.Conn, error)

// UnreachableError reports that a dependency never became reachable within
// the prober's wait budget.
type UnreachableError struct {
	Target   string
	Attempts int
	Elapsed  time.Duration
	Err      error // last dial error
}

// Error returns the error message for an UnreachableError.
func (e *UnreachableError) Error() string {
	return fmt.Sprintf("dependency %s unreachable after %d attempts over %s: %v", e.Target, e.Attempts, e.Elapsed.Round(time.Millisecond), e.Err)
}

// Unwrap returns the last dial error.
func (e *UnreachableError) Unwrap() error { return e.Err }

// Prober polls connection targets until they accept connections or the wait
// budget runs out. Zero Timeout and zero Attempts both mean unbounded: keep
// retrying until success or the context is cancelled.
type Prober struct {
	Dial        DialFunc
	Interval    time.Duration // poll interval between attempts
	Timeout     time.Duration // max total wait per target, zero = unbounded
	Attempts    int           // max attempts per target, zero = unbounded
	DialTimeout time.Duration // per-attempt connection timeout
	Verbose     bool
	Out         io.Writer
}

// New returns a prober with the default dialer and poll interval.
func New() *Prober {
	return &Prober{
		Dial:        net.DialTimeout,
		Interval:    model.DefaultInterval,
		DialTimeout: 5 * time.Second,
		Out:         io.Discard,
	}
}

// Wait blocks until the target accepts a connection. Per-target interval,
// timeout and attempt settings override the prober's own. The target is
// validated before the first network attempt.
func (p *Prober) Wait(ctx context.Context, target model.ConnectionTarget) error {
	if err := target.Validate(); err != nil {
		return err
	}

	dial := p.Dial
	if dial == nil {
		dial = net.DialTimeout
	}
	interval := target.PollInterval(p.Interval)
	if interval <= 0 {
		interval = model.DefaultInterval
	}
	maxWait := target.MaxWait(p.Timeout)
	maxAttempts := p.Attempts
	if target.Attempts > 0 {
		maxAttempts = target.Attempts
	}

	addr := target.Addr()
	start := time.Now()

	var lastErr error
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("wait for %s interrupted: %w", addr, err)
		}

		conn, err := dial(target.Network(), addr, p.DialTimeout)
		if err == nil {
			conn.Close()
			if p.Verbose {
				fmt.Fprintf(p.Out, "  %s is ready after %d attempt(s)\n", addr, attempt)
			}
			return nil
		}
		lastErr = err

		elapsed := time.Since(start)
		if maxAttempts > 0 && attempt >= maxAttempts {
			return &UnreachableError{Target: addr, Attempts: attempt, Elapsed: elapsed, Err: lastErr}
		}
		if maxWait > 0 && elapsed >= maxWait {
			return &UnreachableError{Target: addr, Attempts: attempt, Elapsed: elapsed, Err: lastErr}
		}

		if p.Verbose {
			if maxAttempts > 0 {
				fmt.Fprintf(p.Out, "  %s not reachable yet, retry %d/%d\n", addr, attempt, maxAttempts)
			} else {
				fmt.Fprintf(p.Out, "  %s not reachable yet, retry %d\n", addr, attempt)
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for %s interrupted: %w", addr, ctx.Err())
		case <-time.After(interval):
		}
	}
}

// WaitAll probes every target concurrently and blocks until all are ready.
// The first failure cancels the remaining waits and is returned.
func (p *Prober) WaitAll(ctx context.Context, targets []model.ConnectionTarget) error {
	for _, target := range targets {
		if err := target.Validate(); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			return p.Wait(ctx, target)
		})
	}
	return g.Wait()
}
