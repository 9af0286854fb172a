// Package leaktest catches goroutines left running by session and pool code.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 10 * time.Millisecond
	checkTimeout = time.Second
)

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	t      testing.TB
	before int
}

// NewGoroutineChecker records the baseline. Create it after any long-lived
// fixtures are up so their goroutines are not counted as leaks.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	time.Sleep(settleDelay)
	return &GoroutineChecker{t: t, before: runtime.NumGoroutine()}
}

// Check polls until at most tolerance extra goroutines remain, failing the
// test if that does not happen within a second.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	after, ok := settle(g.before+tolerance, checkTimeout)
	if !ok {
		g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d", g.before, after, tolerance)
	}
}

// Run fails t if fn leaves any goroutine behind
func Run(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

func settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
