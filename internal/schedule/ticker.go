package schedule

import (
	"sync"
	"time"
)

// Ticker is the periodic-callback port. Every starts calling fn once per
// interval until the returned stop function is called.
type Ticker interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// RealTicker drives callbacks from the wall clock.
type RealTicker struct{}

func (RealTicker) Every(interval time.Duration, fn func()) func() {
	t := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// ManualTicker is a simulated clock: callbacks fire only on Advance.
type ManualTicker struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func NewManualTicker() *ManualTicker {
	return &ManualTicker{subs: map[int]func(){}}
}

func (m *ManualTicker) Every(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Advance fires every active callback n times, one simulated second at a time.
func (m *ManualTicker) Advance(n int) {
	for i := 0; i < n; i++ {
		m.mu.Lock()
		fns := make([]func(), 0, len(m.subs))
		for _, fn := range m.subs {
			fns = append(fns, fn)
		}
		m.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
	}
}

// Active returns the number of outstanding periodic callbacks.
func (m *ManualTicker) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}
