package engine

import (
	"sync"
	"time"
)

// Poller runs fn at a fixed interval until stopped. Every recurring
// fetch in this codebase goes through one of these so cancellation is
// guaranteed on every exit path: either the owner calls Stop, or fn
// itself returns false when its subject goes away.
type Poller struct {
	interval time.Duration
	fn       func() bool

	mu       sync.Mutex
	started  bool
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewPoller builds a poller around fn. fn returns false to stop the
// loop from inside a tick.
func NewPoller(interval time.Duration, fn func() bool) *Poller {
	return &Poller{
		interval: interval,
		fn:       fn,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (p *Poller) Start() {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go p.loop()
}

func (p *Poller) loop() {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			// Re-check stop so a tick racing Stop never fires late.
			select {
			case <-p.stopChan:
				return
			default:
			}
			if !p.fn() {
				return
			}
		}
	}
}

// Stop cancels the poller and waits for the loop to exit. Idempotent
// and safe from any goroutine except fn itself (fn stops the loop by
// returning false instead).
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopChan) })

	p.mu.Lock()
	started := p.started
	p.mu.Unlock()

	if started {
		<-p.done
	}
}
