package frame

import (
	"sync"
	"time"
)

// DefaultInterval is roughly one display refresh at 60 Hz
const DefaultInterval = 16 * time.Millisecond

// Driver ticks a Queue from a background ticker. The tick itself is handed
// to post so that it executes on the UI thread (fyne.Do for the fyne host).
type Driver struct {
	queue    *Queue
	interval time.Duration
	post     func(func())
	now      func() time.Time

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// NewDriver creates a driver. A nil post runs the tick on the ticker goroutine.
func NewDriver(queue *Queue, interval time.Duration, post func(func())) *Driver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Driver{
		queue:    queue,
		interval: interval,
		post:     post,
		now:      time.Now,
	}
}

// Start begins ticking. Calling Start on a running driver is a no-op.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return
	}
	d.running = true
	d.stop = make(chan struct{})
	d.done = make(chan struct{})

	go d.loop(d.stop, d.done)
}

func (d *Driver) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Idle frames are skipped so an untouched view costs nothing
			if d.queue.Pending() == 0 {
				continue
			}
			now := d.now()
			d.post(func() { d.queue.Tick(now) })
		}
	}
}

// Stop halts the ticker and waits for the goroutine to exit. Safe to call twice.
func (d *Driver) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	stop, done := d.stop, d.done
	d.mu.Unlock()

	close(stop)
	<-done
}

// Running reports whether the driver is ticking
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}
