package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDriverTicksPendingQueue(t *testing.T) {
	q := NewQueue()
	ran := make(chan struct{})
	posted := make(chan func(), 1)

	// The test goroutine plays the UI thread
	d := NewDriver(q, time.Millisecond, func(fn func()) {
		select {
		case posted <- fn:
		default:
		}
	})
	q.RequestFrame(func(time.Time) { close(ran) })
	d.Start()
	defer d.Stop()

	select {
	case fn := <-posted:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("driver never posted a tick")
	}

	select {
	case <-ran:
	default:
		t.Fatal("frame callback did not run")
	}
}

func TestDriverStopIsIdempotent(t *testing.T) {
	d := NewDriver(NewQueue(), time.Millisecond, nil)
	d.Start()
	d.Start()
	assert.True(t, d.Running())

	d.Stop()
	d.Stop()
	assert.False(t, d.Running())
}

func TestDriverDefaults(t *testing.T) {
	d := NewDriver(NewQueue(), 0, nil)
	assert.Equal(t, DefaultInterval, d.interval)
}
