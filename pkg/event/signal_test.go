package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalEmitOrder(t *testing.T) {
	var s Signal[int]
	var got []string

	s.On(func(v int) { got = append(got, "a") })
	s.On(func(v int) { got = append(got, "b") })
	s.Emit(1)

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestSubscriptionOff(t *testing.T) {
	var s Signal[string]
	calls := 0

	sub := s.On(func(string) { calls++ })
	s.Emit("x")
	sub.Off()
	sub.Off()
	s.Emit("y")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len())
}

func TestOffDuringEmitKeepsSnapshot(t *testing.T) {
	var s Signal[int]
	var second *Subscription
	calls := 0

	s.On(func(int) { second.Off() })
	second = s.On(func(int) { calls++ })

	s.Emit(1)
	assert.Equal(t, 1, calls, "handler removed mid-emit still runs in that pass")

	s.Emit(2)
	assert.Equal(t, 1, calls)
}

func TestOnce(t *testing.T) {
	var s Signal[int]
	var values []int

	s.Once(func(v int) { values = append(values, v) })
	s.Emit(1)
	s.Emit(2)

	assert.Equal(t, []int{1}, values)
}

func TestNilHandlerIgnored(t *testing.T) {
	var s Signal[int]
	sub := s.On(nil)
	sub.Off()
	s.Emit(1)
	assert.Equal(t, 0, s.Len())
}
