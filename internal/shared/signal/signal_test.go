package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetNotifiesOnChangeOnly(t *testing.T) {
	s := New("es")
	var got []string
	s.Subscribe(func(v string) { got = append(got, v) })

	assert.True(t, s.Set("en"))
	assert.False(t, s.Set("en"))
	assert.True(t, s.Set("es"))

	assert.Equal(t, []string{"en", "es"}, got)
	assert.Equal(t, "es", s.Get())
}

func TestUnsubscribe(t *testing.T) {
	s := New(0)
	calls := 0
	unsub := s.Subscribe(func(int) { calls++ })

	s.Set(1)
	unsub()
	unsub()
	s.Set(2)

	assert.Equal(t, 1, calls)
}

func TestSubscribersRunInOrder(t *testing.T) {
	s := New(0)
	var order []string
	s.Subscribe(func(int) { order = append(order, "a") })
	s.Subscribe(func(int) { order = append(order, "b") })

	s.Set(7)

	assert.Equal(t, []string{"a", "b"}, order)
}
