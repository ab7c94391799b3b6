package tween

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter_ReachesTargetExactly(t *testing.T) {
	start := time.Now()
	c := NewCounter(600*time.Millisecond, 0)
	c.Retarget(200, start)
	assert.True(t, c.Running())

	v, done := c.Step(start.Add(300 * time.Millisecond))
	assert.False(t, done)
	assert.Equal(t, 100, v)

	v, done = c.Step(start.Add(599 * time.Millisecond))
	assert.False(t, done)
	assert.Less(t, v, 200)

	v, done = c.Step(start.Add(2 * time.Second))
	assert.True(t, done)
	assert.Equal(t, 200, v)
	assert.False(t, c.Running())
}

func TestCounter_Floors(t *testing.T) {
	start := time.Now()
	c := NewCounter(time.Second, 0)
	c.Retarget(3, start)
	v, _ := c.Step(start.Add(500 * time.Millisecond))
	assert.Equal(t, 1, v)
}

func TestCounter_CountsDown(t *testing.T) {
	start := time.Now()
	c := NewCounter(time.Second, 100)
	c.Retarget(0, start)

	v, _ := c.Step(start.Add(500 * time.Millisecond))
	assert.Equal(t, 50, v)
	v, done := c.Step(start.Add(time.Second))
	assert.True(t, done)
	assert.Zero(t, v)
}

func TestCounter_RetargetRestartsFromShown(t *testing.T) {
	start := time.Now()
	c := NewCounter(time.Second, 0)
	first := c.Retarget(100, start)
	c.Step(start.Add(500 * time.Millisecond))
	assert.Equal(t, 50, c.Value())

	second := c.Retarget(250, start.Add(500*time.Millisecond))
	assert.False(t, c.Current(first))
	assert.True(t, c.Current(second))

	v, _ := c.Step(start.Add(time.Second))
	assert.Equal(t, 150, v)
	v, done := c.Step(start.Add(1500 * time.Millisecond))
	assert.True(t, done)
	assert.Equal(t, 250, v)
}

func TestCounter_NoAnimationNeeded(t *testing.T) {
	now := time.Now()
	c := NewCounter(time.Second, 15)
	c.Retarget(15, now)
	assert.False(t, c.Running())

	z := NewCounter(0, 0)
	z.Retarget(50, now)
	v, done := z.Step(now)
	assert.True(t, done)
	assert.Equal(t, 50, v)
	assert.Equal(t, 50, z.Target())
}
