package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var labels = []string{"一般", "キャラクター", "版権", "メタ"}

func TestNew_DefaultExclusions(t *testing.T) {
	s := New(labels, "キャラクター", "版権", "not-a-label")
	assert.Equal(t, []string{"キャラクター", "メタ", "一般", "版権"}, s.Labels())
	assert.Equal(t, []string{"メタ", "一般"}, s.Active())
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Has("版権"))
}

func TestNew_NoExclusions(t *testing.T) {
	s := New(labels)
	assert.Equal(t, 4, s.Len())
}

func TestToggle(t *testing.T) {
	s := New(labels)
	s.Toggle("一般")
	assert.False(t, s.Has("一般"))
	s.Toggle("一般")
	assert.True(t, s.Has("一般"))

	s.Toggle("unknown")
	assert.False(t, s.Has("unknown"))
	assert.Equal(t, 4, s.Len())
}

func TestSelectAllDeselectAll(t *testing.T) {
	s := New(labels, "メタ")
	s.DeselectAll()
	assert.Zero(t, s.Len())
	assert.Nil(t, s.Active())
	assert.False(t, s.Intersects([]string{"一般"}))

	s.SelectAll()
	assert.Equal(t, s.Labels(), s.Active())
}

func TestIntersects(t *testing.T) {
	s := New(labels, "キャラクター")
	assert.True(t, s.Intersects([]string{"キャラクター", "一般"}))
	assert.False(t, s.Intersects([]string{"キャラクター"}))
	assert.False(t, s.Intersects(nil))
}

func TestInstancesAreIndependent(t *testing.T) {
	a := New(labels)
	b := New(labels)
	a.DeselectAll()
	assert.Equal(t, 4, b.Len())
}
