package bones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	value int
	resets int
}

func (r *record) Reset() {
	r.value = 0
	r.resets++
}

func TestPoolBorrowReturn(t *testing.T) {
	allocs := 0
	p := NewPool(func() *record { allocs++; return &record{} }, 0)

	a := p.Borrow()
	a.value = 7
	assert.Equal(t, 1, p.Borrowed())
	assert.Equal(t, 0, p.Free())

	p.Return(a)
	assert.Equal(t, 0, p.Borrowed())
	assert.Equal(t, 1, p.Free())
	assert.Equal(t, 0, a.value)
	assert.Equal(t, 1, a.resets)

	b := p.Borrow()
	assert.Same(t, a, b)
	assert.Equal(t, 1, allocs)
}

func TestPoolDoubleReturnPanics(t *testing.T) {
	p := NewPool(func() *record { return &record{} }, 0)
	a := p.Borrow()
	p.Return(a)
	assert.Panics(t, func() { p.Return(a) })
	assert.Panics(t, func() { p.Return(&record{}) })
}

func TestPoolMaxCount(t *testing.T) {
	p := NewPool(func() *record { return &record{} }, 2)
	recs := []*record{p.Borrow(), p.Borrow(), p.Borrow()}
	for _, r := range recs {
		p.Return(r)
	}
	assert.Equal(t, 2, p.Free())
	assert.Equal(t, 0, p.Borrowed())

	p.SetMaxCount(1)
	assert.Equal(t, 1, p.Free())

	p.SetMaxCount(0)
	for range 3 {
		p.Return(p.Borrow())
	}
	assert.Equal(t, 1, p.Free())
}

func TestPoolWith(t *testing.T) {
	p := NewPool(func() *record { return &record{} }, 0)
	var seen *record
	p.With(func(r *record) {
		seen = r
		assert.Equal(t, 1, p.Borrowed())
	})
	require.NotNil(t, seen)
	assert.Equal(t, 0, p.Borrowed())
	assert.Equal(t, 1, seen.resets)

	assert.Panics(t, func() {
		p.With(func(*record) { panic("boom") })
	})
	assert.Equal(t, 0, p.Borrowed())
}

func TestFactoryPoolsRecycleArmatures(t *testing.T) {
	f := newTestFactory(t)
	d := buildHero(t, f)
	armatures, _, _ := f.PoolStats()
	assert.Equal(t, 2, armatures) // hero and its nested sword

	d.Dispose()
	armatures, _, events := f.PoolStats()
	assert.Equal(t, 0, armatures)
	assert.Equal(t, 0, events)

	d2 := buildHero(t, f)
	armatures, _, _ = f.PoolStats()
	assert.Equal(t, 2, armatures)
	assert.False(t, d2.Armature().IsDisposed())
}
