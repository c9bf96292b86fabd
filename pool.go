package bones

// Poolable is implemented by records that a Pool can recycle. Reset must
// return the value to its freshly allocated state.
type Poolable interface {
	comparable
	Reset()
}

// Pool recycles records to avoid per-build allocation. Every Borrow must be
// paired with exactly one Return; With does this for scoped use.
type Pool[T Poolable] struct {
	newFn    func() T
	free     []T
	borrowed map[T]struct{}
	max      int
}

// NewPool creates a pool that allocates with newFn and keeps at most max idle
// records. max <= 0 keeps every returned record.
func NewPool[T Poolable](newFn func() T, max int) *Pool[T] {
	return &Pool[T]{newFn: newFn, borrowed: make(map[T]struct{}), max: max}
}

// Borrow returns an idle record or allocates a new one.
func (p *Pool[T]) Borrow() T {
	var v T
	if n := len(p.free); n > 0 {
		v = p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
	} else {
		v = p.newFn()
	}
	p.borrowed[v] = struct{}{}
	return v
}

// Return resets v and makes it available again. Returning a record that is
// not currently borrowed panics.
func (p *Pool[T]) Return(v T) {
	if _, ok := p.borrowed[v]; !ok {
		panic("bones: pool: returned record is not borrowed")
	}
	delete(p.borrowed, v)
	v.Reset()
	if p.max > 0 && len(p.free) >= p.max {
		return
	}
	p.free = append(p.free, v)
}

// With borrows a record for the duration of fn and returns it afterwards,
// even if fn panics.
func (p *Pool[T]) With(fn func(T)) {
	v := p.Borrow()
	defer p.Return(v)
	fn(v)
}

// Borrowed returns the number of records currently out of the pool.
func (p *Pool[T]) Borrowed() int {
	return len(p.borrowed)
}

// Free returns the number of idle records.
func (p *Pool[T]) Free() int {
	return len(p.free)
}

// SetMaxCount changes the idle limit and drops surplus idle records.
func (p *Pool[T]) SetMaxCount(n int) {
	p.max = n
	if n > 0 && len(p.free) > n {
		clear(p.free[n:])
		p.free = p.free[:n]
	}
}
