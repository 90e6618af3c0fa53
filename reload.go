package denygate

import "sync/atomic"

// Reloadable publishes deny-list updates without interrupting scans.
// Swap compiles a brand-new Filter and then replaces the published
// reference atomically: scans already in flight keep the filter they
// loaded, and no reader ever observes a half-updated word list.
type Reloadable struct {
	current atomic.Pointer[Filter]
	opts    []Option
}

// NewReloadable compiles the initial word list. The options are reused
// for every subsequent Swap.
func NewReloadable(words []string, opts ...Option) (*Reloadable, error) {
	f, err := New(words, opts...)
	if err != nil {
		return nil, err
	}
	r := &Reloadable{opts: opts}
	r.current.Store(f)
	return r, nil
}

// Load returns the currently published filter.
func (r *Reloadable) Load() *Filter {
	return r.current.Load()
}

// Swap compiles words into a new filter and publishes it, returning the
// previously published filter. On compilation failure the published
// filter is left untouched. The caller owns closing the returned
// filter, and must not do so before scans holding it have finished.
func (r *Reloadable) Swap(words []string) (*Filter, error) {
	f, err := New(words, r.opts...)
	if err != nil {
		return nil, err
	}
	return r.current.Swap(f), nil
}
