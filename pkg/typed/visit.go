package typed

type instanceKey struct {
	structIndex   int32
	instanceIndex int32
}

// visitSet tracks the instances currently being materialised by one
// top-level call into the runtime. It breaks reference cycles: a
// recursive call that lands back on a key already in the set returns
// null instead of recursing forever. Each top-level entry
// point (GetFromMainRecord, or a fresh call from generated code)
// constructs its own visitSet, so independent call chains — independent
// goroutines included — never share one. This is the idiomatic Go
// rendering of "per-thread currently-reading set": an explicit
// parameter threaded through every recursive call, standing in for
// goroutine-local storage Go deliberately doesn't provide.
type visitSet struct {
	m map[instanceKey]struct{}
}

func newVisitSet() *visitSet {
	return &visitSet{m: make(map[instanceKey]struct{})}
}

func (v *visitSet) contains(k instanceKey) bool {
	_, ok := v.m[k]
	return ok
}

func (v *visitSet) add(k instanceKey) {
	v.m[k] = struct{}{}
}

func (v *visitSet) remove(k instanceKey) {
	delete(v.m, k)
}
