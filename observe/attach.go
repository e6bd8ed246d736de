package observe

import (
	"runtime"
	"sync"
	"weak"
)

// Events are the notifications attached to a value whose type does not embed
// PropertyChanged or PropertyChanging itself.
type Events struct {
	Changed  PropertyChanged
	Changing PropertyChanging
}

// attached maps weak.Pointer[T] keys to *Events. Entries are dropped by a
// cleanup once the owner is unreachable.
var attached sync.Map

// Attach returns the Events attached to owner, creating them on first use.
// It panics if owner is nil.
func Attach[T any](owner *T) *Events {
	if owner == nil {
		panic("observe: Attach called with a nil owner")
	}

	key := weak.Make(owner)
	if ev, ok := attached.Load(key); ok {
		return ev.(*Events)
	}

	ev, loaded := attached.LoadOrStore(key, new(Events))
	if !loaded {
		runtime.AddCleanup(owner, func(k weak.Pointer[T]) {
			attached.Delete(k)
		}, key)
	}

	return ev.(*Events)
}

// Lookup returns the Events attached to owner, or nil if nothing was ever
// attached. Unlike Attach it never allocates Events.
func Lookup[T any](owner *T) *Events {
	if owner == nil {
		return nil
	}

	if ev, ok := attached.Load(weak.Make(owner)); ok {
		return ev.(*Events)
	}

	return nil
}

// NotifyChanged raises PropertyChanged for owner through its attached Events.
// It is a no-op when no Events are attached.
func NotifyChanged[T any](owner *T, name string) {
	if ev := Lookup(owner); ev != nil {
		ev.Changed.Raise(owner, name)
	}
}

// NotifyChanging raises PropertyChanging for owner through its attached
// Events. It is a no-op when no Events are attached.
func NotifyChanging[T any](owner *T, name string) {
	if ev := Lookup(owner); ev != nil {
		ev.Changing.Raise(owner, name)
	}
}
