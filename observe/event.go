package observe

import (
	"slices"
	"sync"
)

// handlerList is a copy-on-remove list of handlers. Raising iterates over a
// snapshot, so handlers may register or cancel while being called.
type handlerList[H any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []handlerEntry[H]
}

type handlerEntry[H any] struct {
	id uint64
	h  H
}

func (l *handlerList[H]) add(h H) func() {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, handlerEntry[H]{id: id, h: h})
	l.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *handlerList[H]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.entries, func(e handlerEntry[H]) bool { return e.id == id })
	if i < 0 {
		return
	}

	// Never shift in place: a concurrent Raise may still be reading the old backing array.
	l.entries = slices.Concat(l.entries[:i], l.entries[i+1:])
}

func (l *handlerList[H]) snapshot() []handlerEntry[H] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.entries
}

func (l *handlerList[H]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// PropertyChanged holds PropertyChangedHandlers. The zero value is ready to
// use. Embedding it in an observable struct declares the PropertyChangedNotifier
// capability for that struct.
type PropertyChanged struct {
	list handlerList[PropertyChangedHandler]
}

var _ PropertyChangedNotifier = (*PropertyChanged)(nil)

// OnPropertyChanged registers h and returns a function removing it.
// A nil handler is ignored.
func (e *PropertyChanged) OnPropertyChanged(h PropertyChangedHandler) (cancel func()) {
	if h == nil {
		return func() {}
	}

	return e.list.add(h)
}

// Raise calls every registered handler, in registration order, with sender and
// name. It does nothing on a nil receiver or when no handler is registered.
func (e *PropertyChanged) Raise(sender any, name string) {
	if e == nil {
		return
	}

	args := PropertyChangedEventArgs{PropertyName: name}
	for _, entry := range e.list.snapshot() {
		entry.h(sender, args)
	}
}

// Len returns the number of registered handlers.
func (e *PropertyChanged) Len() int {
	if e == nil {
		return 0
	}

	return e.list.len()
}

// PropertyChanging holds PropertyChangingHandlers. The zero value is ready to
// use. Embedding it in an observable struct declares the
// PropertyChangingNotifier capability for that struct.
type PropertyChanging struct {
	list handlerList[PropertyChangingHandler]
}

var _ PropertyChangingNotifier = (*PropertyChanging)(nil)

// OnPropertyChanging registers h and returns a function removing it.
// A nil handler is ignored.
func (e *PropertyChanging) OnPropertyChanging(h PropertyChangingHandler) (cancel func()) {
	if h == nil {
		return func() {}
	}

	return e.list.add(h)
}

// Raise calls every registered handler, in registration order, with sender and
// name. It does nothing on a nil receiver or when no handler is registered.
func (e *PropertyChanging) Raise(sender any, name string) {
	if e == nil {
		return
	}

	args := PropertyChangingEventArgs{PropertyName: name}
	for _, entry := range e.list.snapshot() {
		entry.h(sender, args)
	}
}

// Len returns the number of registered handlers.
func (e *PropertyChanging) Len() int {
	if e == nil {
		return 0
	}

	return e.list.len()
}
