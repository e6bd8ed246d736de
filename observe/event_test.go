package observe

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyChanged_RaiseInRegistrationOrder(t *testing.T) {
	var ev PropertyChanged

	var calls []string
	ev.OnPropertyChanged(func(_ any, e PropertyChangedEventArgs) { calls = append(calls, "first:"+e.PropertyName) })
	ev.OnPropertyChanged(func(_ any, e PropertyChangedEventArgs) { calls = append(calls, "second:"+e.PropertyName) })

	ev.Raise(nil, "Name")

	assert.Equal(t, []string{"first:Name", "second:Name"}, calls)
}

func TestPropertyChanged_SenderIsPassedThrough(t *testing.T) {
	var ev PropertyChanged

	owner := &struct{ n int }{n: 1}

	var got any
	ev.OnPropertyChanged(func(sender any, _ PropertyChangedEventArgs) { got = sender })
	ev.Raise(owner, "N")

	assert.Same(t, owner, got)
}

func TestPropertyChanged_Cancel(t *testing.T) {
	var ev PropertyChanged

	count := 0
	cancel := ev.OnPropertyChanged(func(any, PropertyChangedEventArgs) { count++ })
	require.Equal(t, 1, ev.Len())

	ev.Raise(nil, "A")
	cancel()
	cancel() // second call is a no-op
	ev.Raise(nil, "A")

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, ev.Len())
}

func TestPropertyChanged_CancelDuringRaise(t *testing.T) {
	var ev PropertyChanged

	var calls []int

	var cancelFirst func()
	cancelFirst = ev.OnPropertyChanged(func(any, PropertyChangedEventArgs) {
		calls = append(calls, 1)
		cancelFirst()
	})
	ev.OnPropertyChanged(func(any, PropertyChangedEventArgs) { calls = append(calls, 2) })

	ev.Raise(nil, "X")
	ev.Raise(nil, "X")

	assert.Equal(t, []int{1, 2, 2}, calls)
}

func TestPropertyChanged_NilSafe(t *testing.T) {
	var ev *PropertyChanged

	assert.NotPanics(t, func() { ev.Raise(nil, "Name") })
	assert.Equal(t, 0, ev.Len())

	var zero PropertyChanged
	assert.NotPanics(t, func() { zero.Raise(nil, "Name") })

	cancel := zero.OnPropertyChanged(nil)
	assert.NotPanics(t, cancel)
	assert.Equal(t, 0, zero.Len())
}

func TestPropertyChanging_RaiseAndCancel(t *testing.T) {
	var ev PropertyChanging

	var names []string
	cancel := ev.OnPropertyChanging(func(_ any, e PropertyChangingEventArgs) { names = append(names, e.PropertyName) })

	ev.Raise(nil, "Age")
	cancel()
	ev.Raise(nil, "Age")

	assert.Equal(t, []string{"Age"}, names)

	var nilEv *PropertyChanging
	assert.NotPanics(t, func() { nilEv.Raise(nil, "Age") })
}

func TestPropertyChanged_ConcurrentUse(t *testing.T) {
	var ev PropertyChanged

	var (
		mu    sync.Mutex
		count int
	)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			cancel := ev.OnPropertyChanged(func(any, PropertyChangedEventArgs) {
				mu.Lock()
				count++
				mu.Unlock()
			})
			ev.Raise(nil, "P")
			cancel()
		}()
	}

	wg.Wait()

	assert.Equal(t, 0, ev.Len())
	assert.GreaterOrEqual(t, count, 16)
}
