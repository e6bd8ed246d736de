package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attachOwner struct {
	name string
}

func TestAttach_SameOwnerSameEvents(t *testing.T) {
	owner := &attachOwner{name: "a"}
	other := &attachOwner{name: "b"}

	first := Attach(owner)
	require.NotNil(t, first)

	assert.Same(t, first, Attach(owner))
	assert.NotSame(t, first, Attach(other))
}

func TestLookup_NilUntilAttached(t *testing.T) {
	owner := &attachOwner{}

	assert.Nil(t, Lookup(owner))
	assert.Nil(t, Lookup[attachOwner](nil))

	ev := Attach(owner)
	assert.Same(t, ev, Lookup(owner))
}

func TestNotify_WithoutAttachedEventsDoesNothing(t *testing.T) {
	owner := &attachOwner{}

	assert.NotPanics(t, func() {
		NotifyChanging(owner, "Name")
		NotifyChanged(owner, "Name")
	})

	// Notifying must not attach anything as a side effect.
	assert.Nil(t, Lookup(owner))
}

func TestNotify_DispatchesThroughAttachedEvents(t *testing.T) {
	owner := &attachOwner{}

	var got []string
	Attach(owner).Changing.OnPropertyChanging(func(sender any, e PropertyChangingEventArgs) {
		assert.Same(t, owner, sender)
		got = append(got, "changing:"+e.PropertyName)
	})
	Attach(owner).Changed.OnPropertyChanged(func(sender any, e PropertyChangedEventArgs) {
		assert.Same(t, owner, sender)
		got = append(got, "changed:"+e.PropertyName)
	})

	NotifyChanging(owner, "Name")
	NotifyChanged(owner, "Name")

	assert.Equal(t, []string{"changing:Name", "changed:Name"}, got)
}

func TestAttach_NilOwnerPanics(t *testing.T) {
	assert.Panics(t, func() { Attach[attachOwner](nil) })
}
