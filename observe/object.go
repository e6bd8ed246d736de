package observe

// Object marks a struct type for property generation. It is only ever named
// from an annotation comment (// @observe.Object) and has no runtime behaviour.
type Object struct{}

// PropertyChangedEventArgs describes a property whose value has changed.
type PropertyChangedEventArgs struct {
	PropertyName string
}

// PropertyChangingEventArgs describes a property whose value is about to change.
type PropertyChangingEventArgs struct {
	PropertyName string
}

// PropertyChangedHandler is called after a property of sender changed.
type PropertyChangedHandler func(sender any, e PropertyChangedEventArgs)

// PropertyChangingHandler is called before a property of sender changes.
type PropertyChangingHandler func(sender any, e PropertyChangingEventArgs)

// PropertyChangedNotifier is implemented by values that announce completed
// property changes.
type PropertyChangedNotifier interface {
	// OnPropertyChanged registers h. Calling cancel removes the registration;
	// it is safe to call more than once.
	OnPropertyChanged(h PropertyChangedHandler) (cancel func())
}

// PropertyChangingNotifier is implemented by values that announce pending
// property changes.
type PropertyChangingNotifier interface {
	// OnPropertyChanging registers h. Calling cancel removes the registration;
	// it is safe to call more than once.
	OnPropertyChanging(h PropertyChangingHandler) (cancel func())
}
