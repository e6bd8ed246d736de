// Package observe is the runtime library used by code produced by
// observable-generator.
//
// A struct type opts in to generation with an annotation comment naming the
// Object marker:
//
//	// Person is an observable person record.
//	//
//	// @observe.Object
//	type Person struct {
//		_name string
//		_age  int
//	}
//
// The generator then emits, in person_observable.go, a getter and a setter for
// every eligible field (Name/SetName, Age/SetAge). Setters raise a
// PropertyChanging notification, assign the field, then raise a
// PropertyChanged notification.
//
// Key types:
//   - Object: the marker named by the annotation
//   - PropertyChangedNotifier / PropertyChangingNotifier: the capabilities a
//     generated type satisfies
//   - PropertyChanged / PropertyChanging: embeddable handler lists; embedding
//     one of them directly in a struct means the capability is already declared
//     and the generator only dispatches through it
//   - Events: notifications attached to a value that does not embed the
//     handler lists (see Attach and Lookup)
package observe
