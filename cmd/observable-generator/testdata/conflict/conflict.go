package conflict

// Article has no field that can become a property.
//
// @observe.Object
type Article struct {
	Title  string
	_title string
}
