package elements

// ElementRef identifies a single element in the Archicad model. This is the
// shape the JSON API uses inside its "elements" arrays.
type ElementRef struct {
	GUID string `json:"guid"`
}

// Element is one model element together with the attribute values that have
// been resolved for it so far. Resolved values are a point in time snapshot
// and are never refreshed implicitly; a fresh listing produces fresh records.
type Element struct {
	ref   ElementRef
	attrs map[string]Value
}

func newElement(ref ElementRef) *Element {
	return &Element{
		ref:   ref,
		attrs: map[string]Value{},
	}
}

func (e *Element) Ref() ElementRef {
	return e.ref
}

func (e *Element) GUID() string {
	return e.ref.GUID
}

func (e *Element) attribute(key string) (Value, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

func (e *Element) storeAttribute(key string, v Value) {
	e.attrs[key] = v
}
