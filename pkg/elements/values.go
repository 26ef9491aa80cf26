package elements

import (
	"strconv"
)

type ValueKind int

const (
	// Absent marks an attribute that does not exist on an element, or that
	// the remote side could not resolve for it. Absent values never match
	// any comparison.
	Absent ValueKind = iota
	// Token is an enumerated value such as an element type. Exact match only.
	Token
	// Text is a free string value such as an element ID or a layer name.
	Text
	// Number is a numeric value such as a bounding box extent.
	Number
)

// Value is a tagged attribute value resolved for a single element.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
}

func AbsentValue() Value {
	return Value{Kind: Absent}
}

func TokenValue(token string) Value {
	return Value{Kind: Token, Str: token}
}

func TextValue(text string) Value {
	return Value{Kind: Text, Str: text}
}

func NumberValue(number float64) Value {
	return Value{Kind: Number, Num: number}
}

// Text returns the canonical string form of the value, the form that string
// comparisons are made against.
func (v Value) Text() string {
	if v.Kind == Number {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}

	return v.Str
}
