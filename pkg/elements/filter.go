package elements

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/runxel/perisso/pkg/perisso/errors"
)

type operator int

const (
	opEquals operator = iota
	opNotEquals
	opIsIn
	opContains
	opStartsWith
	opEndsWith
	opGreaterThan
	opLessThan
	opExists
)

// FilterBuilder is the in-progress filter step created by FilterBy. It holds
// the source collection and the chosen selector, and is consumed by the first
// comparison method called on it.
type FilterBuilder struct {
	source   *Collection
	selector Selector
	err      error
}

// Equals keeps the elements whose attribute equals the expected value.
// Comparison is exact and case sensitive. Accepts a string for token and
// string selectors, an int or float64 for numeric ones.
func (f *FilterBuilder) Equals(ctx context.Context, expected any) (*Collection, error) {
	v, err := f.coerce(expected)
	if err != nil {
		return nil, err
	}
	return f.apply(ctx, opEquals, []Value{v})
}

// NotEquals keeps the elements whose attribute differs from the expected
// value. Elements without a value for the attribute are still excluded.
func (f *FilterBuilder) NotEquals(ctx context.Context, expected any) (*Collection, error) {
	v, err := f.coerce(expected)
	if err != nil {
		return nil, err
	}
	return f.apply(ctx, opNotEquals, []Value{v})
}

// IsIn keeps the elements whose attribute equals any of the expected values.
func (f *FilterBuilder) IsIn(ctx context.Context, expected ...any) (*Collection, error) {
	values := make([]Value, 0, len(expected))
	for _, e := range expected {
		v, err := f.coerce(e)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return f.apply(ctx, opIsIn, values)
}

// Contains keeps the elements whose attribute contains the given substring.
// Only valid on string selectors.
func (f *FilterBuilder) Contains(ctx context.Context, substring string) (*Collection, error) {
	if err := f.requireStrings(opContains); err != nil {
		return nil, err
	}
	return f.apply(ctx, opContains, []Value{TextValue(substring)})
}

// StartsWith keeps the elements whose attribute starts with the given prefix.
// Only valid on string selectors.
func (f *FilterBuilder) StartsWith(ctx context.Context, prefix string) (*Collection, error) {
	if err := f.requireStrings(opStartsWith); err != nil {
		return nil, err
	}
	return f.apply(ctx, opStartsWith, []Value{TextValue(prefix)})
}

// EndsWith keeps the elements whose attribute ends with the given suffix.
// Only valid on string selectors.
func (f *FilterBuilder) EndsWith(ctx context.Context, suffix string) (*Collection, error) {
	if err := f.requireStrings(opEndsWith); err != nil {
		return nil, err
	}
	return f.apply(ctx, opEndsWith, []Value{TextValue(suffix)})
}

// GreaterThan keeps the elements whose numeric attribute exceeds the bound.
// Only valid on numeric selectors.
func (f *FilterBuilder) GreaterThan(ctx context.Context, bound float64) (*Collection, error) {
	if err := f.requireNumbers(opGreaterThan); err != nil {
		return nil, err
	}
	return f.apply(ctx, opGreaterThan, []Value{NumberValue(bound)})
}

// LessThan keeps the elements whose numeric attribute is below the bound.
// Only valid on numeric selectors.
func (f *FilterBuilder) LessThan(ctx context.Context, bound float64) (*Collection, error) {
	if err := f.requireNumbers(opLessThan); err != nil {
		return nil, err
	}
	return f.apply(ctx, opLessThan, []Value{NumberValue(bound)})
}

// Exists keeps the elements that have any value at all for the attribute.
func (f *FilterBuilder) Exists(ctx context.Context) (*Collection, error) {
	return f.apply(ctx, opExists, nil)
}

func (f *FilterBuilder) apply(ctx context.Context, op operator, expected []Value) (*Collection, error) {
	if f.err != nil {
		return nil, f.err
	}

	values, err := f.source.resolve(ctx, f.selector)
	if err != nil {
		return nil, err
	}

	kept := make([]*Element, 0, len(f.source.members))

	for i, e := range f.source.members {
		v := values[i]
		if v.Kind == Absent {
			// not an error: elements the attribute could not be
			// resolved for are excluded from the result
			continue
		}
		if matches(op, v, expected) {
			kept = append(kept, e)
		}
	}

	return f.source.derive(kept), nil
}

func (f *FilterBuilder) coerce(raw any) (Value, error) {
	if f.err != nil {
		return Value{}, f.err
	}

	if f.selector.semanticType() == NumberType {
		switch n := raw.(type) {
		case int:
			return NumberValue(float64(n)), nil
		case float64:
			return NumberValue(n), nil
		}
		return Value{}, errors.NewTypeMismatchError(fmt.Sprintf("%s expects a numeric comparison value, got %T", f.selector, raw))
	}

	if s, ok := raw.(string); ok {
		return TextValue(s), nil
	}

	return Value{}, errors.NewTypeMismatchError(fmt.Sprintf("%s expects a string comparison value, got %T", f.selector, raw))
}

func (f *FilterBuilder) requireStrings(op operator) error {
	if f.err != nil {
		return f.err
	}
	if f.selector.semanticType() != StringType {
		return errors.NewTypeMismatchError(fmt.Sprintf("operator %s is not applicable to %s", op, f.selector))
	}
	return nil
}

func (f *FilterBuilder) requireNumbers(op operator) error {
	if f.err != nil {
		return f.err
	}
	if f.selector.semanticType() != NumberType {
		return errors.NewTypeMismatchError(fmt.Sprintf("operator %s is not applicable to %s", op, f.selector))
	}
	return nil
}

const numberTolerance = 1e-9

func equalValues(v, expected Value) bool {
	if expected.Kind == Number {
		return v.Kind == Number && math.Abs(v.Num-expected.Num) <= numberTolerance
	}

	return v.Text() == expected.Text()
}

func matches(op operator, v Value, expected []Value) bool {
	switch op {
	case opEquals:
		return equalValues(v, expected[0])
	case opNotEquals:
		return !equalValues(v, expected[0])
	case opIsIn:
		for _, e := range expected {
			if equalValues(v, e) {
				return true
			}
		}
		return false
	case opContains:
		return strings.Contains(v.Text(), expected[0].Text())
	case opStartsWith:
		return strings.HasPrefix(v.Text(), expected[0].Text())
	case opEndsWith:
		return strings.HasSuffix(v.Text(), expected[0].Text())
	case opGreaterThan:
		return v.Kind == Number && v.Num > expected[0].Num
	case opLessThan:
		return v.Kind == Number && v.Num < expected[0].Num
	case opExists:
		return true
	}

	return false
}

func (op operator) String() string {
	names := map[operator]string{
		opEquals:      "equals",
		opNotEquals:   "notEquals",
		opIsIn:        "isIn",
		opContains:    "contains",
		opStartsWith:  "startsWith",
		opEndsWith:    "endsWith",
		opGreaterThan: "greaterThan",
		opLessThan:    "lessThan",
		opExists:      "exists",
	}

	return names[op]
}
