package elements

import (
	"context"
	"fmt"

	"github.com/runxel/perisso/pkg/perisso/errors"
)

// Resolver fetches attribute values for a set of elements in bulk. The
// returned slice is aligned with the refs argument, one value per element,
// with AbsentValue marking elements the attribute could not be resolved for.
type Resolver interface {
	ElementTypes(ctx context.Context, refs []ElementRef) ([]Value, error)
	BuiltInProperty(ctx context.Context, nonLocalizedName string, refs []ElementRef) ([]Value, error)
	UserProperty(ctx context.Context, group, name string, refs []ElementRef) ([]Value, error)
	Heights(ctx context.Context, refs []ElementRef) ([]Value, error)
}

// Collection is an ordered, duplicate free set of elements. Collections are
// immutable: filtering and set operations always produce a new collection.
type Collection struct {
	resolver Resolver
	members  []*Element
}

// NewCollection creates a collection over the given refs, preserving their
// order. Duplicate GUIDs keep their first occurrence.
func NewCollection(resolver Resolver, refs []ElementRef) *Collection {
	seen := map[string]struct{}{}
	members := make([]*Element, 0, len(refs))

	for _, ref := range refs {
		if _, ok := seen[ref.GUID]; ok {
			continue
		}
		seen[ref.GUID] = struct{}{}
		members = append(members, newElement(ref))
	}

	return &Collection{resolver: resolver, members: members}
}

func (c *Collection) derive(members []*Element) *Collection {
	return &Collection{resolver: c.resolver, members: members}
}

// FilterBy begins a new filter step against the given selector. The step is
// completed by one of the comparison methods on the returned builder.
func (c *Collection) FilterBy(selector Selector) *FilterBuilder {
	fb := &FilterBuilder{source: c, selector: selector}

	if selector.kind == selectorUnknown {
		fb.err = errors.NewUnsupportedCriterionError("filterBy: unsupported criterion")
	}

	return fb
}

// Get returns the element refs of the collection as plain data, in order.
func (c *Collection) Get() []ElementRef {
	refs := make([]ElementRef, 0, len(c.members))
	for _, e := range c.members {
		refs = append(refs, e.ref)
	}
	return refs
}

func (c *Collection) Count() int {
	return len(c.members)
}

// First returns the first element ref, or false when the collection is empty.
func (c *Collection) First() (ElementRef, bool) {
	if len(c.members) == 0 {
		return ElementRef{}, false
	}
	return c.members[0].ref, true
}

// Contains reports whether an element with the given GUID is in the collection.
func (c *Collection) Contains(ref ElementRef) bool {
	for _, e := range c.members {
		if e.ref.GUID == ref.GUID {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every element of other is also in c.
func (c *Collection) ContainsAll(other *Collection) bool {
	for _, e := range other.members {
		if !c.Contains(e.ref) {
			return false
		}
	}
	return true
}

// Union combines two collections, keeping the order of c and appending the
// elements of other that are not already present.
func (c *Collection) Union(other *Collection) *Collection {
	seen := map[string]struct{}{}
	members := make([]*Element, 0, len(c.members)+len(other.members))

	for _, e := range c.members {
		seen[e.ref.GUID] = struct{}{}
		members = append(members, e)
	}

	for _, e := range other.members {
		if _, ok := seen[e.ref.GUID]; ok {
			continue
		}
		seen[e.ref.GUID] = struct{}{}
		members = append(members, e)
	}

	return c.derive(members)
}

// Subtract removes the elements of other from c.
func (c *Collection) Subtract(other *Collection) *Collection {
	remove := map[string]struct{}{}
	for _, e := range other.members {
		remove[e.ref.GUID] = struct{}{}
	}

	members := make([]*Element, 0, len(c.members))
	for _, e := range c.members {
		if _, ok := remove[e.ref.GUID]; ok {
			continue
		}
		members = append(members, e)
	}

	return c.derive(members)
}

func (c *Collection) String() string {
	if len(c.members) == 1 {
		return "Collection of 1 element"
	}
	return fmt.Sprintf("Collection of %d elements", len(c.members))
}

// resolve returns the values of the selected attribute for every member, in
// member order. Values already resolved on a record are reused; the rest are
// fetched from the resolver in a single call and cached on the records.
func (c *Collection) resolve(ctx context.Context, selector Selector) ([]Value, error) {
	key := selector.cacheKey()

	if selector.kind == selectorGUID {
		values := make([]Value, 0, len(c.members))
		for _, e := range c.members {
			values = append(values, TextValue(e.ref.GUID))
		}
		return values, nil
	}

	missing := make([]ElementRef, 0, len(c.members))
	missingIdx := make([]int, 0, len(c.members))

	values := make([]Value, len(c.members))
	for i, e := range c.members {
		if v, ok := e.attribute(key); ok {
			values[i] = v
			continue
		}
		missing = append(missing, e.ref)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return values, nil
	}

	fetched, err := c.fetch(ctx, selector, missing)
	if err != nil {
		return nil, err
	}

	if len(fetched) != len(missing) {
		return nil, fmt.Errorf("resolver returned %d values for %d elements (%w)", len(fetched), len(missing), errors.ErrBadResponse)
	}

	for n, i := range missingIdx {
		values[i] = fetched[n]
		c.members[i].storeAttribute(key, fetched[n])
	}

	return values, nil
}

func (c *Collection) fetch(ctx context.Context, selector Selector, refs []ElementRef) ([]Value, error) {
	switch selector.kind {
	case selectorElementType:
		return c.resolver.ElementTypes(ctx, refs)
	case selectorBuiltIn:
		return c.resolver.BuiltInProperty(ctx, selector.builtin, refs)
	case selectorProperty:
		return c.resolver.UserProperty(ctx, selector.group, selector.name, refs)
	case selectorHeight:
		return c.resolver.Heights(ctx, refs)
	}

	return nil, errors.NewUnsupportedCriterionError(fmt.Sprintf("no resolver for criterion %s", selector))
}
