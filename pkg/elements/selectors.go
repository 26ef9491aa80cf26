package elements

import (
	"fmt"
)

// SemanticType is the value type a selector resolves to. It decides which
// comparison operators are allowed on it.
type SemanticType int

const (
	TokenType SemanticType = iota
	StringType
	NumberType
)

type selectorKind int

const (
	selectorUnknown selectorKind = iota
	selectorElementType
	selectorGUID
	selectorBuiltIn
	selectorProperty
	selectorHeight
)

// Selector names the element attribute a filter step inspects. The zero
// value is not a valid selector.
type Selector struct {
	kind    selectorKind
	builtin string
	group   string
	name    string
}

var (
	// ElementType selects the element category (Wall, Column, ...).
	ElementType = Selector{kind: selectorElementType}
	// GUID selects the unique identifier of the element itself.
	GUID = Selector{kind: selectorGUID}
	// ElementID selects the user visible element ID.
	ElementID = builtInSelector("General_ElementID")
	// ParentID selects the element ID of the parent element.
	ParentID = builtInSelector("IdAndCategories_ParentId")
	// HotlinkMasterID selects the ID of the hotlink master the element came from.
	HotlinkMasterID = builtInSelector("IdAndCategories_HotlinkMasterID")
	// HotlinkElementID selects the combined hotlink and element ID.
	HotlinkElementID = builtInSelector("General_HotlinkAndElementID")
	// Layer selects the name of the layer the element lives on.
	Layer = builtInSelector("ModelView_LayerName")
	// Height selects the vertical extent of the element's 3D bounding box.
	Height = Selector{kind: selectorHeight}
)

// Property selects a user defined property by its group and name.
func Property(group, name string) Selector {
	return Selector{kind: selectorProperty, group: group, name: name}
}

func builtInSelector(nonLocalizedName string) Selector {
	return Selector{kind: selectorBuiltIn, builtin: nonLocalizedName}
}

func (s Selector) semanticType() SemanticType {
	switch s.kind {
	case selectorElementType:
		return TokenType
	case selectorHeight:
		return NumberType
	default:
		return StringType
	}
}

// cacheKey is the key the resolved values are stored under on each element.
func (s Selector) cacheKey() string {
	switch s.kind {
	case selectorElementType:
		return "type"
	case selectorGUID:
		return "guid"
	case selectorBuiltIn:
		return "builtin:" + s.builtin
	case selectorProperty:
		return "property:" + s.group + "/" + s.name
	case selectorHeight:
		return "height"
	}

	return ""
}

func (s Selector) String() string {
	switch s.kind {
	case selectorElementType:
		return "element type"
	case selectorGUID:
		return "guid"
	case selectorBuiltIn:
		return s.builtin
	case selectorProperty:
		return fmt.Sprintf("property %s/%s", s.group, s.name)
	case selectorHeight:
		return "height"
	}

	return "unknown"
}
