package native

import (
	"fmt"

	"github.com/runxel/perisso/pkg/elements"
	"github.com/runxel/perisso/pkg/perisso/errors"

	"github.com/google/uuid"
)

// ElementID and ElementIdArrayItem mirror the data classes the official
// Archicad client library expects as input to its element commands.
type ElementID struct {
	GUID string `json:"guid"`
}

type ElementIDArrayItem struct {
	ElementID ElementID `json:"elementId"`
}

// Elements maps a collection to official client element references, one per
// element and in collection order. Fails without a partial result when any
// element lacks a usable GUID.
func Elements(c *elements.Collection) ([]ElementIDArrayItem, error) {
	return FromRefs(c.Get())
}

// FromRefs maps plain element refs to official client element references.
func FromRefs(refs []elements.ElementRef) ([]ElementIDArrayItem, error) {
	items := make([]ElementIDArrayItem, 0, len(refs))

	for i, ref := range refs {
		if _, err := uuid.Parse(ref.GUID); err != nil {
			return nil, errors.NewAdaptationError(fmt.Sprintf("element %d has no usable guid: %s", i, err.Error()))
		}
		items = append(items, ElementIDArrayItem{ElementID: ElementID{GUID: ref.GUID}})
	}

	return items, nil
}
