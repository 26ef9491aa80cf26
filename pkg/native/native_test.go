package native

import (
	stderrors "errors"
	"testing"

	"github.com/runxel/perisso/pkg/elements"
	"github.com/runxel/perisso/pkg/perisso/errors"

	"github.com/matryer/is"
)

func TestAdaptationPreservesOrderAndCount(t *testing.T) {
	is := is.New(t)

	refs := []elements.ElementRef{
		{GUID: "61ea57a8-2b56-47c4-841f-4b4fbbb6a065"},
		{GUID: "b16ee588-b8bb-4ab5-b305-f7d57b33d1cb"},
	}

	items, err := FromRefs(refs)

	is.NoErr(err)
	is.Equal(len(items), 2)
	is.Equal(items[0].ElementID.GUID, refs[0].GUID)
	is.Equal(items[1].ElementID.GUID, refs[1].GUID)
}

func TestAdaptationFailsWithoutPartialResult(t *testing.T) {
	is := is.New(t)

	refs := []elements.ElementRef{
		{GUID: "61ea57a8-2b56-47c4-841f-4b4fbbb6a065"},
		{GUID: "not-a-guid"},
	}

	items, err := FromRefs(refs)

	is.True(stderrors.Is(err, errors.ErrAdaptation))
	is.True(items == nil)
}

func TestAdaptationOfCollection(t *testing.T) {
	is := is.New(t)

	c := elements.NewCollection(nil, []elements.ElementRef{
		{GUID: "61ea57a8-2b56-47c4-841f-4b4fbbb6a065"},
	})

	items, err := Elements(c)

	is.NoErr(err)
	is.Equal(len(items), 1)
}
