// Package perisso is the entry point of the library: it seeds an element
// collection from a running Archicad instance, which can then be narrowed
// with chained filter steps.
package perisso

import (
	"context"

	"github.com/runxel/perisso/pkg/elements"
	"github.com/runxel/perisso/pkg/tapir"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/otel"
)

type settings struct {
	selection bool
}

type Option func(*settings)

// FromSelection seeds the collection from the current selection in the host
// application instead of all elements. An empty selection falls back to all
// elements.
func FromSelection() Option {
	return func(s *settings) {
		s.selection = true
	}
}

var tracer = otel.Tracer("perisso")

// Elements produces the initial, unfiltered element collection.
func Elements(ctx context.Context, client tapir.Client, options ...Option) (*elements.Collection, error) {
	s := &settings{}
	for _, option := range options {
		option(s)
	}

	ctx, span := tracer.Start(ctx, "seed-collection")
	defer span.End()

	var refs []elements.ElementRef
	var err error

	if s.selection {
		refs, err = client.SelectedElements(ctx)
		if err != nil {
			return nil, err
		}

		if len(refs) == 0 {
			log := logging.GetFromContext(ctx)
			log.Debug("selection is empty, falling back to all elements")

			refs, err = client.Elements(ctx)
		}
	} else {
		refs, err = client.Elements(ctx)
	}

	if err != nil {
		return nil, err
	}

	return elements.NewCollection(client, refs), nil
}

// Highlight colors the elements of the collection in the Archicad views.
func Highlight(ctx context.Context, client tapir.Client, c *elements.Collection, options ...tapir.HighlightOption) error {
	return client.HighlightElements(ctx, c.Get(), options...)
}

// ClearHighlight removes all element highlighting.
func ClearHighlight(ctx context.Context, client tapir.Client) error {
	return client.ClearHighlight(ctx)
}
